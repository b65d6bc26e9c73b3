package server

import (
	"github.com/lab1702/fleetcommand/game"
)

// orbitPoint is the next waypoint on a circle of the given radius around
// center, leading the ship's current bearing by OrbitStep.
func orbitPoint(ship *game.Ship, center game.Vec, radius float64) game.Vec {
	bearing := game.Heading(game.Delta(center, ship.Pos))
	return game.PointAt(center, bearing+OrbitStep, radius)
}

// orbit commands a ship to circle center at radius and speed fraction.
func orbit(ship *game.Ship, center game.Vec, radius, speedFrac float64) {
	ship.MoveTo(orbitPoint(ship, center, radius), ship.EffectiveMaxSpeed()*speedFrac)
}
