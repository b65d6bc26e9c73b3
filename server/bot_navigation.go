package server

import (
	"math"

	"github.com/lab1702/fleetcommand/game"
	"gonum.org/v1/gonum/spatial/r2"
)

// holdRange commands a ship to the point on the line from target to ship
// that is exactly dist from target. Used to open or close range.
func holdRange(ship, target *game.Ship, dist, speed float64) {
	away := game.Direction(target.Pos, ship.Pos)
	if away == (game.Vec{}) {
		away = game.FromHeading(ship.Rotation + math.Pi)
	}
	ship.MoveTo(game.Offset(target.Pos, r2.Scale(dist, away)), speed)
}

// moveToward commands a ship straight at a point at the given speed.
func moveToward(ship *game.Ship, dest game.Vec, speed float64) {
	ship.MoveTo(dest, speed)
}

// fleeFrom commands a ship directly away from threat at full speed and
// returns the escape heading.
func fleeFrom(ship, threat *game.Ship) game.Vec {
	away := game.Direction(threat.Pos, ship.Pos)
	if away == (game.Vec{}) {
		away = game.FromHeading(ship.Rotation)
	}
	ship.MoveTo(game.Offset(ship.Pos, r2.Scale(ship.AggroRange+1000, away)), ship.EffectiveMaxSpeed())
	return away
}

// escapeWarpPoint is a random point between lo and hi units away from the
// ship, roughly opposite the threat.
func escapeWarpPoint(rng Rand, ship *game.Ship, away game.Vec, lo, hi float64) game.Vec {
	heading := game.Heading(away) + randomJitter(rng, FleeJitter)
	return game.PointAt(ship.Pos, heading, randomBetween(rng, lo, hi))
}
