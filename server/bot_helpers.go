package server

import (
	"math"

	"github.com/lab1702/fleetcommand/game"
)

// findLowestHPAlly finds the most damaged faction mate within aggro range
// and below the heal threshold, for support agents to look after.
func (s *Server) findLowestHPAlly(a *game.Ship, snap *snapshot) *game.Ship {
	var best *game.Ship
	bestFrac := s.cfg.AI.HealThreshold
	for _, o := range snap.nearby(a.Pos, a.AggroRange) {
		if o == a || o.Faction != a.Faction || !isAgent(o) {
			continue
		}
		if f := o.HPFraction(); f < bestFrac {
			best, bestFrac = o, f
		}
	}
	return best
}

// pickPatrolPoint chooses a random waypoint around the agent's home.
func (s *Server) pickPatrolPoint(a *game.Ship) {
	center := a.Pos
	if a.HasHome {
		center = a.Home
	}
	angle := s.rng.Float64() * 2 * math.Pi
	dist := s.rng.Float64() * s.cfg.AI.PatrolRadius
	a.PatrolPoint = game.PointAt(center, angle, dist)
}

// fleeThreat is what an agent runs from: its stored threat, or the player.
func fleeThreat(a *game.Ship, snap *snapshot) *game.Ship {
	if a.Threat.Alive() {
		return a.Threat
	}
	if snap.player.Alive() {
		return snap.player
	}
	return nil
}

// belowFleeThreshold reports whether the agent's hull has dropped under its
// profile's flee fraction.
func belowFleeThreshold(a *game.Ship, prof game.BehaviorProfile) bool {
	return a.HullFraction() < prof.FleeHP
}

// clearEngagement drops every reference to the agent's current fight.
func clearEngagement(a *game.Ship) {
	a.DeactivateWeapons()
	a.DeactivateTackle()
	a.Target = nil
	a.Locked = nil
	a.ChaseStart = 0
	a.Chasing = false
	a.PursuitReason = ""
}

// startChase records when a pursuit began so it can time out.
func startChase(a *game.Ship, now float64) {
	a.ChaseStart = now
	a.Chasing = true
}

// stopChase resets the pursuit timer.
func stopChase(a *game.Ship) {
	a.ChaseStart = 0
	a.Chasing = false
}
