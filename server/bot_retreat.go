package server

import (
	"github.com/lab1702/fleetcommand/game"
)

// botFlee runs from the threat, using the sector warp drive when it is
// ready, until the agent is far enough away or has recovered.
func (s *Server) botFlee(a *game.Ship, prof game.BehaviorProfile, snap *snapshot) (game.AIState, string) {
	a.DeactivateWeapons()
	a.DeactivateTackle()
	a.Locked = nil

	threat := fleeThreat(a, snap)
	tune := s.cfg.AI
	// Healing only ends a flight that started below the recovery mark
	recovered := a.FleeEntryHull <= tune.FleeRecoverHull && a.HullFraction() > tune.FleeRecoverHull
	if threat == nil || recovered ||
		a.DistanceTo(threat) > tune.FleeSafeFactor*a.AggroRange {
		a.Threat = nil
		a.Target = nil
		stopChase(a)
		if g := snap.group(a.Faction); g != nil && g.Commander.Alive() && prof.Name != game.ProfileCoward {
			return game.AIRegroup, "safe, regrouping"
		}
		return game.AIIdle, "safe"
	}

	away := fleeFrom(a, threat)
	if !a.Warping() && a.CanSectorWarp(snap.now) {
		dest := escapeWarpPoint(s.rng, a, away, tune.FleeWarpMin, tune.FleeWarpMax)
		a.InitiateSectorWarp(dest, snap.now)
	}
	return game.AIFlee, ""
}

// botRegroup flies back to the faction commander and rejoins its attack.
// If the group has dissolved in the meantime the agent goes back on patrol.
func (s *Server) botRegroup(a *game.Ship, snap *snapshot) (game.AIState, string) {
	g := snap.group(a.Faction)
	if g == nil || !g.Commander.Alive() {
		s.pickPatrolPoint(a)
		return game.AIPatrol, "no commander"
	}

	cmdr := g.Commander
	if a.DistanceTo(cmdr) <= s.cfg.AI.RegroupDistance {
		if pt := g.PrimaryTarget; pt.Alive() && hostile(a, pt) {
			a.Target = pt
			return game.AIChase, "rejoining attack"
		}
		s.pickPatrolPoint(a)
		return game.AIPatrol, "regrouped"
	}

	moveToward(a, cmdr.Pos, a.EffectiveMaxSpeed())
	return game.AIRegroup, ""
}
