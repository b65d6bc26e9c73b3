package server

import (
	"github.com/lab1702/fleetcommand/game"
)

// botChase closes on the target until it is in attack range, handing off to
// the pursuit logic if it pulls away.
func (s *Server) botChase(a *game.Ship, prof game.BehaviorProfile, snap *snapshot) (game.AIState, string) {
	if belowFleeThreshold(a, prof) {
		a.Threat = a.Target
		s.say(a, game.LineFlee)
		return game.AIFlee, "hull critical"
	}

	t := a.Target
	if !t.Alive() {
		a.Target = nil
		s.pickPatrolPoint(a)
		return game.AIPatrol, "target lost"
	}

	dist := a.DistanceTo(t)
	if dist > s.cfg.Targeting.ChaseRangeFactor*a.AggroRange {
		if !hostile(a, t) {
			// An ally we were going to repair wandered off
			a.Target = nil
			return game.AIIdle, "ally out of range"
		}
		startChase(a, snap.now)
		return game.AIPursuing, "target escaping"
	}

	if dist <= a.EffectiveAttackRange() {
		return game.AIAttack, "in range"
	}

	moveToward(a, t.Pos, a.EffectiveMaxSpeed())
	return game.AIChase, ""
}

// botAttack fights (or repairs) the current target, positioning by style.
func (s *Server) botAttack(a *game.Ship, prof game.BehaviorProfile, snap *snapshot) (game.AIState, string) {
	if s.massRetreat(a.Faction) {
		a.Threat = a.Target
		s.say(a, game.LineFlee)
		return game.AIFlee, "mass retreat"
	}
	if belowFleeThreshold(a, prof) {
		a.Threat = a.Target
		s.say(a, game.LineFlee)
		return game.AIFlee, "hull critical"
	}

	t := a.Target
	if !t.Alive() {
		a.Target = nil
		a.DeactivateWeapons()
		s.say(a, game.LineKill)
		s.pickPatrolPoint(a)
		return game.AIPatrol, "target destroyed"
	}

	// A repaired ally no longer needs the logistics ship
	if !hostile(a, t) && prof.Style == game.StyleSupport && t.HPFraction() >= 1 {
		a.Target = nil
		s.pickPatrolPoint(a)
		return game.AIPatrol, "ally repaired"
	}

	ar := a.EffectiveAttackRange()
	dist := a.DistanceTo(t)
	if dist > AttackBreakFactor*ar {
		return game.AIChase, "target out of range"
	}

	a.Locked = t
	if prof.Style == game.StyleClose && hostile(a, t) {
		ActivateTackle(a, t)
	}
	s.positionForAttack(a, t, prof, dist)

	if hostile(a, t) && snap.now >= a.NextTauntAt {
		s.say(a, game.LineTaunt)
		a.NextTauntAt = snap.now + s.cfg.AI.TauntInterval
	}
	a.EnsurePrimaryActive(t)
	return game.AIAttack, ""
}

// positionForAttack moves an engaged agent according to its tactical style.
func (s *Server) positionForAttack(a, t *game.Ship, prof game.BehaviorProfile, dist float64) {
	ar := a.EffectiveAttackRange()
	pref := prof.PreferredRange * ar
	speed := a.EffectiveMaxSpeed()

	switch prof.Style {
	case game.StyleRange:
		// Back off or close in to the preferred distance, drift once there
		if band := StandoffBand * ar; dist < pref-band || dist > pref+band {
			holdRange(a, t, pref, speed)
		} else {
			orbit(a, t.Pos, pref, prof.OrbitSpeed*0.5)
		}
	case game.StyleSupport:
		orbit(a, t.Pos, SupportOrbitFactor*ar, prof.OrbitSpeed)
	default:
		orbit(a, t.Pos, pref, prof.OrbitSpeed)
	}
}

// botTackling holds a target down at close range while the group kills it.
func (s *Server) botTackling(a *game.Ship, prof game.BehaviorProfile, snap *snapshot) (game.AIState, string) {
	t := a.Target
	if !t.Alive() {
		clearEngagement(a)
		s.say(a, game.LineKill)
		s.pickPatrolPoint(a)
		return game.AIPatrol, "target destroyed"
	}
	if belowFleeThreshold(a, prof) {
		a.Threat = t
		s.say(a, game.LineFlee)
		return game.AIFlee, "hull critical"
	}

	ar := a.EffectiveAttackRange()
	if !t.Pointed && a.DistanceTo(t) > TackleBreakFactor*ar {
		startChase(a, snap.now)
		return game.AIPursuing, "tackle broken"
	}

	a.Locked = t
	ActivateTackle(a, t)
	orbit(a, t.Pos, TackleOrbitFactor*ar, 1)
	a.EnsurePrimaryActive(t)
	return game.AITackling, ""
}
