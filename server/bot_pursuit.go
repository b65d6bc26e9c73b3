package server

import (
	"github.com/lab1702/fleetcommand/game"
)

// botPursuing runs the pursuit evaluator against a target that has pulled
// out of chase range and acts on its decision.
func (s *Server) botPursuing(a *game.Ship, prof game.BehaviorProfile, snap *snapshot) (game.AIState, string) {
	t := a.Target
	if !t.Alive() {
		clearEngagement(a)
		s.pickPatrolPoint(a)
		return game.AIPatrol, "target lost"
	}
	if belowFleeThreshold(a, prof) {
		a.Threat = t
		s.say(a, game.LineFlee)
		return game.AIFlee, "hull critical"
	}

	ctx := PursuitContext{
		ChaseStart: a.ChaseStart,
		Now:        snap.now,
		MaxChase:   s.cfg.AI.MaxChaseTime,
		Home:       a.Home,
		HasHome:    a.HasHome,
		Leash:      s.cfg.AI.LeashDistance,
		Assisting:  snap.focusOn(a, t),
	}
	res := EvaluatePursuit(a, t, ctx, s.cfg.Pursuit)
	a.PursuitReason = res.Reason

	switch res.Decision {
	case DecisionTackle:
		a.Locked = t
		ActivateTackle(a, t)
		return game.AITackling, res.Reason
	case DecisionDisengage:
		return game.AIDisengaging, res.Reason
	case DecisionIntercept:
		tune := s.cfg.Pursuit
		dest := InterceptPoint(t, tune.InterceptLookahead, tune.InterceptOvershoot)
		if a.InitiateSectorWarp(dest, snap.now) {
			a.LastKnown = t.Pos
			return game.AIIntercepting, res.Reason
		}
		// Drive not ready after all, keep chasing on engines
	}

	if a.DistanceTo(t) <= a.EffectiveAttackRange() {
		stopChase(a)
		return game.AIAttack, "caught target"
	}
	moveToward(a, t.Pos, a.EffectiveMaxSpeed())
	return game.AIPursuing, res.Reason
}

// botIntercepting waits out a sector warp, then decides whether the jump
// put the agent back in the fight.
func (s *Server) botIntercepting(a *game.Ship, snap *snapshot) (game.AIState, string) {
	if a.Warping() {
		moveToward(a, a.LastKnown, a.EffectiveMaxSpeed()*InterceptCrawlSpeed)
		return game.AIIntercepting, ""
	}

	t := a.Target
	if !t.Alive() {
		clearEngagement(a)
		s.pickPatrolPoint(a)
		return game.AIPatrol, "target lost"
	}

	dist := a.DistanceTo(t)
	switch {
	case dist <= InterceptLandFactor*a.EffectiveAttackRange():
		stopChase(a)
		return game.AIAttack, "landed in range"
	case dist <= InterceptKeepFactor*a.AggroRange:
		return game.AIPursuing, "landed short"
	default:
		return game.AIDisengaging, "intercept missed"
	}
}

// botDisengaging drops the fight entirely and goes back on patrol.
func (s *Server) botDisengaging(a *game.Ship) (game.AIState, string) {
	clearEngagement(a)
	s.pickPatrolPoint(a)
	return game.AIPatrol, "disengaged"
}
