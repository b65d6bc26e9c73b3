package server

import (
	"github.com/lab1702/fleetcommand/game"
)

// allowedTransitions lists, for each state, the states an agent may move to.
// Staying in the same state is always allowed and is not listed.
var allowedTransitions = map[game.AIState][]game.AIState{
	game.AIIdle:         {game.AIAttack, game.AIChase, game.AIPatrol},
	game.AIPatrol:       {game.AIChase, game.AIIdle},
	game.AIChase:        {game.AIFlee, game.AIPatrol, game.AIPursuing, game.AIAttack, game.AIIdle},
	game.AIAttack:       {game.AIFlee, game.AIPatrol, game.AIChase},
	game.AIFlee:         {game.AIRegroup, game.AIIdle},
	game.AIRegroup:      {game.AIPatrol, game.AIChase},
	game.AIPursuing:     {game.AIPatrol, game.AIFlee, game.AITackling, game.AIIntercepting, game.AIDisengaging, game.AIAttack},
	game.AIIntercepting: {game.AIAttack, game.AIPursuing, game.AIDisengaging, game.AIPatrol},
	game.AITackling:     {game.AIPatrol, game.AIFlee, game.AIPursuing},
	game.AIDisengaging:  {game.AIPatrol},
}

// canTransition reports whether the table allows from -> to.
func canTransition(from, to game.AIState) bool {
	if from == to {
		return true
	}
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// setState moves an agent to next. Unknown states and transitions the table
// does not allow land the agent in idle instead. Leaving a combat state
// switches off weapons and tackle.
func (s *Server) setState(a *game.Ship, next game.AIState, reason string) {
	from := a.AIState
	if !from.Valid() {
		from = game.AIIdle
	}
	if !next.Valid() {
		next = game.AIIdle
	}
	if !canTransition(from, next) {
		logRejected(a, from, next)
		next = game.AIIdle
	}
	if from == next {
		a.AIState = next
		return
	}

	if from == game.AIAttack || from == game.AITackling {
		a.DeactivateWeapons()
		a.DeactivateTackle()
		a.Locked = nil
	}

	if next == game.AIFlee {
		a.FleeEntryHull = a.HullFraction()
	}
	a.AIState = next
	logTransition(a, from, next, reason)
	s.telemetry.Record(s.world.Now, a, from, next, reason)
}

// UpdateAgents runs one AI tick for every living NPC agent against a single
// snapshot of the sector.
func (s *Server) UpdateAgents(snap *snapshot) {
	for _, a := range snap.living {
		if !isAgent(a) || !a.Alive() {
			continue
		}
		s.updateAgent(a, snap)
	}
}

// updateAgent dispatches on the agent's state and applies the result.
func (s *Server) updateAgent(a *game.Ship, snap *snapshot) {
	if !a.AIState.Valid() {
		a.AIState = game.AIIdle
	}
	prof := game.Profile(a.Profile)

	var next game.AIState
	var reason string
	switch a.AIState {
	case game.AIIdle:
		next, reason = s.botIdle(a, prof, snap)
	case game.AIPatrol:
		next, reason = s.botPatrol(a, snap)
	case game.AIChase:
		next, reason = s.botChase(a, prof, snap)
	case game.AIAttack:
		next, reason = s.botAttack(a, prof, snap)
	case game.AIFlee:
		next, reason = s.botFlee(a, prof, snap)
	case game.AIRegroup:
		next, reason = s.botRegroup(a, snap)
	case game.AIPursuing:
		next, reason = s.botPursuing(a, prof, snap)
	case game.AIIntercepting:
		next, reason = s.botIntercepting(a, snap)
	case game.AITackling:
		next, reason = s.botTackling(a, prof, snap)
	case game.AIDisengaging:
		next, reason = s.botDisengaging(a)
	}
	s.setState(a, next, reason)
}

// botIdle looks for work: support agents heal first, then any agent picks a
// target or, sometimes, wanders off on patrol.
func (s *Server) botIdle(a *game.Ship, prof game.BehaviorProfile, snap *snapshot) (game.AIState, string) {
	if prof.Style == game.StyleSupport {
		if ally := s.findLowestHPAlly(a, snap); ally != nil {
			a.Target = ally
			return game.AIAttack, "ally needs repair"
		}
	}

	if t := s.findBestTarget(a, snap); t != nil {
		a.Target = t
		s.say(a, game.LineEngage)
		return game.AIChase, "target acquired"
	}

	if roll(s.rng, s.cfg.AI.IdlePatrolChance) {
		s.pickPatrolPoint(a)
		return game.AIPatrol, "patrolling"
	}

	a.Stop()
	return game.AIIdle, ""
}

// botPatrol wanders between waypoints, watching for targets.
func (s *Server) botPatrol(a *game.Ship, snap *snapshot) (game.AIState, string) {
	if t := s.findBestTarget(a, snap); t != nil {
		a.Target = t
		s.say(a, game.LineEngage)
		return game.AIChase, "target acquired"
	}

	if game.Distance(a.Pos, a.PatrolPoint) <= s.cfg.AI.PatrolArrival {
		if roll(s.rng, s.cfg.AI.RepatrolChance) {
			s.pickPatrolPoint(a)
			return game.AIPatrol, ""
		}
		a.Stop()
		return game.AIIdle, "patrol complete"
	}

	moveToward(a, a.PatrolPoint, a.EffectiveMaxSpeed()*PatrolSpeed)
	return game.AIPatrol, ""
}
