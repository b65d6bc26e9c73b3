package server

import (
	"github.com/lab1702/fleetcommand/game"
)

// hostile reports whether two ships are on opposite sides: pirates against
// everyone else. Asteroids are never hostile.
func hostile(a, b *game.Ship) bool {
	if a == nil || b == nil || a == b || a.Faction == b.Faction {
		return false
	}
	if a.Role == game.RoleAsteroid || b.Role == game.RoleAsteroid {
		return false
	}
	return game.IsPirate(a.Faction) != game.IsPirate(b.Faction)
}

// threatRatio compares an opponent's damage-times-toughness to the agent's own.
func threatRatio(agent, opp *game.Ship) float64 {
	mine := agent.DPS() * agent.EffectiveHP()
	if mine <= 0 {
		return MaxSearchDistance
	}
	return opp.DPS() * opp.EffectiveHP() / mine
}

// findBestTarget picks the enemy an agent should engage, or nil.
func (s *Server) findBestTarget(agent *game.Ship, snap *snapshot) *game.Ship {
	prof := game.Profile(agent.Profile)
	if prof.Style == game.StyleFlee {
		return nil
	}
	tune := s.cfg.Targeting

	// The group's primary target overrides everything else
	if g := snap.group(agent.Faction); g != nil {
		pt := g.PrimaryTarget
		if pt.Alive() && hostile(agent, pt) && snap.mayInitiate(agent, pt) &&
			agent.DistanceTo(pt) <= tune.GroupTargetRange*agent.AggroRange {
			return pt
		}
	}

	// Continuity
	if cur := agent.Target; cur.Alive() && cur.Role != game.RolePlayer && hostile(agent, cur) {
		return cur
	}

	if p := snap.player; p.Alive() && hostile(agent, p) && prof.Style != game.StyleSupport &&
		agent.DistanceTo(p) <= agent.AggroRange && snap.mayInitiate(agent, p) {
		tooDangerous := threatRatio(agent, p) > tune.MaxThreatRatio && prof.FleeHP > tune.ThreatFleeHP
		if !tooDangerous && roll(s.rng, agent.Aggression*prof.AggressionMultiplier) {
			return p
		}
	}

	var best *game.Ship
	bestScore := WorstScore
	bestDist := MaxSearchDistance
	for _, cand := range snap.nearby(agent.Pos, agent.AggroRange) {
		if !s.isCandidate(agent, cand) || !snap.mayInitiate(agent, cand) {
			continue
		}
		score := s.scoreTarget(agent, cand, snap)
		dist := agent.DistanceTo(cand)
		if score > bestScore || (score == bestScore && dist < bestDist) {
			best, bestScore, bestDist = cand, score, dist
		}
	}
	return best
}

// isCandidate filters the scan to ships an agent would hunt on its own.
func (s *Server) isCandidate(agent, cand *game.Ship) bool {
	if !cand.Alive() || !hostile(agent, cand) {
		return false
	}
	if game.IsPirate(agent.Faction) {
		switch cand.Role {
		case game.RoleMiner, game.RoleSecurity, game.RoleGuild, game.RoleFleet:
			return true
		}
		return false
	}
	// Lawful agents hunt pirates
	return cand.Role == game.RolePirate
}

// basePriority is the role weight before focus fire and damage are added.
func (s *Server) basePriority(cand *game.Ship) float64 {
	tune := s.cfg.Targeting
	switch cand.Role {
	case game.RoleMiner:
		return tune.MinerPriority
	case game.RoleSecurity:
		return tune.SecurityPriority
	case game.RoleGuild:
		return tune.GuildPriority
	case game.RoleFleet:
		return tune.FleetPriority
	case game.RolePirate:
		return tune.PiratePriority
	}
	return 0
}

// scoreTarget is base priority, plus focus fire from faction mates already on
// the candidate, plus a bonus for finishing off the wounded.
func (s *Server) scoreTarget(agent, cand *game.Ship, snap *snapshot) float64 {
	tune := s.cfg.Targeting
	score := s.basePriority(cand)
	score += tune.FocusFireWeight * float64(snap.focusOn(agent, cand))
	score += tune.WoundedWeight * (1 - cand.HPFraction())
	return score
}
