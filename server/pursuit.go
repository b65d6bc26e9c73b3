package server

import (
	"github.com/lab1702/fleetcommand/config"
	"github.com/lab1702/fleetcommand/game"
)

// EvaluatePursuit decides how a pursuer should proceed against a target.
// Rules are checked in order and the first match wins. It has no side effects.
func EvaluatePursuit(pursuer, target *game.Ship, ctx PursuitContext, tune config.PursuitConfig) PursuitResult {
	if target.Pointed {
		return PursuitResult{DecisionTackle, ReasonTargetPointed}
	}

	dist := pursuer.DistanceTo(target)
	if r := TackleRange(pursuer); r > 0 && dist <= r*tune.TackleRangeFactor {
		return PursuitResult{DecisionTackle, ReasonInTackleRange}
	}

	if ctx.MaxChase > 0 && ctx.Now-ctx.ChaseStart > ctx.MaxChase {
		return PursuitResult{DecisionDisengage, ReasonChaseTimeout}
	}

	if ctx.HasHome && ctx.Leash > 0 && game.Distance(pursuer.Pos, ctx.Home) > ctx.Leash {
		return PursuitResult{DecisionDisengage, ReasonLeashExceeded}
	}

	if pursuer.HullFraction() < tune.LowHullFraction && ctx.Assisting < tune.MinAssisting {
		return PursuitResult{DecisionDisengage, ReasonLowHull}
	}

	mine := pursuer.EffectiveMaxSpeed()
	theirs := target.EffectiveMaxSpeed()
	if mine > theirs*(1+tune.SpeedAdvantage) {
		return PursuitResult{DecisionContinue, ReasonFaster}
	}

	canWarp := pursuer.CanSectorWarp(ctx.Now)
	comparable := mine >= theirs*(1-tune.SpeedAdvantage)
	if comparable && dist > tune.InterceptMinDistance && canWarp {
		return PursuitResult{DecisionIntercept, ReasonIntercept}
	}

	if mine < theirs*(1-tune.SlowerMargin) && !canWarp {
		return PursuitResult{DecisionDisengage, ReasonCannotCatch}
	}

	return PursuitResult{DecisionContinue, ReasonClosing}
}

// TackleRange is the longest range across fitted tackle modules, or zero.
func TackleRange(s *game.Ship) float64 {
	best := 0.0
	for _, m := range s.Mid {
		if m.Kind.IsTackle() && m.Range*orOne(s.Mods.Range) > best {
			best = m.Range * orOne(s.Mods.Range)
		}
	}
	return best
}

// ActivateTackle switches on every idle tackle module against target and
// returns how many were switched on. Running modules are left alone.
func ActivateTackle(s, target *game.Ship) int {
	if target == nil {
		return 0
	}
	n := 0
	for _, m := range s.Mid {
		if m.Kind.IsTackle() && m.Activate(target.ID) {
			n++
		}
	}
	return n
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
