package server

import (
	"github.com/google/uuid"
	"github.com/lab1702/fleetcommand/game"
)

// Decision is the outcome of a pursuit evaluation.
type Decision int

const (
	DecisionContinue Decision = iota
	DecisionTackle
	DecisionIntercept
	DecisionDisengage
)

func (d Decision) String() string {
	switch d {
	case DecisionTackle:
		return "tackle"
	case DecisionIntercept:
		return "intercept"
	case DecisionDisengage:
		return "disengage"
	default:
		return "continue"
	}
}

// Pursuit reasons, surfaced to telemetry and debug logs.
const (
	ReasonTargetPointed = "Target pointed"
	ReasonInTackleRange = "In tackle range"
	ReasonChaseTimeout  = "Chase timeout"
	ReasonLeashExceeded = "Leash exceeded"
	ReasonLowHull       = "Low hull, no support"
	ReasonFaster        = "Faster than target"
	ReasonIntercept     = "Intercept via warp"
	ReasonCannotCatch   = "Cannot catch target"
	ReasonClosing       = "Closing distance"
)

// PursuitContext is everything a pursuit evaluation needs besides the two ships.
type PursuitContext struct {
	ChaseStart float64
	Now        float64
	MaxChase   float64
	Home       game.Vec
	HasHome    bool
	Leash      float64
	Assisting  int // allies engaging the same target
}

// PursuitResult is a pursuit decision and the reason it was taken.
type PursuitResult struct {
	Decision Decision
	Reason   string
}

// CommandGroup is a faction's coordination group for one refresh cycle.
type CommandGroup struct {
	Faction       string
	Commander     *game.Ship
	Members       []*game.Ship
	PrimaryTarget *game.Ship
}

// LivingMembers counts members still alive since the last refresh.
func (g *CommandGroup) LivingMembers() int {
	n := 0
	for _, m := range g.Members {
		if m.Alive() {
			n++
		}
	}
	return n
}

// Rand is the random source the AI draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// snapshot is the read-only view of the sector every agent decides against
// during one AI tick.
type snapshot struct {
	now    float64
	living []*game.Ship
	player *game.Ship
	groups map[string]*CommandGroup
	grid   *SpatialGrid

	// focus[faction][target] counts that faction's agents targeting target
	focus map[string]map[uuid.UUID]int

	// aims holds every lock or target held when the snapshot was taken
	aims map[aim]bool
}

// aim is one ship pointing its weapons or sensors at another.
type aim struct {
	from, to *game.Ship
}
