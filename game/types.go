package game

import "time"

// Timing defaults. The AI throttle and commander refresh are overridable in config.
const (
	FPS            = 10
	UpdateInterval = time.Millisecond * 100 // 10 FPS (10 ticks per second)

	AIInterval        = 0.5 // seconds between full AI re-evaluations
	CommanderInterval = 2.0 // seconds between faction command group refreshes
)

// Sector warp timings
const (
	WarpDuration = 1.5  // seconds a short-range warp spends in flight
	WarpCooldown = 15.0 // seconds before the drive can be used again
)

// Role is what a ship does in the sector. Target selection keys off it.
type Role int

const (
	RolePirate Role = iota
	RoleMiner
	RoleSecurity
	RoleGuild
	RolePlayer
	RoleFleet
	RoleAsteroid
)

func (r Role) String() string {
	switch r {
	case RolePirate:
		return "pirate"
	case RoleMiner:
		return "miner"
	case RoleSecurity:
		return "security"
	case RoleGuild:
		return "guild"
	case RolePlayer:
		return "player"
	case RoleFleet:
		return "fleet"
	case RoleAsteroid:
		return "asteroid"
	default:
		return "unknown"
	}
}

// Stance gates whether an agent initiates combat on its own.
type Stance int

const (
	StanceAggressive Stance = iota
	StancePassive
)

func (s Stance) String() string {
	if s == StancePassive {
		return "passive"
	}
	return "aggressive"
}

// AIState is the decision state of an autonomous NPC agent.
type AIState int

const (
	AIIdle AIState = iota
	AIPatrol
	AIChase
	AIAttack
	AIFlee
	AIPursuing
	AIIntercepting
	AITackling
	AIDisengaging
	AIRegroup

	numAIStates
)

var aiStateNames = [numAIStates]string{
	AIIdle:         "idle",
	AIPatrol:       "patrol",
	AIChase:        "chase",
	AIAttack:       "attack",
	AIFlee:         "flee",
	AIPursuing:     "pursuing",
	AIIntercepting: "intercepting",
	AITackling:     "tackling",
	AIDisengaging:  "disengaging",
	AIRegroup:      "regroup",
}

// Valid reports whether s is one of the defined states.
func (s AIState) Valid() bool {
	return s >= 0 && s < numAIStates
}

func (s AIState) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return aiStateNames[s]
}

// AllAIStates lists every defined state in declaration order.
func AllAIStates() []AIState {
	states := make([]AIState, 0, numAIStates)
	for s := AIIdle; s < numAIStates; s++ {
		states = append(states, s)
	}
	return states
}

// ParseAIState maps a state name to its value. Unknown names are idle.
func ParseAIState(name string) AIState {
	for i, n := range aiStateNames {
		if n == name {
			return AIState(i)
		}
	}
	return AIIdle
}

// FleetOrder is the standing order of a player-owned fleet ship.
type FleetOrder int

const (
	OrderFollowing FleetOrder = iota
	OrderOrbiting
	OrderMining
	OrderAttacking
	OrderDefending
	OrderHolding
	OrderScouting
)

var fleetOrderNames = map[FleetOrder]string{
	OrderFollowing: "following",
	OrderOrbiting:  "orbiting",
	OrderMining:    "mining",
	OrderAttacking: "attacking",
	OrderDefending: "defending",
	OrderHolding:   "holding",
	OrderScouting:  "scouting",
}

func (o FleetOrder) String() string {
	if n, ok := fleetOrderNames[o]; ok {
		return n
	}
	return "following"
}

// ParseFleetOrder maps an order name to its value. Unknown names are following.
func ParseFleetOrder(name string) FleetOrder {
	for o, n := range fleetOrderNames {
		if n == name {
			return o
		}
	}
	return OrderFollowing
}
