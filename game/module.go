package game

import "github.com/google/uuid"

// ModuleKind is the effect class of a fitted module.
type ModuleKind int

const (
	ModWeapon ModuleKind = iota
	ModRemoteRepair
	ModWarpDisruptor
	ModStasisWebifier
	ModMiningLaser
	ModCommandBurstOffense // damage + tracking aura
	ModCommandBurstDefense // shield + armor aura
	ModFleetRepair         // shield regen aura
)

func (k ModuleKind) String() string {
	switch k {
	case ModWeapon:
		return "weapon"
	case ModRemoteRepair:
		return "remote_repair"
	case ModWarpDisruptor:
		return "warp_disruptor"
	case ModStasisWebifier:
		return "stasis_webifier"
	case ModMiningLaser:
		return "mining_laser"
	case ModCommandBurstOffense:
		return "command_burst_offense"
	case ModCommandBurstDefense:
		return "command_burst_defense"
	case ModFleetRepair:
		return "fleet_repair"
	default:
		return "unknown"
	}
}

// IsTackle reports whether the module disrupts or slows its target.
func (k ModuleKind) IsTackle() bool {
	return k == ModWarpDisruptor || k == ModStasisWebifier
}

// Module is one fitted piece of equipment.
type Module struct {
	Name  string     `json:"name"`
	Kind  ModuleKind `json:"kind"`
	Range float64    `json:"range"`

	// Power is DPS for weapons, repair per second for remote repair, ore per
	// second for mining lasers and the multiplier for command modules.
	Power float64 `json:"power"`

	Active bool      `json:"active"`
	Target uuid.UUID `json:"-"`
}

// Activate switches the module on against a target. Returns false if it was
// already running.
func (m *Module) Activate(target uuid.UUID) bool {
	if m.Active {
		return false
	}
	m.Active = true
	m.Target = target
	return true
}

// Deactivate switches the module off.
func (m *Module) Deactivate() {
	m.Active = false
	m.Target = uuid.Nil
}

func cloneModules(src []Module) []*Module {
	out := make([]*Module, len(src))
	for i := range src {
		m := src[i]
		out[i] = &m
	}
	return out
}
