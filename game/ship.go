package game

import (
	"github.com/google/uuid"
)

// DefaultDPS stands in for ships that report no weapon output so threat ratios stay finite.
const DefaultDPS = 10.0

// WebSpeedFactor is the speed multiplier applied to a webbed ship.
const WebSpeedFactor = 0.5

// WarpState is the phase of a short-range sector warp.
type WarpState int

const (
	WarpIdle WarpState = iota
	WarpActive
)

func (w WarpState) String() string {
	if w == WarpActive {
		return "active"
	}
	return "idle"
}

// SectorWarp is a ship's short-range warp drive.
type SectorWarp struct {
	Capable     bool
	State       WarpState
	Destination Vec
	CompleteAt  float64 // sim time the jump lands
	ReadyAt     float64 // sim time the drive is off cooldown
}

// Pilot flies a fleet ship. Pilots outlive the ships they are assigned to.
type Pilot struct {
	Name  string
	Skill float64
	Ship  uuid.UUID
}

// Ship is any entity in the sector: NPCs, the player, fleet ships and asteroids.
type Ship struct {
	ID      uuid.UUID
	Name    string
	Class   string
	Faction string
	Role    Role

	// Position and movement
	Pos      Vec
	Vel      Vec
	Rotation float64 // heading in radians
	MaxSpeed float64
	Accel    float64

	// Defenses
	Hull      float64
	MaxHull   float64
	Shield    float64
	MaxShield float64
	Armor     float64
	MaxArmor  float64

	// Engagement envelope
	AggroRange  float64
	AttackRange float64
	Aggression  float64 // 0..1 chance to engage the player when in range

	High []*Module
	Mid  []*Module
	Low  []*Module

	Pointed bool // warp disrupted by someone
	Webbed  bool // speed reduced by someone
	Warp    SectorWarp
	Mods    Modifiers

	// Commanded state, consumed by the integrator every frame
	Dest     Vec
	DesSpeed float64
	Locked   *Ship

	// NPC AI bookkeeping
	AIState       AIState
	Profile       string
	Stance        Stance
	Target        *Ship
	Threat        *Ship
	FleeEntryHull float64 // hull fraction when the agent started fleeing
	ChaseStart    float64
	Chasing       bool
	PatrolPoint   Vec
	PursuitReason string
	Home          Vec
	HasHome       bool
	LastKnown     Vec
	ChatReadyAt   float64
	NextTauntAt   float64

	// Player fleet bookkeeping
	Order           FleetOrder
	OrderTarget     *Ship
	ScoutPoint      Vec
	Group           int
	Pilot           *Pilot
	FormationOffset Vec
	Cargo           float64
	CargoCap        float64
}

// Alive reports whether the ship still has hull.
func (s *Ship) Alive() bool {
	return s != nil && s.Hull > 0
}

// HullFraction is current hull over max hull.
func (s *Ship) HullFraction() float64 {
	if s.MaxHull <= 0 {
		return 0
	}
	return s.Hull / s.MaxHull
}

// EffectiveHP is combined shield, armor and hull.
func (s *Ship) EffectiveHP() float64 {
	return s.Shield + s.Armor + s.Hull
}

// MaxEffectiveHP is the undamaged effective HP.
func (s *Ship) MaxEffectiveHP() float64 {
	return s.MaxShield + s.MaxArmor + s.MaxHull
}

// HPFraction is effective HP over its maximum.
func (s *Ship) HPFraction() float64 {
	max := s.MaxEffectiveHP()
	if max <= 0 {
		return 0
	}
	return s.EffectiveHP() / max
}

// DPS is the summed output of fitted weapons after modifiers.
func (s *Ship) DPS() float64 {
	total := 0.0
	for _, m := range s.High {
		if m.Kind == ModWeapon {
			total += m.Power
		}
	}
	if total <= 0 {
		return DefaultDPS
	}
	return total * orOne(s.Mods.Damage)
}

// EffectiveMaxSpeed is max speed after modifiers and webs.
func (s *Ship) EffectiveMaxSpeed() float64 {
	speed := s.MaxSpeed * orOne(s.Mods.Speed)
	if s.Webbed {
		speed *= WebSpeedFactor
	}
	return speed
}

// EffectiveAttackRange is attack range after modifiers.
func (s *Ship) EffectiveAttackRange() float64 {
	return s.AttackRange * orOne(s.Mods.Range)
}

// DistanceTo is the toroidal distance to another ship.
func (s *Ship) DistanceTo(o *Ship) float64 {
	return Distance(s.Pos, o.Pos)
}

// DirectionTo is the unit vector toward another ship.
func (s *Ship) DirectionTo(o *Ship) Vec {
	return Direction(s.Pos, o.Pos)
}

// MoveTo commands the integrator to head for dest at speed.
func (s *Ship) MoveTo(dest Vec, speed float64) {
	s.Dest = Wrap(dest)
	s.DesSpeed = speed
}

// Stop commands the ship to hold position.
func (s *Ship) Stop() {
	s.Dest = s.Pos
	s.DesSpeed = 0
}

// HasModule reports whether any slot carries a module of the given kind.
func (s *Ship) HasModule(kind ModuleKind) bool {
	for _, slots := range [][]*Module{s.High, s.Mid, s.Low} {
		for _, m := range slots {
			if m.Kind == kind {
				return true
			}
		}
	}
	return false
}

// PrimaryWeapon is the first high slot, or nil when nothing is fitted.
func (s *Ship) PrimaryWeapon() *Module {
	if len(s.High) == 0 {
		return nil
	}
	return s.High[0]
}

// EnsurePrimaryActive switches the primary weapon on against target.
func (s *Ship) EnsurePrimaryActive(target *Ship) {
	if w := s.PrimaryWeapon(); w != nil && target != nil {
		if w.Active && w.Target != target.ID {
			w.Deactivate()
		}
		w.Activate(target.ID)
	}
}

// DeactivateWeapons switches off every weapon-like high slot.
func (s *Ship) DeactivateWeapons() {
	for _, m := range s.High {
		switch m.Kind {
		case ModWeapon, ModRemoteRepair, ModMiningLaser:
			m.Deactivate()
		}
	}
}

// DeactivateTackle switches off every tackle module.
func (s *Ship) DeactivateTackle() {
	for _, m := range s.Mid {
		if m.Kind.IsTackle() {
			m.Deactivate()
		}
	}
}

// CanSectorWarp reports whether a short-range warp could start now.
func (s *Ship) CanSectorWarp(now float64) bool {
	return s.Warp.Capable && s.Warp.State == WarpIdle && now >= s.Warp.ReadyAt && !s.Pointed
}

// InitiateSectorWarp starts a jump to dest. The integrator lands it after
// WarpDuration; callers poll Warp.State on later ticks.
func (s *Ship) InitiateSectorWarp(dest Vec, now float64) bool {
	if !s.CanSectorWarp(now) {
		return false
	}
	s.Warp.State = WarpActive
	s.Warp.Destination = Wrap(dest)
	s.Warp.CompleteAt = now + WarpDuration
	return true
}

// Warping reports whether a jump is in flight.
func (s *Ship) Warping() bool {
	return s.Warp.State == WarpActive
}
