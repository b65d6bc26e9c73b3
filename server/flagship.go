package server

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lab1702/fleetcommand/game"
)

// SetFlagship designates a roster ship as the fleet's flagship. uuid.Nil clears it.
func (f *Fleet) SetFlagship(id uuid.UUID) error {
	if id == uuid.Nil {
		f.flagship = uuid.Nil
		f.event(EventFlagship, "Flagship cleared", nil)
		return nil
	}
	s := f.ship(id)
	if s == nil {
		return fmt.Errorf("flagship %s: %w", id, ErrUnknownShip)
	}
	f.flagship = id
	f.event(EventFlagship, s.Name+" is now the flagship", map[string]any{"ship": s.Name})
	return nil
}

// Flagship returns the flagship if it is still alive, or nil.
func (f *Fleet) Flagship() *game.Ship {
	if f.flagship == uuid.Nil {
		return nil
	}
	if s := f.ship(f.flagship); s.Alive() {
		return s
	}
	return nil
}

// FlagshipAura accumulates the command bonuses a ship receives from the
// flagship's high slots. Several modules of one kind stack multiplicatively.
// Ships outside command range get no modifiers.
func (f *Fleet) FlagshipAura(s *game.Ship) game.Modifiers {
	m := game.NoModifiers()
	fs := f.Flagship()
	if fs == nil || !s.Alive() || fs.DistanceTo(s) > f.cfg.CommandRange {
		return m
	}
	for _, mod := range fs.High {
		switch mod.Kind {
		case game.ModCommandBurstOffense:
			m.Damage *= mod.Power
			m.Tracking *= mod.Power
		case game.ModCommandBurstDefense:
			m.Shield *= mod.Power
			m.Armor *= mod.Power
		case game.ModFleetRepair:
			m.ShieldRegen *= mod.Power
		}
	}
	return m
}

// EffectiveModifiers is doctrine times formation bonus times flagship aura.
func (f *Fleet) EffectiveModifiers(s *game.Ship) game.Modifiers {
	return f.doctrine.Modifiers().Mul(f.FormationBonus(s)).Mul(f.FlagshipAura(s))
}
