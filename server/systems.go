package server

import (
	"math"

	"github.com/google/uuid"
	"github.com/lab1702/fleetcommand/game"
)

// updateShipSystems resolves every active module for one frame: tackle
// first so webs and points apply to this frame's movement, then weapons,
// repair and mining, then passive shield regen.
func (s *Server) updateShipSystems(dt float64) {
	living := s.world.Living()
	byID := make(map[uuid.UUID]*game.Ship, len(living))
	for _, sh := range living {
		byID[sh.ID] = sh
		sh.Pointed = false
		sh.Webbed = false
	}

	for _, sh := range living {
		s.updateTackle(sh, byID)
	}
	for _, sh := range living {
		s.updateHighSlots(sh, byID, dt)
	}
	for _, sh := range living {
		if sh.Alive() && sh.Role != game.RoleAsteroid {
			game.RepairShield(sh, sh.MaxShield*ShieldRegenRate*orOne(sh.Mods.ShieldRegen)*dt)
		}
	}
}

// updateTackle applies active disruptors and webs that are in range
func (s *Server) updateTackle(sh *game.Ship, byID map[uuid.UUID]*game.Ship) {
	if sh.Warping() {
		return
	}
	for _, m := range sh.Mid {
		if !m.Active || !m.Kind.IsTackle() {
			continue
		}
		t := byID[m.Target]
		if t == nil {
			m.Deactivate()
			continue
		}
		if t.Warping() || sh.DistanceTo(t) > m.Range*orOne(sh.Mods.Range) {
			continue
		}
		switch m.Kind {
		case game.ModWarpDisruptor:
			t.Pointed = true
		case game.ModStasisWebifier:
			t.Webbed = true
		}
	}
}

// updateHighSlots fires weapons, runs remote repairers and mining lasers
func (s *Server) updateHighSlots(sh *game.Ship, byID map[uuid.UUID]*game.Ship, dt float64) {
	if !sh.Alive() || sh.Warping() {
		return
	}
	for _, m := range sh.High {
		if !m.Active {
			continue
		}
		t := byID[m.Target]
		if !t.Alive() {
			m.Deactivate()
			continue
		}
		if t.Warping() || sh.DistanceTo(t) > m.Range*orOne(sh.Mods.Range) {
			continue
		}

		switch m.Kind {
		case game.ModWeapon:
			hit := math.Min(1, orOne(sh.Mods.Tracking)*orOne(t.Mods.Signature))
			game.ApplyDamage(t, m.Power*orOne(sh.Mods.Damage)*hit*dt)
			if !t.Alive() {
				s.shipDestroyed(t, sh)
			}
		case game.ModRemoteRepair:
			repairShip(t, m.Power*dt)
		case game.ModMiningLaser:
			if sh.CargoCap > 0 {
				sh.Cargo = math.Min(sh.CargoCap, sh.Cargo+m.Power*dt)
			}
		}
	}
}

// repairShip restores shield first, then armor
func repairShip(t *game.Ship, amount float64) {
	amount -= game.RepairShield(t, amount)
	if amount > 0 {
		t.Armor = math.Min(t.MaxArmor, t.Armor+amount)
	}
}
