package game

import "math"

// ApplyDamage applies damage to shields first, then armor, then hull.
// Shield and armor modifiers scale how much damage each layer soaks up.
// Returns the total amount of damage actually applied.
func ApplyDamage(s *Ship, damage float64) float64 {
	if s == nil || damage <= 0 || !s.Alive() {
		return 0
	}

	layers := []struct {
		pool *float64
		mod  float64
	}{
		{&s.Shield, orOne(s.Mods.Shield)},
		{&s.Armor, orOne(s.Mods.Armor)},
		{&s.Hull, 1},
	}

	applied := 0.0
	for _, l := range layers {
		if damage <= 0 {
			break
		}
		// Damage needed to strip this layer completely
		capacity := *l.pool * l.mod
		taken := math.Min(damage, capacity)
		*l.pool -= taken / l.mod
		damage -= taken
		applied += taken
	}

	if s.Hull < 1e-9 {
		s.Hull = 0
	}
	return applied
}

// RepairShield restores shield up to its maximum and returns the amount restored.
func RepairShield(s *Ship, amount float64) float64 {
	if s == nil || amount <= 0 || !s.Alive() {
		return 0
	}
	restored := math.Min(amount, s.MaxShield-s.Shield)
	if restored < 0 {
		return 0
	}
	s.Shield += restored
	return restored
}
