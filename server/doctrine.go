package server

import (
	"github.com/lab1702/fleetcommand/game"
)

// Doctrine is a fleet-wide combat philosophy. Exactly one is active.
type Doctrine int

const (
	DoctrineBalanced Doctrine = iota
	DoctrineHitAndRun
	DoctrineSiege
	DoctrineBrawl
	DoctrineShieldWall
)

var doctrineNames = map[Doctrine]string{
	DoctrineBalanced:   "balanced",
	DoctrineHitAndRun:  "hit_and_run",
	DoctrineSiege:      "siege",
	DoctrineBrawl:      "brawl",
	DoctrineShieldWall: "shield_wall",
}

func (d Doctrine) String() string {
	if n, ok := doctrineNames[d]; ok {
		return n
	}
	return "balanced"
}

// ParseDoctrine maps a name to a doctrine. Unknown names are balanced.
func ParseDoctrine(name string) Doctrine {
	for d, n := range doctrineNames {
		if n == name {
			return d
		}
	}
	return DoctrineBalanced
}

// DoctrineNames lists the doctrines in declaration order.
func DoctrineNames() []string {
	return []string{"balanced", "hit_and_run", "siege", "brawl", "shield_wall"}
}

// Modifiers is the doctrine's stat bundle.
func (d Doctrine) Modifiers() game.Modifiers {
	m := game.NoModifiers()
	switch d {
	case DoctrineHitAndRun:
		m.Armor = 0.8
		m.Speed = 1.25
		m.Signature = 0.85
	case DoctrineSiege:
		m.Speed = 0.7
		m.Damage = 1.25
		m.Range = 1.2
	case DoctrineBrawl:
		m.Damage = 1.15
		m.Armor = 1.15
		m.Range = 0.8
	case DoctrineShieldWall:
		m.Shield = 1.3
		m.Speed = 0.9
	}
	return m
}

// SetDoctrine switches the active doctrine.
func (f *Fleet) SetDoctrine(name string) {
	f.doctrine = ParseDoctrine(name)
	f.event(EventDoctrine, "Doctrine: "+f.doctrine.String(), map[string]any{
		"doctrine": f.doctrine.String(),
	})
}

// Doctrine returns the active doctrine.
func (f *Fleet) Doctrine() Doctrine {
	return f.doctrine
}
