package game

import (
	"sync"

	"github.com/google/uuid"
)

// World holds the entities of the sector the player is in.
type World struct {
	Mu sync.RWMutex // Made public for access from server package

	Ships  []*Ship
	Player *Ship
	Sector string

	Now   float64 // simulation clock in seconds
	Frame int64
}

// NewWorld creates an empty sector.
func NewWorld(sector string) *World {
	return &World{Sector: sector}
}

// Add puts a ship into the sector.
func (w *World) Add(s *Ship) {
	w.Ships = append(w.Ships, s)
	if s.Role == RolePlayer {
		w.Player = s
	}
}

// Find returns the ship with the given id, or nil.
func (w *World) Find(id uuid.UUID) *Ship {
	for _, s := range w.Ships {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Remove drops a ship from the sector. Returns false if it was not present.
func (w *World) Remove(id uuid.UUID) bool {
	for i, s := range w.Ships {
		if s.ID == id {
			w.Ships = append(w.Ships[:i], w.Ships[i+1:]...)
			return true
		}
	}
	return false
}

// Living returns every ship with hull remaining.
func (w *World) Living() []*Ship {
	out := make([]*Ship, 0, len(w.Ships))
	for _, s := range w.Ships {
		if s.Alive() {
			out = append(out, s)
		}
	}
	return out
}

// Reap removes dead ships, except the player, and returns them.
func (w *World) Reap() []*Ship {
	var dead []*Ship
	kept := w.Ships[:0]
	for _, s := range w.Ships {
		if !s.Alive() && s.Role != RolePlayer {
			dead = append(dead, s)
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(w.Ships); i++ {
		w.Ships[i] = nil
	}
	w.Ships = kept
	return dead
}

// CountRole counts living ships of a role.
func (w *World) CountRole(role Role) int {
	n := 0
	for _, s := range w.Ships {
		if s.Role == role && s.Alive() {
			n++
		}
	}
	return n
}
