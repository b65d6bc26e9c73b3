package server

import (
	"github.com/google/uuid"
	"github.com/lab1702/fleetcommand/game"
)

// takeSnapshot captures the sector for one AI tick. Command groups must be
// refreshed before this is called so every agent sees the same groups.
func (s *Server) takeSnapshot() *snapshot {
	living := s.world.Living()
	snap := &snapshot{
		now:    s.world.Now,
		living: living,
		player: s.world.Player,
		groups: s.groups,
		grid:   s.grid,
		focus:  make(map[string]map[uuid.UUID]int),
		aims:   make(map[aim]bool),
	}
	if snap.grid == nil {
		snap.grid = NewSpatialGrid()
	}
	snap.grid.Index(living)

	for _, a := range living {
		if a.Locked != nil {
			snap.aims[aim{a, a.Locked}] = true
		}
		if a.Target != nil {
			snap.aims[aim{a, a.Target}] = true
		}
		if a.Target == nil || !a.Target.Alive() {
			continue
		}
		byTarget := snap.focus[a.Faction]
		if byTarget == nil {
			byTarget = make(map[uuid.UUID]int)
			snap.focus[a.Faction] = byTarget
		}
		byTarget[a.Target.ID]++
	}
	return snap
}

// focusOn counts agent's faction mates that were targeting target when the
// snapshot was taken, excluding agent itself.
func (snap *snapshot) focusOn(agent, target *game.Ship) int {
	n := snap.focus[agent.Faction][target.ID]
	if agent.Target == target && n > 0 {
		n--
	}
	return n
}

// engaging reports whether other was locking or targeting agent when the
// snapshot was taken.
func (snap *snapshot) engaging(other, agent *game.Ship) bool {
	return snap.aims[aim{other, agent}]
}

// mayInitiate applies the stance rule: passive agents only answer aggression.
func (snap *snapshot) mayInitiate(agent, cand *game.Ship) bool {
	return agent.Stance != game.StancePassive || snap.engaging(cand, agent)
}

// group returns the live command group for a faction, or nil.
func (snap *snapshot) group(faction string) *CommandGroup {
	if snap.groups == nil {
		return nil
	}
	return snap.groups[faction]
}

// nearby returns living ships within radius of pos.
func (snap *snapshot) nearby(pos game.Vec, radius float64) []*game.Ship {
	return snap.grid.Nearby(pos, radius)
}
