package server

import (
	"hash/fnv"
	"math"

	"github.com/google/uuid"
	"github.com/lab1702/fleetcommand/game"
)

// Formation is a named arrangement of fleet ships around the player.
type Formation int

const (
	FormationSpread Formation = iota
	FormationVee
	FormationLine
	FormationDiamond
	FormationEchelon
)

var formationNames = map[Formation]string{
	FormationSpread:  "spread",
	FormationVee:     "vee",
	FormationLine:    "line",
	FormationDiamond: "diamond",
	FormationEchelon: "echelon",
}

func (f Formation) String() string {
	if n, ok := formationNames[f]; ok {
		return n
	}
	return "spread"
}

// ParseFormation maps a name to a formation. Unknown names are spread.
func ParseFormation(name string) Formation {
	for f, n := range formationNames {
		if n == name {
			return f
		}
	}
	return FormationSpread
}

// FormationNames lists the formations in declaration order.
func FormationNames() []string {
	return []string{"spread", "vee", "line", "diamond", "echelon"}
}

// diamondSlots is the unit ring of the diamond, repeated outward every four ships.
var diamondSlots = [4]game.Vec{
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
}

// EchelonStep scales the diagonal step between echelon slots.
const EchelonStep = 0.7

// formationOffset is the slot of the idx-th ship in the player's local frame
// (X forward, Y left).
func formationOffset(f Formation, idx int, id uuid.UUID, spacing float64) game.Vec {
	switch f {
	case FormationVee:
		rank := float64(idx/2 + 1)
		side := 1.0
		if idx%2 == 1 {
			side = -1
		}
		return game.Vec{X: -rank * spacing, Y: side * rank * spacing}
	case FormationLine:
		rank := float64(idx/2 + 1)
		side := 1.0
		if idx%2 == 1 {
			side = -1
		}
		return game.Vec{X: 0, Y: side * rank * spacing}
	case FormationDiamond:
		ring := float64(idx/4 + 1)
		slot := diamondSlots[idx%4]
		return game.Vec{X: slot.X * ring * spacing, Y: slot.Y * ring * spacing}
	case FormationEchelon:
		step := float64(idx+1) * spacing * EchelonStep
		return game.Vec{X: -step, Y: -step}
	default:
		return spreadOffset(id, spacing)
	}
}

// spreadOffset scatters a ship somewhere behind the player. The jitter is
// derived from the ship's ID so the slot is stable across recomputation.
func spreadOffset(id uuid.UUID, spacing float64) game.Vec {
	h := fnv.New64a()
	h.Write(id[:])
	sum := h.Sum64()

	angle := math.Pi/2 + float64(sum%1000)/1000*math.Pi
	radius := spacing * (1 + float64((sum>>20)%1000)/1000*2)
	return game.Vec{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
}

// formationBonuses is the single stat each formation improves for ships
// holding their slot.
var formationBonuses = map[Formation]func(*game.Modifiers){
	FormationSpread:  func(m *game.Modifiers) { m.Signature = 0.9 },
	FormationVee:     func(m *game.Modifiers) { m.Damage = 1.1 },
	FormationLine:    func(m *game.Modifiers) { m.Tracking = 1.15 },
	FormationDiamond: func(m *game.Modifiers) { m.ShieldRegen = 1.2 },
	FormationEchelon: func(m *game.Modifiers) { m.Speed = 1.1 },
}

// formationModifiers is a formation's bonus regardless of whether anyone is
// actually in formation.
func formationModifiers(f Formation) game.Modifiers {
	m := game.NoModifiers()
	if apply, ok := formationBonuses[f]; ok {
		apply(&m)
	}
	return m
}

// SetFormation switches formation and recomputes every slot.
func (f *Fleet) SetFormation(name string) {
	f.formation = ParseFormation(name)
	f.RecomputeOffsets()
	f.event(EventFormation, "Formation: "+f.formation.String(), map[string]any{
		"formation": f.formation.String(),
	})
}

// Formation returns the active formation.
func (f *Fleet) Formation() Formation {
	return f.formation
}

// RecomputeOffsets assigns each roster ship its slot in the active formation.
// Calling it again with an unchanged roster gives identical offsets.
func (f *Fleet) RecomputeOffsets() {
	for i, s := range f.roster {
		s.FormationOffset = formationOffset(f.formation, i, s.ID, f.cfg.FormationSpacing)
	}
}

// SlotPosition is where a ship should be to hold its formation slot.
func (f *Fleet) SlotPosition(s *game.Ship) (game.Vec, bool) {
	p := f.world.Player
	if !p.Alive() {
		return game.Vec{}, false
	}
	return game.Offset(p.Pos, game.ToWorld(s.FormationOffset, p.Rotation)), true
}

// InFormation reports whether a following ship is within tolerance of its slot.
func (f *Fleet) InFormation(s *game.Ship) bool {
	if !s.Alive() || s.Order != game.OrderFollowing {
		return false
	}
	slot, ok := f.SlotPosition(s)
	if !ok {
		return false
	}
	return game.Distance(slot, s.Pos) <= f.cfg.FormationTolerance
}

// FormationBonus is the active formation's modifier for a ship in formation,
// or no modifiers otherwise.
func (f *Fleet) FormationBonus(s *game.Ship) game.Modifiers {
	if !f.InFormation(s) {
		return game.NoModifiers()
	}
	return formationModifiers(f.formation)
}
