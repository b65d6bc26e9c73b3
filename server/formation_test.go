package server

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/lab1702/fleetcommand/game"
)

func TestParseFormation(t *testing.T) {
	for _, name := range FormationNames() {
		if got := ParseFormation(name).String(); got != name {
			t.Errorf("ParseFormation(%q) = %q", name, got)
		}
	}
	if got := ParseFormation("wedge"); got != FormationSpread {
		t.Errorf("unknown formation parsed as %s, want spread", got)
	}
}

func TestFormationOffsets(t *testing.T) {
	const sp = 100.0
	id := uuid.New()
	tests := []struct {
		f    Formation
		idx  int
		want game.Vec
	}{
		{FormationVee, 0, game.Vec{X: -100, Y: 100}},
		{FormationVee, 1, game.Vec{X: -100, Y: -100}},
		{FormationVee, 2, game.Vec{X: -200, Y: 200}},
		{FormationLine, 0, game.Vec{X: 0, Y: 100}},
		{FormationLine, 3, game.Vec{X: 0, Y: -200}},
		{FormationDiamond, 0, game.Vec{X: 100, Y: 0}},
		{FormationDiamond, 3, game.Vec{X: -100, Y: 0}},
		{FormationDiamond, 5, game.Vec{X: 0, Y: 200}},
		{FormationEchelon, 0, game.Vec{X: -70, Y: -70}},
		{FormationEchelon, 2, game.Vec{X: -210, Y: -210}},
	}
	for _, tt := range tests {
		got := formationOffset(tt.f, tt.idx, id, sp)
		if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
			t.Errorf("%s[%d] = %v, want %v", tt.f, tt.idx, got, tt.want)
		}
	}
}

func TestSpreadOffsetStaysBehind(t *testing.T) {
	const sp = 250.0
	for i := 0; i < 50; i++ {
		id := uuid.New()
		off := spreadOffset(id, sp)
		if off.X > 1e-9 {
			t.Errorf("spread slot %v is ahead of the player", off)
		}
		if r := math.Hypot(off.X, off.Y); r < sp-1e-9 || r > 3*sp+1e-9 {
			t.Errorf("spread radius %.1f outside [%v, %v]", r, sp, 3*sp)
		}
		if spreadOffset(id, sp) != off {
			t.Error("spread slot not stable for the same ship")
		}
	}
}

func TestRecomputeOffsetsIdempotent(t *testing.T) {
	s, _ := newFleetServer(t)
	for i := 0; i < 5; i++ {
		mustAdd(t, s, game.ClassFrigate, "", "")
	}
	for _, name := range FormationNames() {
		s.fleet.SetFormation(name)
		before := make([]game.Vec, 0, 5)
		for _, sh := range s.fleet.Ships() {
			before = append(before, sh.FormationOffset)
		}
		s.fleet.RecomputeOffsets()
		for i, sh := range s.fleet.Ships() {
			if sh.FormationOffset != before[i] {
				t.Errorf("%s: slot %d moved from %v to %v", name, i, before[i], sh.FormationOffset)
			}
		}
	}
}

func TestSetFormationEmitsEvent(t *testing.T) {
	s, _ := newFleetServer(t)
	s.fleet.SetFormation("diamond")
	if s.fleet.Formation() != FormationDiamond {
		t.Errorf("formation = %s", s.fleet.Formation())
	}
	evs := eventsOf(drain(s), EventFormation)
	if len(evs) != 1 || evs[0].Data["formation"] != "diamond" {
		t.Errorf("formation events = %+v", evs)
	}
}

func TestSlotFollowsPlayerHeading(t *testing.T) {
	s, p := newFleetServer(t)
	s.fleet.SetFormation("line")
	sh := mustAdd(t, s, game.ClassFrigate, "", "")

	p.Rotation = math.Pi / 2 // facing +Y, so "left" is -X
	slot, ok := s.fleet.SlotPosition(sh)
	if !ok {
		t.Fatal("no slot with a live player")
	}
	want := game.Vec{X: p.Pos.X - s.cfg.Fleet.FormationSpacing, Y: p.Pos.Y}
	if game.Distance(slot, want) > 1e-6 {
		t.Errorf("slot = %v, want %v", slot, want)
	}

	p.Hull = 0
	if _, ok := s.fleet.SlotPosition(sh); ok {
		t.Error("slot reported for a dead player")
	}
}

func TestInFormation(t *testing.T) {
	s, _ := newFleetServer(t)
	s.fleet.SetFormation("vee")
	sh := mustAdd(t, s, game.ClassFrigate, "", "Kira")
	slot, _ := s.fleet.SlotPosition(sh)
	tol := s.cfg.Fleet.FormationTolerance

	sh.Pos = slot
	if !s.fleet.InFormation(sh) {
		t.Error("ship on its slot not in formation")
	}
	if got := s.fleet.FormationBonus(sh); got.Damage != 1.1 {
		t.Errorf("vee bonus damage = %v, want 1.1", got.Damage)
	}

	sh.Pos = game.Vec{X: slot.X, Y: slot.Y + tol + 1}
	if s.fleet.InFormation(sh) {
		t.Error("ship past tolerance counted as in formation")
	}
	if !s.fleet.FormationBonus(sh).IsIdentity() {
		t.Error("bonus applied out of formation")
	}

	sh.Pos = slot
	s.fleet.CommandShip(sh.ID, game.OrderHolding, nil)
	if s.fleet.InFormation(sh) {
		t.Error("ship on another order counted as in formation")
	}
}

func TestFormationBonuses(t *testing.T) {
	tests := []struct {
		f     Formation
		check func(game.Modifiers) bool
	}{
		{FormationSpread, func(m game.Modifiers) bool { return m.Signature == 0.9 }},
		{FormationVee, func(m game.Modifiers) bool { return m.Damage == 1.1 }},
		{FormationLine, func(m game.Modifiers) bool { return m.Tracking == 1.15 }},
		{FormationDiamond, func(m game.Modifiers) bool { return m.ShieldRegen == 1.2 }},
		{FormationEchelon, func(m game.Modifiers) bool { return m.Speed == 1.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			if m := formationModifiers(tt.f); !tt.check(m) {
				t.Errorf("bonus = %+v", m)
			}
		})
	}
}
