package server

import (
	"testing"

	"github.com/lab1702/fleetcommand/game"
)

func TestSpatialGridNearby(t *testing.T) {
	g := NewSpatialGrid()
	near := &game.Ship{Name: "near", Pos: game.Vec{X: 1000, Y: 1000}}
	seam := &game.Ship{Name: "seam", Pos: game.Vec{X: game.SectorWidth - 500, Y: 1000}}
	far := &game.Ship{Name: "far", Pos: game.Vec{X: 20000, Y: 20000}}
	g.Index([]*game.Ship{near, seam, far})

	got := g.Nearby(game.Vec{X: 500, Y: 1000}, 2000)
	names := map[string]bool{}
	for _, s := range got {
		names[s.Name] = true
	}
	if !names["near"] || !names["seam"] {
		t.Errorf("expected near and seam ships, got %v", names)
	}
	if names["far"] {
		t.Error("far ship returned")
	}
}

func TestSpatialGridHugeRadiusNoDuplicates(t *testing.T) {
	g := NewSpatialGrid()
	ships := []*game.Ship{
		{Pos: game.Vec{X: 100, Y: 100}},
		{Pos: game.Vec{X: 39000, Y: 39000}},
		{Pos: game.Vec{X: 20000, Y: 5000}},
	}
	g.Index(ships)
	got := g.Nearby(game.Vec{X: 0, Y: 0}, 1e6)
	if len(got) != len(ships) {
		t.Errorf("got %d ships, want %d", len(got), len(ships))
	}
}

func TestSpatialGridClear(t *testing.T) {
	g := NewSpatialGrid()
	g.Insert(&game.Ship{Pos: game.Vec{X: 10, Y: 10}})
	g.Clear()
	if got := g.Nearby(game.Vec{X: 10, Y: 10}, 100); len(got) != 0 {
		t.Errorf("grid not cleared, got %d ships", len(got))
	}
}
