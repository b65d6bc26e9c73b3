package server

import (
	"math"

	"github.com/lab1702/fleetcommand/game"
)

// SpatialGrid provides O(1) average case lookup for nearby ships
// using a grid-based spatial hash over the wrapped sector. This keeps
// target scans from walking the whole population for every agent.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]*game.Ship
}

// GridCellSize is the size of each grid cell in sector units.
// Roughly the largest aggro range so most queries touch a 3x3 block.
const GridCellSize = 5000.0

// NewSpatialGrid creates a new spatial grid for the sector
func NewSpatialGrid() *SpatialGrid {
	cols := int(math.Ceil(game.SectorWidth / GridCellSize))
	rows := int(math.Ceil(game.SectorHeight / GridCellSize))

	cells := make([][]*game.Ship, cols*rows)
	for i := range cells {
		cells[i] = make([]*game.Ship, 0, 4)
	}

	return &SpatialGrid{
		cellSize: GridCellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear resets the grid for a new tick
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *SpatialGrid) cell(p game.Vec) (col, row int) {
	p = game.Wrap(p)
	col = int(p.X / g.cellSize)
	row = int(p.Y / g.cellSize)
	if col >= g.cols {
		col = g.cols - 1
	}
	if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// Insert adds a ship to the grid
func (g *SpatialGrid) Insert(s *game.Ship) {
	col, row := g.cell(s.Pos)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], s)
}

// Index populates the grid with the given ships
func (g *SpatialGrid) Index(ships []*game.Ship) {
	g.Clear()
	for _, s := range ships {
		g.Insert(s)
	}
}

// Nearby returns ships within radius of pos, measured across the wrap.
// Results are in insertion order within each cell.
func (g *SpatialGrid) Nearby(pos game.Vec, radius float64) []*game.Ship {
	col, row := g.cell(pos)
	reach := int(math.Ceil(radius / g.cellSize))

	// Do not visit the same column or row twice when the reach covers the sector
	spanC := min(2*reach+1, g.cols)
	spanR := min(2*reach+1, g.rows)

	var result []*game.Ship
	for dr := 0; dr < spanR; dr++ {
		r := ((row-reach+dr)%g.rows + g.rows) % g.rows
		for dc := 0; dc < spanC; dc++ {
			c := ((col-reach+dc)%g.cols + g.cols) % g.cols
			for _, s := range g.cells[r*g.cols+c] {
				if game.Distance(pos, s.Pos) <= radius {
					result = append(result, s)
				}
			}
		}
	}
	return result
}
