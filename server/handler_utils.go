package server

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/lab1702/fleetcommand/game"
)

// Handler data structures

// MoveData steers the player's ship
type MoveData struct {
	Dir   float64 `json:"dir"`   // Direction in radians
	Speed float64 `json:"speed"` // Fraction of max speed, 0..1
}

// AddShipData buys a ship for the fleet
type AddShipData struct {
	Class string `json:"class"`
	Name  string `json:"name"`
	Pilot string `json:"pilot,omitempty"`
}

// ShipRef names one fleet ship
type ShipRef struct {
	Ship string `json:"ship"`
}

// CommandData orders a ship, a control group or the whole fleet.
// Group 0 with no ship means every ship.
type CommandData struct {
	Order  string `json:"order"`
	Ship   string `json:"ship,omitempty"`
	Group  int    `json:"group,omitempty"`
	Target string `json:"target,omitempty"`
}

// AssignGroupData moves a ship into a control group
type AssignGroupData struct {
	Ship  string `json:"ship"`
	Group int    `json:"group"`
}

// NameData carries a formation or doctrine name
type NameData struct {
	Name string `json:"name"`
}

// PilotData assigns a pilot to a ship
type PilotData struct {
	Ship  string `json:"ship"`
	Pilot string `json:"pilot"`
}

// ScoutData sends a ship to look at a point
type ScoutData struct {
	Ship string  `json:"ship"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// GateData moves the player to another sector
type GateData struct {
	Sector string `json:"sector"`
}

// Utility functions

// sanitizeName keeps letters, digits, spaces and dashes and limits the length
func sanitizeName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == ' ' || r == '-' {
			return r
		}
		return -1
	}, name)
	cleaned = strings.TrimSpace(cleaned)

	const maxNameLength = 24
	if len(cleaned) > maxNameLength {
		cleaned = cleaned[:maxNameLength]
	}
	return cleaned
}

// validateDirection ensures direction is within valid range [0, 2*pi]
func validateDirection(dir float64) float64 {
	if math.IsNaN(dir) || math.IsInf(dir, 0) {
		return 0
	}
	return game.NormalizeAngle(dir)
}

// validateClass ensures the hull class can be bought
func validateClass(class string) bool {
	return oneOf(class, game.ClassNames())
}

// validateChoice checks a formation or doctrine name against the known options
func validateChoice(kind, name string, options []string) error {
	if !oneOf(name, options) {
		return fmt.Errorf("unknown %s %q, want one of %s", kind, name, strings.Join(options, ", "))
	}
	return nil
}

func oneOf(v string, options []string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

// parseShipID parses a ship ID sent by a client
func parseShipID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid ship id %q: %w", raw, err)
	}
	return id, nil
}

// clampUnit limits a client-supplied fraction to 0..1
func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 1)
}
