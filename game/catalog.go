package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrUnknownClass is returned when a hull class is not in the catalog.
var ErrUnknownClass = errors.New("unknown hull class")

// HullClass holds the stats and default fitting of a hull.
type HullClass struct {
	Name        string
	MaxSpeed    float64
	Accel       float64
	Hull        float64
	Shield      float64
	Armor       float64
	AggroRange  float64
	AttackRange float64
	Aggression  float64
	WarpCapable bool
	CargoCap    float64
	High        []Module
	Mid         []Module
	Low         []Module
}

// Hull class names
const (
	ClassFrigate   = "frigate"
	ClassDestroyer = "destroyer"
	ClassCruiser   = "cruiser"
	ClassLogistics = "logistics"
	ClassCommand   = "command"
	ClassBarge     = "barge"
	ClassAsteroid  = "asteroid"
)

var HullData = map[string]HullClass{
	ClassFrigate: {
		Name: "Frigate", MaxSpeed: 420, Accel: 300,
		Hull: 400, Shield: 300, Armor: 300,
		AggroRange: 3000, AttackRange: 1500, Aggression: 0.8, WarpCapable: true,
		High: []Module{{Name: "125mm Autocannon", Kind: ModWeapon, Range: 1500, Power: 30}},
		Mid:  []Module{{Name: "Warp Disruptor", Kind: ModWarpDisruptor, Range: 2000}},
	},
	ClassDestroyer: {
		Name: "Destroyer", MaxSpeed: 330, Accel: 220,
		Hull: 600, Shield: 500, Armor: 500,
		AggroRange: 3500, AttackRange: 2200, Aggression: 0.7,
		High: []Module{{Name: "Artillery Battery", Kind: ModWeapon, Range: 2200, Power: 50}},
		Mid:  []Module{{Name: "Stasis Webifier", Kind: ModStasisWebifier, Range: 1200}},
	},
	ClassCruiser: {
		Name: "Cruiser", MaxSpeed: 260, Accel: 160,
		Hull: 1200, Shield: 1000, Armor: 1000,
		AggroRange: 4000, AttackRange: 2500, Aggression: 0.6, WarpCapable: true,
		High: []Module{{Name: "Heavy Missile Launcher", Kind: ModWeapon, Range: 2500, Power: 70}},
		Mid: []Module{
			{Name: "Warp Disruptor", Kind: ModWarpDisruptor, Range: 2000},
			{Name: "Stasis Webifier", Kind: ModStasisWebifier, Range: 1200},
		},
	},
	ClassLogistics: {
		Name: "Logistics Cruiser", MaxSpeed: 240, Accel: 150,
		Hull: 900, Shield: 1200, Armor: 700,
		AggroRange: 3500, AttackRange: 2000, Aggression: 0.3, WarpCapable: true,
		High: []Module{{Name: "Remote Shield Booster", Kind: ModRemoteRepair, Range: 2000, Power: 60}},
	},
	ClassCommand: {
		Name: "Command Ship", MaxSpeed: 190, Accel: 110,
		Hull: 2500, Shield: 2000, Armor: 2000,
		AggroRange: 4500, AttackRange: 2500, Aggression: 0.5, WarpCapable: true,
		High: []Module{
			{Name: "Heavy Pulse Laser", Kind: ModWeapon, Range: 2500, Power: 90},
			{Name: "Armored Command Burst", Kind: ModCommandBurstDefense, Power: 1.10},
			{Name: "Skirmish Command Burst", Kind: ModCommandBurstOffense, Power: 1.10},
			{Name: "Shield Harmonizing Link", Kind: ModFleetRepair, Power: 1.15},
		},
	},
	ClassBarge: {
		Name: "Mining Barge", MaxSpeed: 150, Accel: 80,
		Hull: 1500, Shield: 800, Armor: 800,
		AggroRange: 2000, AttackRange: 300, CargoCap: 2000,
		High: []Module{{Name: "Strip Miner", Kind: ModMiningLaser, Range: 300, Power: 12}},
	},
	ClassAsteroid: {
		Name: "Asteroid",
		Hull: 1e6,
	},
}

// NewShip builds a ship of the given hull class at pos.
func NewShip(class, name, faction string, role Role, pos Vec) (*Ship, error) {
	hc, ok := HullData[class]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, class)
	}
	s := &Ship{
		ID:          uuid.New(),
		Name:        name,
		Class:       class,
		Faction:     faction,
		Role:        role,
		Pos:         Wrap(pos),
		Dest:        Wrap(pos),
		MaxSpeed:    hc.MaxSpeed,
		Accel:       hc.Accel,
		Hull:        hc.Hull,
		MaxHull:     hc.Hull,
		Shield:      hc.Shield,
		MaxShield:   hc.Shield,
		Armor:       hc.Armor,
		MaxArmor:    hc.Armor,
		AggroRange:  hc.AggroRange,
		AttackRange: hc.AttackRange,
		Aggression:  hc.Aggression,
		High:        cloneModules(hc.High),
		Mid:         cloneModules(hc.Mid),
		Low:         cloneModules(hc.Low),
		Mods:        NoModifiers(),
		CargoCap:    hc.CargoCap,
		Home:        Wrap(pos),
		HasHome:     true,
	}
	s.Warp.Capable = hc.WarpCapable
	return s, nil
}

// ClassNames lists every hull class a fleet can field.
func ClassNames() []string {
	return []string{ClassFrigate, ClassDestroyer, ClassCruiser, ClassLogistics, ClassCommand, ClassBarge}
}
