package server

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/lab1702/fleetcommand/config"
	"github.com/lab1702/fleetcommand/game"
)

var (
	// ErrRosterFull is returned when the fleet is at its maximum size.
	ErrRosterFull = errors.New("fleet roster is full")
	// ErrUnknownShip is returned when an ID does not name a roster ship.
	ErrUnknownShip = errors.New("no such ship in fleet")
	// ErrInvalidGroup is returned for control group numbers outside 0..NumControlGroups.
	ErrInvalidGroup = errors.New("invalid control group")
)

// Fleet is the player's own ships: roster, control groups, pilots,
// formation, doctrine and flagship. Callers hold the world lock.
type Fleet struct {
	world *game.World
	cfg   config.FleetConfig
	rng   Rand
	emit  emitter

	roster    []*game.Ship
	pilots    []*game.Pilot
	formation Formation
	doctrine  Doctrine
	flagship  uuid.UUID
	credits   float64
}

// NewFleet creates an empty fleet for the world's player.
func NewFleet(world *game.World, cfg config.FleetConfig, rng Rand, emit emitter) *Fleet {
	return &Fleet{
		world:     world,
		cfg:       cfg,
		rng:       rng,
		emit:      emit,
		formation: ParseFormation(cfg.Formation),
		doctrine:  ParseDoctrine(cfg.Doctrine),
		credits:   cfg.StartingCredits,
	}
}

// SetConfig applies reloaded fleet settings. Formation and doctrine are
// player choices and are left alone.
func (f *Fleet) SetConfig(cfg config.FleetConfig) {
	f.cfg = cfg
	f.RecomputeOffsets()
}

func (f *Fleet) event(kind, text string, data map[string]any) {
	if f.emit == nil {
		return
	}
	f.emit(ServerMessage{Type: MsgTypeEvent, Data: Event{Kind: kind, Text: text, Data: data}})
}

func (f *Fleet) notice(level, text string) {
	if f.emit == nil {
		return
	}
	f.emit(ServerMessage{Type: MsgTypeNotice, Data: Notice{Level: level, Text: text}})
}

// Ships returns the roster in slot order.
func (f *Fleet) Ships() []*game.Ship {
	return f.roster
}

// ship finds a roster ship by ID.
func (f *Fleet) ship(id uuid.UUID) *game.Ship {
	for _, s := range f.roster {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// AddShip buys a hull of the given class and launches it near the player.
// If pilot is not empty the named pilot is assigned to it.
func (f *Fleet) AddShip(class, name, pilot string) (*game.Ship, error) {
	if len(f.roster) >= f.cfg.MaxShips {
		f.notice("warning", fmt.Sprintf("Fleet is at its limit of %d ships", f.cfg.MaxShips))
		return nil, ErrRosterFull
	}
	p := f.world.Player
	if p == nil {
		return nil, errors.New("no player in sector")
	}
	if name == "" {
		name = fmt.Sprintf("%s %d", game.HullData[class].Name, len(f.roster)+1)
	}

	pos := game.PointAt(p.Pos, f.rng.Float64()*2*math.Pi, f.rng.Float64()*f.cfg.SpawnRadius)
	s, err := game.NewShip(class, name, game.FactionPlayer, game.RoleFleet, pos)
	if err != nil {
		return nil, fmt.Errorf("adding %s: %w", name, err)
	}
	s.HasHome = false
	s.Order = game.OrderFollowing

	f.world.Add(s)
	f.roster = append(f.roster, s)
	if pilot != "" {
		f.assignPilot(s, pilot)
	}
	f.RecomputeOffsets()

	log.Info("fleet ship added", "ship", s.Name, "class", s.Class)
	f.event(EventShipAdded, s.Name+" joined the fleet", map[string]any{
		"id":    s.ID.String(),
		"ship":  s.Name,
		"class": s.Class,
	})
	return s, nil
}

// RemoveShip takes a ship out of the fleet and the sector, releasing its
// control group and pilot.
func (f *Fleet) RemoveShip(id uuid.UUID) error {
	s := f.ship(id)
	if s == nil {
		return fmt.Errorf("removing %s: %w", id, ErrUnknownShip)
	}
	f.drop(s)
	f.world.Remove(id)
	f.RecomputeOffsets()
	f.event(EventShipRemoved, s.Name+" left the fleet", map[string]any{
		"id":   s.ID.String(),
		"ship": s.Name,
	})
	return nil
}

// drop removes s from the roster and releases everything attached to it.
func (f *Fleet) drop(s *game.Ship) {
	for i, r := range f.roster {
		if r == s {
			f.roster = append(f.roster[:i], f.roster[i+1:]...)
			break
		}
	}
	s.Group = 0
	s.DeactivateWeapons()
	if s.Pilot != nil {
		s.Pilot.Ship = uuid.Nil
		s.Pilot = nil
	}
	if f.flagship == s.ID {
		f.flagship = uuid.Nil
	}
}

// Prune drops destroyed ships from the roster. Runs every frame.
func (f *Fleet) Prune() {
	var lost []*game.Ship
	for _, s := range f.roster {
		if !s.Alive() {
			lost = append(lost, s)
		}
	}
	if len(lost) == 0 {
		return
	}
	for _, s := range lost {
		pilot := ""
		if s.Pilot != nil {
			pilot = s.Pilot.Name
		}
		f.drop(s)
		log.Info("fleet ship lost", "ship", s.Name, "pilot", pilot)
		f.event(EventShipLost, s.Name+" was destroyed", map[string]any{
			"id":    s.ID.String(),
			"ship":  s.Name,
			"pilot": pilot,
		})
	}
	f.RecomputeOffsets()
}

// AssignPilot puts the named pilot in a ship, hiring them if they are new.
// The pilot leaves any ship they were flying.
func (f *Fleet) AssignPilot(id uuid.UUID, name string) error {
	s := f.ship(id)
	if s == nil {
		return fmt.Errorf("assigning pilot to %s: %w", id, ErrUnknownShip)
	}
	if name == "" {
		if s.Pilot != nil {
			s.Pilot.Ship = uuid.Nil
			s.Pilot = nil
		}
		return nil
	}
	f.assignPilot(s, name)
	return nil
}

func (f *Fleet) assignPilot(s *game.Ship, name string) {
	var p *game.Pilot
	for _, existing := range f.pilots {
		if existing.Name == name {
			p = existing
			break
		}
	}
	if p == nil {
		p = &game.Pilot{Name: name, Skill: 0.5 + f.rng.Float64()*0.5}
		f.pilots = append(f.pilots, p)
	}
	if prev := f.ship(p.Ship); prev != nil && prev != s {
		prev.Pilot = nil
	}
	if s.Pilot != nil && s.Pilot != p {
		s.Pilot.Ship = uuid.Nil
	}
	p.Ship = s.ID
	s.Pilot = p
}

// Pilots lists every pilot the fleet has hired, flying or not.
func (f *Fleet) Pilots() []*game.Pilot {
	return f.pilots
}

// AssignToGroup moves a ship into control group 1..NumControlGroups. Group 0
// takes it out of any group. A ship is only ever in one group.
func (f *Fleet) AssignToGroup(id uuid.UUID, group int) error {
	if group < 0 || group > NumControlGroups {
		return fmt.Errorf("group %d: %w", group, ErrInvalidGroup)
	}
	s := f.ship(id)
	if s == nil {
		return fmt.Errorf("grouping %s: %w", id, ErrUnknownShip)
	}
	s.Group = group
	return nil
}

// GroupMembers lists the ships in a control group.
func (f *Fleet) GroupMembers(group int) []*game.Ship {
	var out []*game.Ship
	if group < 1 || group > NumControlGroups {
		return out
	}
	for _, s := range f.roster {
		if s.Group == group {
			out = append(out, s)
		}
	}
	return out
}

// CommandGroup gives every ship in a control group the same order.
func (f *Fleet) CommandGroup(group int, order game.FleetOrder, target *game.Ship) error {
	if group < 1 || group > NumControlGroups {
		return fmt.Errorf("group %d: %w", group, ErrInvalidGroup)
	}
	for _, s := range f.GroupMembers(group) {
		f.command(s, order, target)
	}
	return nil
}

// CommandAll gives every roster ship the same order.
func (f *Fleet) CommandAll(order game.FleetOrder, target *game.Ship) {
	for _, s := range f.roster {
		f.command(s, order, target)
	}
}

// CommandShip gives a single ship an order.
func (f *Fleet) CommandShip(id uuid.UUID, order game.FleetOrder, target *game.Ship) error {
	s := f.ship(id)
	if s == nil {
		return fmt.Errorf("commanding %s: %w", id, ErrUnknownShip)
	}
	f.command(s, order, target)
	return nil
}

// command applies an order, downgrading it to following when the ship
// cannot carry it out.
func (f *Fleet) command(s *game.Ship, order game.FleetOrder, target *game.Ship) {
	if !f.capable(s, order, target) {
		if DebugAI {
			log.Debug("fleet order downgraded", "ship", s.Name, "order", order)
		}
		order, target = game.OrderFollowing, nil
	}
	if order != game.OrderAttacking && order != game.OrderOrbiting {
		target = nil
	}
	if s.Order != order {
		s.DeactivateWeapons()
		s.Locked = nil
	}
	s.Order = order
	s.OrderTarget = target
}

// capable reports whether a ship can carry out an order.
func (f *Fleet) capable(s *game.Ship, order game.FleetOrder, target *game.Ship) bool {
	if order == game.OrderFollowing {
		return true
	}
	if s.Pilot == nil {
		return false
	}
	switch order {
	case game.OrderAttacking:
		return s.HasModule(game.ModWeapon) && target.Alive() && hostile(s, target)
	case game.OrderDefending:
		return s.HasModule(game.ModWeapon)
	case game.OrderMining:
		return s.HasModule(game.ModMiningLaser)
	case game.OrderOrbiting:
		return target == nil || target.Alive()
	}
	return true
}

// DispatchScout sends a ship to look around a point. It reports back with
// an event on arrival and falls back into formation.
func (f *Fleet) DispatchScout(id uuid.UUID, point game.Vec) error {
	s := f.ship(id)
	if s == nil {
		return fmt.Errorf("scouting with %s: %w", id, ErrUnknownShip)
	}
	f.command(s, game.OrderScouting, nil)
	if s.Order != game.OrderScouting {
		f.notice("warning", s.Name+" has no pilot to fly a scouting run")
		return nil
	}
	s.ScoutPoint = game.Wrap(point)
	f.event(EventScoutDispatch, s.Name+" is scouting ahead", map[string]any{
		"ship": s.Name,
		"x":    s.ScoutPoint.X,
		"y":    s.ScoutPoint.Y,
	})
	return nil
}

// scoutReport counts hostiles around the scout point and emits the report.
func (f *Fleet) scoutReport(s *game.Ship, snap *snapshot) {
	counts := make(map[string]int)
	total := 0
	for _, o := range snap.nearby(s.ScoutPoint, f.cfg.ScoutRadius) {
		if hostile(s, o) {
			counts[o.Faction]++
			total++
		}
	}
	f.event(EventScoutReport, fmt.Sprintf("%s reports %d hostiles", s.Name, total), map[string]any{
		"ship":     s.Name,
		"hostiles": total,
		"factions": counts,
		"x":        s.ScoutPoint.X,
		"y":        s.ScoutPoint.Y,
	})
}

// TransferCargo moves a ship's ore into the player's hold.
func (f *Fleet) TransferCargo(id uuid.UUID) (float64, error) {
	s := f.ship(id)
	if s == nil {
		return 0, fmt.Errorf("transferring from %s: %w", id, ErrUnknownShip)
	}
	p := f.world.Player
	if !p.Alive() {
		return 0, errors.New("player ship is not available")
	}
	amount := s.Cargo
	if p.CargoCap > 0 && p.Cargo+amount > p.CargoCap {
		amount = p.CargoCap - p.Cargo
	}
	if amount <= 0 {
		return 0, nil
	}
	s.Cargo -= amount
	p.Cargo += amount
	f.event(EventCargoTransfer, fmt.Sprintf("%s transferred %.0f ore", s.Name, amount), map[string]any{
		"ship":   s.Name,
		"amount": amount,
	})
	return amount, nil
}

// SellOre sells everything in the player's hold at the configured price.
func (f *Fleet) SellOre() float64 {
	p := f.world.Player
	if p == nil || p.Cargo <= 0 {
		return 0
	}
	earned := p.Cargo * f.cfg.OrePrice
	f.event(EventOreSold, fmt.Sprintf("Sold %.0f ore for %.0f ISK", p.Cargo, earned), map[string]any{
		"amount": p.Cargo,
		"isk":    earned,
	})
	p.Cargo = 0
	f.credits += earned
	return earned
}

// Credits is the fleet's wallet.
func (f *Fleet) Credits() float64 {
	return f.credits
}

// GateTransition moves the fleet with the player into a new sector.
func (f *Fleet) GateTransition(sector string) {
	p := f.world.Player
	f.world.Sector = sector
	for _, s := range f.roster {
		if !s.Alive() || p == nil {
			continue
		}
		s.Pos = game.PointAt(p.Pos, f.rng.Float64()*2*math.Pi, f.rng.Float64()*f.cfg.SpawnRadius)
		s.Vel = game.Vec{}
		s.Stop()
		s.Warp.State = game.WarpIdle
		s.DeactivateWeapons()
		s.Locked = nil
		// Targets were left behind in the old sector
		if s.Order == game.OrderAttacking {
			f.command(s, game.OrderFollowing, nil)
		}
		s.OrderTarget = nil
	}
	log.Info("gate transition", "sector", sector, "ships", len(f.roster))
	f.event(EventGate, "Jumped to "+sector, map[string]any{"sector": sector})
}

// FleetShipSummary is the read-only view of one roster ship.
type FleetShipSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Class       string  `json:"class"`
	Pilot       string  `json:"pilot,omitempty"`
	Order       string  `json:"order"`
	Group       int     `json:"group"`
	Hull        float64 `json:"hull"`
	Shield      float64 `json:"shield"`
	Armor       float64 `json:"armor"`
	Cargo       float64 `json:"cargo"`
	InFormation bool    `json:"inFormation"`
	Flagship    bool    `json:"flagship"`
}

// FleetStatus is the full fleet view sent to clients.
type FleetStatus struct {
	Sector    string             `json:"sector"`
	Formation string             `json:"formation"`
	Doctrine  string             `json:"doctrine"`
	Flagship  string             `json:"flagship,omitempty"`
	Credits   float64            `json:"credits"`
	Hold      float64            `json:"hold"`
	Ships     []FleetShipSummary `json:"ships"`
}

// Summaries lists every roster ship.
func (f *Fleet) Summaries() []FleetShipSummary {
	out := make([]FleetShipSummary, 0, len(f.roster))
	for _, s := range f.roster {
		sum := FleetShipSummary{
			ID:          s.ID.String(),
			Name:        s.Name,
			Class:       s.Class,
			Order:       s.Order.String(),
			Group:       s.Group,
			Hull:        percent(s.Hull, s.MaxHull),
			Shield:      percent(s.Shield, s.MaxShield),
			Armor:       percent(s.Armor, s.MaxArmor),
			Cargo:       s.Cargo,
			InFormation: f.InFormation(s),
			Flagship:    s.ID == f.flagship,
		}
		if s.Pilot != nil {
			sum.Pilot = s.Pilot.Name
		}
		out = append(out, sum)
	}
	return out
}

// Status is the fleet summary plus formation, doctrine, flagship and wallet.
func (f *Fleet) Status() FleetStatus {
	st := FleetStatus{
		Sector:    f.world.Sector,
		Formation: f.formation.String(),
		Doctrine:  f.doctrine.String(),
		Credits:   f.credits,
		Ships:     f.Summaries(),
	}
	if fs := f.Flagship(); fs != nil {
		st.Flagship = fs.Name
	}
	if p := f.world.Player; p != nil {
		st.Hold = p.Cargo
	}
	return st
}

func percent(cur, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return 100 * cur / max
}
