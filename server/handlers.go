package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lab1702/fleetcommand/game"
	"gonum.org/v1/gonum/spatial/r2"
)

// MoveLookahead is how far ahead of the player a move command aims.
const MoveLookahead = 5000.0

// handleMove steers the player's ship
func (c *Client) handleMove(data json.RawMessage) error {
	var moveData MoveData
	if err := json.Unmarshal(data, &moveData); err != nil {
		return fmt.Errorf("bad move: %w", err)
	}

	s := c.server
	s.world.Mu.Lock()
	defer s.world.Mu.Unlock()

	p := s.world.Player
	if !p.Alive() {
		return errors.New("your ship has been destroyed")
	}
	dir := validateDirection(moveData.Dir)
	p.MoveTo(game.PointAt(p.Pos, dir, MoveLookahead), p.EffectiveMaxSpeed()*clampUnit(moveData.Speed))
	return nil
}

// handleAddShip buys a ship for the fleet
func (c *Client) handleAddShip(data json.RawMessage) error {
	var req AddShipData
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("bad add_ship: %w", err)
	}
	if !validateClass(req.Class) {
		return fmt.Errorf("%w: %q", game.ErrUnknownClass, req.Class)
	}

	s := c.server
	s.world.Mu.Lock()
	defer s.world.Mu.Unlock()

	_, err := s.fleet.AddShip(req.Class, sanitizeName(req.Name), sanitizeName(req.Pilot))
	if errors.Is(err, ErrRosterFull) {
		// The fleet already sent a notice
		return nil
	}
	return err
}

// handleRemoveShip removes a ship from the fleet
func (c *Client) handleRemoveShip(data json.RawMessage) error {
	var ref ShipRef
	if err := json.Unmarshal(data, &ref); err != nil {
		return fmt.Errorf("bad remove_ship: %w", err)
	}
	id, err := parseShipID(ref.Ship)
	if err != nil {
		return err
	}

	s := c.server
	s.world.Mu.Lock()
	defer s.world.Mu.Unlock()
	return s.fleet.RemoveShip(id)
}

// handleCommand orders one ship, a control group or the whole fleet
func (c *Client) handleCommand(data json.RawMessage) error {
	var cmd CommandData
	if err := json.Unmarshal(data, &cmd); err != nil {
		return fmt.Errorf("bad command: %w", err)
	}
	order := game.ParseFleetOrder(cmd.Order)

	s := c.server
	s.world.Mu.Lock()
	defer s.world.Mu.Unlock()

	var target *game.Ship
	if cmd.Target != "" {
		tid, err := parseShipID(cmd.Target)
		if err != nil {
			return err
		}
		target = s.world.Find(tid)
	}

	switch {
	case cmd.Ship != "":
		id, err := parseShipID(cmd.Ship)
		if err != nil {
			return err
		}
		return s.fleet.CommandShip(id, order, target)
	case cmd.Group != 0:
		return s.fleet.CommandGroup(cmd.Group, order, target)
	default:
		s.fleet.CommandAll(order, target)
		return nil
	}
}

// handleAssignGroup moves a ship into a control group
func (c *Client) handleAssignGroup(data json.RawMessage) error {
	var req AssignGroupData
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("bad assign_group: %w", err)
	}
	id, err := parseShipID(req.Ship)
	if err != nil {
		return err
	}

	s := c.server
	s.world.Mu.Lock()
	defer s.world.Mu.Unlock()
	return s.fleet.AssignToGroup(id, req.Group)
}

// handleFormation switches the fleet formation
func (c *Client) handleFormation(data json.RawMessage) error {
	var req NameData
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("bad formation: %w", err)
	}
	if err := validateChoice("formation", req.Name, FormationNames()); err != nil {
		return err
	}

	s := c.server
	s.world.Mu.Lock()
	defer s.world.Mu.Unlock()
	s.fleet.SetFormation(req.Name)
	return nil
}

// handleDoctrine switches the fleet doctrine
func (c *Client) handleDoctrine(data json.RawMessage) error {
	var req NameData
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("bad doctrine: %w", err)
	}
	if err := validateChoice("doctrine", req.Name, DoctrineNames()); err != nil {
		return err
	}

	s := c.server
	s.world.Mu.Lock()
	defer s.world.Mu.Unlock()
	s.fleet.SetDoctrine(req.Name)
	return nil
}

// handleFlagship designates the flagship. An empty ship clears it.
func (c *Client) handleFlagship(data json.RawMessage) error {
	var ref ShipRef
	if err := json.Unmarshal(data, &ref); err != nil {
		return fmt.Errorf("bad flagship: %w", err)
	}

	s := c.server
	s.world.Mu.Lock()
	defer s.world.Mu.Unlock()

	if ref.Ship == "" {
		return s.fleet.SetFlagship(uuid.Nil)
	}
	id, err := parseShipID(ref.Ship)
	if err != nil {
		return err
	}
	return s.fleet.SetFlagship(id)
}

// handlePilot assigns a pilot to a ship
func (c *Client) handlePilot(data json.RawMessage) error {
	var req PilotData
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("bad pilot: %w", err)
	}
	id, err := parseShipID(req.Ship)
	if err != nil {
		return err
	}

	s := c.server
	s.world.Mu.Lock()
	defer s.world.Mu.Unlock()
	return s.fleet.AssignPilot(id, sanitizeName(req.Pilot))
}

// handleScout sends a ship on a scouting run
func (c *Client) handleScout(data json.RawMessage) error {
	var req ScoutData
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("bad scout: %w", err)
	}
	id, err := parseShipID(req.Ship)
	if err != nil {
		return err
	}

	s := c.server
	s.world.Mu.Lock()
	defer s.world.Mu.Unlock()
	return s.fleet.DispatchScout(id, r2.Vec{X: req.X, Y: req.Y})
}

// handleTransferCargo moves a ship's ore into the player's hold
func (c *Client) handleTransferCargo(data json.RawMessage) error {
	var ref ShipRef
	if err := json.Unmarshal(data, &ref); err != nil {
		return fmt.Errorf("bad transfer_cargo: %w", err)
	}
	id, err := parseShipID(ref.Ship)
	if err != nil {
		return err
	}

	s := c.server
	s.world.Mu.Lock()
	defer s.world.Mu.Unlock()
	_, err = s.fleet.TransferCargo(id)
	return err
}

// handleSellOre sells the player's hold
func (c *Client) handleSellOre(data json.RawMessage) error {
	s := c.server
	s.world.Mu.Lock()
	defer s.world.Mu.Unlock()
	if s.fleet.SellOre() == 0 {
		s.emitNotice("info", "Nothing to sell")
	}
	return nil
}

// handleGate jumps the player and the fleet to another sector
func (c *Client) handleGate(data json.RawMessage) error {
	var req GateData
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("bad gate: %w", err)
	}
	sector := sanitizeName(req.Sector)
	if sector == "" {
		return errors.New("gate needs a sector name")
	}

	s := c.server
	s.world.Mu.Lock()
	defer s.world.Mu.Unlock()
	s.gateTo(sector)
	return nil
}

// gateTo replaces the sector's population and brings the fleet along.
// Caller holds world.Mu.
func (s *Server) gateTo(sector string) {
	keep := map[*game.Ship]bool{}
	if p := s.world.Player; p != nil {
		keep[p] = true
	}
	for _, sh := range s.fleet.Ships() {
		keep[sh] = true
	}
	kept := s.world.Ships[:0]
	for _, sh := range s.world.Ships {
		if keep[sh] {
			kept = append(kept, sh)
		}
	}
	s.world.Ships = kept

	s.groups = nil
	s.factionPeak = make(map[string]int)
	s.fleet.GateTransition(sector)
	s.populateSector()
}
