package server

import (
	"math/rand"
	"testing"

	"github.com/lab1702/fleetcommand/config"
	"github.com/lab1702/fleetcommand/game"
)

// Test random sources: rollNever fails every chance roll, rollAlways passes it.
func rollNever() *fixedRand  { return &fixedRand{f: 0.99} }
func rollAlways() *fixedRand { return &fixedRand{f: 0} }

// newTestServer builds an empty sector with default tuning and no clients.
func newTestServer(t *testing.T, rng Rand) *Server {
	t.Helper()
	cfg := config.Default()
	world := game.NewWorld("Test")
	s := &Server{
		world:       world,
		cfg:         cfg,
		rng:         rng,
		sched:       NewScheduler(cfg.AI.Interval, cfg.AI.CommanderInterval),
		broadcast:   make(chan ServerMessage, 1024),
		factionPeak: make(map[string]int),
		grid:        NewSpatialGrid(),
	}
	s.fleet = NewFleet(world, cfg.Fleet, rng, s.emit)
	return s
}

// addShip puts a ship of the given class into the test sector.
func addShip(t *testing.T, s *Server, class, faction string, role game.Role, profile string, x, y float64) *game.Ship {
	t.Helper()
	sh, err := game.NewShip(class, faction+"-"+profile, faction, role, game.Vec{X: x, Y: y})
	if err != nil {
		t.Fatalf("NewShip(%s): %v", class, err)
	}
	sh.Profile = profile
	s.world.Add(sh)
	return sh
}

func addPirate(t *testing.T, s *Server, profile string, x, y float64) *game.Ship {
	t.Helper()
	return addShip(t, s, profileClass[profile], game.FactionGuristas, game.RolePirate, profile, x, y)
}

func addPlayer(t *testing.T, s *Server, x, y float64) *game.Ship {
	t.Helper()
	p := addShip(t, s, game.ClassCruiser, game.FactionPlayer, game.RolePlayer, "", x, y)
	p.CargoCap = PlayerHoldSize
	return p
}

// drain empties the broadcast queue and returns what was in it.
func drain(s *Server) []ServerMessage {
	var out []ServerMessage
	for {
		select {
		case m := <-s.broadcast:
			out = append(out, m)
		default:
			return out
		}
	}
}

// eventsOf filters drained messages down to domain events of one kind.
func eventsOf(msgs []ServerMessage, kind string) []Event {
	var out []Event
	for _, m := range msgs {
		if ev, ok := m.Data.(Event); ok && m.Type == MsgTypeEvent && ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

// TestSimulationHarness runs a fully populated sector for a simulated
// minute and checks the invariants that must hold on every frame.
func TestSimulationHarness(t *testing.T) {
	cfg := config.Default()
	cfg.Spawn.Seed = 42
	s := NewServer(cfg, nil)
	s.rng = rand.New(rand.NewSource(42))

	if s.world.Player == nil {
		t.Fatal("populated sector has no player")
	}
	if n := s.world.CountRole(game.RolePirate); n != cfg.Spawn.PiratePacks*cfg.Spawn.PackSize {
		t.Errorf("got %d pirates, want %d", n, cfg.Spawn.PiratePacks*cfg.Spawn.PackSize)
	}

	if _, err := s.fleet.AddShip(game.ClassCruiser, "Escort", "Kira"); err != nil {
		t.Fatalf("AddShip: %v", err)
	}

	dt := cfg.Server.FrameInterval
	for frame := 0; frame < 600; frame++ {
		s.Tick(dt)
		drain(s)

		for _, sh := range s.world.Ships {
			if !sh.AIState.Valid() {
				t.Fatalf("frame %d: %s has invalid state %d", frame, sh.Name, sh.AIState)
			}
			if sh.Hull < 0 {
				t.Fatalf("frame %d: %s has negative hull", frame, sh.Name)
			}
			if sh.Pos.X < 0 || sh.Pos.X >= game.SectorWidth || sh.Pos.Y < 0 || sh.Pos.Y >= game.SectorHeight {
				t.Fatalf("frame %d: %s left the sector at %v", frame, sh.Name, sh.Pos)
			}
		}
	}

	if s.world.Frame != 600 {
		t.Errorf("frame counter = %d, want 600", s.world.Frame)
	}
	if s.world.CountRole(game.RolePirate) > cfg.Spawn.MaxPirates {
		t.Errorf("pirate top-up overshot the cap of %d", cfg.Spawn.MaxPirates)
	}
}
