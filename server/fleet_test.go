package server

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lab1702/fleetcommand/game"
)

// newFleetServer is a test sector with the player at its centre.
func newFleetServer(t *testing.T) (*Server, *game.Ship) {
	t.Helper()
	s := newTestServer(t, rollNever())
	p := addPlayer(t, s, 20000, 20000)
	return s, p
}

func mustAdd(t *testing.T, s *Server, class, name, pilot string) *game.Ship {
	t.Helper()
	sh, err := s.fleet.AddShip(class, name, pilot)
	if err != nil {
		t.Fatalf("AddShip(%s): %v", class, err)
	}
	return sh
}

func TestAddShip(t *testing.T) {
	s, p := newFleetServer(t)

	sh := mustAdd(t, s, game.ClassCruiser, "Vanguard", "Kira")

	if sh.Role != game.RoleFleet || sh.Faction != game.FactionPlayer {
		t.Errorf("got role %s faction %s", sh.Role, sh.Faction)
	}
	if sh.Order != game.OrderFollowing {
		t.Errorf("new ship order = %s, want following", sh.Order)
	}
	if d := sh.DistanceTo(p); d > s.cfg.Fleet.SpawnRadius {
		t.Errorf("launched %.0f from the player, want within %v", d, s.cfg.Fleet.SpawnRadius)
	}
	if sh.Pilot == nil || sh.Pilot.Name != "Kira" || sh.Pilot.Ship != sh.ID {
		t.Errorf("pilot not assigned: %+v", sh.Pilot)
	}
	if s.world.Find(sh.ID) == nil {
		t.Error("ship not in the sector")
	}
	if len(eventsOf(drain(s), EventShipAdded)) != 1 {
		t.Error("no ship_added event")
	}
}

func TestAddShipDefaultName(t *testing.T) {
	s, _ := newFleetServer(t)
	sh := mustAdd(t, s, game.ClassFrigate, "", "")
	if sh.Name != "Frigate 1" {
		t.Errorf("name = %q, want %q", sh.Name, "Frigate 1")
	}
}

func TestAddShipRosterFull(t *testing.T) {
	s, _ := newFleetServer(t)
	s.fleet.cfg.MaxShips = 2
	mustAdd(t, s, game.ClassFrigate, "", "")
	mustAdd(t, s, game.ClassFrigate, "", "")
	drain(s)

	_, err := s.fleet.AddShip(game.ClassFrigate, "", "")
	if !errors.Is(err, ErrRosterFull) {
		t.Fatalf("got %v, want ErrRosterFull", err)
	}
	if len(s.fleet.Ships()) != 2 {
		t.Errorf("roster grew to %d", len(s.fleet.Ships()))
	}
	var notices int
	for _, m := range drain(s) {
		if m.Type == MsgTypeNotice {
			notices++
		}
	}
	if notices != 1 {
		t.Errorf("got %d notices, want 1", notices)
	}
}

func TestAddShipErrors(t *testing.T) {
	s := newTestServer(t, rollNever())
	if _, err := s.fleet.AddShip(game.ClassCruiser, "", ""); err == nil {
		t.Error("added a ship with no player in the sector")
	}

	addPlayer(t, s, 1000, 1000)
	if _, err := s.fleet.AddShip("dreadnought", "", ""); !errors.Is(err, game.ErrUnknownClass) {
		t.Errorf("got %v, want ErrUnknownClass", err)
	}
}

func TestRemoveShip(t *testing.T) {
	s, _ := newFleetServer(t)
	sh := mustAdd(t, s, game.ClassCruiser, "", "Kira")
	if err := s.fleet.SetFlagship(sh.ID); err != nil {
		t.Fatal(err)
	}

	if err := s.fleet.RemoveShip(sh.ID); err != nil {
		t.Fatalf("RemoveShip: %v", err)
	}
	if s.world.Find(sh.ID) != nil || len(s.fleet.Ships()) != 0 {
		t.Error("ship still present")
	}
	if s.fleet.Flagship() != nil {
		t.Error("flagship survived removal")
	}
	if pilots := s.fleet.Pilots(); len(pilots) != 1 || pilots[0].Ship != uuid.Nil {
		t.Error("pilot not released")
	}

	if err := s.fleet.RemoveShip(uuid.New()); !errors.Is(err, ErrUnknownShip) {
		t.Errorf("got %v, want ErrUnknownShip", err)
	}
}

func TestPruneReleasesPilot(t *testing.T) {
	s, _ := newFleetServer(t)
	sh := mustAdd(t, s, game.ClassCruiser, "", "Kira")
	keep := mustAdd(t, s, game.ClassFrigate, "", "")
	s.fleet.AssignToGroup(sh.ID, 2)
	drain(s)

	sh.Hull = 0
	s.fleet.Prune()

	if got := s.fleet.Ships(); len(got) != 1 || got[0] != keep {
		t.Fatalf("roster after prune = %d ships", len(got))
	}
	if sh.Pilot != nil || s.fleet.Pilots()[0].Ship != uuid.Nil {
		t.Error("pilot still bound to the wreck")
	}
	if sh.Group != 0 {
		t.Error("wreck still in a control group")
	}
	lost := eventsOf(drain(s), EventShipLost)
	if len(lost) != 1 || lost[0].Data["pilot"] != "Kira" {
		t.Errorf("ship_lost events = %+v", lost)
	}
}

func TestAssignPilotMovesBetweenShips(t *testing.T) {
	s, _ := newFleetServer(t)
	a := mustAdd(t, s, game.ClassCruiser, "A", "Kira")
	b := mustAdd(t, s, game.ClassCruiser, "B", "")

	if err := s.fleet.AssignPilot(b.ID, "Kira"); err != nil {
		t.Fatal(err)
	}
	if a.Pilot != nil {
		t.Error("pilot still on the old ship")
	}
	if b.Pilot == nil || b.Pilot.Ship != b.ID {
		t.Error("pilot not on the new ship")
	}
	if len(s.fleet.Pilots()) != 1 {
		t.Errorf("hired %d pilots, want 1", len(s.fleet.Pilots()))
	}

	if err := s.fleet.AssignPilot(b.ID, ""); err != nil {
		t.Fatal(err)
	}
	if b.Pilot != nil {
		t.Error("empty name did not unassign")
	}
}

func TestControlGroups(t *testing.T) {
	s, _ := newFleetServer(t)
	sh := mustAdd(t, s, game.ClassCruiser, "", "")

	if err := s.fleet.AssignToGroup(sh.ID, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.fleet.AssignToGroup(sh.ID, 3); err != nil {
		t.Fatal(err)
	}
	if n := len(s.fleet.GroupMembers(1)); n != 0 {
		t.Errorf("group 1 still has %d members", n)
	}
	if got := s.fleet.GroupMembers(3); len(got) != 1 || got[0] != sh {
		t.Error("ship not in group 3")
	}

	for _, g := range []int{-1, NumControlGroups + 1} {
		if err := s.fleet.AssignToGroup(sh.ID, g); !errors.Is(err, ErrInvalidGroup) {
			t.Errorf("group %d: got %v, want ErrInvalidGroup", g, err)
		}
	}
	if err := s.fleet.CommandGroup(0, game.OrderHolding, nil); !errors.Is(err, ErrInvalidGroup) {
		t.Errorf("CommandGroup(0): got %v, want ErrInvalidGroup", err)
	}
	if err := s.fleet.AssignToGroup(uuid.New(), 1); !errors.Is(err, ErrUnknownShip) {
		t.Errorf("got %v, want ErrUnknownShip", err)
	}

	if err := s.fleet.AssignToGroup(sh.ID, 0); err != nil {
		t.Fatal(err)
	}
	if len(s.fleet.GroupMembers(3)) != 0 {
		t.Error("group 0 did not ungroup")
	}
}

func TestCommandDowngrades(t *testing.T) {
	s, _ := newFleetServer(t)
	pirate := addPirate(t, s, game.ProfileBrawler, 22000, 20000)
	miner := addShip(t, s, game.ClassBarge, game.FactionOreCorp, game.RoleMiner, game.ProfileCoward, 21000, 20000)

	crewed := mustAdd(t, s, game.ClassCruiser, "", "Kira")
	empty := mustAdd(t, s, game.ClassCruiser, "", "")
	barge := mustAdd(t, s, game.ClassBarge, "", "Rho")

	tests := []struct {
		name   string
		ship   *game.Ship
		order  game.FleetOrder
		target *game.Ship
		want   game.FleetOrder
	}{
		{"crewed attack on a pirate", crewed, game.OrderAttacking, pirate, game.OrderAttacking},
		{"attack on a friendly", crewed, game.OrderAttacking, miner, game.OrderFollowing},
		{"no pilot attacks", empty, game.OrderAttacking, pirate, game.OrderFollowing},
		{"no pilot holds", empty, game.OrderHolding, nil, game.OrderFollowing},
		{"no pilot follows", empty, game.OrderFollowing, nil, game.OrderFollowing},
		{"cruiser cannot mine", crewed, game.OrderMining, nil, game.OrderFollowing},
		{"barge mines", barge, game.OrderMining, nil, game.OrderMining},
		{"barge has nothing to defend with", barge, game.OrderDefending, nil, game.OrderFollowing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.fleet.CommandShip(tt.ship.ID, tt.order, tt.target); err != nil {
				t.Fatal(err)
			}
			if tt.ship.Order != tt.want {
				t.Errorf("order = %s, want %s", tt.ship.Order, tt.want)
			}
			if tt.want == game.OrderFollowing && tt.ship.OrderTarget != nil {
				t.Error("downgraded order kept its target")
			}
		})
	}
}

func TestCommandGroupAndAll(t *testing.T) {
	s, _ := newFleetServer(t)
	a := mustAdd(t, s, game.ClassCruiser, "", "Kira")
	b := mustAdd(t, s, game.ClassCruiser, "", "Rho")
	s.fleet.AssignToGroup(a.ID, 1)

	if err := s.fleet.CommandGroup(1, game.OrderHolding, nil); err != nil {
		t.Fatal(err)
	}
	if a.Order != game.OrderHolding || b.Order != game.OrderFollowing {
		t.Errorf("orders = %s, %s after commanding group 1", a.Order, b.Order)
	}

	s.fleet.CommandAll(game.OrderDefending, nil)
	if a.Order != game.OrderDefending || b.Order != game.OrderDefending {
		t.Errorf("orders = %s, %s after commanding all", a.Order, b.Order)
	}
}

func TestCargoTransferAndSale(t *testing.T) {
	s, p := newFleetServer(t)
	barge := mustAdd(t, s, game.ClassBarge, "", "Rho")
	barge.Cargo = 1500
	p.Cargo = PlayerHoldSize - 1000

	moved, err := s.fleet.TransferCargo(barge.ID)
	if err != nil {
		t.Fatal(err)
	}
	if moved != 1000 || barge.Cargo != 500 || p.Cargo != PlayerHoldSize {
		t.Errorf("moved %v, barge %v, hold %v", moved, barge.Cargo, p.Cargo)
	}

	again, err := s.fleet.TransferCargo(barge.ID)
	if err != nil || again != 0 {
		t.Errorf("transfer into a full hold = %v, %v", again, err)
	}

	before := s.fleet.Credits()
	earned := s.fleet.SellOre()
	if want := PlayerHoldSize * s.cfg.Fleet.OrePrice; earned != want {
		t.Errorf("earned %v, want %v", earned, want)
	}
	if s.fleet.Credits() != before+earned || p.Cargo != 0 {
		t.Errorf("credits %v hold %v after sale", s.fleet.Credits(), p.Cargo)
	}
	if s.fleet.SellOre() != 0 {
		t.Error("sold from an empty hold")
	}

	if _, err := s.fleet.TransferCargo(uuid.New()); !errors.Is(err, ErrUnknownShip) {
		t.Errorf("got %v, want ErrUnknownShip", err)
	}
}

func TestScouting(t *testing.T) {
	t.Run("pilotless ship is refused", func(t *testing.T) {
		s, _ := newFleetServer(t)
		sh := mustAdd(t, s, game.ClassFrigate, "", "")
		drain(s)

		if err := s.fleet.DispatchScout(sh.ID, game.Vec{X: 30000, Y: 20000}); err != nil {
			t.Fatal(err)
		}
		if sh.Order != game.OrderFollowing {
			t.Errorf("order = %s, want following", sh.Order)
		}
		msgs := drain(s)
		if len(msgs) != 1 || msgs[0].Type != MsgTypeNotice {
			t.Errorf("want a single notice, got %+v", msgs)
		}
	})

	t.Run("scout reports hostiles on arrival", func(t *testing.T) {
		s, _ := newFleetServer(t)
		sh := mustAdd(t, s, game.ClassFrigate, "", "Kira")
		point := game.Vec{X: 30000, Y: 20000}
		addPirate(t, s, game.ProfileBrawler, 30500, 20000)
		addShip(t, s, game.ClassFrigate, game.FactionSerpentis, game.RolePirate, game.ProfileTackler, 29500, 20000)
		addShip(t, s, game.ClassBarge, game.FactionOreCorp, game.RoleMiner, game.ProfileCoward, 30200, 20000)

		if err := s.fleet.DispatchScout(sh.ID, point); err != nil {
			t.Fatal(err)
		}
		if sh.Order != game.OrderScouting {
			t.Fatalf("order = %s, want scouting", sh.Order)
		}

		s.fleet.UpdateAI(s.takeSnapshot())
		if sh.Dest != point {
			t.Errorf("scout heading to %v, want %v", sh.Dest, point)
		}

		sh.Pos = point
		drain(s)
		s.fleet.UpdateAI(s.takeSnapshot())

		reports := eventsOf(drain(s), EventScoutReport)
		if len(reports) != 1 {
			t.Fatalf("got %d reports", len(reports))
		}
		if reports[0].Data["hostiles"] != 2 {
			t.Errorf("reported %v hostiles, want 2", reports[0].Data["hostiles"])
		}
		if sh.Order != game.OrderFollowing {
			t.Errorf("order after report = %s, want following", sh.Order)
		}
	})
}

func TestGateTransition(t *testing.T) {
	s, p := newFleetServer(t)
	pirate := addPirate(t, s, game.ProfileBrawler, 22000, 20000)
	attacker := mustAdd(t, s, game.ClassCruiser, "", "Kira")
	holder := mustAdd(t, s, game.ClassCruiser, "", "Rho")
	s.fleet.CommandShip(attacker.ID, game.OrderAttacking, pirate)
	s.fleet.CommandShip(holder.ID, game.OrderHolding, nil)
	attacker.EnsurePrimaryActive(pirate)
	attacker.Pos = game.Vec{X: 35000, Y: 35000}
	drain(s)

	s.fleet.GateTransition("Amarr")

	if s.world.Sector != "Amarr" {
		t.Errorf("sector = %q", s.world.Sector)
	}
	for _, sh := range []*game.Ship{attacker, holder} {
		if d := sh.DistanceTo(p); d > s.cfg.Fleet.SpawnRadius {
			t.Errorf("%s is %.0f from the player after the jump", sh.Name, d)
		}
		if sh.OrderTarget != nil || sh.PrimaryWeapon().Active {
			t.Errorf("%s carried a target through the gate", sh.Name)
		}
	}
	if attacker.Order != game.OrderFollowing {
		t.Errorf("attacker order = %s, want following", attacker.Order)
	}
	if holder.Order != game.OrderHolding {
		t.Errorf("holder order = %s, want holding", holder.Order)
	}
	if len(eventsOf(drain(s), EventGate)) != 1 {
		t.Error("no gate event")
	}
}

func TestFleetStatus(t *testing.T) {
	s, _ := newFleetServer(t)
	sh := mustAdd(t, s, game.ClassCruiser, "Vanguard", "Kira")
	sh.Hull = sh.MaxHull / 2
	s.fleet.SetFlagship(sh.ID)
	s.fleet.AssignToGroup(sh.ID, 4)

	st := s.fleet.Status()
	if st.Sector != "Test" || st.Formation != "spread" || st.Doctrine != "balanced" {
		t.Errorf("status header = %+v", st)
	}
	if st.Flagship != "Vanguard" || st.Credits != s.cfg.Fleet.StartingCredits {
		t.Errorf("flagship %q credits %v", st.Flagship, st.Credits)
	}
	if len(st.Ships) != 1 {
		t.Fatalf("got %d ship summaries", len(st.Ships))
	}
	got := st.Ships[0]
	if got.Hull != 50 || got.Pilot != "Kira" || got.Group != 4 || !got.Flagship {
		t.Errorf("summary = %+v", got)
	}
}
