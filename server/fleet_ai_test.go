package server

import (
	"math"
	"testing"

	"github.com/lab1702/fleetcommand/game"
)

func TestFollowOrderHeadsForSlot(t *testing.T) {
	s, p := newFleetServer(t)
	sh := mustAdd(t, s, game.ClassFrigate, "", "")
	sh.Pos = game.Offset(p.Pos, game.Vec{X: 3000})

	s.fleet.UpdateAI(s.takeSnapshot())

	slot, _ := s.fleet.SlotPosition(sh)
	if sh.Dest != slot || sh.DesSpeed != sh.EffectiveMaxSpeed() {
		t.Errorf("heading to %v at %v, want %v at full speed", sh.Dest, sh.DesSpeed, slot)
	}
}

func TestFollowOrderMatchesPlayerSpeed(t *testing.T) {
	s, p := newFleetServer(t)
	sh := mustAdd(t, s, game.ClassFrigate, "", "")
	p.Vel = game.Vec{X: 100}
	slot, _ := s.fleet.SlotPosition(sh)
	sh.Pos = slot

	s.fleet.UpdateAI(s.takeSnapshot())

	if math.Abs(sh.DesSpeed-100) > 1e-9 {
		t.Errorf("speed on station = %v, want the player's 100", sh.DesSpeed)
	}
}

func TestAttackOrder(t *testing.T) {
	s, p := newFleetServer(t)
	pirate := addPirate(t, s, game.ProfileBrawler, p.Pos.X+1500, p.Pos.Y)
	sh := mustAdd(t, s, game.ClassCruiser, "", "Kira")
	sh.Pos = p.Pos
	s.fleet.CommandShip(sh.ID, game.OrderAttacking, pirate)

	s.fleet.UpdateAI(s.takeSnapshot())

	if sh.Locked != pirate || !sh.PrimaryWeapon().Active {
		t.Fatal("not engaging the target in range")
	}
	want := FleetCombatOrbit * sh.EffectiveAttackRange()
	if got := game.Distance(sh.Dest, pirate.Pos); math.Abs(got-want) > 1 {
		t.Errorf("orbiting at %.0f, want %.0f", got, want)
	}

	pirate.Hull = 0
	s.fleet.UpdateAI(s.takeSnapshot())
	if sh.Order != game.OrderFollowing || sh.PrimaryWeapon().Active {
		t.Errorf("order %s after the target died, want following with weapons off", sh.Order)
	}
}

func TestAttackOrderLeadsMovingTarget(t *testing.T) {
	s, p := newFleetServer(t)
	pirate := addPirate(t, s, game.ProfileBrawler, p.Pos.X+6000, p.Pos.Y)
	pirate.Vel = game.Vec{Y: 150}
	sh := mustAdd(t, s, game.ClassCruiser, "", "Kira")
	sh.Pos = p.Pos
	s.fleet.CommandShip(sh.ID, game.OrderAttacking, pirate)

	s.fleet.UpdateAI(s.takeSnapshot())

	if sh.Dest.Y <= pirate.Pos.Y {
		t.Errorf("aimed at %v, want a point ahead of the target at %v", sh.Dest, pirate.Pos)
	}
	if sh.PrimaryWeapon().Active {
		t.Error("fired out of range")
	}
}

func TestDefendOrder(t *testing.T) {
	s, p := newFleetServer(t)
	sh := mustAdd(t, s, game.ClassCruiser, "", "Kira")
	sh.Pos = p.Pos
	s.fleet.CommandShip(sh.ID, game.OrderDefending, nil)

	s.fleet.UpdateAI(s.takeSnapshot())
	if sh.Locked != nil {
		t.Fatal("locked something with no threat around")
	}

	addPirate(t, s, game.ProfileBrawler, p.Pos.X+2500, p.Pos.Y)
	near := addPirate(t, s, game.ProfileTackler, p.Pos.X+1000, p.Pos.Y)
	addPirate(t, s, game.ProfileBrawler, p.Pos.X+s.cfg.Fleet.DefendRadius+500, p.Pos.Y)

	s.fleet.UpdateAI(s.takeSnapshot())
	if sh.Locked != near {
		t.Errorf("locked %q, want the nearest pirate", shipName(sh.Locked))
	}
}

func TestHoldOrder(t *testing.T) {
	s, p := newFleetServer(t)
	sh := mustAdd(t, s, game.ClassCruiser, "", "Kira")
	sh.Pos = game.Offset(p.Pos, game.Vec{X: -2000})
	s.fleet.CommandShip(sh.ID, game.OrderHolding, nil)
	pirate := addPirate(t, s, game.ProfileBrawler, sh.Pos.X-1000, sh.Pos.Y)

	s.fleet.UpdateAI(s.takeSnapshot())

	if sh.DesSpeed != 0 {
		t.Error("holding ship is moving")
	}
	if sh.Locked != pirate || !sh.PrimaryWeapon().Active {
		t.Error("not firing at the pirate in range")
	}

	pirate.Pos = game.Offset(sh.Pos, game.Vec{X: -sh.EffectiveAttackRange() - 500})
	s.fleet.UpdateAI(s.takeSnapshot())
	if sh.Locked != nil || sh.PrimaryWeapon().Active {
		t.Error("still firing at a pirate out of range")
	}
}

func TestOrbitOrder(t *testing.T) {
	s, p := newFleetServer(t)
	sh := mustAdd(t, s, game.ClassFrigate, "", "Kira")
	s.fleet.CommandShip(sh.ID, game.OrderOrbiting, nil)

	s.fleet.UpdateAI(s.takeSnapshot())

	if got := game.Distance(sh.Dest, p.Pos); math.Abs(got-s.cfg.Fleet.OrbitDistance) > 1 {
		t.Errorf("orbit waypoint %.0f from the player, want %v", got, s.cfg.Fleet.OrbitDistance)
	}
}

func TestMineOrder(t *testing.T) {
	s, p := newFleetServer(t)
	barge := mustAdd(t, s, game.ClassBarge, "", "Rho")
	barge.Pos = p.Pos
	rock := addShip(t, s, game.ClassAsteroid, game.FactionNeutral, game.RoleAsteroid, "", p.Pos.X+3000, p.Pos.Y)
	addShip(t, s, game.ClassAsteroid, game.FactionNeutral, game.RoleAsteroid, "", p.Pos.X+9000, p.Pos.Y)
	s.fleet.CommandShip(barge.ID, game.OrderMining, nil)

	s.fleet.UpdateAI(s.takeSnapshot())
	if barge.OrderTarget != rock || barge.Dest != rock.Pos {
		t.Fatalf("heading to %v, want the nearest asteroid at %v", barge.Dest, rock.Pos)
	}

	barge.Pos = game.Offset(rock.Pos, game.Vec{X: -100})
	s.fleet.UpdateAI(s.takeSnapshot())
	laser := miningLaser(barge)
	if !laser.Active || laser.Target != rock.ID {
		t.Fatal("mining laser not running on the asteroid")
	}

	// One frame of systems fills the hold a little
	s.updateShipSystems(1)
	if barge.Cargo != laser.Power {
		t.Errorf("cargo = %v, want %v", barge.Cargo, laser.Power)
	}

	barge.Cargo = barge.CargoCap
	drain(s)
	s.fleet.UpdateAI(s.takeSnapshot())
	if barge.Order != game.OrderFollowing || laser.Active {
		t.Errorf("full hold: order %s laser %v, want following with the laser off", barge.Order, laser.Active)
	}
	var notices int
	for _, m := range drain(s) {
		if m.Type == MsgTypeNotice {
			notices++
		}
	}
	if notices != 1 {
		t.Errorf("got %d notices for a full hold, want 1", notices)
	}
}

func TestWarpingFleetShipIsSkipped(t *testing.T) {
	s, p := newFleetServer(t)
	sh := mustAdd(t, s, game.ClassCruiser, "", "")
	sh.Pos = game.Offset(p.Pos, game.Vec{X: 4000})
	sh.Dest = sh.Pos
	sh.InitiateSectorWarp(p.Pos, 0)

	s.fleet.UpdateAI(s.takeSnapshot())

	if sh.Dest != sh.Pos {
		t.Error("ship in warp was given a new destination")
	}
}
