package server

import (
	"github.com/lab1702/fleetcommand/game"
	"gonum.org/v1/gonum/spatial/r2"
)

// UpdateAI runs one throttled AI tick for every roster ship: modifiers are
// refreshed first, then each ship acts on its standing order.
func (f *Fleet) UpdateAI(snap *snapshot) {
	for _, s := range f.roster {
		if !s.Alive() {
			continue
		}
		s.Mods = f.EffectiveModifiers(s)
		if s.Warping() {
			continue
		}

		switch s.Order {
		case game.OrderOrbiting:
			f.orbitOrder(s)
		case game.OrderMining:
			f.mineOrder(s, snap)
		case game.OrderAttacking:
			f.attackOrder(s)
		case game.OrderDefending:
			f.defendOrder(s, snap)
		case game.OrderHolding:
			f.holdOrder(s, snap)
		case game.OrderScouting:
			f.scoutOrder(s, snap)
		default:
			f.followOrder(s)
		}
	}
}

// followOrder flies to the ship's formation slot and matches the player's
// speed once there.
func (f *Fleet) followOrder(s *game.Ship) {
	s.DeactivateWeapons()
	s.Locked = nil
	slot, ok := f.SlotPosition(s)
	if !ok {
		s.Stop()
		return
	}
	speed := s.EffectiveMaxSpeed()
	if game.Distance(slot, s.Pos) <= f.cfg.FormationTolerance/2 {
		if ps := r2.Norm(f.world.Player.Vel); ps < speed {
			speed = ps
		}
	}
	s.MoveTo(slot, speed)
}

// orbitOrder circles the order target, or the player when there is none.
func (f *Fleet) orbitOrder(s *game.Ship) {
	center := s.OrderTarget
	if !center.Alive() {
		center = f.world.Player
	}
	if !center.Alive() {
		f.command(s, game.OrderFollowing, nil)
		return
	}
	orbit(s, center.Pos, f.cfg.OrbitDistance, 0.6)
}

// attackOrder runs down the order target. When it dies the ship falls back
// into formation.
func (f *Fleet) attackOrder(s *game.Ship) {
	t := s.OrderTarget
	if !t.Alive() {
		f.command(s, game.OrderFollowing, nil)
		return
	}
	f.engage(s, t)
}

// engage leads a moving target until in range, then orbits and fires.
func (f *Fleet) engage(s, t *game.Ship) {
	ar := s.EffectiveAttackRange()
	if s.DistanceTo(t) > ar {
		speed := s.EffectiveMaxSpeed()
		if sol, ok := InterceptCourse(s.Pos, t.Pos, t.Vel, speed); ok {
			s.MoveTo(sol.Point, speed)
		} else {
			s.MoveTo(t.Pos, speed)
		}
		return
	}
	s.Locked = t
	orbit(s, t.Pos, FleetCombatOrbit*ar, 0.8)
	s.EnsurePrimaryActive(t)
}

// defendOrder engages the nearest hostile threatening the player and
// otherwise keeps formation.
func (f *Fleet) defendOrder(s *game.Ship, snap *snapshot) {
	p := f.world.Player
	if !p.Alive() {
		f.followOrder(s)
		return
	}
	var best *game.Ship
	bestDist := MaxSearchDistance
	for _, o := range snap.nearby(p.Pos, f.cfg.DefendRadius) {
		if !o.Alive() || !hostile(s, o) || o.Role != game.RolePirate {
			continue
		}
		if d := s.DistanceTo(o); d < bestDist {
			best, bestDist = o, d
		}
	}
	if best == nil {
		f.followOrder(s)
		return
	}
	if s.Locked != best {
		s.DeactivateWeapons()
	}
	f.engage(s, best)
}

// holdOrder keeps station and shoots whatever hostile comes into range.
func (f *Fleet) holdOrder(s *game.Ship, snap *snapshot) {
	s.Stop()
	ar := s.EffectiveAttackRange()
	var best *game.Ship
	bestDist := MaxSearchDistance
	for _, o := range snap.nearby(s.Pos, ar) {
		if !o.Alive() || !hostile(s, o) {
			continue
		}
		if d := s.DistanceTo(o); d <= ar && d < bestDist {
			best, bestDist = o, d
		}
	}
	if best == nil {
		s.DeactivateWeapons()
		s.Locked = nil
		return
	}
	s.Locked = best
	s.EnsurePrimaryActive(best)
}

// mineOrder works the nearest asteroid until the hold is full.
func (f *Fleet) mineOrder(s *game.Ship, snap *snapshot) {
	if s.CargoCap > 0 && s.Cargo >= s.CargoCap {
		f.notice("info", s.Name+" has a full ore hold")
		f.command(s, game.OrderFollowing, nil)
		return
	}

	laser := miningLaser(s)
	if laser == nil {
		f.command(s, game.OrderFollowing, nil)
		return
	}

	rock := s.OrderTarget
	if !rock.Alive() || rock.Role != game.RoleAsteroid {
		rock = nearestAsteroid(s, snap)
		s.OrderTarget = rock
	}
	if rock == nil {
		s.Stop()
		return
	}

	if s.DistanceTo(rock) > laser.Range*0.8 {
		if laser.Active {
			laser.Deactivate()
		}
		s.MoveTo(rock.Pos, s.EffectiveMaxSpeed())
		return
	}
	s.Stop()
	laser.Activate(rock.ID)
}

// scoutOrder flies to the scout point and reports on arrival.
func (f *Fleet) scoutOrder(s *game.Ship, snap *snapshot) {
	if game.Distance(s.Pos, s.ScoutPoint) > ScoutArrival {
		s.MoveTo(s.ScoutPoint, s.EffectiveMaxSpeed())
		return
	}
	f.scoutReport(s, snap)
	f.command(s, game.OrderFollowing, nil)
}

func nearestAsteroid(s *game.Ship, snap *snapshot) *game.Ship {
	var best *game.Ship
	bestDist := MaxSearchDistance
	for _, o := range snap.living {
		if o.Role != game.RoleAsteroid {
			continue
		}
		if d := s.DistanceTo(o); d < bestDist {
			best, bestDist = o, d
		}
	}
	return best
}

func miningLaser(s *game.Ship) *game.Module {
	for _, m := range s.High {
		if m.Kind == game.ModMiningLaser {
			return m
		}
	}
	return nil
}
