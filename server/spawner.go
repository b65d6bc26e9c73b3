package server

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/lab1702/fleetcommand/game"
)

// PlayerHoldSize is the ore capacity of the player's own ship.
const PlayerHoldSize = 5000.0

// pirateFactions take turns supplying packs.
var pirateFactions = []string{game.FactionGuristas, game.FactionSerpentis, game.FactionBloodRaid}

// packProfiles is the order pack members are assigned profiles in.
var packProfiles = []string{
	game.ProfileTackler,
	game.ProfileBrawler,
	game.ProfileKiter,
	game.ProfileLogi,
	game.ProfileSniper,
}

// profileClass is the hull each pirate profile flies.
var profileClass = map[string]string{
	game.ProfileTackler: game.ClassFrigate,
	game.ProfileBrawler: game.ClassCruiser,
	game.ProfileKiter:   game.ClassDestroyer,
	game.ProfileSniper:  game.ClassDestroyer,
	game.ProfileLogi:    game.ClassLogistics,
	game.ProfileCoward:  game.ClassBarge,
}

// Spawn distances from the player
const (
	PackMinDistance = 8000.0
	PackMaxDistance = 15000.0
	PackSpread      = 800.0
	BeltRadius      = 10000.0
)

// populateSector fills an empty sector: the player, pirate packs, lawful
// traffic and an asteroid belt.
func (s *Server) populateSector() {
	center := game.Vec{X: game.SectorWidth / 2, Y: game.SectorHeight / 2}
	if s.world.Player == nil {
		p, err := game.NewShip(game.ClassCruiser, "Capsuleer", game.FactionPlayer, game.RolePlayer, center)
		if err != nil {
			log.Error("creating player ship", "err", err)
			return
		}
		p.CargoCap = PlayerHoldSize
		s.world.Add(p)
	}
	center = s.world.Player.Pos

	tune := s.cfg.Spawn
	for i := 0; i < tune.Asteroids; i++ {
		s.spawnShip(game.ClassAsteroid, "Asteroid", game.FactionNeutral, game.RoleAsteroid, "",
			s.randomPointAround(center, 0, BeltRadius))
	}
	for i := 0; i < tune.PiratePacks; i++ {
		s.spawnPack(tune.PackSize)
	}
	for i := 0; i < tune.Miners; i++ {
		if m := s.spawnShip(game.ClassBarge, "ORE Barge", game.FactionOreCorp, game.RoleMiner, game.ProfileCoward,
			s.randomPointAround(center, 2000, BeltRadius)); m != nil {
			m.Stance = game.StancePassive
		}
	}
	for i := 0; i < tune.Security; i++ {
		s.spawnShip(game.ClassCruiser, "CONCORD Patrol", game.FactionConcord, game.RoleSecurity, game.ProfileBrawler,
			s.randomPointAround(center, 3000, PackMaxDistance))
	}
	for i := 0; i < tune.Guild; i++ {
		s.spawnShip(game.ClassDestroyer, "Guild Enforcer", game.FactionMercGuild, game.RoleGuild, game.ProfileKiter,
			s.randomPointAround(center, 3000, PackMaxDistance))
	}

	log.Info("sector populated", "sector", s.world.Sector, "ships", len(s.world.Ships))
}

// spawnPack launches up to size pirates of one faction together.
func (s *Server) spawnPack(size int) {
	if size <= 0 || s.world.Player == nil {
		return
	}
	faction := pirateFactions[s.packSeq%len(pirateFactions)]
	s.packSeq++
	center := s.randomPointAround(s.world.Player.Pos, PackMinDistance, PackMaxDistance)
	meta := game.FactionInfo(faction)

	for i := 0; i < size; i++ {
		profile := packProfiles[i%len(packProfiles)]
		a := s.spawnShip(profileClass[profile], meta.Name, faction, game.RolePirate, profile,
			s.randomPointAround(center, 0, PackSpread))
		if a != nil {
			s.pickPatrolPoint(a)
		}
	}
	log.Debug("pirate pack spawned", "faction", faction, "size", size)
}

// spawnShip creates an agent and adds it to the sector.
func (s *Server) spawnShip(class, prefix, faction string, role game.Role, profile string, pos game.Vec) *game.Ship {
	s.spawnSeq++
	name := fmt.Sprintf("%s %03d", prefix, s.spawnSeq)
	sh, err := game.NewShip(class, name, faction, role, pos)
	if err != nil {
		log.Error("spawning ship", "class", class, "err", err)
		return nil
	}
	sh.Profile = profile
	sh.AIState = game.AIIdle
	sh.Rotation = s.rng.Float64() * 2 * math.Pi
	s.world.Add(sh)
	return sh
}

// topUpPirates replaces lost pirates every spawn interval.
func (s *Server) topUpPirates(dt float64) {
	tune := s.cfg.Spawn
	if tune.Interval <= 0 {
		return
	}
	s.spawnAcc += dt
	if s.spawnAcc < tune.Interval {
		return
	}
	s.spawnAcc = 0

	missing := tune.MaxPirates - s.world.CountRole(game.RolePirate)
	if missing <= 0 {
		return
	}
	s.spawnPack(min(missing, tune.PackSize))
}

func (s *Server) randomPointAround(center game.Vec, minDist, maxDist float64) game.Vec {
	return game.PointAt(center, s.rng.Float64()*2*math.Pi, randomBetween(s.rng, minDist, maxDist))
}
