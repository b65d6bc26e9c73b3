package server

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/lab1702/fleetcommand/game"
)

// isAgent reports whether a ship is driven by the NPC state machine.
func isAgent(s *game.Ship) bool {
	switch s.Role {
	case game.RolePlayer, game.RoleFleet, game.RoleAsteroid:
		return false
	}
	return true
}

// buildCommandGroups groups living agents by faction, drops factions with
// fewer than minSize members and elects the member with the most effective
// HP as commander. On a tie the first member in world order keeps the post.
func buildCommandGroups(living []*game.Ship, minSize int) map[string]*CommandGroup {
	byFaction := make(map[string][]*game.Ship)
	for _, s := range living {
		if !s.Alive() || !isAgent(s) {
			continue
		}
		byFaction[s.Faction] = append(byFaction[s.Faction], s)
	}

	groups := make(map[string]*CommandGroup)
	for faction, members := range byFaction {
		if len(members) < minSize {
			continue
		}
		commander := members[0]
		for _, m := range members[1:] {
			if m.EffectiveHP() > commander.EffectiveHP() {
				commander = m
			}
		}
		g := &CommandGroup{
			Faction:   faction,
			Commander: commander,
			Members:   members,
		}
		if commander.Target.Alive() {
			g.PrimaryTarget = commander.Target
		}
		groups[faction] = g
	}
	return groups
}

// refreshCommandGroups rebuilds every faction group from scratch and updates
// each faction's peak strength, which mass retreat measures losses against.
func (s *Server) refreshCommandGroups() {
	living := s.world.Living()
	s.groups = buildCommandGroups(living, s.cfg.AI.MinGroupSize)

	counts := make(map[string]int)
	for _, a := range living {
		if isAgent(a) {
			counts[a.Faction]++
		}
	}
	if s.factionPeak == nil {
		s.factionPeak = make(map[string]int)
	}
	for faction, n := range counts {
		if n > s.factionPeak[faction] {
			s.factionPeak[faction] = n
		}
	}
	for faction := range s.factionPeak {
		if counts[faction] == 0 {
			delete(s.factionPeak, faction)
		}
	}

	if DebugAI {
		for faction, g := range s.groups {
			log.Debug("command group", "faction", faction, "commander", g.Commander.Name,
				"members", len(g.Members), "primary", shipName(g.PrimaryTarget))
		}
	}
}

// massRetreat reports whether a faction has lost enough of its group that
// its members should break off.
func (s *Server) massRetreat(faction string) bool {
	g := s.groups[faction]
	if g == nil || len(g.Members) < s.cfg.AI.MinGroupSize {
		return false
	}
	peak := s.factionPeak[faction]
	if peak == 0 {
		return false
	}
	return float64(g.LivingMembers()) < s.cfg.AI.MassRetreatFraction*float64(peak)
}

// FactionSummary is the public view of one faction's presence.
type FactionSummary struct {
	Faction   string `json:"faction"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Living    int    `json:"living"`
	Peak      int    `json:"peak"`
	Commander string `json:"commander,omitempty"`
	Primary   string `json:"primary,omitempty"`
}

// factionSummaries lists every faction with living agents, sorted by tag.
func (s *Server) factionSummaries() []FactionSummary {
	counts := make(map[string]int)
	for _, a := range s.world.Living() {
		if isAgent(a) {
			counts[a.Faction]++
		}
	}

	out := make([]FactionSummary, 0, len(counts))
	for faction, n := range counts {
		meta := game.FactionInfo(faction)
		fs := FactionSummary{
			Faction: faction,
			Name:    meta.Name,
			Color:   meta.Color,
			Living:  n,
			Peak:    s.factionPeak[faction],
		}
		if g := s.groups[faction]; g != nil {
			if g.Commander.Alive() {
				fs.Commander = g.Commander.Name
			}
			fs.Primary = shipName(g.PrimaryTarget)
		}
		out = append(out, fs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Faction < out[j].Faction })
	return out
}
