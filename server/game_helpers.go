package server

import (
	"fmt"

	"github.com/lab1702/fleetcommand/game"
)

// shipName is a ship's name, or empty for a missing or dead ship
func shipName(s *game.Ship) string {
	if !s.Alive() {
		return ""
	}
	return s.Name
}

// formatShipName is the name with its faction, as shown in events
func formatShipName(s *game.Ship) string {
	if s == nil {
		return "unknown"
	}
	return fmt.Sprintf("%s [%s]", s.Name, game.FactionInfo(s.Faction).Name)
}

// shipDestroyed announces a kill. The wreck is reaped at the end of the frame.
func (s *Server) shipDestroyed(victim, killer *game.Ship) {
	victim.DeactivateWeapons()
	victim.DeactivateTackle()
	s.emitEvent(EventShipDestroyed, fmt.Sprintf("%s destroyed %s", formatShipName(killer), formatShipName(victim)), map[string]any{
		"victim":  victim.Name,
		"faction": victim.Faction,
		"killer":  killer.Name,
	})
}
