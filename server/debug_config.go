package server

import (
	"github.com/charmbracelet/log"
	"github.com/lab1702/fleetcommand/game"
)

// Debug flags for various subsystems
var (
	DebugAI = false // Set to true to log every AI state transition
)

// SetDebugAI toggles transition logging and raises the log level to match.
func SetDebugAI(on bool) {
	DebugAI = on
	if on {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// logTransition logs an AI state change when debugging is enabled
func logTransition(a *game.Ship, from, to game.AIState, reason string) {
	if DebugAI {
		log.Debug("ai transition", "ship", a.Name, "faction", a.Faction,
			"from", from, "to", to, "reason", reason)
	}
}

// logRejected logs a transition the table does not allow
func logRejected(a *game.Ship, from, to game.AIState) {
	if DebugAI {
		log.Debug("ai transition rejected", "ship", a.Name, "from", from, "to", to)
	}
}
