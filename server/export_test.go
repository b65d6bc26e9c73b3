package server

import "github.com/lab1702/fleetcommand/game"

// Test helpers to expose private state and methods for testing purposes
// This file should only be used for testing and not in production

// World allows tests to inspect the simulated sector
func (s *Server) World() *game.World {
	return s.world
}

// Fleet allows tests to drive the player's fleet directly
func (s *Server) Fleet() *Fleet {
	return s.fleet
}

// RefreshAndSnapshot rebuilds command groups and captures a snapshot, as
// the start of an AI tick does
func (s *Server) RefreshAndSnapshot() *snapshot {
	s.refreshCommandGroups()
	return s.takeSnapshot()
}

// Step runs one AI decision for a single agent against a fresh snapshot
func (s *Server) Step(a *game.Ship) {
	s.updateAgent(a, s.takeSnapshot())
}
