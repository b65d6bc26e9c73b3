package server

// AI constants for agent behavior.
// The tunable thresholds live in config; these are geometry and pacing
// values the state machine relies on that are not worth exposing.

const (
	// Range multipliers applied to an agent's own envelope
	AttackBreakFactor   = 1.2 // attack falls back to chase beyond this x attack range
	InterceptLandFactor = 1.5 // a landed intercept within this x attack range attacks
	InterceptKeepFactor = 2.0 // ...and within this x aggro range keeps pursuing
	TackleBreakFactor   = 1.5 // an unpointed target beyond this x attack range is pursued again
	TackleOrbitFactor   = 0.5 // tacklers orbit at this x attack range
	SupportOrbitFactor  = 0.5 // logistics orbit their charge at this x attack range

	// Range-style stand-off band around the preferred distance
	StandoffBand = 0.1

	// OrbitStep is how far around the target (radians) each orbit waypoint leads.
	OrbitStep = 0.35

	// InterceptCrawlSpeed is the fraction of max speed used while a warp is in flight.
	InterceptCrawlSpeed = 0.25

	// PatrolSpeed is the fraction of max speed used on patrol.
	PatrolSpeed = 0.5

	// FleeJitter is the max deviation (radians) of an escape warp from straight away.
	FleeJitter = 0.5

	// ShieldRegenRate is the passive shield regen as a fraction of max per second.
	ShieldRegenRate = 0.01

	// FleetCombatOrbit is the fraction of attack range fleet ships orbit at when engaged.
	FleetCombatOrbit = 0.7

	// ScoutArrival is how close a scout must get to its point before reporting.
	ScoutArrival = 250.0

	// Sentinel values
	MaxSearchDistance = 999999.0  // Sentinel for "no target found" in nearest-object searches
	WorstScore        = -999999.0 // Sentinel for "no candidate scored" in best-candidate searches
)

// NumControlGroups is the number of numbered player control groups.
const NumControlGroups = 5
