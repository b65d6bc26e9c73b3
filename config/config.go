// Package config provides configuration loading and access for the fleet server.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all server and AI tuning parameters.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	AI        AIConfig        `yaml:"ai"`
	Pursuit   PursuitConfig   `yaml:"pursuit"`
	Targeting TargetingConfig `yaml:"targeting"`
	Chat      ChatConfig      `yaml:"chat"`
	Fleet     FleetConfig     `yaml:"fleet"`
	Spawn     SpawnConfig     `yaml:"spawn"`
}

// ServerConfig holds transport and frame settings.
type ServerConfig struct {
	Port              int     `yaml:"port"`
	Sector            string  `yaml:"sector"`             // starting sector name
	FrameInterval     float64 `yaml:"frame_interval"`     // seconds per simulation frame
	BroadcastInterval float64 `yaml:"broadcast_interval"` // seconds between fleet status pushes
	TelemetryDir      string  `yaml:"telemetry_dir"`      // empty disables the transition CSV
}

// AIConfig holds the per-agent state machine tuning.
type AIConfig struct {
	Interval            float64 `yaml:"interval"`           // seconds between AI re-evaluations
	CommanderInterval   float64 `yaml:"commander_interval"` // seconds between command group refreshes
	MaxChaseTime        float64 `yaml:"max_chase_time"`     // seconds before a pursuit is abandoned
	LeashDistance       float64 `yaml:"leash_distance"`     // max distance from home while pursuing
	PatrolRadius        float64 `yaml:"patrol_radius"`      // waypoint spread around home
	PatrolArrival       float64 `yaml:"patrol_arrival"`     // waypoint reached within this distance
	IdlePatrolChance    float64 `yaml:"idle_patrol_chance"` // per-tick chance idle starts a patrol
	RepatrolChance      float64 `yaml:"repatrol_chance"`    // chance to pick another waypoint on arrival
	RegroupDistance     float64 `yaml:"regroup_distance"`   // close enough to the commander
	FleeWarpMin         float64 `yaml:"flee_warp_min"`      // escape warp distance range
	FleeWarpMax         float64 `yaml:"flee_warp_max"`
	FleeSafeFactor      float64 `yaml:"flee_safe_factor"`  // x aggro range counts as safe
	FleeRecoverHull     float64 `yaml:"flee_recover_hull"` // hull fraction that ends a flight
	HealThreshold       float64 `yaml:"heal_threshold"`    // support agents heal allies below this HP fraction
	MassRetreatFraction float64 `yaml:"mass_retreat_fraction"`
	MinGroupSize        int     `yaml:"min_group_size"`
	TauntInterval       float64 `yaml:"taunt_interval"`
}

// PursuitConfig holds the pursuit evaluator thresholds.
type PursuitConfig struct {
	TackleRangeFactor    float64 `yaml:"tackle_range_factor"`
	SpeedAdvantage       float64 `yaml:"speed_advantage"` // fraction faster that needs no maneuver
	SlowerMargin         float64 `yaml:"slower_margin"`   // fraction slower that cannot catch up
	InterceptMinDistance float64 `yaml:"intercept_min_distance"`
	InterceptLookahead   float64 `yaml:"intercept_lookahead"`
	InterceptOvershoot   float64 `yaml:"intercept_overshoot"`
	LowHullFraction      float64 `yaml:"low_hull_fraction"`
	MinAssisting         int     `yaml:"min_assisting"`
}

// TargetingConfig holds target scoring weights.
type TargetingConfig struct {
	MinerPriority    float64 `yaml:"miner_priority"`
	SecurityPriority float64 `yaml:"security_priority"`
	GuildPriority    float64 `yaml:"guild_priority"`
	FleetPriority    float64 `yaml:"fleet_priority"`
	PiratePriority   float64 `yaml:"pirate_priority"`    // used by lawful agents hunting pirates
	FocusFireWeight  float64 `yaml:"focus_fire_weight"`  // per ally already on the candidate
	WoundedWeight    float64 `yaml:"wounded_weight"`     // scaled by missing HP fraction
	MaxThreatRatio   float64 `yaml:"max_threat_ratio"`   // player skipped above this ratio
	ThreatFleeHP     float64 `yaml:"threat_flee_hp"`     // ...when the profile flees above this
	GroupTargetRange float64 `yaml:"group_target_range"` // x aggro range for the group primary
	ChaseRangeFactor float64 `yaml:"chase_range_factor"` // x aggro range before pursuit starts
}

// ChatConfig holds flavor chat rate limits.
type ChatConfig struct {
	Cooldown float64 `yaml:"cooldown"` // seconds between lines per agent
	Chance   float64 `yaml:"chance"`   // probability a line is actually spoken
}

// FleetConfig holds player fleet parameters.
type FleetConfig struct {
	MaxShips           int     `yaml:"max_ships"`
	FormationSpacing   float64 `yaml:"formation_spacing"`
	FormationTolerance float64 `yaml:"formation_tolerance"`
	SpawnRadius        float64 `yaml:"spawn_radius"`
	CommandRange       float64 `yaml:"command_range"`
	OrbitDistance      float64 `yaml:"orbit_distance"`
	DefendRadius       float64 `yaml:"defend_radius"`
	ScoutRadius        float64 `yaml:"scout_radius"`
	OrePrice           float64 `yaml:"ore_price"`
	StartingCredits    float64 `yaml:"starting_credits"`
	Formation          string  `yaml:"formation"`
	Doctrine           string  `yaml:"doctrine"`
}

// SpawnConfig holds sector population parameters.
type SpawnConfig struct {
	Seed        int64   `yaml:"seed"`     // 0 seeds from the clock
	Interval    float64 `yaml:"interval"` // seconds between pirate top-ups
	PiratePacks int     `yaml:"pirate_packs"`
	PackSize    int     `yaml:"pack_size"`
	MaxPirates  int     `yaml:"max_pirates"`
	Miners      int     `yaml:"miners"`
	Security    int     `yaml:"security"`
	Guild       int     `yaml:"guild"`
	Asteroids   int     `yaml:"asteroids"`
}

// Default returns the embedded defaults. It panics if the embedded file is
// malformed, which is a build defect.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.Validate()
	return cfg, nil
}

// Validate clamps values into usable ranges and restores zeroed intervals.
func (c *Config) Validate() {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		c.Server.Port = 8080
	}
	if c.Server.Sector == "" {
		c.Server.Sector = "Jita"
	}
	c.Server.FrameInterval = positive(c.Server.FrameInterval, 0.1)
	c.Server.BroadcastInterval = positive(c.Server.BroadcastInterval, 0.5)

	c.AI.Interval = positive(c.AI.Interval, 0.5)
	c.AI.CommanderInterval = positive(c.AI.CommanderInterval, 2)
	if c.AI.CommanderInterval < c.AI.Interval {
		c.AI.CommanderInterval = c.AI.Interval
	}
	c.AI.MaxChaseTime = positive(c.AI.MaxChaseTime, 30)
	c.AI.LeashDistance = positive(c.AI.LeashDistance, 12000)
	c.AI.PatrolRadius = positive(c.AI.PatrolRadius, 5000)
	c.AI.PatrolArrival = positive(c.AI.PatrolArrival, 100)
	c.AI.IdlePatrolChance = clamp01(c.AI.IdlePatrolChance)
	c.AI.RepatrolChance = clamp01(c.AI.RepatrolChance)
	c.AI.RegroupDistance = positive(c.AI.RegroupDistance, 300)
	c.AI.FleeWarpMin = positive(c.AI.FleeWarpMin, 3000)
	if c.AI.FleeWarpMax < c.AI.FleeWarpMin {
		c.AI.FleeWarpMax = c.AI.FleeWarpMin
	}
	c.AI.FleeSafeFactor = positive(c.AI.FleeSafeFactor, 2)
	c.AI.FleeRecoverHull = clamp01(c.AI.FleeRecoverHull)
	c.AI.HealThreshold = clamp01(c.AI.HealThreshold)
	c.AI.MassRetreatFraction = clamp01(c.AI.MassRetreatFraction)
	if c.AI.MinGroupSize < 2 {
		c.AI.MinGroupSize = 3
	}
	c.AI.TauntInterval = positive(c.AI.TauntInterval, 8)

	c.Pursuit.TackleRangeFactor = positive(c.Pursuit.TackleRangeFactor, 1.2)
	c.Pursuit.InterceptLookahead = positive(c.Pursuit.InterceptLookahead, 5)
	c.Pursuit.LowHullFraction = clamp01(c.Pursuit.LowHullFraction)
	if c.Pursuit.MinAssisting < 0 {
		c.Pursuit.MinAssisting = 0
	}

	c.Targeting.GroupTargetRange = positive(c.Targeting.GroupTargetRange, 1.5)
	c.Targeting.ChaseRangeFactor = positive(c.Targeting.ChaseRangeFactor, 1.5)
	c.Targeting.MaxThreatRatio = positive(c.Targeting.MaxThreatRatio, 3)

	if c.Chat.Cooldown < 0 {
		c.Chat.Cooldown = 0
	}
	c.Chat.Chance = clamp01(c.Chat.Chance)

	if c.Fleet.MaxShips < 1 {
		c.Fleet.MaxShips = 1
	}
	c.Fleet.FormationSpacing = positive(c.Fleet.FormationSpacing, 250)
	c.Fleet.FormationTolerance = positive(c.Fleet.FormationTolerance, 300)
	c.Fleet.SpawnRadius = positive(c.Fleet.SpawnRadius, 500)
	c.Fleet.CommandRange = positive(c.Fleet.CommandRange, 5000)
	c.Fleet.OrbitDistance = positive(c.Fleet.OrbitDistance, 1000)
	c.Fleet.DefendRadius = positive(c.Fleet.DefendRadius, 3000)
	c.Fleet.ScoutRadius = positive(c.Fleet.ScoutRadius, 5000)

	c.Spawn.Interval = positive(c.Spawn.Interval, 30)
	if c.Spawn.PackSize < 1 {
		c.Spawn.PackSize = 1
	}
}

func positive(v, fallback float64) float64 {
	if v <= 0 {
		return fallback
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
