package game

// TacticalStyle is how a profile positions itself once engaged.
type TacticalStyle int

const (
	StyleClose TacticalStyle = iota
	StyleRange
	StyleSupport
	StyleFlee
)

func (t TacticalStyle) String() string {
	switch t {
	case StyleClose:
		return "close"
	case StyleRange:
		return "range"
	case StyleSupport:
		return "support"
	case StyleFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// BehaviorProfile is static per-archetype tuning. Never mutated at runtime.
type BehaviorProfile struct {
	Name                 string
	PreferredRange       float64 // fraction of attack range to hold
	FleeHP               float64 // hull fraction that triggers flight
	OrbitSpeed           float64 // fraction of max speed while orbiting
	AggressionMultiplier float64
	Style                TacticalStyle
}

// Profile tags
const (
	ProfileBrawler = "brawler"
	ProfileKiter   = "kiter"
	ProfileSniper  = "sniper"
	ProfileTackler = "tackler"
	ProfileLogi    = "logi"
	ProfileCoward  = "coward"
)

var profiles = map[string]BehaviorProfile{
	ProfileBrawler: {Name: ProfileBrawler, PreferredRange: 0.5, FleeHP: 0.15, OrbitSpeed: 0.6, AggressionMultiplier: 1.2, Style: StyleClose},
	ProfileKiter:   {Name: ProfileKiter, PreferredRange: 0.8, FleeHP: 0.25, OrbitSpeed: 0.9, AggressionMultiplier: 1.0, Style: StyleRange},
	ProfileSniper:  {Name: ProfileSniper, PreferredRange: 0.95, FleeHP: 0.3, OrbitSpeed: 0.4, AggressionMultiplier: 0.9, Style: StyleRange},
	ProfileTackler: {Name: ProfileTackler, PreferredRange: 0.3, FleeHP: 0.2, OrbitSpeed: 1.0, AggressionMultiplier: 1.3, Style: StyleClose},
	ProfileLogi:    {Name: ProfileLogi, PreferredRange: 0.5, FleeHP: 0.35, OrbitSpeed: 0.3, AggressionMultiplier: 0.5, Style: StyleSupport},
	ProfileCoward:  {Name: ProfileCoward, PreferredRange: 0.9, FleeHP: 0.9, OrbitSpeed: 1.0, AggressionMultiplier: 0.2, Style: StyleFlee},
}

// Profile looks up a behavior profile. Unknown tags get the brawler.
func Profile(tag string) BehaviorProfile {
	if p, ok := profiles[tag]; ok {
		return p
	}
	return profiles[ProfileBrawler]
}

// ProfileTags lists the known profile tags.
func ProfileTags() []string {
	return []string{ProfileBrawler, ProfileKiter, ProfileSniper, ProfileTackler, ProfileLogi, ProfileCoward}
}
