package game

// Modifiers is a bundle of multiplicative stat modifiers. 1.0 means unchanged.
type Modifiers struct {
	Damage      float64 `json:"damage" yaml:"damage"`
	Speed       float64 `json:"speed" yaml:"speed"`
	Shield      float64 `json:"shield" yaml:"shield"`
	Armor       float64 `json:"armor" yaml:"armor"`
	Tracking    float64 `json:"tracking" yaml:"tracking"`
	Range       float64 `json:"range" yaml:"range"`
	Signature   float64 `json:"signature" yaml:"signature"`
	ShieldRegen float64 `json:"shieldRegen" yaml:"shield_regen"`
}

// NoModifiers returns the identity bundle.
func NoModifiers() Modifiers {
	return Modifiers{
		Damage:      1,
		Speed:       1,
		Shield:      1,
		Armor:       1,
		Tracking:    1,
		Range:       1,
		Signature:   1,
		ShieldRegen: 1,
	}
}

// Mul combines two bundles.
func (m Modifiers) Mul(o Modifiers) Modifiers {
	return Modifiers{
		Damage:      m.Damage * o.Damage,
		Speed:       m.Speed * o.Speed,
		Shield:      m.Shield * o.Shield,
		Armor:       m.Armor * o.Armor,
		Tracking:    m.Tracking * o.Tracking,
		Range:       m.Range * o.Range,
		Signature:   m.Signature * o.Signature,
		ShieldRegen: m.ShieldRegen * o.ShieldRegen,
	}
}

// IsIdentity reports whether the bundle changes nothing.
func (m Modifiers) IsIdentity() bool {
	return m == NoModifiers()
}

// orOne treats an unset (zero) modifier as neutral.
func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
