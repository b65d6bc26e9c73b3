package server

// randomJitter returns a random value within ±max drawn from rng.
// Used to spread escape warps so fleeing ships do not all land in a line.
func randomJitter(rng Rand, max float64) float64 {
	return (rng.Float64()*2 - 1) * max
}

// randomBetween returns a value uniformly distributed in [lo, hi).
func randomBetween(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// roll reports whether a chance succeeds.
func roll(rng Rand, chance float64) bool {
	return rng.Float64() < chance
}
