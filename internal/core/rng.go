package core

// SimpleRNG is a deterministic pseudo-random number generator (64-bit LCG).
// Given the same seed, a round replays identically.
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &SimpleRNG{state: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.Next() >> 1) % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	// top 53 bits, the low bits of an LCG are weak
	return float64(r.Next()>>11) / float64(1<<53)
}

// Sign returns -1 or +1 with equal probability.
func (r *SimpleRNG) Sign() float64 {
	if r.Next()>>63 == 0 {
		return -1
	}
	return 1
}

// State returns the internal state for snapshots.
func (r *SimpleRNG) State() uint64 {
	return r.state
}

// SetState restores the internal state from a snapshot.
func (r *SimpleRNG) SetState(s uint64) {
	r.state = s
}
