package drill

import "math/rand/v2"

// Source is the randomness contract used by the session and terrain
// generation. Reseeding with the same value must reproduce the same stream.
type Source interface {
	// Uniform returns a float in [min, max).
	Uniform(min, max float64) float64
	// Reseed restarts the stream from seed.
	Reseed(seed int64)
}

// RNG is a deterministic PCG-backed Source.
// It counts draws so tests can verify that two runs consumed the stream
// identically.
type RNG struct {
	r     *rand.Rand
	seed  int64
	draws uint64
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	r := &RNG{}
	r.Reseed(seed)
	return r
}

// Reseed restarts the stream from seed and clears the draw counter.
func (r *RNG) Reseed(seed int64) {
	r.r = rand.New(rand.NewPCG(uint64(seed), 0))
	r.seed = seed
	r.draws = 0
}

// Uniform returns a float in [min, max). Equal bounds return min
// but still consume one draw.
func (r *RNG) Uniform(min, max float64) float64 {
	r.draws++
	f := r.r.Float64()
	if max <= min {
		return min
	}
	return min + f*(max-min)
}

// IntN returns an int in [0, n). Returns 0 for n <= 0.
func (r *RNG) IntN(n int) int {
	r.draws++
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Int64 returns a non-negative int64, used to derive sub-seeds.
func (r *RNG) Int64() int64 {
	r.draws++
	return r.r.Int64()
}

// Seed returns the seed of the current stream.
func (r *RNG) Seed() int64 { return r.seed }

// Draws returns how many values were drawn since the last reseed.
func (r *RNG) Draws() uint64 { return r.draws }
