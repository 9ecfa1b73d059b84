package utils

import (
	"math/rand/v2"
	"time"
)

// Random is a deterministic pseudo-random number generator used by the seed
// generator. Given the same seed it reproduces the same fixture data.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a Random instance with the given seed.
func NewRandom(seed int64) *Random {
	s := uint64(seed)
	return &Random{rng: rand.New(rand.NewPCG(s, s^0xDEADBEEF))}
}

// IntN returns a pseudo-random int in [0, n).
func (r *Random) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.IntN(n)
}

// IntRange returns a pseudo-random int in [min, max].
func (r *Random) IntRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + r.IntN(max-min+1)
}

// Int64Range returns a pseudo-random int64 in [min, max].
func (r *Random) Int64Range(min, max int64) int64 {
	if min >= max {
		return min
	}
	return min + r.rng.Int64N(max-min+1)
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0).
func (r *Random) Float64() float64 {
	return r.rng.Float64()
}

// Probability returns true with the given probability (0.0 to 1.0).
func (r *Random) Probability(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// PickString returns a random element from the slice.
func (r *Random) PickString(slice []string) string {
	if len(slice) == 0 {
		return ""
	}
	return slice[r.IntN(len(slice))]
}

// Date returns a random timestamp between start and end.
func (r *Random) Date(start, end time.Time) time.Time {
	if !start.Before(end) {
		return start
	}
	delta := end.Sub(start)
	return start.Add(time.Duration(r.Int64Range(0, int64(delta))))
}

// NumericString generates a random numeric string of the given length.
func (r *Random) NumericString(length int) string {
	const charset = "0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[r.IntN(len(charset))]
	}
	return string(result)
}
