package ports

// Source of randomness for backfill and suggestions.
// *math/rand.Rand satisfies it; tests supply fixed sequences.
type RandomSource interface {
	// Return a uniform integer in [0, n). n must be positive.
	Intn(n int) int
	// Return a uniform float in [0, 1).
	Float64() float64
}
