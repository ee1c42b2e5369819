// Package random provides the seeded sampling primitives shared by all generators.
//
// Every generator builds its own Source from the caller's seed, so a given
// seed and parameter set always yields the same rows. SetSeed and Default
// expose a process-wide source for callers that want a single global stream.
package random

import (
	"math"
	"math/rand"
	"sync"
)

// Source is a seeded pseudo-random stream with the distributions the
// generators draw from. It is not safe for concurrent use.
type Source struct {
	r *rand.Rand
}

// New returns a Source deterministically initialized from seed.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

var (
	defaultMu  sync.Mutex
	defaultSrc = New(42)
)

// SetSeed reinitializes the process-wide default source.
func SetSeed(seed int64) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultSrc = New(seed)
}

// Default returns the process-wide source installed by the last SetSeed call.
// Callers sharing it across goroutines must synchronize externally.
func Default() *Source {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultSrc
}

// Float64 returns a uniform value in [0, 1).
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// Uniform returns a uniform value in [lo, hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.r.Float64()
}

// IntN returns a uniform int in [0, n). n must be positive.
func (s *Source) IntN(n int) int {
	return s.r.Intn(n)
}

// IntRange returns a uniform int in [lo, hi] inclusive.
func (s *Source) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo+1)
}

// Int63 returns a non-negative 63-bit integer.
func (s *Source) Int63() int64 {
	return s.r.Int63()
}

// Normal draws from N(mu, sigma^2).
func (s *Source) Normal(mu, sigma float64) float64 {
	return mu + sigma*s.r.NormFloat64()
}

// LogNormal draws exp(N(mu, sigma^2)).
func (s *Source) LogNormal(mu, sigma float64) float64 {
	return math.Exp(s.Normal(mu, sigma))
}

// Bernoulli reports true with probability p.
func (s *Source) Bernoulli(p float64) bool {
	return s.r.Float64() < p
}

// poissonChunk bounds the mean handed to one Knuth draw so exp(-lambda)
// stays well above float64 underflow.
const poissonChunk = 30.0

// Poisson draws a Poisson-distributed count with mean lambda. Large means
// are split into chunks of at most poissonChunk whose Knuth draws are
// summed; a sum of independent Poisson variables is Poisson with the summed
// mean, so the result is exact for every lambda.
func (s *Source) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	n := 0
	for lambda > poissonChunk {
		n += s.knuthPoisson(poissonChunk)
		lambda -= poissonChunk
	}
	return n + s.knuthPoisson(lambda)
}

// knuthPoisson is Knuth's multiplication method.
func (s *Source) knuthPoisson(lambda float64) int {
	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= s.r.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

// WeightedIndex picks an index with probability proportional to weights[i].
// It returns 0 when all weights are zero.
func (s *Source) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}
	target := s.r.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target < acc {
			return i
		}
	}
	return len(weights) - 1
}

// Read fills p with pseudo-random bytes. It lets a Source feed io.Reader
// consumers such as uuid.NewRandomFromReader without breaking determinism.
func (s *Source) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Choice returns a uniformly chosen element of items. items must be non-empty.
func Choice[T any](s *Source, items []T) T {
	return items[s.IntN(len(items))]
}

// WeightedChoice returns items[i] with probability proportional to weights[i].
func WeightedChoice[T any](s *Source, items []T, weights []float64) T {
	return items[s.WeightedIndex(weights)]
}
