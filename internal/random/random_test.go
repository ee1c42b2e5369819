package random

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Deterministic(t *testing.T) {
	a := New(7)
	b := New(7)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.Normal(0, 1), b.Normal(0, 1))
		assert.Equal(t, a.Poisson(3), b.Poisson(3))
	}
}

func TestNew_DifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)

	same := 0
	for i := 0; i < 20; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	assert.Less(t, same, 20)
}

func TestSetSeed_ResetsDefault(t *testing.T) {
	SetSeed(99)
	first := Default().Float64()

	SetSeed(99)
	second := Default().Float64()

	assert.Equal(t, first, second)
}

func TestUniform_Bounds(t *testing.T) {
	s := New(3)
	for i := 0; i < 1000; i++ {
		v := s.Uniform(5, 20)
		assert.GreaterOrEqual(t, v, 5.0)
		assert.Less(t, v, 20.0)
	}
}

func TestIntRange(t *testing.T) {
	s := New(3)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := s.IntRange(1, 4)
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 4)
		seen[v] = true
	}
	assert.Len(t, seen, 4)

	assert.Equal(t, 9, s.IntRange(9, 9))
	assert.Equal(t, 9, s.IntRange(9, 2))
}

func TestPoisson(t *testing.T) {
	tests := []struct {
		name   string
		lambda float64
	}{
		{"small mean", 0.5},
		{"moderate mean", 6},
		{"large mean", 50},
		{"several chunks", 95.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(11)
			n := 5000
			sum := 0
			for i := 0; i < n; i++ {
				k := s.Poisson(tt.lambda)
				require.GreaterOrEqual(t, k, 0)
				sum += k
			}
			mean := float64(sum) / float64(n)
			assert.InDelta(t, tt.lambda, mean, 0.1*tt.lambda+0.05)
		})
	}

	assert.Equal(t, 0, New(1).Poisson(0))
	assert.Equal(t, 0, New(1).Poisson(-2))
}

func TestPoisson_LargeMeanDispersion(t *testing.T) {
	for _, lambda := range []float64{50, 700} {
		s := New(23)
		n := 4000
		draws := make([]float64, n)
		sum := 0.0
		for i := range draws {
			draws[i] = float64(s.Poisson(lambda))
			sum += draws[i]
		}
		mean := sum / float64(n)
		ss := 0.0
		for _, d := range draws {
			ss += (d - mean) * (d - mean)
		}
		variance := ss / float64(n-1)

		assert.InDelta(t, lambda, mean, 0.02*lambda, "mean for lambda=%g", lambda)
		assert.InDelta(t, lambda, variance, 0.15*lambda, "variance for lambda=%g", lambda)
	}
}

func TestLogNormal_Positive(t *testing.T) {
	s := New(5)
	for i := 0; i < 1000; i++ {
		assert.Greater(t, s.LogNormal(9, 1.2), 0.0)
	}
}

func TestNormal_Moments(t *testing.T) {
	s := New(8)
	n := 20000
	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		v := s.Normal(10, 2)
		sum += v
		sumSq += v * v
	}
	mean := sum / float64(n)
	std := math.Sqrt(sumSq/float64(n) - mean*mean)
	assert.InDelta(t, 10, mean, 0.1)
	assert.InDelta(t, 2, std, 0.1)
}

func TestBernoulli_Extremes(t *testing.T) {
	s := New(1)
	for i := 0; i < 100; i++ {
		assert.False(t, s.Bernoulli(0))
		assert.True(t, s.Bernoulli(1))
	}
}

func TestWeightedIndex(t *testing.T) {
	s := New(2)

	for i := 0; i < 100; i++ {
		assert.Equal(t, 1, s.WeightedIndex([]float64{0, 1, 0}))
	}
	assert.Equal(t, 0, s.WeightedIndex([]float64{0, 0}))

	counts := make([]int, 2)
	for i := 0; i < 10000; i++ {
		counts[s.WeightedIndex([]float64{3, 1})]++
	}
	assert.InDelta(t, 0.75, float64(counts[0])/10000, 0.03)
}

func TestChoice(t *testing.T) {
	s := New(4)
	items := []string{"a", "b", "c"}
	for i := 0; i < 50; i++ {
		assert.Contains(t, items, Choice(s, items))
	}
	assert.Equal(t, "b", WeightedChoice(s, items, []float64{0, 1, 0}))
}

func TestRead_Deterministic(t *testing.T) {
	a, b := New(10), New(10)
	bufA, bufB := make([]byte, 16), make([]byte, 16)

	n, err := a.Read(bufA)
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	_, _ = b.Read(bufB)

	assert.Equal(t, bufA, bufB)
}
