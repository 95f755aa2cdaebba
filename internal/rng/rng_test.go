package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameSeedSameSequence(t *testing.T) {
	a := New(12345)
	b := New(12345)

	for i := 0; i < 1000; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)

	diverged := false
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			diverged = true
			break
		}
	}
	assert.True(t, diverged)
}

func TestFloat64Bounds(t *testing.T) {
	g := New(99)
	for i := 0; i < 10000; i++ {
		v := g.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestReseedRestartsSequence(t *testing.T) {
	g := New(777)
	first := []float64{g.Float64(), g.Float64(), g.Float64()}

	g.Reseed(777)
	second := []float64{g.Float64(), g.Float64(), g.Float64()}

	assert.Equal(t, first, second)
}

func TestIntRangeInclusive(t *testing.T) {
	g := New(5)
	seen := make(map[int]bool)

	for i := 0; i < 10000; i++ {
		v := g.IntRange(3, 7)
		require.GreaterOrEqual(t, v, 3)
		require.LessOrEqual(t, v, 7)
		seen[v] = true
	}

	// Every value in a small range should appear.
	assert.Len(t, seen, 5)
}

func TestIntRangeSwappedBounds(t *testing.T) {
	g := New(5)
	v := g.IntRange(7, 3)
	assert.GreaterOrEqual(t, v, 3)
	assert.LessOrEqual(t, v, 7)
}

func TestHexString(t *testing.T) {
	g := New(42)
	s := g.HexString(64)

	require.Len(t, s, 64)
	for _, c := range s {
		assert.Contains(t, hexDigits, string(c))
	}

	g.Reseed(42)
	assert.Equal(t, s, g.HexString(64))
}

func TestPick(t *testing.T) {
	g := New(3)
	items := []string{"a", "b", "c"}

	for i := 0; i < 100; i++ {
		assert.Contains(t, items, Pick(g, items))
	}
}

func TestWeightedPickRespectsZeroWeights(t *testing.T) {
	g := New(11)
	items := []string{"never", "always"}

	for i := 0; i < 200; i++ {
		assert.Equal(t, "always", WeightedPick(g, items, []float64{0, 1}))
	}
}

func TestWeightedPickZeroTotalFallsBackToUniform(t *testing.T) {
	g := New(11)
	items := []string{"a", "b"}

	v := WeightedPick(g, items, []float64{0, 0})
	assert.Contains(t, items, v)
}
