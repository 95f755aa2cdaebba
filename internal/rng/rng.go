// Package rng implements the deterministic pseudo-random generator behind
// all synthetic data. Each Generator carries its own state; there is no
// package-level generator, so unrelated generation paths never interleave.
package rng

import "strings"

const hexDigits = "0123456789abcdef"

// Generator is a mulberry32-style 32-bit PRNG. The same seed and call
// sequence always produce the same outputs.
type Generator struct {
	state uint32
}

func New(seed uint32) *Generator {
	return &Generator{state: seed}
}

// Reseed resets the generator to a fresh state, as if newly constructed.
func (g *Generator) Reseed(seed uint32) {
	g.state = seed
}

func (g *Generator) next() uint32 {
	g.state += 0x6d2b79f5
	z := g.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	return z ^ (z >> 14)
}

// Float64 returns a value in [0, 1).
func (g *Generator) Float64() float64 {
	return float64(g.next()) / (1 << 32)
}

// IntRange returns a uniform integer in [min, max] inclusive.
func (g *Generator) IntRange(min, max int) int {
	if max < min {
		min, max = max, min
	}
	span := max - min + 1
	return min + int(g.Float64()*float64(span))
}

// HexString returns n lowercase hex characters.
func (g *Generator) HexString(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(hexDigits[g.IntRange(0, 15)])
	}
	return b.String()
}

// Pick returns a uniformly chosen element. Panics on an empty slice, which
// never occurs for the fixed banks used by the generator.
func Pick[T any](g *Generator, items []T) T {
	return items[g.IntRange(0, len(items)-1)]
}

// WeightedPick chooses an element with probability proportional to its
// weight. Weights must be non-negative; a zero total falls back to uniform.
func WeightedPick[T any](g *Generator, items []T, weights []float64) T {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return Pick(g, items)
	}

	r := g.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return items[i]
		}
	}
	return items[len(items)-1]
}
