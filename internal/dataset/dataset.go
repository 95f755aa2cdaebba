// Package dataset owns the global synthetic transaction pool every wallet
// samples from. The pool is built lazily on first access with fixed
// construction parameters (seed 1337, 500 records) and is read-only
// afterwards: consumers must clone records before changing them.
package dataset

import (
	"sync"

	"shieldex/internal/domain"
	"shieldex/internal/generator"
	"shieldex/internal/risk"
	"shieldex/internal/rng"
	"shieldex/pkg/config"
)

var (
	once   sync.Once
	global []*domain.Transaction
)

// Global returns the process-wide dataset, constructing it on first call.
func Global() []*domain.Transaction {
	once.Do(func() {
		cfg := config.DefaultDataset()
		global = New(cfg.Seed, cfg.Size)
	})
	return global
}

// New builds an independent dataset of size records from the given seed,
// using the default generator and scoring parameters.
func New(seed uint32, size int) []*domain.Transaction {
	gen := generator.New(config.DefaultGenerator(), risk.NewScorer(config.DefaultScoring()))
	return gen.Generate(rng.New(seed), size)
}
