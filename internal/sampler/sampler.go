// Package sampler derives a wallet view from a viewing key by selecting a
// deterministic pseudo-random subset of a reference dataset. Same key, same
// dataset, same view — this is the load-bearing property of the demo.
package sampler

import (
	"shieldex/internal/domain"
	"shieldex/internal/keys"
	"shieldex/internal/rng"
)

// Sampled wallet sizes stay within [MinCount, MaxCount], clamped further to
// the dataset size.
const (
	MinCount = 5
	MaxCount = 20
)

// Sample derives the wallet view for key against the dataset. The count is
// derived from the key's seed; every other selection decision comes from a
// PRNG seeded by the same value. The dataset is never mutated; returned
// transactions are clones.
func Sample(key string, dataset []*domain.Transaction) *domain.WalletView {
	seed := keys.SeedFromKey(key)
	count := MinCount + int(seed%(MaxCount-MinCount+1))
	return sample(key, seed, count, dataset)
}

// SampleN is Sample with a caller-chosen record count, used by the portfolio
// builder to weight wallet categories. The count is still clamped to the
// dataset size.
func SampleN(key string, dataset []*domain.Transaction, count int) *domain.WalletView {
	return sample(key, keys.SeedFromKey(key), count, dataset)
}

func sample(key string, seed uint32, count int, dataset []*domain.Transaction) *domain.WalletView {
	view := &domain.WalletView{
		Key:             key,
		Transactions:    []*domain.Transaction{},
		SeedFingerprint: keys.Fingerprint(key),
	}

	n := len(dataset)
	if count > n {
		count = n
	}
	if count <= 0 {
		view.Balance = domain.Balance(nil)
		return view
	}

	g := rng.New(seed)
	taken := make([]bool, n)

	for picked := 0; picked < count; picked++ {
		idx := g.IntRange(0, n-1)
		// Collisions resolve by probing forward, wrapping at the end.
		for taken[idx] {
			idx = (idx + 1) % n
		}
		taken[idx] = true
		view.Transactions = append(view.Transactions, dataset[idx].Clone())
	}

	view.Count = len(view.Transactions)
	view.Balance = domain.Balance(view.Transactions)
	return view
}
