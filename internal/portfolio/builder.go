// Package portfolio composes multiple synthetic wallets into one
// portfolio-level transaction set for demo scenarios (a handful of users, an
// exchange, an attacker cluster). Building is a pure function of the options
// and the reference dataset.
package portfolio

import (
	"fmt"
	"sort"
	"time"

	"shieldex/internal/domain"
	"shieldex/internal/generator"
	"shieldex/internal/risk"
	"shieldex/internal/rng"
	"shieldex/internal/sampler"
	"shieldex/pkg/config"

	"github.com/google/uuid"
)

// Category of a synthetic wallet identity.
type Category string

const (
	CategoryUser     Category = "user"
	CategoryExchange Category = "exchange"
	CategoryAttacker Category = "attacker"
)

// Sampling weight per category: exchanges dominate volume, attacker clusters
// stay under-weighted so they surface as a minority signal.
var categoryWeights = map[Category]float64{
	CategoryUser:     1.0,
	CategoryExchange: 1.6,
	CategoryAttacker: 0.5,
}

// Options selects the shape of the portfolio. Seed makes wallet identities
// and any padding reproducible.
type Options struct {
	Users            int    `json:"users" validate:"min=0,max=50"`
	Exchanges        int    `json:"exchanges" validate:"min=0,max=10"`
	AttackerClusters int    `json:"attacker_clusters" validate:"min=0,max=10"`
	Count            int    `json:"count" validate:"required,min=1,max=5000"`
	Seed             uint32 `json:"seed"`
}

// Wallet is one synthetic identity inside a portfolio.
type Wallet struct {
	ID       uuid.UUID `json:"id"`
	Key      string    `json:"key"`
	Category Category  `json:"category"`
	Target   int       `json:"target"`
	Sampled  int       `json:"sampled"`
}

// Portfolio is the composed transaction set plus the identities behind it.
type Portfolio struct {
	Wallets      []Wallet              `json:"wallets"`
	Transactions []*domain.Transaction `json:"transactions"`
	Count        int                   `json:"count"`
}

// Build samples every synthetic wallet against the dataset, concatenates the
// results, pads with freshly generated records when short of the target
// count, truncates to the exact target, and sorts descending by timestamp.
func Build(opts Options, dataset []*domain.Transaction) *Portfolio {
	identities := identitiesFor(opts)

	p := &Portfolio{
		Wallets:      identities,
		Transactions: []*domain.Transaction{},
	}
	if opts.Count <= 0 {
		return p
	}

	totalWeight := 0.0
	for _, w := range identities {
		totalWeight += categoryWeights[w.Category]
	}

	for i := range identities {
		w := &identities[i]
		target := 0
		if totalWeight > 0 {
			target = int(float64(opts.Count) * categoryWeights[w.Category] / totalWeight)
		}
		if target < 1 {
			target = 1
		}
		if target > len(dataset) {
			target = len(dataset)
		}
		w.Target = target

		view := sampler.SampleN(w.Key, dataset, target)
		w.Sampled = view.Count
		p.Transactions = append(p.Transactions, view.Transactions...)
	}

	if shortfall := opts.Count - len(p.Transactions); shortfall > 0 {
		anchor := paddingAnchor(dataset)
		gen := generator.New(config.DefaultGenerator(), risk.NewScorer(config.DefaultScoring())).
			WithClock(func() time.Time { return anchor })
		padding := gen.Generate(rng.New(opts.Seed^0x9e3779b9), shortfall)
		p.Transactions = append(p.Transactions, padding...)
	}

	if len(p.Transactions) > opts.Count {
		p.Transactions = p.Transactions[:opts.Count]
	}

	sort.SliceStable(p.Transactions, func(a, b int) bool {
		if !p.Transactions[a].Timestamp.Equal(p.Transactions[b].Timestamp) {
			return p.Transactions[a].Timestamp.After(p.Transactions[b].Timestamp)
		}
		return p.Transactions[a].TxID < p.Transactions[b].TxID
	})

	p.Count = len(p.Transactions)
	return p
}

// paddingAnchor pins padded timestamps to the dataset's newest record so the
// same options and dataset build the same portfolio at any wall time. An
// empty dataset anchors to a fixed instant for the same reason.
func paddingAnchor(dataset []*domain.Transaction) time.Time {
	var anchor time.Time
	for _, tx := range dataset {
		if tx.Timestamp.After(anchor) {
			anchor = tx.Timestamp
		}
	}
	if anchor.IsZero() {
		anchor = time.Unix(0, 0).UTC()
	}
	return anchor
}

// identitiesFor derives the deterministic wallet identities for the options:
// the synthetic key encodes category, index, and seed, and the identity UUID
// is the v5 UUID of that key.
func identitiesFor(opts Options) []Wallet {
	var identities []Wallet

	add := func(category Category, n int) {
		for i := 0; i < n; i++ {
			key := fmt.Sprintf("%s-%d-%08x", category, i, opts.Seed)
			identities = append(identities, Wallet{
				ID:       uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)),
				Key:      key,
				Category: category,
			})
		}
	}

	add(CategoryUser, opts.Users)
	add(CategoryExchange, opts.Exchanges)
	add(CategoryAttacker, opts.AttackerClusters)

	return identities
}
