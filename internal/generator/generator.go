// Package generator produces synthetic shielded transaction records from a
// caller-supplied PRNG. The same generator config, PRNG seed, and count
// always yield the same records (timestamps shift with wall clock, but their
// relative order and every other field are stable).
package generator

import (
	"sort"
	"time"

	"shieldex/internal/domain"
	"shieldex/internal/risk"
	"shieldex/internal/rng"
	"shieldex/pkg/config"

	"github.com/shopspring/decimal"
)

// Bounded noise applied to the heuristic risk score of each record.
const riskNoise = 8

// Three fixed synthetic counterparty clusters. Repeated draws from the same
// cluster simulate the recognizable counterparty patterns the scorer keys on.
var addressClusters = [][]string{
	{ // retail wallets
		"zs1p7xk92qfmrvd03u5a8tnl4hgcw6ye0sjdq2zr8mk5t4vxn9c7bh3lfa0u6dwpsg",
		"zs1hw3ud84kqtzxl7ncr2av95jfm0ybse6g1dpk8o4t7qmxhrc5v2nwfa9lu3ebsd",
		"zs1m4ye7ptck28rqvl0ahbn6sfw3xdg9ju5zt1eo8imcqkh2r7v4pyna6bwlf0sdu",
		"zs1xj6tr30mqwkfvahb2sy98cel4dn7gup5zo1i9m3tkxqjr6h0vcy2swfa8nlbed",
	},
	{ // exchange hot wallets
		"zs1exch4ng0qlt59wkfmv27ahbyd3cnrjs8xg6upze1o0i4m9tkhq2r7vcy5swfan",
		"zs1exch4ng1b8mdw36prhk0tyfcu9lnv5aqs2xj7gz4eo1i8m5tkxq9r3h6v0cy2s",
		"zs1exch4ng2nf7sehw51qrtm38kvdy0cbjl9xa6upgz4zo2i7m1tkxq5r9h3v8cy0",
	},
	{ // mixer / attacker cluster
		"zs1m1x3rc7u5tq90wlkfnv2dahby8scjr4xg3upze6o9i2m0tkhq1r5vcy7swfan8",
		"zs1m1x3rd2k9mew54prhb6tyfcu1lnv0aqs8xj3gz7eo5i1m2tkxq4r8h9v6cy3sw",
		"zs1m1x3re8qf2sehw69drtm07kvdy4cbjl5xa1upgz3zo8i6m4tkxq2r0h7v1cy9s",
	},
}

// Cluster weights: retail-heavy, mixers rare.
var clusterWeights = []float64{0.55, 0.30, 0.15}

var poolWeights = []float64{0.20, 0.35, 0.45}

var memoBank = []string{
	"rent for march",
	"thanks for lunch",
	"invoice #2231",
	"refund",
	"payroll",
	"gm",
	"coffee money",
	"weekly allowance",
	"for the concert tickets, let me know if it didn't arrive and I'll resend from the other wallet — also say hi to everyone at the meetup this weekend",
	"donation to node operators fund, keep the infrastructure running, receipts available on request from the treasury working group mailing list",
}

// Extra tags assigned with low probability on top of score-derived ones.
var bonusTags = []domain.Tag{
	domain.TagExchange, domain.TagMixer, domain.TagRecurring, domain.TagDonation,
}

type Generator struct {
	cfg    config.GeneratorConfig
	scorer *risk.Scorer
	now    func() time.Time
}

func New(cfg config.GeneratorConfig, scorer *risk.Scorer) *Generator {
	return &Generator{
		cfg:    cfg,
		scorer: scorer,
		now:    time.Now,
	}
}

// WithClock replaces the wall clock, for tests.
func (gen *Generator) WithClock(now func() time.Time) *Generator {
	gen.now = now
	return gen
}

// Generate produces count transaction records, sorted by timestamp
// descending (txid breaks ties). Heights increase monotonically with the
// generation index; timestamps never exceed the current time. Always
// succeeds for any non-negative count.
func (gen *Generator) Generate(g *rng.Generator, count int) []*domain.Transaction {
	txs := make([]*domain.Transaction, 0, count)
	now := gen.now().Truncate(time.Second)

	for i := 0; i < count; i++ {
		txs = append(txs, gen.generateOne(g, i, now))
	}

	sort.SliceStable(txs, func(a, b int) bool {
		if !txs[a].Timestamp.Equal(txs[b].Timestamp) {
			return txs[a].Timestamp.After(txs[b].Timestamp)
		}
		return txs[a].TxID < txs[b].TxID
	})

	return txs
}

func (gen *Generator) generateOne(g *rng.Generator, index int, now time.Time) *domain.Transaction {
	txid := g.HexString(64)
	height := gen.cfg.BaseHeight + int64(index)*gen.cfg.HeightStep

	windowSeconds := int(gen.cfg.TimeWindow / time.Second)
	timestamp := now.Add(-time.Duration(g.IntRange(0, windowSeconds)) * time.Second)

	direction := domain.DirectionOutgoing
	if g.Float64() < gen.cfg.IncomingProbability {
		direction = domain.DirectionIncoming
	}

	value := gen.drawValue(g)
	pool := rng.WeightedPick(g, domain.Pools, poolWeights)
	counterparty := rng.Pick(g, rng.WeightedPick(g, addressClusters, clusterWeights))

	memo := ""
	if g.Float64() < gen.cfg.MemoProbability {
		memo = rng.Pick(g, memoBank)
	}

	notes := gen.splitNotes(g, value, direction, pool)

	score := risk.ClampScore(
		gen.scorer.BaseScore(value, len(memo), pool) + g.IntRange(-riskNoise, riskNoise),
	)

	return &domain.Transaction{
		TxID:         txid,
		Height:       height,
		Timestamp:    timestamp,
		Value:        value,
		Direction:    direction,
		Pool:         pool,
		Counterparty: counterparty,
		Memo:         memo,
		Tags:         gen.deriveTags(g, score, value),
		RiskScore:    score,
		Notes:        notes,
	}
}

func (gen *Generator) drawValue(g *rng.Generator) decimal.Decimal {
	dust := g.Float64() < gen.cfg.DustProbability
	v := gen.cfg.MinValue + g.Float64()*(gen.cfg.MaxValue-gen.cfg.MinValue)
	if dust {
		// Dust fragments sit well below the scorer's dust threshold.
		v = 0.0001 + g.Float64()*0.005
	}
	return decimal.NewFromFloat(v).Round(4)
}

// splitNotes fractures the transaction value into 1-3 notes whose values sum
// exactly to the transaction value.
func (gen *Generator) splitNotes(g *rng.Generator, value decimal.Decimal, direction domain.Direction, pool domain.Pool) []domain.Note {
	n := g.IntRange(1, 3)
	notes := make([]domain.Note, 0, n)
	remainder := value

	for i := 0; i < n; i++ {
		noteValue := remainder
		if i < n-1 {
			frac := 0.2 + g.Float64()*0.6
			noteValue = remainder.Mul(decimal.NewFromFloat(frac)).Round(4)
			if noteValue.GreaterThan(remainder) {
				noteValue = remainder
			}
			remainder = remainder.Sub(noteValue)
		}

		memo := ""
		if g.Float64() < gen.cfg.MemoProbability {
			memo = rng.Pick(g, memoBank)
		}

		notes = append(notes, domain.Note{
			ID:       g.HexString(16),
			Value:    noteValue,
			Memo:     memo,
			Incoming: direction == domain.DirectionIncoming,
			Pool:     pool,
		})
	}

	return notes
}

func (gen *Generator) deriveTags(g *rng.Generator, score int, value decimal.Decimal) []domain.Tag {
	var tags []domain.Tag

	flagBelow := gen.scorer.Config().FlagBelow
	switch {
	case score < flagBelow:
		tags = append(tags, domain.TagHighRisk)
	case score < flagBelow+15:
		tags = append(tags, domain.TagReview)
	}

	if value.LessThan(decimal.NewFromFloat(gen.scorer.Config().DustValue)) {
		tags = append(tags, domain.TagDust)
	}

	if g.Float64() < gen.cfg.TagProbability {
		bonus := rng.Pick(g, bonusTags)
		if !containsTag(tags, bonus) {
			tags = append(tags, bonus)
		}
	}

	return tags
}

func containsTag(tags []domain.Tag, tag domain.Tag) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
