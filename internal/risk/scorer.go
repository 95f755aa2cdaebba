// Package risk scores the privacy posture of synthetic shielded
// transactions.
//
// Every transaction gets a score in [0, MaxScore] where higher means better
// privacy. Penalties come from dust-value patterns, oversized memos,
// high-value transfers in the most private pool, bursts inside a short time
// window, repeated counterparty concentration, and duplicate txids appearing
// at multiple heights. Scores below the configured threshold mark a
// transaction as high risk.
package risk

import (
	"sort"

	"shieldex/internal/domain"
	"shieldex/pkg/config"

	"github.com/shopspring/decimal"
)

// MaxScore bounds every score regardless of inputs.
const MaxScore = 95

// Penalty points per signal.
const (
	penaltyDust          = 25
	penaltyLongMemo      = 15
	penaltyMediumMemo    = 7
	penaltyShieldedValue = 18
	penaltyBurst         = 10
	penaltyConcentration = 12
	penaltyDoubleSpend   = 30
)

type Scorer struct {
	cfg config.ScoringConfig
}

func NewScorer(cfg config.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Config returns the active scoring thresholds.
func (s *Scorer) Config() config.ScoringConfig {
	return s.cfg
}

// ClampScore bounds a raw score to [0, MaxScore].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// BaseScore evaluates the transaction-local heuristics: value pattern, memo
// length, and pool choice. Set-level signals are left to Score.
func (s *Scorer) BaseScore(value decimal.Decimal, memoLength int, pool domain.Pool) int {
	score := s.cfg.BaseScore

	if value.LessThan(decimal.NewFromFloat(s.cfg.DustValue)) {
		// Tiny fragments are the classic dust-attack probe.
		score -= penaltyDust
	}

	if memoLength > s.cfg.LongMemoLength {
		score -= penaltyLongMemo
	} else if memoLength > s.cfg.LongMemoLength/2 {
		score -= penaltyMediumMemo
	}

	if pool == domain.PoolOrchard && value.GreaterThan(decimal.NewFromFloat(s.cfg.HighValue)) {
		score -= penaltyShieldedValue
	}

	return ClampScore(score)
}

// Score evaluates a single transaction in the context of its containing set.
func (s *Scorer) Score(tx *domain.Transaction, set []*domain.Transaction) int {
	return s.scoreInContext(tx, set, countCounterparties(set), doubleSpendSet(set))
}

func (s *Scorer) scoreInContext(tx *domain.Transaction, set []*domain.Transaction, counterparties map[string]int, dupes map[string]bool) int {
	score := s.BaseScore(tx.Value, len(tx.Memo), tx.Pool)

	if s.burst(tx, set) {
		score -= penaltyBurst
	}

	if len(set) > 0 && tx.Counterparty != "" {
		share := float64(counterparties[tx.Counterparty]) / float64(len(set))
		if counterparties[tx.Counterparty] >= 2 && share > s.cfg.ConcentrationRatio {
			score -= penaltyConcentration
		}
	}

	if dupes[tx.TxID] {
		score -= penaltyDoubleSpend
	}

	return ClampScore(score)
}

// burst reports whether the set holds BurstCount or more transactions inside
// the burst window around tx, tx itself included.
func (s *Scorer) burst(tx *domain.Transaction, set []*domain.Transaction) bool {
	if s.cfg.BurstCount <= 0 {
		return false
	}

	n := 0
	for _, other := range set {
		delta := other.Timestamp.Sub(tx.Timestamp)
		if delta < 0 {
			delta = -delta
		}
		if delta <= s.cfg.BurstWindow {
			n++
		}
	}
	return n >= s.cfg.BurstCount
}

// TransactionScore pairs a txid with its contextual privacy score.
type TransactionScore struct {
	TxID  string `json:"txid"`
	Score int    `json:"score"`
}

// Report aggregates per-transaction scores over one transaction set.
type Report struct {
	OverallScore float64            `json:"overall_score"`
	Count        int                `json:"count"`
	Scores       []TransactionScore `json:"scores"`
	Flagged      []string           `json:"flagged"`
	Anomalies    []string           `json:"anomalies"`
}

// Evaluate scores every transaction in the set and aggregates: the overall
// score is the mean of per-transaction scores, Flagged lists txids scoring
// below the high-risk threshold, and Anomalies lists double-spend txids.
func (s *Scorer) Evaluate(set []*domain.Transaction) *Report {
	report := &Report{
		Count:     len(set),
		Scores:    make([]TransactionScore, 0, len(set)),
		Flagged:   []string{},
		Anomalies: DetectDoubleSpends(set),
	}
	if len(set) == 0 {
		return report
	}

	counterparties := countCounterparties(set)
	dupes := doubleSpendSet(set)
	flagged := make(map[string]bool)

	sum := 0
	for _, tx := range set {
		score := s.scoreInContext(tx, set, counterparties, dupes)
		sum += score
		report.Scores = append(report.Scores, TransactionScore{TxID: tx.TxID, Score: score})
		if score < s.cfg.FlagBelow && !flagged[tx.TxID] {
			flagged[tx.TxID] = true
			report.Flagged = append(report.Flagged, tx.TxID)
		}
	}

	report.OverallScore = float64(sum) / float64(len(set))
	return report
}

// DetectDoubleSpends returns the txids that appear at two or more distinct
// heights in the set, sorted for stable output. A txid repeated at the same
// height is a plain duplicate record, not an anomaly.
func DetectDoubleSpends(set []*domain.Transaction) []string {
	heights := make(map[string]map[int64]bool)
	for _, tx := range set {
		if heights[tx.TxID] == nil {
			heights[tx.TxID] = make(map[int64]bool)
		}
		heights[tx.TxID][tx.Height] = true
	}

	var flagged []string
	for txid, hs := range heights {
		if len(hs) >= 2 {
			flagged = append(flagged, txid)
		}
	}
	sort.Strings(flagged)
	if flagged == nil {
		flagged = []string{}
	}
	return flagged
}

func doubleSpendSet(set []*domain.Transaction) map[string]bool {
	dupes := make(map[string]bool)
	for _, txid := range DetectDoubleSpends(set) {
		dupes[txid] = true
	}
	return dupes
}

func countCounterparties(set []*domain.Transaction) map[string]int {
	counts := make(map[string]int)
	for _, tx := range set {
		if tx.Counterparty != "" {
			counts[tx.Counterparty]++
		}
	}
	return counts
}
