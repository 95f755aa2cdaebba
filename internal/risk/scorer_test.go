package risk

import (
	"strings"
	"testing"
	"time"

	"shieldex/internal/domain"
	"shieldex/pkg/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScorer() *Scorer {
	return NewScorer(config.DefaultScoring())
}

func tx(txid string, height int64, ts time.Time, value float64, counterparty string) *domain.Transaction {
	return &domain.Transaction{
		TxID:         txid,
		Height:       height,
		Timestamp:    ts,
		Value:        decimal.NewFromFloat(value),
		Direction:    domain.DirectionIncoming,
		Pool:         domain.PoolSapling,
		Counterparty: counterparty,
	}
}

func TestScoreBoundsUnderAdversarialInput(t *testing.T) {
	s := newTestScorer()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Every penalty fires at once: dust value, huge memo, burst, repeated
	// counterparty, duplicate txid at two heights.
	worst := tx("deadbeef", 100, base, 0.0001, "zs1mixer")
	worst.Memo = strings.Repeat("x", 500)
	worst.Pool = domain.PoolOrchard

	set := []*domain.Transaction{
		worst,
		tx("deadbeef", 200, base.Add(time.Minute), 0.0001, "zs1mixer"),
		tx("cafe01", 300, base.Add(2*time.Minute), 1.0, "zs1mixer"),
	}

	for _, record := range set {
		score := s.Score(record, set)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, MaxScore)
	}

	assert.Zero(t, s.Score(worst, set))
}

func TestBaseScorePenalties(t *testing.T) {
	s := newTestScorer()
	cfg := config.DefaultScoring()

	clean := s.BaseScore(decimal.NewFromFloat(2.0), 0, domain.PoolSapling)
	assert.Equal(t, cfg.BaseScore, clean)

	dust := s.BaseScore(decimal.NewFromFloat(0.001), 0, domain.PoolSapling)
	assert.Less(t, dust, clean)

	longMemo := s.BaseScore(decimal.NewFromFloat(2.0), cfg.LongMemoLength+1, domain.PoolSapling)
	assert.Less(t, longMemo, clean)

	mediumMemo := s.BaseScore(decimal.NewFromFloat(2.0), cfg.LongMemoLength/2+1, domain.PoolSapling)
	assert.Less(t, mediumMemo, clean)
	assert.Greater(t, mediumMemo, longMemo)

	highValueShielded := s.BaseScore(decimal.NewFromFloat(cfg.HighValue+1), 0, domain.PoolOrchard)
	assert.Less(t, highValueShielded, clean)

	// The same value outside the most private pool is not penalized.
	highValueTransparent := s.BaseScore(decimal.NewFromFloat(cfg.HighValue+1), 0, domain.PoolTransparent)
	assert.Equal(t, clean, highValueTransparent)
}

func TestBurstDetection(t *testing.T) {
	s := newTestScorer()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	burst := []*domain.Transaction{
		tx("a1", 100, base, 1.0, "zs1a"),
		tx("a2", 105, base.Add(10*time.Minute), 1.0, "zs1b"),
		tx("a3", 110, base.Add(20*time.Minute), 1.0, "zs1c"),
	}
	spread := []*domain.Transaction{
		tx("b1", 100, base, 1.0, "zs1a"),
		tx("b2", 105, base.Add(48*time.Hour), 1.0, "zs1b"),
		tx("b3", 110, base.Add(96*time.Hour), 1.0, "zs1c"),
	}

	assert.Less(t, s.Score(burst[0], burst), s.Score(spread[0], spread))
}

func TestCounterpartyConcentration(t *testing.T) {
	s := newTestScorer()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	concentrated := []*domain.Transaction{
		tx("c1", 100, base, 1.0, "zs1same"),
		tx("c2", 105, base.Add(5*time.Hour), 1.0, "zs1same"),
		tx("c3", 110, base.Add(10*time.Hour), 1.0, "zs1other"),
		tx("c4", 115, base.Add(15*time.Hour), 1.0, "zs1third"),
	}
	diverse := []*domain.Transaction{
		tx("d1", 100, base, 1.0, "zs1a"),
		tx("d2", 105, base.Add(5*time.Hour), 1.0, "zs1b"),
		tx("d3", 110, base.Add(10*time.Hour), 1.0, "zs1c"),
		tx("d4", 115, base.Add(15*time.Hour), 1.0, "zs1d"),
	}

	assert.Less(t, s.Score(concentrated[0], concentrated), s.Score(diverse[0], diverse))
}

func TestDetectDoubleSpends(t *testing.T) {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	shared := []*domain.Transaction{
		tx("dupe", 100, base, 1.0, "zs1a"),
		tx("dupe", 200, base.Add(time.Hour), 1.0, "zs1b"),
		tx("unique", 300, base.Add(2*time.Hour), 1.0, "zs1c"),
	}
	flagged := DetectDoubleSpends(shared)
	require.Equal(t, []string{"dupe"}, flagged)

	unique := []*domain.Transaction{
		tx("one", 100, base, 1.0, "zs1a"),
		tx("two", 200, base.Add(time.Hour), 1.0, "zs1b"),
	}
	assert.Empty(t, DetectDoubleSpends(unique))

	// Same txid at the same height is a duplicate record, not a double spend.
	repeated := []*domain.Transaction{
		tx("same", 100, base, 1.0, "zs1a"),
		tx("same", 100, base, 1.0, "zs1a"),
	}
	assert.Empty(t, DetectDoubleSpends(repeated))
}

func TestEvaluateAggregates(t *testing.T) {
	s := newTestScorer()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	dusty := tx("riskdust", 100, base, 0.0001, "zs1a")
	dusty.Memo = strings.Repeat("m", 200)
	set := []*domain.Transaction{
		dusty,
		tx("riskdust", 250, base.Add(30*time.Hour), 0.0001, "zs1a"),
		tx("fine", 300, base.Add(60*time.Hour), 2.0, "zs1b"),
	}

	report := s.Evaluate(set)
	require.Equal(t, 3, report.Count)
	require.Len(t, report.Scores, 3)

	assert.GreaterOrEqual(t, report.OverallScore, 0.0)
	assert.LessOrEqual(t, report.OverallScore, float64(MaxScore))

	// The dusty double-spent record scores below the threshold; the txid is
	// flagged once despite appearing twice.
	assert.Equal(t, []string{"riskdust"}, report.Flagged)
	assert.Equal(t, []string{"riskdust"}, report.Anomalies)
}

func TestEvaluateEmptySet(t *testing.T) {
	s := newTestScorer()
	report := s.Evaluate(nil)

	assert.Zero(t, report.Count)
	assert.Zero(t, report.OverallScore)
	assert.Empty(t, report.Flagged)
	assert.Empty(t, report.Anomalies)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, ClampScore(-10))
	assert.Equal(t, MaxScore, ClampScore(200))
	assert.Equal(t, 50, ClampScore(50))
}
