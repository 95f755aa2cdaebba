// Package domain defines the in-memory data model of the shielded
// transaction explorer. Everything here is synthetic demo data; no record
// ever corresponds to a real on-chain transaction.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pool is the shielding mechanism a transaction settled in.
type Pool string

const (
	PoolTransparent Pool = "transparent"
	PoolSapling     Pool = "sapling"
	PoolOrchard     Pool = "orchard"
)

// Pools lists every pool, ordered from least to most private.
var Pools = []Pool{PoolTransparent, PoolSapling, PoolOrchard}

// Direction of a transaction relative to the wallet holding it.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
	DirectionInternal Direction = "internal"
)

// Tag is a classification label from a fixed vocabulary.
type Tag string

const (
	TagHighRisk  Tag = "high-risk"
	TagReview    Tag = "review"
	TagDust      Tag = "dust"
	TagExchange  Tag = "exchange"
	TagMixer     Tag = "mixer"
	TagRecurring Tag = "recurring"
	TagDonation  Tag = "donation"
)

// TagVocabulary enumerates every assignable tag.
var TagVocabulary = []Tag{
	TagHighRisk, TagReview, TagDust, TagExchange, TagMixer, TagRecurring, TagDonation,
}

// Note is one value fragment of a transaction.
type Note struct {
	ID       string          `json:"id"`
	Value    decimal.Decimal `json:"value"`
	Memo     string          `json:"memo,omitempty"`
	Incoming bool            `json:"incoming"`
	Pool     Pool            `json:"pool"`
}

// Transaction is a synthetic shielded transaction record.
//
// RiskScore runs 0-95 where higher means a better privacy posture; the risk
// scorer flags transactions whose score falls below its threshold.
type Transaction struct {
	TxID         string          `json:"txid"`
	Height       int64           `json:"height"`
	Timestamp    time.Time       `json:"timestamp"`
	Value        decimal.Decimal `json:"value"`
	Direction    Direction       `json:"direction"`
	Pool         Pool            `json:"pool"`
	Counterparty string          `json:"counterparty"`
	Memo         string          `json:"memo,omitempty"`
	Tags         []Tag           `json:"tags,omitempty"`
	RiskScore    int             `json:"risk_score"`
	Notes        []Note          `json:"notes"`
}

// Clone returns a shallow copy of the transaction. Slice headers are copied
// so callers may append or reorder without touching the source record.
func (t *Transaction) Clone() *Transaction {
	cp := *t
	if t.Tags != nil {
		cp.Tags = append([]Tag(nil), t.Tags...)
	}
	if t.Notes != nil {
		cp.Notes = append([]Note(nil), t.Notes...)
	}
	return &cp
}

// WalletView is the derived, read-only view of one viewing key.
type WalletView struct {
	Key             string          `json:"key"`
	Transactions    []*Transaction  `json:"transactions"`
	Balance         decimal.Decimal `json:"balance"`
	Count           int             `json:"count"`
	SeedFingerprint string          `json:"seed_fingerprint"`
}

// Balance sums incoming values and subtracts outgoing values. Internal
// transfers do not move the balance.
func Balance(txs []*Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		switch tx.Direction {
		case DirectionIncoming:
			total = total.Add(tx.Value)
		case DirectionOutgoing:
			total = total.Sub(tx.Value)
		}
	}
	return total
}
