package portfolio

import (
	"testing"
	"time"

	"shieldex/internal/dataset"
	"shieldex/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset(t *testing.T) []*domain.Transaction {
	t.Helper()
	return dataset.New(1337, 500)
}

func TestBuildExactCountSortedDescending(t *testing.T) {
	opts := Options{Users: 3, Exchanges: 1, AttackerClusters: 1, Count: 120, Seed: 42}
	p := Build(opts, testDataset(t))

	require.Equal(t, 120, p.Count)
	require.Len(t, p.Transactions, 120)
	require.Len(t, p.Wallets, 5)

	for i := 1; i < len(p.Transactions); i++ {
		assert.False(t, p.Transactions[i].Timestamp.After(p.Transactions[i-1].Timestamp))
	}
}

func TestBuildIsPure(t *testing.T) {
	ds := testDataset(t)
	opts := Options{Users: 2, Exchanges: 1, AttackerClusters: 1, Count: 80, Seed: 7}

	a := Build(opts, ds)
	b := Build(opts, ds)

	require.Equal(t, a.Count, b.Count)
	for i := range a.Transactions {
		assert.Equal(t, a.Transactions[i].TxID, b.Transactions[i].TxID)
		assert.Equal(t, a.Transactions[i].Timestamp, b.Transactions[i].Timestamp)
		assert.Equal(t, a.Transactions[i].Height, b.Transactions[i].Height)
		assert.True(t, a.Transactions[i].Value.Equal(b.Transactions[i].Value))
	}
	for i := range a.Wallets {
		assert.Equal(t, a.Wallets[i].ID, b.Wallets[i].ID)
		assert.Equal(t, a.Wallets[i].Key, b.Wallets[i].Key)
	}
}

func TestBuildStableAcrossWallClock(t *testing.T) {
	// A small dataset forces padding; padded records must not track the wall
	// clock, so two builds separated in time are identical record for record.
	ds := dataset.New(3, 10)
	opts := Options{Users: 1, Count: 40, Seed: 1}

	a := Build(opts, ds)
	time.Sleep(1100 * time.Millisecond)
	b := Build(opts, ds)

	require.Equal(t, a.Count, b.Count)
	for i := range a.Transactions {
		assert.Equal(t, a.Transactions[i].TxID, b.Transactions[i].TxID)
		assert.Equal(t, a.Transactions[i].Timestamp, b.Transactions[i].Timestamp)
	}
}

func TestPaddingNeverPostdatesDataset(t *testing.T) {
	ds := dataset.New(3, 10)
	newest := ds[0].Timestamp
	for _, tx := range ds {
		if tx.Timestamp.After(newest) {
			newest = tx.Timestamp
		}
	}

	p := Build(Options{Users: 1, Count: 40, Seed: 1}, ds)
	for _, tx := range p.Transactions {
		assert.False(t, tx.Timestamp.After(newest), "padded record %s postdates the dataset", tx.TxID)
	}
}

func TestWalletIdentitiesDeterministic(t *testing.T) {
	opts := Options{Users: 1, Exchanges: 1, AttackerClusters: 1, Count: 30, Seed: 99}

	a := Build(opts, testDataset(t))
	require.Len(t, a.Wallets, 3)

	assert.Equal(t, CategoryUser, a.Wallets[0].Category)
	assert.Equal(t, CategoryExchange, a.Wallets[1].Category)
	assert.Equal(t, CategoryAttacker, a.Wallets[2].Category)

	// v5 UUIDs derive from the synthetic key, never from randomness.
	b := Build(opts, testDataset(t))
	for i := range a.Wallets {
		assert.Equal(t, a.Wallets[i].ID, b.Wallets[i].ID)
	}
}

func TestAttackerClustersUnderWeighted(t *testing.T) {
	opts := Options{Users: 1, Exchanges: 1, AttackerClusters: 1, Count: 90, Seed: 5}
	p := Build(opts, testDataset(t))

	var user, attacker Wallet
	for _, w := range p.Wallets {
		switch w.Category {
		case CategoryUser:
			user = w
		case CategoryAttacker:
			attacker = w
		}
	}

	assert.Less(t, attacker.Target, user.Target)
}

func TestPaddingFillsShortfall(t *testing.T) {
	// One user sampling at most the dataset size still pads to the target.
	small := dataset.New(3, 10)
	opts := Options{Users: 1, Count: 40, Seed: 1}

	p := Build(opts, small)
	assert.Equal(t, 40, p.Count)
}

func TestZeroWalletsStillHitsTarget(t *testing.T) {
	opts := Options{Count: 25, Seed: 3}
	p := Build(opts, testDataset(t))

	assert.Empty(t, p.Wallets)
	assert.Equal(t, 25, p.Count)
}

func TestZeroCount(t *testing.T) {
	opts := Options{Users: 2, Count: 0, Seed: 3}
	p := Build(opts, testDataset(t))

	assert.Zero(t, p.Count)
	assert.Empty(t, p.Transactions)
}
