package wallet

import (
	"testing"

	"shieldex/internal/dataset"
	"shieldex/internal/domain"
	"shieldex/pkg/errors"
	"shieldex/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockDeriver struct {
	mock.Mock
}

func (m *MockDeriver) Derive(key string) (*domain.WalletView, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletView), args.Error(1)
}

// --- Tests ---

func TestStoreStartsEmpty(t *testing.T) {
	store := NewStore(NewDatasetDeriver(nil), logger.NewNop())

	assert.Equal(t, StateEmpty, store.State())
	assert.False(t, store.Loading())
	assert.Empty(t, store.Key())
	assert.Empty(t, store.Transactions())
	assert.True(t, store.Balance().IsZero())
}

func TestSetKeyPopulatesView(t *testing.T) {
	deriver := NewDatasetDeriver(func() []*domain.Transaction {
		return dataset.New(1337, 500)
	})
	store := NewStore(deriver, logger.NewNop())

	store.SetKey("ufvkdemokey1")

	require.Equal(t, StatePopulated, store.State())
	view := store.View()
	assert.Equal(t, "ufvkdemokey1", view.Key)
	assert.NotEmpty(t, view.SeedFingerprint)
	assert.GreaterOrEqual(t, view.Count, 5)
	assert.LessOrEqual(t, view.Count, 20)

	// Balance identity over the derived list.
	assert.True(t, store.Balance().Equal(domain.Balance(view.Transactions)))
}

func TestSetKeyReplacesPreviousView(t *testing.T) {
	deriver := NewDatasetDeriver(func() []*domain.Transaction {
		return dataset.New(1337, 500)
	})
	store := NewStore(deriver, logger.NewNop())

	store.SetKey("first-key")
	first := store.View()
	store.SetKey("second-key")
	second := store.View()

	assert.Equal(t, "second-key", second.Key)
	assert.NotEqual(t, first.SeedFingerprint, second.SeedFingerprint)
}

func TestClearKeyResetsToEmpty(t *testing.T) {
	store := NewStore(NewDatasetDeriver(nil), logger.NewNop())

	store.SetKey("some-key")
	require.Equal(t, StatePopulated, store.State())

	store.ClearKey()
	assert.Equal(t, StateEmpty, store.State())
	assert.Empty(t, store.Key())
	assert.Empty(t, store.Transactions())
	assert.True(t, store.Balance().IsZero())
}

func TestSetEmptyKeyClears(t *testing.T) {
	store := NewStore(NewDatasetDeriver(nil), logger.NewNop())

	store.SetKey("some-key")
	store.SetKey("")

	assert.Equal(t, StateEmpty, store.State())
	assert.Empty(t, store.Key())
}

func TestDerivationFailureSettlesEmptyButKeyed(t *testing.T) {
	deriver := new(MockDeriver)
	deriver.On("Derive", "broken-key").Return(nil, errors.ErrMalformedDataset)

	store := NewStore(deriver, logger.NewNop())
	store.SetKey("broken-key")

	// The failure never propagates; the key survives with an empty view.
	assert.Equal(t, StatePopulated, store.State())
	assert.Equal(t, "broken-key", store.Key())
	assert.Empty(t, store.Transactions())
	assert.True(t, store.Balance().IsZero())
	assert.NotEmpty(t, store.View().SeedFingerprint)

	deriver.AssertExpectations(t)
}

func TestDatasetDeriverRejectsMalformedDataset(t *testing.T) {
	deriver := NewDatasetDeriver(func() []*domain.Transaction {
		return []*domain.Transaction{nil}
	})

	_, err := deriver.Derive("any")
	assert.ErrorIs(t, err, errors.ErrMalformedDataset)
}

func TestViewReturnsDetachedCopy(t *testing.T) {
	deriver := NewDatasetDeriver(func() []*domain.Transaction {
		return dataset.New(1337, 500)
	})
	store := NewStore(deriver, logger.NewNop())
	store.SetKey("ufvkdemokey1")

	view := store.View()
	originalCount := view.Count

	view.Key = "tampered"
	view.Transactions = append(view.Transactions, &domain.Transaction{TxID: "injected"})

	assert.Equal(t, "ufvkdemokey1", store.Key())
	assert.Len(t, store.Transactions(), originalCount)
	for _, tx := range store.Transactions() {
		assert.NotEqual(t, "injected", tx.TxID)
	}
}

func TestSetKeyDeterministicView(t *testing.T) {
	deriver := NewDatasetDeriver(func() []*domain.Transaction {
		return dataset.New(1337, 500)
	})
	store := NewStore(deriver, logger.NewNop())

	store.SetKey("repeat-key")
	a := store.View()
	store.ClearKey()
	store.SetKey("repeat-key")
	b := store.View()

	require.Equal(t, a.Count, b.Count)
	for i := range a.Transactions {
		assert.Equal(t, a.Transactions[i].TxID, b.Transactions[i].TxID)
	}
}
