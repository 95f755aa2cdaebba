// Package wallet holds the currently active viewing key and its derived
// transaction view. The store is the only stateful component of the core:
// everything below it is a pure function of its inputs.
package wallet

import (
	"sync"

	"shieldex/internal/dataset"
	"shieldex/internal/domain"
	"shieldex/internal/keys"
	"shieldex/internal/sampler"
	"shieldex/pkg/errors"
	"shieldex/pkg/logger"

	"github.com/shopspring/decimal"
)

// State of the store. Loading is transient: derivation is synchronous, so
// callers observe it only from inside the deriver.
type State string

const (
	StateEmpty     State = "empty"
	StateLoading   State = "loading"
	StatePopulated State = "populated"
)

// Deriver turns a viewing key into a wallet view. Injected so failure paths
// are testable; the default samples against the global dataset.
type Deriver interface {
	Derive(key string) (*domain.WalletView, error)
}

// DatasetDeriver samples a key against a dataset provider.
type DatasetDeriver struct {
	datasetFn func() []*domain.Transaction
}

// NewDatasetDeriver builds a deriver over the given dataset provider; a nil
// provider means the global dataset.
func NewDatasetDeriver(datasetFn func() []*domain.Transaction) *DatasetDeriver {
	if datasetFn == nil {
		datasetFn = dataset.Global
	}
	return &DatasetDeriver{datasetFn: datasetFn}
}

func (d *DatasetDeriver) Derive(key string) (*domain.WalletView, error) {
	ds := d.datasetFn()
	for _, tx := range ds {
		if tx == nil {
			return nil, errors.ErrMalformedDataset
		}
	}
	return sampler.Sample(key, ds), nil
}

type Store struct {
	mu      sync.RWMutex
	deriver Deriver
	logger  logger.Logger
	state   State
	view    *domain.WalletView
}

func NewStore(deriver Deriver, log logger.Logger) *Store {
	return &Store{
		deriver: deriver,
		logger:  log,
		state:   StateEmpty,
		view:    emptyView(""),
	}
}

// SetKey replaces the active key and synchronously derives its view. A
// failed derivation never propagates: the store logs it and settles into an
// empty-but-keyed view so the UI keeps rendering. An empty key clears the
// store.
func (s *Store) SetKey(key string) {
	if key == "" {
		s.ClearKey()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateLoading
	s.view = emptyView(key)

	view, err := s.deriver.Derive(key)
	if err != nil {
		s.logger.Error("Wallet derivation failed", map[string]interface{}{
			"fingerprint": keys.Fingerprint(key),
			"error":       err.Error(),
		})
		s.state = StatePopulated
		return
	}

	s.view = view
	s.state = StatePopulated

	s.logger.Info("Wallet view derived", map[string]interface{}{
		"fingerprint": view.SeedFingerprint,
		"count":       view.Count,
	})
}

// ClearKey discards the active key and view.
func (s *Store) ClearKey() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateEmpty
	s.view = emptyView("")
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) Loading() bool {
	return s.State() == StateLoading
}

func (s *Store) Key() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.Key
}

// View returns a detached copy of the current wallet view. Callers may
// append or reorder without racing SetKey; the records themselves are
// already clones of the dataset.
func (s *Store) View() *domain.WalletView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := *s.view
	cp.Transactions = append([]*domain.Transaction(nil), s.view.Transactions...)
	return &cp
}

func (s *Store) Transactions() []*domain.Transaction {
	return s.View().Transactions
}

func (s *Store) Balance() decimal.Decimal {
	return s.View().Balance
}

func emptyView(key string) *domain.WalletView {
	view := &domain.WalletView{
		Key:          key,
		Transactions: []*domain.Transaction{},
		Balance:      decimal.Zero,
	}
	if key != "" {
		view.SeedFingerprint = keys.Fingerprint(key)
	}
	return view
}
