package server

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/foliodash/folio"
	"github.com/foliodash/folio/ingest"
)

// Store holds the uploaded datasets and the snapshot derived from them. A
// rebuild is triggered explicitly by an upload, and only once both datasets
// are present; until then Snapshot reports folio.ErrIncompleteData. Each
// rebuild swaps in a whole new snapshot.
type Store struct {
	builder *folio.Builder

	mu       sync.Mutex
	txs      []folio.Transaction
	prices   []folio.MarketPrice
	snapshot *folio.Portfolio
}

// Upload describes one accepted file upload.
type Upload struct {
	ID        string            `json:"id"`
	Rows      int               `json:"rows"`
	RowErrors []ingest.RowError `json:"rowErrors,omitempty"`
}

// NewStore creates an empty store building snapshots with the given builder.
func NewStore(b *folio.Builder) *Store {
	return &Store{builder: b}
}

// SetTransactions replaces the transaction history and rebuilds if possible.
// An upload with no usable rows is rejected and leaves the store untouched.
func (s *Store) SetTransactions(txs []folio.Transaction, rowErrs []ingest.RowError) (Upload, error) {
	if len(txs) == 0 {
		return Upload{}, fmt.Errorf("upload contains no transactions: %w", folio.ErrIncompleteData)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = txs
	return s.rebuild(len(txs), rowErrs)
}

// SetPrices replaces the market prices and rebuilds if possible. An upload
// with no usable rows is rejected and leaves the store untouched.
func (s *Store) SetPrices(prices []folio.MarketPrice, rowErrs []ingest.RowError) (Upload, error) {
	if len(prices) == 0 {
		return Upload{}, fmt.Errorf("upload contains no prices: %w", folio.ErrIncompleteData)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices = prices
	return s.rebuild(len(prices), rowErrs)
}

// rebuild derives a fresh snapshot when both datasets are present. Callers
// hold the lock. An upload is acknowledged even while the other dataset is
// still missing; only a failing build rejects it.
func (s *Store) rebuild(rows int, rowErrs []ingest.RowError) (Upload, error) {
	if len(s.txs) > 0 && len(s.prices) > 0 {
		snapshot, err := s.builder.Build(s.txs, s.prices)
		if err != nil {
			return Upload{}, err
		}
		s.snapshot = snapshot
	}
	return Upload{ID: uuid.NewString(), Rows: rows, RowErrors: rowErrs}, nil
}

// Snapshot returns the current portfolio, or folio.ErrIncompleteData while
// either dataset is missing.
func (s *Store) Snapshot() (*folio.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil, folio.ErrIncompleteData
	}
	return s.snapshot, nil
}
