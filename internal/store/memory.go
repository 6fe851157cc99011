package store

import (
	"context"
	"sync"

	"github.com/example/tradingapp/internal/domain"
)

// MemoryTradeStore is a thread-safe in-memory trade store keyed by id.
// It backs the server when no document store is configured and doubles as
// the storage implementation in tests.
type MemoryTradeStore struct {
	mu     sync.RWMutex
	trades map[string]*domain.Trade
}

// NewMemoryTradeStore creates an empty MemoryTradeStore.
func NewMemoryTradeStore() *MemoryTradeStore {
	return &MemoryTradeStore{
		trades: make(map[string]*domain.Trade),
	}
}

// Insert stores a trade. It returns domain.ErrTradeAlreadyExists if a
// trade with the same id is already stored.
func (s *MemoryTradeStore) Insert(_ context.Context, t *domain.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.trades[t.ID]; exists {
		return domain.ErrTradeAlreadyExists
	}

	// Store a copy so later mutations by the caller don't leak in.
	cp := *t
	s.trades[t.ID] = &cp
	return nil
}

// FindByID retrieves a trade by id. It returns domain.ErrTradeNotFound
// if the trade does not exist. The returned trade is a copy.
func (s *MemoryTradeStore) FindByID(_ context.Context, id string) (*domain.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.trades[id]
	if !ok {
		return nil, domain.ErrTradeNotFound
	}
	cp := *t
	return &cp, nil
}

// Len returns the number of stored trades.
func (s *MemoryTradeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.trades)
}
