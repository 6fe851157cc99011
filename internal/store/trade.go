package store

import (
	"context"

	"github.com/example/tradingapp/internal/domain"
)

// TradeStore is the storage gateway for trade records: insert and point
// lookup by id, nothing more. There is no update or delete, and no
// transactional guarantee beyond a single document write.
type TradeStore interface {
	// Insert stores a new trade record.
	Insert(ctx context.Context, t *domain.Trade) error

	// FindByID returns the trade with the given id, or
	// domain.ErrTradeNotFound if no such record exists.
	FindByID(ctx context.Context, id string) (*domain.Trade, error)
}
