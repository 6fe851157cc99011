package service

import (
	"context"
	"fmt"
	"time"

	"github.com/example/tradingapp/internal/domain"
	"github.com/example/tradingapp/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeUpdateEvent is the event name published for every recorded trade.
const TradeUpdateEvent = "ReceiveTradeUpdate"

// Broadcaster delivers an event to all currently connected subscribers.
type Broadcaster interface {
	Publish(event string, payload any)
}

// CreateTradeInput carries the client-supplied trade fields. Identity and
// timestamp are assigned by the service, never taken from the client.
type CreateTradeInput struct {
	Symbol     string
	Quantity   int64
	Price      decimal.Decimal
	TraderName string
}

// TradeService records trades and answers point lookups. It holds no state
// between requests; any number of requests may be in flight concurrently.
type TradeService struct {
	store       store.TradeStore
	broadcaster Broadcaster
}

// NewTradeService creates a TradeService with the given dependencies.
// broadcaster may be nil, in which case no events are published.
func NewTradeService(tradeStore store.TradeStore, broadcaster Broadcaster) *TradeService {
	return &TradeService{
		store:       tradeStore,
		broadcaster: broadcaster,
	}
}

// CreateTrade assigns a fresh id and UTC timestamp, persists the trade,
// then broadcasts it to all connected subscribers. The write must succeed
// before the broadcast is attempted: a storage failure aborts the operation
// and no event is published. Broadcast failure is not compensated — the
// trade stays durably stored either way.
//
// There is no request-level idempotency: identical input yields a second,
// distinct record with a new id.
func (s *TradeService) CreateTrade(ctx context.Context, input CreateTradeInput) (*domain.Trade, error) {
	trade := &domain.Trade{
		ID:         uuid.New().String(),
		Symbol:     input.Symbol,
		Quantity:   input.Quantity,
		Price:      input.Price,
		TraderName: input.TraderName,
		Timestamp:  time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, trade); err != nil {
		return nil, fmt.Errorf("persist trade: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.Publish(TradeUpdateEvent, trade)
	}

	return trade, nil
}

// GetTrade looks up a trade by id. Absence surfaces as
// domain.ErrTradeNotFound, a normal outcome rather than a failure.
func (s *TradeService) GetTrade(ctx context.Context, id string) (*domain.Trade, error) {
	return s.store.FindByID(ctx, id)
}
