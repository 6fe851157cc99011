package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/example/tradingapp/internal/domain"
	"github.com/shopspring/decimal"
)

func newTestTrade(id string) *domain.Trade {
	return &domain.Trade{
		ID:         id,
		Symbol:     "AAPL",
		Quantity:   100,
		Price:      decimal.RequireFromString("150.25"),
		TraderName: "J. Doe",
		Timestamp:  time.Now().UTC(),
	}
}

func TestMemoryTradeStore_Insert_and_FindByID(t *testing.T) {
	s := NewMemoryTradeStore()
	ctx := context.Background()

	trade := newTestTrade("trade-1")
	if err := s.Insert(ctx, trade); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}

	got, err := s.FindByID(ctx, "trade-1")
	if err != nil {
		t.Fatalf("unexpected find error: %v", err)
	}
	if got.ID != trade.ID {
		t.Errorf("ID = %q, want %q", got.ID, trade.ID)
	}
	if got.Symbol != trade.Symbol {
		t.Errorf("Symbol = %q, want %q", got.Symbol, trade.Symbol)
	}
	if got.Quantity != trade.Quantity {
		t.Errorf("Quantity = %d, want %d", got.Quantity, trade.Quantity)
	}
	if !got.Price.Equal(trade.Price) {
		t.Errorf("Price = %s, want %s", got.Price, trade.Price)
	}
	if got.TraderName != trade.TraderName {
		t.Errorf("TraderName = %q, want %q", got.TraderName, trade.TraderName)
	}
	if !got.Timestamp.Equal(trade.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, trade.Timestamp)
	}
}

func TestMemoryTradeStore_FindByID_NotFound(t *testing.T) {
	s := NewMemoryTradeStore()

	_, err := s.FindByID(context.Background(), "never-created")
	if !errors.Is(err, domain.ErrTradeNotFound) {
		t.Fatalf("expected ErrTradeNotFound, got %v", err)
	}
}

func TestMemoryTradeStore_Insert_Duplicate(t *testing.T) {
	s := NewMemoryTradeStore()
	ctx := context.Background()

	if err := s.Insert(ctx, newTestTrade("trade-1")); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	err := s.Insert(ctx, newTestTrade("trade-1"))
	if !errors.Is(err, domain.ErrTradeAlreadyExists) {
		t.Fatalf("expected ErrTradeAlreadyExists, got %v", err)
	}
}

func TestMemoryTradeStore_FindByID_ReturnsCopy(t *testing.T) {
	s := NewMemoryTradeStore()
	ctx := context.Background()

	if err := s.Insert(ctx, newTestTrade("trade-1")); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}

	got, err := s.FindByID(ctx, "trade-1")
	if err != nil {
		t.Fatalf("unexpected find error: %v", err)
	}
	got.Symbol = "MUTATED"

	// Internal state should be unaffected.
	again, err := s.FindByID(ctx, "trade-1")
	if err != nil {
		t.Fatalf("unexpected find error: %v", err)
	}
	if again.Symbol != "AAPL" {
		t.Fatal("FindByID should return a copy; internal state was mutated")
	}
}

func TestMemoryTradeStore_Insert_CopiesInput(t *testing.T) {
	s := NewMemoryTradeStore()
	ctx := context.Background()

	trade := newTestTrade("trade-1")
	if err := s.Insert(ctx, trade); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	trade.Symbol = "MUTATED"

	got, err := s.FindByID(ctx, "trade-1")
	if err != nil {
		t.Fatalf("unexpected find error: %v", err)
	}
	if got.Symbol != "AAPL" {
		t.Fatal("Insert should store a copy; caller mutation leaked in")
	}
}

func TestMemoryTradeStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryTradeStore()
	ctx := context.Background()
	var wg sync.WaitGroup

	// Concurrently insert distinct trades.
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := s.Insert(ctx, newTestTrade(fmt.Sprintf("trade-%d", i))); err != nil {
				t.Errorf("insert trade-%d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if s.Len() != 100 {
		t.Fatalf("expected 100 trades, got %d", s.Len())
	}

	// Concurrent reads while inserting more trades.
	for i := 100; i < 200; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = s.Insert(ctx, newTestTrade(fmt.Sprintf("trade-%d", i)))
		}(i)
		go func(i int) {
			defer wg.Done()
			_, _ = s.FindByID(ctx, fmt.Sprintf("trade-%d", i-100))
		}(i)
	}
	wg.Wait()

	if s.Len() != 200 {
		t.Fatalf("expected 200 trades, got %d", s.Len())
	}
}
