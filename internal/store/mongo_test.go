package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// The document mapping is the only part of the Mongo store testable without
// a running server; the rest is a thin pass-through to the driver.

func TestTradeDocument_RoundTrip(t *testing.T) {
	trade := newTestTrade("2e9c0a51-4d3f-4e0d-9e38-6a1c5a3f9b10")
	trade.Timestamp = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	doc, err := toDocument(trade)
	if err != nil {
		t.Fatalf("toDocument: %v", err)
	}
	if doc.ID != trade.ID {
		t.Errorf("document _id = %q, want %q", doc.ID, trade.ID)
	}

	got, err := fromDocument(doc)
	if err != nil {
		t.Fatalf("fromDocument: %v", err)
	}
	if got.ID != trade.ID || got.Symbol != trade.Symbol ||
		got.Quantity != trade.Quantity || got.TraderName != trade.TraderName {
		t.Errorf("round-trip mismatch: got %+v, want %+v", got, trade)
	}
	if !got.Price.Equal(trade.Price) {
		t.Errorf("Price = %s, want %s", got.Price, trade.Price)
	}
	if !got.Timestamp.Equal(trade.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, trade.Timestamp)
	}
}

func TestTradeDocument_PricePrecision(t *testing.T) {
	for _, raw := range []string{"0.01", "150.25", "99999.99", "1234.5678", "0", "-12.50"} {
		trade := newTestTrade("trade-" + raw)
		trade.Price = decimal.RequireFromString(raw)

		doc, err := toDocument(trade)
		if err != nil {
			t.Fatalf("toDocument(%s): %v", raw, err)
		}
		got, err := fromDocument(doc)
		if err != nil {
			t.Fatalf("fromDocument(%s): %v", raw, err)
		}
		if !got.Price.Equal(trade.Price) {
			t.Errorf("price %s round-tripped to %s", raw, got.Price)
		}
	}
}

func TestTradeDocument_TimestampNormalizedToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	trade := newTestTrade("trade-1")
	trade.Timestamp = time.Date(2026, 3, 14, 11, 26, 53, 0, loc)

	doc, err := toDocument(trade)
	if err != nil {
		t.Fatalf("toDocument: %v", err)
	}
	if doc.Timestamp.Location() != time.UTC {
		t.Errorf("document timestamp location = %v, want UTC", doc.Timestamp.Location())
	}
	if !doc.Timestamp.Equal(trade.Timestamp) {
		t.Errorf("document timestamp = %v, not the same instant as %v", doc.Timestamp, trade.Timestamp)
	}
}
