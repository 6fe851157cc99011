package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is a single executed order. ID and Timestamp are assigned by the
// server when the trade is recorded and never change afterwards; identity
// is by ID.
type Trade struct {
	ID         string          `json:"id"`
	Symbol     string          `json:"symbol"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TraderName string          `json:"traderName"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Portfolio is a named collection of trades. Reserved shape: no operation
// populates or exposes it yet.
type Portfolio struct {
	ID          string  `json:"id"`
	ManagerName string  `json:"managerName"`
	Trades      []Trade `json:"trades"`
}

// Broker identifies a venue and the symbols it supports. Reserved shape.
type Broker struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	SupportedSymbols []string `json:"supportedSymbols"`
}
