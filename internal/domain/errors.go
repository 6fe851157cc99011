package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	// ErrTradeNotFound signals that a lookup matched no record. Absence is
	// a normal outcome, not a failure.
	ErrTradeNotFound = errors.New("trade_not_found")

	// ErrTradeAlreadyExists signals a write rejected because a record with
	// the same id is already stored. Not expected in practice, since ids
	// are freshly generated per trade.
	ErrTradeAlreadyExists = errors.New("trade_already_exists")
)
