// Package storage defines the price time-series store consumed by the price
// resolver and implemented by the postgres, clickhouse and memory backends.
package storage

import (
	"context"
	"errors"

	"dex-trades/internal/domain"
)

// ErrInvalidInput indicates a write with an unusable key (empty symbol,
// non-positive or non-hour-aligned timestamp).
var ErrInvalidInput = errors.New("storage: invalid input")

// PriceStore is typed access to hourly price points keyed by
// (symbol, hour-aligned unix timestamp).
//
// Bracket returns the stored points at the hour floor of ts and exactly one
// hour later; either slot is nil when no such point exists. UpsertBatch
// writes points idempotently on the logical key and reports how many rows
// were newly inserted versus overwritten, so an immediately repeated backfill
// reports zero inserts. Range lists points within [from, to] ascending;
// Recent lists the newest points descending.
type PriceStore interface {
	Bracket(ctx context.Context, symbol string, ts int64) (before, after *domain.PricePoint, err error)
	UpsertBatch(ctx context.Context, points []domain.PricePoint) (inserted, updated int64, err error)
	Range(ctx context.Context, symbol string, from, to int64) ([]domain.PricePoint, error)
	Recent(ctx context.Context, symbol string, limit int) ([]domain.PricePoint, error)
}

// ValidatePoint checks a point's key before any backend accepts it.
func ValidatePoint(p domain.PricePoint) error {
	if p.Symbol == "" || p.Timestamp <= 0 || p.Timestamp%3600 != 0 {
		return ErrInvalidInput
	}
	return nil
}
