package fetcher

import (
	"context"

	"github.com/shopspring/decimal"

	"dex-trades/internal/domain"
)

// HistoryFetcher retrieves the full hourly USD price history for a symbol.
type HistoryFetcher interface {
	FetchHistory(ctx context.Context, symbol string) ([]domain.PricePoint, error)
}

// ExternalQuoter retrieves a single historical USD quote from a secondary
// provider. The boolean reports whether the provider had data; false without
// an error means the symbol or day is simply not covered.
type ExternalQuoter interface {
	QuoteAt(ctx context.Context, symbol string, ts int64) (decimal.Decimal, bool, error)
}
