// Package pricing resolves historical USD prices for trade legs.
//
// A resolution walks a fixed chain: stored bracketing points with linear
// interpolation, a one-shot full-history backfill on miss, then fallbacks
// (stablecoin peg, external quote service, derived price via the wrapper's
// underlying asset). Every outcome carries a provenance tag so downstream
// consumers can tell an interpolated price from a pegged or derived one.
package pricing

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"dex-trades/internal/domain"
	"dex-trades/internal/fetcher"
	"dex-trades/internal/storage"
	"dex-trades/internal/tokens"
)

// interpolationWindow is the fixed distance between two adjacent hourly
// points. Weights always divide by it, never by elapsed time, so boundary
// timestamps cannot divide by zero.
var interpolationWindow = decimal.NewFromInt(3600)

// ResolverOptions parameterise a Resolver.
type ResolverOptions struct {
	// Stablecoins extends DefaultStablecoins; matching symbols resolve to
	// exactly 1.0 when no stored or fetched price exists.
	Stablecoins []string
	// MaxDerivationDepth bounds the wrapper-to-underlying recursion.
	MaxDerivationDepth int
}

// Resolver implements the price resolution chain on top of a price store,
// a history fetcher and an optional external quoter.
type Resolver struct {
	store    storage.PriceStore
	history  fetcher.HistoryFetcher
	external fetcher.ExternalQuoter
	logger   zerolog.Logger

	stable   map[string]struct{}
	maxDepth int

	mux       sync.Mutex
	attempted map[string]struct{}
	locks     map[string]*sync.Mutex
}

// NewResolver builds a Resolver. external may be nil when the secondary
// quote service is disabled.
func NewResolver(store storage.PriceStore, history fetcher.HistoryFetcher, external fetcher.ExternalQuoter, opts ResolverOptions, logger zerolog.Logger) *Resolver {
	stable := make(map[string]struct{})
	for _, s := range DefaultStablecoins {
		stable[strings.ToUpper(s)] = struct{}{}
	}
	for _, s := range opts.Stablecoins {
		if s == "" {
			continue
		}
		stable[strings.ToUpper(s)] = struct{}{}
	}

	maxDepth := opts.MaxDerivationDepth
	if maxDepth <= 0 {
		maxDepth = 4
	}

	return &Resolver{
		store:     store,
		history:   history,
		external:  external,
		logger:    logger.With().Str("component", "price_resolver").Logger(),
		stable:    stable,
		maxDepth:  maxDepth,
		attempted: make(map[string]struct{}),
		locks:     make(map[string]*sync.Mutex),
	}
}

// Resolve returns a quote for symbol at the exact trade timestamp. The
// returned error is reserved for store failures; provider misses surface as
// a quote with provenance "unavailable".
func (r *Resolver) Resolve(ctx context.Context, symbol string, ts int64) (domain.PriceQuote, error) {
	return r.resolve(ctx, symbol, ts, 0)
}

func (r *Resolver) resolve(ctx context.Context, symbol string, ts int64, depth int) (domain.PriceQuote, error) {
	if symbol == "" || symbol == tokens.SymbolUnknown {
		return domain.UnavailableQuote(symbol, ts), nil
	}

	quote, ok, err := r.lookup(ctx, symbol, ts)
	if err != nil {
		return domain.UnavailableQuote(symbol, ts), err
	}
	if ok {
		return quote, nil
	}

	if r.markBackfill(symbol) {
		if _, _, err := r.Backfill(ctx, symbol); err != nil {
			// A provider failure leaves the chain intact; fallbacks below
			// may still produce a price.
			r.logger.Warn().Str("symbol", symbol).Err(err).Msg("backfill failed")
		} else {
			quote, ok, err = r.lookup(ctx, symbol, ts)
			if err != nil {
				return domain.UnavailableQuote(symbol, ts), err
			}
			if ok {
				return quote, nil
			}
		}
	}

	return r.fallback(ctx, symbol, ts, depth)
}

// lookup reads the bracketing points and interpolates. A timestamp sitting
// exactly on a stored hour resolves to that point alone, so the newest
// stored hour is still resolvable without a successor point.
func (r *Resolver) lookup(ctx context.Context, symbol string, ts int64) (domain.PriceQuote, bool, error) {
	before, after, err := r.store.Bracket(ctx, strings.ToUpper(symbol), ts)
	if err != nil {
		return domain.PriceQuote{}, false, err
	}
	if before == nil {
		return domain.PriceQuote{}, false, nil
	}

	if ts == before.Timestamp {
		return domain.PriceQuote{
			Symbol:     symbol,
			Timestamp:  ts,
			Price:      before.Open,
			Provenance: domain.ProvenanceStore,
		}, true, nil
	}
	if after == nil {
		return domain.PriceQuote{}, false, nil
	}

	return domain.PriceQuote{
		Symbol:     symbol,
		Timestamp:  ts,
		Price:      interpolate(*before, *after, ts),
		Provenance: domain.ProvenanceStore,
	}, true, nil
}

// interpolate averages two adjacent hourly opens weighted by time distance.
func interpolate(before, after domain.PricePoint, ts int64) decimal.Decimal {
	weightBefore := decimal.NewFromInt(after.Timestamp - ts).Div(interpolationWindow)
	weightAfter := decimal.NewFromInt(ts - before.Timestamp).Div(interpolationWindow)
	return before.Open.Mul(weightBefore).Add(after.Open.Mul(weightAfter))
}

func (r *Resolver) fallback(ctx context.Context, symbol string, ts int64, depth int) (domain.PriceQuote, error) {
	if _, ok := r.stable[strings.ToUpper(symbol)]; ok {
		return domain.PriceQuote{
			Symbol:     symbol,
			Timestamp:  ts,
			Price:      decimal.NewFromInt(1),
			Provenance: domain.ProvenanceStablecoin,
		}, nil
	}

	if r.external != nil {
		price, ok, err := r.external.QuoteAt(ctx, symbol, ts)
		if err != nil {
			r.logger.Warn().Str("symbol", symbol).Err(err).Msg("external quote failed")
		} else if ok {
			return domain.PriceQuote{
				Symbol:     symbol,
				Timestamp:  ts,
				Price:      price,
				Provenance: domain.ProvenanceExternal,
			}, nil
		}
	}

	if underlying, ok := Underlying(symbol); ok && depth < r.maxDepth {
		quote, err := r.resolve(ctx, underlying, ts, depth+1)
		if err != nil {
			return domain.UnavailableQuote(symbol, ts), err
		}
		if quote.Provenance != domain.ProvenanceUnavailable {
			r.logger.Debug().
				Str("symbol", symbol).
				Str("underlying", underlying).
				Str("via", string(quote.Provenance)).
				Msg("price derived from underlying")
			return domain.PriceQuote{
				Symbol:     symbol,
				Timestamp:  ts,
				Price:      quote.Price,
				Provenance: domain.ProvenanceDerived,
			}, nil
		}
	}

	return domain.UnavailableQuote(symbol, ts), nil
}

// Backfill fetches the full available hourly history for symbol and upserts
// it into the store. Calls for the same symbol serialize on a per-symbol
// lock so concurrent resolutions cannot interleave partial writes.
func (r *Resolver) Backfill(ctx context.Context, symbol string) (int64, int64, error) {
	lock := r.symbolLock(symbol)
	lock.Lock()
	defer lock.Unlock()

	points, err := r.history.FetchHistory(ctx, symbol)
	if err != nil {
		return 0, 0, err
	}
	if len(points) == 0 {
		r.logger.Debug().Str("symbol", symbol).Msg("no history available")
		return 0, 0, nil
	}

	inserted, updated, err := r.store.UpsertBatch(ctx, points)
	if err != nil {
		return 0, 0, err
	}

	r.logger.Info().
		Str("symbol", symbol).
		Int("points", len(points)).
		Int64("inserted", inserted).
		Int64("updated", updated).
		Msg("history backfilled")
	return inserted, updated, nil
}

// markBackfill reports whether this run has already tried to backfill the
// symbol; a full-history fetch that did not cover the requested hour will
// not cover it on a second attempt either.
func (r *Resolver) markBackfill(symbol string) bool {
	key := strings.ToUpper(symbol)
	r.mux.Lock()
	defer r.mux.Unlock()
	if _, ok := r.attempted[key]; ok {
		return false
	}
	r.attempted[key] = struct{}{}
	return true
}

func (r *Resolver) symbolLock(symbol string) *sync.Mutex {
	key := strings.ToUpper(symbol)
	r.mux.Lock()
	defer r.mux.Unlock()
	lock, ok := r.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[key] = lock
	}
	return lock
}
