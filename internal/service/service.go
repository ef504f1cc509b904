// Package service runs the batch pipeline: group a wallet's transfers,
// detect swaps, price each leg, account the outcome.
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"dex-trades/internal/chain"
	"dex-trades/internal/detector"
	"dex-trades/internal/domain"
	"dex-trades/internal/pricing"
	"dex-trades/internal/report"
	"dex-trades/internal/source"
	"dex-trades/internal/tokens"
)

// Options carry the per-run tunables beyond the injected collaborators.
type Options struct {
	DustThreshold     decimal.Decimal
	RouterOverrides   map[string]map[string]string // chain -> venue -> router address
	SelectorOverrides map[string][]string          // chain -> extra swap selectors
}

// Service orchestrates grouping, detection, pricing, and reporting. The
// detector and pricer are rebuilt per batch because both depend on the
// batch's chain and token metadata; the resolver and its store are shared.
type Service struct {
	resolver *pricing.Resolver
	notifier report.Notifier
	opts     Options
	base     zerolog.Logger
	logger   zerolog.Logger
}

// New constructs the pipeline service. The notifier may be nil.
func New(resolver *pricing.Resolver, notifier report.Notifier, opts Options, logger zerolog.Logger) *Service {
	return &Service{
		resolver: resolver,
		notifier: notifier,
		opts:     opts,
		base:     logger,
		logger:   logger.With().Str("component", "service").Logger(),
	}
}

// Process collects one batch's priced trades in deterministic order.
func (s *Service) Process(ctx context.Context, batch *source.Batch) ([]domain.PricedTrade, *report.Summary, error) {
	var out []domain.PricedTrade
	summary, err := s.ProcessEach(ctx, batch, func(t domain.PricedTrade) error {
		out = append(out, t)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return out, summary, nil
}

// ProcessEach 逐笔处理批次并把每笔已定价交易交给回调。
func (s *Service) ProcessEach(ctx context.Context, batch *source.Batch, fn func(domain.PricedTrade) error) (*report.Summary, error) {
	if batch == nil {
		return nil, fmt.Errorf("batch is required")
	}

	c, err := chain.Lookup(batch.Chain)
	if err != nil {
		return nil, err
	}
	c = c.WithOverrides(s.opts.RouterOverrides[c.Name], s.opts.SelectorOverrides[c.Name])

	registry := tokens.NewRegistry(c)
	registry.MergeAll(batch.Tokens)

	det := detector.New(detector.Options{
		Subject:       batch.Address,
		Chain:         c,
		DustThreshold: s.opts.DustThreshold,
	}, s.base)
	pricer := pricing.NewPricer(s.resolver, registry, s.base)

	grouped := detector.Group(batch.Transactions, batch.Transfers)
	detections, stats := det.DetectBatch(grouped.Transactions)

	summary := report.New(batch.Chain, batch.Address)
	summary.RecordInput(stats.Transactions, grouped.Dropped, grouped.Orphaned+stats.MalformedTransfers)

	for _, d := range detections {
		priced, err := pricer.Price(ctx, d.Trade)
		if err != nil {
			return nil, fmt.Errorf("price trade %s: %w", d.Trade.TxID, err)
		}
		summary.RecordTrade(d.Classification.Kind, priced)
		if err := fn(priced); err != nil {
			return nil, fmt.Errorf("emit trade %s: %w", d.Trade.TxID, err)
		}
	}

	summary.Log(s.logger)

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, *summary); err != nil {
			s.logger.Error().Err(err).Msg("failed to deliver summary")
		}
	}
	return summary, nil
}
