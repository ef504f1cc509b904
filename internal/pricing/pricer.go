package pricing

import (
	"context"

	"github.com/rs/zerolog"

	"dex-trades/internal/domain"
	"dex-trades/internal/tokens"
)

// Pricer attaches USD quotes to both legs of detected trades. Legs are
// resolved one after another; an unpriceable leg never blocks the other.
type Pricer struct {
	resolver *Resolver
	registry *tokens.Registry
	logger   zerolog.Logger
}

// NewPricer wires a resolver and the chain's token registry.
func NewPricer(resolver *Resolver, registry *tokens.Registry, logger zerolog.Logger) *Pricer {
	return &Pricer{
		resolver: resolver,
		registry: registry,
		logger:   logger.With().Str("component", "trade_pricer").Logger(),
	}
}

// Price resolves both legs of a trade. Errors are store failures only; a leg
// the chain cannot price comes back tagged unavailable.
func (p *Pricer) Price(ctx context.Context, trade domain.Trade) (domain.PricedTrade, error) {
	symbolIn := p.registry.SymbolFor(trade.AssetIn)
	symbolOut := p.registry.SymbolFor(trade.AssetOut)

	quoteIn, err := p.resolver.Resolve(ctx, symbolIn, trade.Timestamp)
	if err != nil {
		return domain.PricedTrade{}, err
	}
	quoteOut, err := p.resolver.Resolve(ctx, symbolOut, trade.Timestamp)
	if err != nil {
		return domain.PricedTrade{}, err
	}

	priced := domain.PricedTrade{Trade: trade, QuoteIn: quoteIn, QuoteOut: quoteOut}
	if !priced.FullyPriced() {
		p.logger.Debug().
			Str("tx", trade.TxID).
			Str("symbol_in", symbolIn).
			Str("symbol_out", symbolOut).
			Bool("in_priced", !quoteIn.Unavailable()).
			Bool("out_priced", !quoteOut.Unavailable()).
			Msg("trade partially priced")
	}
	return priced, nil
}
