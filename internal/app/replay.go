package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"dex-trades/internal/detector"
	"dex-trades/internal/source"
	"dex-trades/internal/tokens"
)

// Replay runs detection over a saved batch without touching any store or
// network. Amounts print in display units when token metadata is known.
func (a *App) Replay(ctx context.Context, opts ReplayOptions) error {
	batch, err := source.NewFileSource(opts.InputPath).Load(ctx)
	if err != nil {
		return err
	}

	c, err := a.chainFor(batch.Chain)
	if err != nil {
		return err
	}

	registry := tokens.NewRegistry(c)
	registry.MergeAll(batch.Tokens)

	det := detector.New(detector.Options{
		Subject:       batch.Address,
		Chain:         c,
		DustThreshold: a.Config.Detector.Threshold(),
	}, a.Logger)

	grouped := detector.Group(batch.Transactions, batch.Transfers)
	detections, stats := det.DetectBatch(grouped.Transactions)

	if len(detections) == 0 {
		fmt.Fprintln(os.Stdout, "no trades detected")
	} else {
		writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(writer, "Block\tTx\tClassification\tVenue\tIn\tOut")
		for _, d := range detections {
			fmt.Fprintf(
				writer,
				"%d\t%s\t%s\t%s\t%s\t%s\n",
				d.Trade.BlockHeight,
				shortID(d.Trade.TxID),
				d.Classification.Kind,
				d.Trade.Dex,
				formatLeg(registry, d.Trade.AssetIn, d.Trade.AmountIn),
				formatLeg(registry, d.Trade.AssetOut, d.Trade.AmountOut),
			)
		}
		writer.Flush()
	}

	a.Logger.Info().
		Int("transactions", stats.Transactions).
		Int("dropped_transactions", grouped.Dropped).
		Int("malformed_transfers", grouped.Orphaned+stats.MalformedTransfers).
		Int("trades", stats.Trades).
		Msg("replay finished")
	return nil
}

func formatLeg(registry *tokens.Registry, asset string, amount decimal.Decimal) string {
	if info, ok := registry.Resolve(asset); ok && info.Symbol != tokens.SymbolUnknown {
		return fmt.Sprintf("%s %s", amount.Shift(-info.Decimals).String(), info.Symbol)
	}
	return fmt.Sprintf("%s %s", amount.String(), shortID(asset))
}

func shortID(v string) string {
	if len(v) <= 14 {
		return v
	}
	return v[:8] + ".." + v[len(v)-4:]
}
