package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"dex-trades/internal/domain"
)

// Show prints stored hourly points for a symbol: a window when --from/--to
// are given, otherwise the most recent points.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	symbol := strings.ToUpper(strings.TrimSpace(opts.Symbol))
	if symbol == "" {
		return errors.New("--symbol must be provided")
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	var points []domain.PricePoint
	if opts.From != nil || opts.To != nil {
		from, to := windowBounds(opts.From, opts.To)
		points, err = store.Range(ctx, symbol, from, to)
	} else {
		points, err = store.Recent(ctx, symbol, opts.Limit)
	}
	if err != nil {
		return err
	}
	if len(points) == 0 {
		fmt.Fprintln(os.Stdout, "no price points found")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Time (UTC)\tOpen (USD)")
	for _, p := range points {
		fmt.Fprintf(
			writer,
			"%s\t%s\n",
			time.Unix(p.Timestamp, 0).UTC().Format(time.RFC3339),
			p.Open.String(),
		)
	}

	writer.Flush()
	return nil
}

func windowBounds(from, to *time.Time) (int64, int64) {
	lo := int64(0)
	if from != nil {
		lo = from.Unix()
	}
	hi := time.Now().Unix()
	if to != nil {
		hi = to.Unix()
	}
	return lo, hi
}
