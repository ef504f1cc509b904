package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

// Backfill 为每个符号拉取完整历史并写入存储。
func (a *App) Backfill(ctx context.Context, opts BackfillOptions) error {
	symbols := make([]string, 0, len(opts.Symbols))
	for _, s := range opts.Symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		return errors.New("至少需要一个 --symbol")
	}

	if a.Config.Storage.Backend == "memory" {
		return errors.New("storage.backend=memory 无法持久化回填结果")
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	resolver := a.newResolver(store)

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Symbol\tInserted\tUpdated")

	failed := 0
	var totalInserted, totalUpdated int64
	for _, symbol := range symbols {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		inserted, updated, err := resolver.Backfill(ctx, symbol)
		if err != nil {
			failed++
			a.Logger.Error().Err(err).Str("symbol", symbol).Msg("回填失败")
			continue
		}

		totalInserted += inserted
		totalUpdated += updated
		fmt.Fprintf(writer, "%s\t%d\t%d\n", symbol, inserted, updated)
	}
	writer.Flush()

	a.Logger.Info().
		Int64("inserted", totalInserted).
		Int64("updated", totalUpdated).
		Int("failed", failed).
		Msg("回填完成")
	if failed > 0 {
		return errors.New("部分 symbol 回填失败，请检查日志")
	}
	return nil
}
