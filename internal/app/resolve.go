package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Resolve 解析单个符号在指定时刻的美元价格并打印其来源。
func (a *App) Resolve(ctx context.Context, opts ResolveOptions) error {
	symbol := strings.ToUpper(strings.TrimSpace(opts.Symbol))
	if symbol == "" {
		return errors.New("--symbol 必须提供")
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	quote, err := a.newResolver(store).Resolve(ctx, symbol, opts.At.Unix())
	if err != nil {
		return err
	}

	at := opts.At.UTC().Format(time.RFC3339)
	if quote.Unavailable() {
		fmt.Fprintf(os.Stdout, "%s @ %s: 无可用价格\n", symbol, at)
		return nil
	}

	fmt.Fprintf(os.Stdout, "%s @ %s: %s USD (%s)\n", symbol, at, quote.Price.String(), quote.Provenance)
	return nil
}
