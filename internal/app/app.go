package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"dex-trades/internal/chain"
	"dex-trades/internal/config"
	"dex-trades/internal/domain"
	"dex-trades/internal/fetcher"
	"dex-trades/internal/pricing"
	"dex-trades/internal/report"
	"dex-trades/internal/service"
	"dex-trades/internal/source"
	"dex-trades/internal/storage"
	"dex-trades/internal/storage/clickhouse"
	"dex-trades/internal/storage/memory"
	"dex-trades/internal/storage/postgres"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) openStore(ctx context.Context) (storage.PriceStore, func(), error) {
	switch a.Config.Storage.Backend {
	case "postgres":
		pool, err := postgres.NewPool(ctx, a.Config.Storage.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, nil, err
		}
		return store, store.Close, nil
	case "clickhouse":
		conn, err := clickhouse.NewConn(ctx, a.Config.Storage.ClickHouseDSN)
		if err != nil {
			return nil, nil, err
		}
		store := clickhouse.NewStore(conn)
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, nil, err
		}
		return store, store.Close, nil
	case "memory":
		a.Logger.Warn().Msg("using in-memory price store; points will not outlive the process")
		return memory.NewStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", a.Config.Storage.Backend)
	}
}

func (a *App) newResolver(store storage.PriceStore) *pricing.Resolver {
	history := fetcher.NewHistory(fetcher.HistoryOptions{
		BaseURL:    a.Config.Provider.BaseURL,
		APIKey:     a.Config.Provider.APIKey,
		Currency:   a.Config.Provider.Currency,
		PageLimit:  a.Config.Provider.PageLimit,
		Pace:       a.Config.Provider.Pace,
		MaxRetries: a.Config.Provider.MaxRetries,
		Timeout:    a.Config.Provider.RequestTimeout,
	}, a.Logger)

	var external fetcher.ExternalQuoter
	if a.Config.External.Enabled {
		external = fetcher.NewExternal(fetcher.ExternalOptions{
			BaseURL:   a.Config.External.BaseURL,
			Timeout:   a.Config.External.RequestTimeout,
			UserAgent: a.Config.External.UserAgent,
		}, a.Logger)
	}

	return pricing.NewResolver(store, history, external, pricing.ResolverOptions{
		Stablecoins:        a.Config.Pricing.Stablecoins,
		MaxDerivationDepth: a.Config.Pricing.MaxDerivationDepth,
	}, a.Logger)
}

func (a *App) newNotifier() report.Notifier {
	if a.Config.Report.WebhookURL == "" {
		return nil
	}
	return report.NewWebhookNotifier(a.Config.Report.WebhookURL, a.Config.Report.RequestTimeout, a.Logger)
}

func (a *App) serviceOptions() service.Options {
	opts := service.Options{DustThreshold: a.Config.Detector.Threshold()}
	for name, cc := range a.Config.Chains {
		if len(cc.Routers) > 0 {
			if opts.RouterOverrides == nil {
				opts.RouterOverrides = make(map[string]map[string]string)
			}
			opts.RouterOverrides[name] = cc.Routers
		}
		if len(cc.Selectors) > 0 {
			if opts.SelectorOverrides == nil {
				opts.SelectorOverrides = make(map[string][]string)
			}
			opts.SelectorOverrides[name] = cc.Selectors
		}
	}
	return opts
}

func (a *App) chainFor(name string) (chain.Chain, error) {
	c, err := chain.Lookup(name)
	if err != nil {
		return chain.Chain{}, err
	}
	if cc, ok := a.Config.Chains[c.Name]; ok {
		c = c.WithOverrides(cc.Routers, cc.Selectors)
	}
	return c, nil
}

// Run processes one saved batch end to end: detection, pricing against the
// configured store, JSON-line output, and the completion summary.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	batch, err := source.NewFileSource(opts.InputPath).Load(ctx)
	if err != nil {
		return err
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	out := os.Stdout
	if opts.OutputPath != "" {
		if err := ensureDir(opts.OutputPath); err != nil {
			return err
		}
		file, err := os.Create(opts.OutputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	svc := service.New(a.newResolver(store), a.newNotifier(), a.serviceOptions(), a.Logger)

	a.Logger.Info().Str("chain", batch.Chain).Str("address", batch.Address).Msg("processing batch")

	enc := json.NewEncoder(out)
	summary, err := svc.ProcessEach(ctx, batch, func(t domain.PricedTrade) error {
		return enc.Encode(t)
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			a.Logger.Error().Err(err).Msg("batch processing failed")
		}
		return err
	}

	a.Logger.Info().Int("trades", summary.Trades).Msg("run finished")
	return nil
}

// RunOptions configure the run command.
type RunOptions struct {
	InputPath  string
	OutputPath string
}

// ReplayOptions configure the detection-only replay.
type ReplayOptions struct {
	InputPath string
}

// BackfillOptions configure the backfill job.
type BackfillOptions struct {
	Symbols []string
}

// ResolveOptions configure a single price resolution.
type ResolveOptions struct {
	Symbol string
	At     time.Time
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Symbol string
	From   *time.Time
	To     *time.Time
	Limit  int
}

// ChartOptions configure chart rendering.
type ChartOptions struct {
	Symbol     string
	From       *time.Time
	To         *time.Time
	OutputPath string
}
