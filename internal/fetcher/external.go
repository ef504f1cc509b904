package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// coingeckoIDs maps asset symbols to provider coin ids. Config may extend or
// override entries for long-tail assets.
var coingeckoIDs = map[string]string{
	"BTC":    "bitcoin",
	"WBTC":   "wrapped-bitcoin",
	"ETH":    "ethereum",
	"WETH":   "weth",
	"STETH":  "staked-ether",
	"SOL":    "solana",
	"WSOL":   "solana",
	"SUI":    "sui",
	"WSUI":   "sui",
	"BNB":    "binancecoin",
	"WBNB":   "binancecoin",
	"POL":    "polygon-ecosystem-token",
	"AVAX":   "avalanche-2",
	"USDC":   "usd-coin",
	"USDT":   "tether",
	"DAI":    "dai",
	"USDE":   "ethena-usde",
	"AAVE":   "aave",
	"PENDLE": "pendle",
	"COMP":   "compound-governance-token",
	"ENA":    "ethena",
	"MORPHO": "morpho",
	"EIGEN":  "eigenlayer",
	"PAXG":   "pax-gold",
	"ETHFI":  "ether-fi",
}

// ExternalOptions parameterise the secondary quote provider.
type ExternalOptions struct {
	BaseURL   string
	Pace      time.Duration
	Timeout   time.Duration
	UserAgent string
	IDs       map[string]string
}

// External resolves single historical quotes against a coins/{id}/history
// style endpoint. Results are cached per symbol and day because the provider
// only has daily granularity there.
type External struct {
	opts    ExternalOptions
	logger  zerolog.Logger
	client  *http.Client
	baseURL string
	ids     map[string]string

	cacheMux sync.Mutex
	cache    map[string]decimal.Decimal
}

// NewExternal constructs an external quoter.
func NewExternal(opts ExternalOptions, logger zerolog.Logger) *External {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if opts.Pace <= 0 {
		opts.Pace = 500 * time.Millisecond
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.coingecko.com"
	}

	ids := make(map[string]string, len(coingeckoIDs)+len(opts.IDs))
	for symbol, id := range coingeckoIDs {
		ids[symbol] = id
	}
	for symbol, id := range opts.IDs {
		if symbol == "" || id == "" {
			continue
		}
		ids[strings.ToUpper(symbol)] = id
	}

	return &External{
		opts:    opts,
		logger:  logger.With().Str("component", "external_quoter").Logger(),
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		ids:     ids,
		cache:   make(map[string]decimal.Decimal),
	}
}

// QuoteAt returns the provider's USD price for the UTC day containing ts.
// Unknown symbols and rate-limited or dataless days report ok=false without
// an error so the caller can continue down its fallback chain.
func (e *External) QuoteAt(ctx context.Context, symbol string, ts int64) (decimal.Decimal, bool, error) {
	id, known := e.ids[strings.ToUpper(symbol)]
	if !known {
		return decimal.Decimal{}, false, nil
	}

	day := time.Unix(ts, 0).UTC().Format("02-01-2006")
	cacheKey := strings.ToUpper(symbol) + "_" + day

	e.cacheMux.Lock()
	if price, ok := e.cache[cacheKey]; ok {
		e.cacheMux.Unlock()
		return price, true, nil
	}
	e.cacheMux.Unlock()

	// Free-tier pacing, only paid for by cache misses.
	select {
	case <-ctx.Done():
		return decimal.Decimal{}, false, ctx.Err()
	case <-time.After(e.opts.Pace):
	}

	endpoint := fmt.Sprintf("%s/api/v3/coins/%s/history?%s",
		e.baseURL, url.PathEscape(id), url.Values{"date": {day}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(e.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	} else {
		req.Header.Set("User-Agent", "dextrades/1.0")
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	defer resp.Body.Close()

	payloadBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Decimal{}, false, err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		// Serving a cached price from a different day would be wrong, so a
		// rate-limited day stays unresolved.
		e.logger.Warn().Str("id", id).Str("date", day).Msg("external provider rate limited")
		return decimal.Decimal{}, false, nil
	}
	if resp.StatusCode == http.StatusNotFound {
		return decimal.Decimal{}, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Decimal{}, false, parseHTTPError(resp.StatusCode, payloadBytes)
	}

	var history historyResponse
	decoder := json.NewDecoder(bytes.NewReader(payloadBytes))
	decoder.UseNumber()
	if err := decoder.Decode(&history); err != nil {
		return decimal.Decimal{}, false, err
	}

	usd := history.MarketData.CurrentPrice.USD
	if usd == "" {
		return decimal.Decimal{}, false, nil
	}
	price, err := decimal.NewFromString(usd.String())
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("parse usd price: %w", err)
	}

	e.cacheMux.Lock()
	e.cache[cacheKey] = price
	e.cacheMux.Unlock()

	return price, true, nil
}

type historyResponse struct {
	ID         string `json:"id"`
	Symbol     string `json:"symbol"`
	MarketData struct {
		CurrentPrice struct {
			USD json.Number `json:"usd"`
		} `json:"current_price"`
	} `json:"market_data"`
}

var _ ExternalQuoter = (*External)(nil)
