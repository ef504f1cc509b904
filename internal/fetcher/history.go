package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"dex-trades/internal/domain"
)

const histohourPath = "/data/v2/histohour"

// HistoryOptions parameterise the hourly history fetcher.
type HistoryOptions struct {
	BaseURL    string
	APIKey     string
	Currency   string
	PageLimit  int
	Pace       time.Duration
	MaxRetries int
	Timeout    time.Duration
	UserAgent  string
}

// History pages the provider's hourly OHLC endpoint backwards in time until
// the full available history for a symbol has been collected.
type History struct {
	opts    HistoryOptions
	logger  zerolog.Logger
	client  *http.Client
	baseURL string
}

// NewHistory constructs a history fetcher.
func NewHistory(opts HistoryOptions, logger zerolog.Logger) *History {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if opts.Currency == "" {
		opts.Currency = "USD"
	}
	if opts.PageLimit <= 0 {
		opts.PageLimit = 2000
	}
	if opts.Pace <= 0 {
		opts.Pace = 200 * time.Millisecond
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://min-api.cryptocompare.com"
	}

	return &History{
		opts:    opts,
		logger:  logger.With().Str("component", "history_fetcher").Logger(),
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// FetchHistory walks the hourly endpoint from now backwards, one page per
// request, until a short or empty page signals the start of the series.
// An unknown symbol yields an empty result, not an error.
func (h *History) FetchHistory(ctx context.Context, symbol string) ([]domain.PricePoint, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	byHour := make(map[int64]domain.PricePoint)
	toTs := time.Now().Unix()
	pages := 0

	for {
		rows, err := h.fetchPage(ctx, symbol, toTs)
		if err != nil {
			return nil, err
		}
		pages++

		if len(rows) == 0 {
			break
		}

		for _, row := range rows {
			ts := domain.HourFloor(row.Time)
			if ts <= 0 {
				continue
			}
			byHour[ts] = domain.PricePoint{
				Symbol:    strings.ToUpper(symbol),
				Timestamp: ts,
				Open:      row.Open,
			}
		}

		earliest := rows[0].Time
		if len(rows) < h.opts.PageLimit {
			break
		}
		next := earliest - 1
		if next >= toTs {
			break
		}
		toTs = next

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(h.opts.Pace):
		}
	}

	points := make([]domain.PricePoint, 0, len(byHour))
	for _, p := range byHour {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp < points[j].Timestamp })

	h.logger.Debug().
		Str("symbol", symbol).
		Int("pages", pages).
		Int("points", len(points)).
		Msg("history fetched")
	return points, nil
}

func (h *History) fetchPage(ctx context.Context, symbol string, toTs int64) ([]histohourRow, error) {
	query := url.Values{}
	query.Set("fsym", strings.ToUpper(symbol))
	query.Set("tsym", strings.ToUpper(h.opts.Currency))
	query.Set("limit", strconv.Itoa(h.opts.PageLimit))
	query.Set("toTs", strconv.FormatInt(toTs, 10))
	endpoint := h.baseURL + histohourPath + "?" + query.Encode()

	var lastErr error
	for attempt := 0; attempt <= h.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := h.opts.Pace * time.Duration(1<<uint(attempt-1))
			h.logger.Warn().
				Str("symbol", symbol).
				Int("attempt", attempt).
				Err(lastErr).
				Msg("retrying history page")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		rows, retryable, err := h.doPage(ctx, endpoint)
		if err == nil {
			return rows, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("history page for %s: %w", symbol, lastErr)
}

func (h *History) doPage(ctx context.Context, endpoint string) ([]histohourRow, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(h.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	} else {
		req.Header.Set("User-Agent", "dextrades/1.0")
	}
	if key := strings.TrimSpace(h.opts.APIKey); key != "" {
		req.Header.Set("authorization", "Apikey "+key)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	payloadBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode >= http.StatusInternalServerError, parseHTTPError(resp.StatusCode, payloadBytes)
	}

	var envelope histohourResponse
	if err := json.Unmarshal(payloadBytes, &envelope); err != nil {
		return nil, false, err
	}

	if envelope.Response != "Success" {
		// "no data for this symbol" comes back as an Error envelope with
		// zero rows; treat it as an empty page rather than a failure.
		if strings.Contains(strings.ToLower(envelope.Message), "no data") {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("provider error: %s", envelope.Message)
	}

	return envelope.Data.Data, nil, nil
}

type histohourResponse struct {
	Response string `json:"Response"`
	Message  string `json:"Message"`
	Data     struct {
		TimeFrom int64          `json:"TimeFrom"`
		TimeTo   int64          `json:"TimeTo"`
		Data     []histohourRow `json:"Data"`
	} `json:"Data"`
}

type histohourRow struct {
	Time  int64           `json:"time"`
	Open  decimal.Decimal `json:"open"`
	High  decimal.Decimal `json:"high"`
	Low   decimal.Decimal `json:"low"`
	Close decimal.Decimal `json:"close"`
}

type errorResponse struct {
	Response string `json:"Response"`
	Message  string `json:"Message"`
	Error    string `json:"error"`
}

func parseHTTPError(status int, payload []byte) error {
	var apiErr errorResponse
	if err := json.Unmarshal(payload, &apiErr); err == nil {
		if apiErr.Message != "" {
			return fmt.Errorf("provider error (%d): %s", status, apiErr.Message)
		}
		if apiErr.Error != "" {
			return fmt.Errorf("provider error (%d): %s", status, apiErr.Error)
		}
	}
	if len(payload) > 0 {
		return fmt.Errorf("provider error (%d): %s", status, strings.TrimSpace(string(payload)))
	}
	return fmt.Errorf("provider error (%d)", status)
}

var _ HistoryFetcher = (*History)(nil)
