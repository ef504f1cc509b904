package fetcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func histoRow(ts int64, open float64) map[string]any {
	return map[string]any{"time": ts, "open": open, "high": open, "low": open, "close": open}
}

func TestHistoryFetchSinglePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("fsym"); got != "ETH" {
			t.Errorf("fsym 应为 ETH, 实际 %s", got)
		}
		if got := r.URL.Query().Get("tsym"); got != "USD" {
			t.Errorf("tsym 应为 USD, 实际 %s", got)
		}
		if got := r.Header.Get("authorization"); got != "Apikey test-key" {
			t.Errorf("authorization 头应为 Apikey test-key, 实际 %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"Response": "Success",
			"Data": map[string]any{
				"Data": []map[string]any{
					histoRow(3600, 100.0),
					histoRow(7200, 110.0),
				},
			},
		})
	}))
	defer srv.Close()

	h := NewHistory(HistoryOptions{BaseURL: srv.URL, APIKey: "test-key", PageLimit: 2000, Pace: time.Millisecond}, noopLogger())
	points, err := h.FetchHistory(context.Background(), "eth")
	if err != nil {
		t.Fatalf("成功响应不应报错: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("期望 2 个价格点, 实际 %d", len(points))
	}
	if points[0].Timestamp != 3600 || points[1].Timestamp != 7200 {
		t.Fatalf("价格点应按时间升序: %+v", points)
	}
	if points[0].Symbol != "ETH" {
		t.Fatalf("symbol 应归一化为大写, 实际 %s", points[0].Symbol)
	}
	if !points[1].Open.Equal(decimal.RequireFromString("110")) {
		t.Fatalf("open 解析错误: %s", points[1].Open)
	}
}

func TestHistoryFetchPagesBackwards(t *testing.T) {
	var requests []int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		toTs, _ := strconv.ParseInt(r.URL.Query().Get("toTs"), 10, 64)
		requests = append(requests, toTs)

		var rows []map[string]any
		if len(requests) == 1 {
			// Full page, the fetcher has to keep going.
			rows = []map[string]any{histoRow(7200, 110.0), histoRow(10800, 120.0)}
		} else {
			rows = []map[string]any{histoRow(3600, 100.0)}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"Response": "Success",
			"Data":     map[string]any{"Data": rows},
		})
	}))
	defer srv.Close()

	h := NewHistory(HistoryOptions{BaseURL: srv.URL, PageLimit: 2, Pace: time.Millisecond}, noopLogger())
	points, err := h.FetchHistory(context.Background(), "ETH")
	if err != nil {
		t.Fatalf("分页抓取不应报错: %v", err)
	}
	if len(requests) != 2 {
		t.Fatalf("期望 2 次请求, 实际 %d", len(requests))
	}
	if requests[1] != 7200-1 {
		t.Fatalf("第二页 toTs 应为最早时间戳减一, 实际 %d", requests[1])
	}
	if len(points) != 3 {
		t.Fatalf("期望 3 个价格点, 实际 %d", len(points))
	}
	if points[0].Timestamp != 3600 {
		t.Fatalf("合并后应按时间升序, 实际首项 %d", points[0].Timestamp)
	}
}

func TestHistoryFetchUnknownSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"Response": "Error",
			"Message":  "There is no data for the symbol XYZ",
		})
	}))
	defer srv.Close()

	h := NewHistory(HistoryOptions{BaseURL: srv.URL, Pace: time.Millisecond}, noopLogger())
	points, err := h.FetchHistory(context.Background(), "XYZ")
	if err != nil {
		t.Fatalf("无数据不应视为错误: %v", err)
	}
	if len(points) != 0 {
		t.Fatalf("期望空结果, 实际 %d", len(points))
	}
}

func TestHistoryFetchProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"Response": "Error",
			"Message":  "rate limit exceeded",
		})
	}))
	defer srv.Close()

	h := NewHistory(HistoryOptions{BaseURL: srv.URL, Pace: time.Millisecond}, noopLogger())
	if _, err := h.FetchHistory(context.Background(), "ETH"); err == nil {
		t.Fatal("Error 响应应报错")
	}
}

func TestHistoryFetchRetriesServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"Response": "Success",
			"Data":     map[string]any{"Data": []map[string]any{histoRow(3600, 100.0)}},
		})
	}))
	defer srv.Close()

	h := NewHistory(HistoryOptions{BaseURL: srv.URL, Pace: time.Millisecond, MaxRetries: 2}, noopLogger())
	points, err := h.FetchHistory(context.Background(), "ETH")
	if err != nil {
		t.Fatalf("5xx 重试后应成功: %v", err)
	}
	if calls != 2 {
		t.Fatalf("期望 2 次调用, 实际 %d", calls)
	}
	if len(points) != 1 {
		t.Fatalf("期望 1 个价格点, 实际 %d", len(points))
	}
}

func TestHistoryFetchClientErrorNoRetry(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"Message": "invalid api key"})
	}))
	defer srv.Close()

	h := NewHistory(HistoryOptions{BaseURL: srv.URL, Pace: time.Millisecond, MaxRetries: 3}, noopLogger())
	if _, err := h.FetchHistory(context.Background(), "ETH"); err == nil {
		t.Fatal("4xx 应直接报错")
	}
	if calls != 1 {
		t.Fatalf("4xx 不应重试, 实际调用 %d 次", calls)
	}
}

func TestHistoryFetchMissingSymbol(t *testing.T) {
	h := NewHistory(HistoryOptions{}, noopLogger())
	if _, err := h.FetchHistory(context.Background(), ""); err == nil {
		t.Fatal("缺少 symbol 时应报错")
	}
}
