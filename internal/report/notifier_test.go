package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"dex-trades/internal/domain"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func sampleSummary() *Summary {
	s := New("ethereum", "0x1111111111111111111111111111111111111111")
	s.RecordInput(10, 1, 2)
	s.RecordTrade(domain.RouterMatch, domain.PricedTrade{
		QuoteIn:  domain.PriceQuote{Provenance: domain.ProvenanceStore},
		QuoteOut: domain.PriceQuote{Provenance: domain.ProvenanceStablecoin},
	})
	s.RecordTrade(domain.TransferPattern, domain.PricedTrade{
		QuoteIn:  domain.PriceQuote{Provenance: domain.ProvenanceStore},
		QuoteOut: domain.PriceQuote{Provenance: domain.ProvenanceUnavailable},
	})
	return s
}

func TestWebhookNotifierSuccess(t *testing.T) {
	var received Summary
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("应使用 POST, 实际 %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("Content-Type 应为 application/json, 实际 %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("解析请求体失败: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	notifier := NewWebhookNotifier(srv.URL, time.Second, testLogger())
	if err := notifier.Notify(context.Background(), *sampleSummary()); err != nil {
		t.Fatalf("Webhook Notify 应成功: %v", err)
	}

	if received.Chain != "ethereum" || received.Trades != 2 {
		t.Fatalf("摘要字段不正确: %+v", received)
	}
	if received.UnpricedTrades != 1 {
		t.Fatalf("unpriced_trades 应为 1, 实际 %d", received.UnpricedTrades)
	}
}

func TestWebhookNotifierErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	notifier := NewWebhookNotifier(srv.URL, time.Second, testLogger())
	if err := notifier.Notify(context.Background(), *sampleSummary()); err == nil {
		t.Fatal("非 2xx 响应应报错")
	}
}

func TestSummaryAccounting(t *testing.T) {
	s := sampleSummary()

	if s.Transactions != 10 || s.DroppedTransactions != 1 || s.MalformedTransfers != 2 {
		t.Fatalf("输入统计错误: %+v", s)
	}
	if s.Trades != 2 {
		t.Fatalf("期望 2 笔 Trade, 实际 %d", s.Trades)
	}
	if s.ByClassification[domain.RouterMatch] != 1 || s.ByClassification[domain.TransferPattern] != 1 {
		t.Fatalf("分类计数错误: %+v", s.ByClassification)
	}
	if s.LegsByProvenance[domain.ProvenanceStore] != 2 {
		t.Fatalf("store 来源腿数应为 2, 实际 %d", s.LegsByProvenance[domain.ProvenanceStore])
	}
	if s.LegsByProvenance[domain.ProvenanceUnavailable] != 1 {
		t.Fatalf("unavailable 来源腿数应为 1, 实际 %d", s.LegsByProvenance[domain.ProvenanceUnavailable])
	}
	if s.UnpricedTrades != 1 {
		t.Fatalf("含 unavailable 腿的 Trade 应计入 unpriced, 实际 %d", s.UnpricedTrades)
	}
}
