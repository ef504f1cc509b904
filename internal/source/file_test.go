package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func writeBatchFile(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}
	return path
}

func TestFileSourceLoad(t *testing.T) {
	path := writeBatchFile(t, `{
		"chain": "ethereum",
		"address": "0x1111111111111111111111111111111111111111",
		"transactions": [
			{"tx_id": "0xabc", "block_height": 100, "timestamp": 1700000000, "to": "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D", "selector": "0x38ed1739"}
		],
		"transfers": [
			{"tx_id": "0xabc", "asset": "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", "from": "0x1111111111111111111111111111111111111111", "to": "0x2222222222222222222222222222222222222222", "amount": "31356770000"}
		],
		"tokens": {
			"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48": {"name": "USD Coin", "symbol": "USDC", "decimals": 6}
		}
	}`)

	batch, err := NewFileSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("合法文件不应报错: %v", err)
	}
	if batch.Chain != "ethereum" {
		t.Fatalf("chain 应为 ethereum, 实际 %s", batch.Chain)
	}
	if len(batch.Transactions) != 1 || len(batch.Transfers) != 1 {
		t.Fatalf("期望 1 笔交易 1 条转账, 实际 %d/%d", len(batch.Transactions), len(batch.Transfers))
	}
	if batch.Transactions[0].Selector != "0x38ed1739" {
		t.Fatalf("selector 解析错误: %s", batch.Transactions[0].Selector)
	}
	if !batch.Transfers[0].Amount.Equal(decimal.RequireFromString("31356770000")) {
		t.Fatalf("amount 解析错误: %s", batch.Transfers[0].Amount)
	}
	info, ok := batch.Tokens["0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"]
	if !ok || info.Symbol != "USDC" || info.Decimals != 6 {
		t.Fatalf("token 元数据解析错误: %+v", info)
	}
}

func TestFileSourceLoadDecodeFailure(t *testing.T) {
	path := writeBatchFile(t, `{"chain": "ethereum", "address":`)
	if _, err := NewFileSource(path).Load(context.Background()); err == nil {
		t.Fatal("损坏的 JSON 应整批失败")
	}
}

func TestFileSourceLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")
	if _, err := NewFileSource(path).Load(context.Background()); err == nil {
		t.Fatal("文件不存在时应报错")
	}
}

func TestFileSourceLoadRequiredFields(t *testing.T) {
	for name, payload := range map[string]string{
		"missing chain":   `{"address": "0x1111111111111111111111111111111111111111"}`,
		"missing address": `{"chain": "ethereum"}`,
	} {
		path := writeBatchFile(t, payload)
		if _, err := NewFileSource(path).Load(context.Background()); err == nil {
			t.Fatalf("%s 时应报错", name)
		}
	}
}

func TestFileSourceLoadCancelledContext(t *testing.T) {
	path := writeBatchFile(t, `{"chain": "ethereum", "address": "0x1"}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewFileSource(path).Load(ctx); err == nil {
		t.Fatal("已取消的 context 应报错")
	}
}
