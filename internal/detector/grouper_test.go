package detector

import (
	"testing"

	"dex-trades/internal/domain"
)

func TestGroupJoinsByTxID(t *testing.T) {
	txs := []domain.TransactionContext{
		mkCtx("0xa", 100),
		mkCtx("0xb", 101),
	}
	transfers := []domain.RawTransfer{
		sent("0xb", usdcAddr, "500"),
		received("0xa", daiAddr, "100"),
		sent("0xa", usdcAddr, "200"),
	}

	res := Group(txs, transfers)
	if len(res.Transactions) != 2 {
		t.Fatalf("期望 2 笔交易, 实际 %d", len(res.Transactions))
	}
	if res.Transactions[0].Ctx.TxID != "0xa" || res.Transactions[1].Ctx.TxID != "0xb" {
		t.Fatal("分组应保持输入交易顺序")
	}
	if len(res.Transactions[0].Transfers) != 2 {
		t.Fatalf("0xa 应挂 2 条转账, 实际 %d", len(res.Transactions[0].Transfers))
	}
	if len(res.Transactions[1].Transfers) != 1 {
		t.Fatalf("0xb 应挂 1 条转账, 实际 %d", len(res.Transactions[1].Transfers))
	}
	if res.Orphaned != 0 || res.Dropped != 0 {
		t.Fatalf("干净输入不应有丢弃计数: %+v", res)
	}
}

func TestGroupCountsOrphanedTransfers(t *testing.T) {
	txs := []domain.TransactionContext{mkCtx("0xa", 100)}
	transfers := []domain.RawTransfer{
		sent("0xa", usdcAddr, "1"),
		sent("0xmissing", usdcAddr, "2"),
		sent("", usdcAddr, "3"),
	}

	res := Group(txs, transfers)
	if res.Orphaned != 2 {
		t.Fatalf("期望 2 条孤立转账, 实际 %d", res.Orphaned)
	}
	if len(res.Transactions[0].Transfers) != 1 {
		t.Fatalf("0xa 应只挂 1 条转账, 实际 %d", len(res.Transactions[0].Transfers))
	}
}

func TestGroupDropsUnkeyedAndDuplicateTransactions(t *testing.T) {
	txs := []domain.TransactionContext{
		mkCtx("0xa", 100),
		mkCtx("", 101),
		mkCtx("0xa", 102),
	}

	res := Group(txs, nil)
	if len(res.Transactions) != 1 {
		t.Fatalf("期望只保留 1 笔交易, 实际 %d", len(res.Transactions))
	}
	if res.Dropped != 2 {
		t.Fatalf("期望丢弃 2 笔交易, 实际 %d", res.Dropped)
	}
	if res.Transactions[0].Ctx.BlockHeight != 100 {
		t.Fatal("重复 tx id 应保留先出现的一笔")
	}
}
