package detector

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"dex-trades/internal/chain"
	"dex-trades/internal/domain"
)

const (
	subjectAddr = "0x1111111111111111111111111111111111111111"
	otherAddr   = "0x2222222222222222222222222222222222222222"
	poolAddr    = "0x3333333333333333333333333333333333333333"

	usdcAddr = "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
	daiAddr  = "0x6b175474e89094c44da98b954eedeac495271d0f"
	usdtAddr = "0xdac17f958d2ee523a2206206994597c13d831ec7"
)

func noopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func newTestDetector(t *testing.T, opts Options) *Detector {
	t.Helper()
	if opts.Chain.Name == "" {
		c, err := chain.Lookup("ethereum")
		if err != nil {
			t.Fatalf("加载 ethereum 链配置失败: %v", err)
		}
		opts.Chain = c
	}
	if opts.Subject == "" {
		opts.Subject = subjectAddr
	}
	return New(opts, noopLogger())
}

func mkCtx(txID string, height int64) domain.TransactionContext {
	return domain.TransactionContext{
		TxID:        txID,
		BlockHeight: height,
		Timestamp:   1700000000 + height,
		To:          poolAddr,
	}
}

func sent(txID, asset, amount string) domain.RawTransfer {
	return domain.RawTransfer{
		TxID:   txID,
		Asset:  asset,
		From:   subjectAddr,
		To:     otherAddr,
		Amount: decimal.RequireFromString(amount),
	}
}

func received(txID, asset, amount string) domain.RawTransfer {
	return domain.RawTransfer{
		TxID:   txID,
		Asset:  asset,
		From:   otherAddr,
		To:     subjectAddr,
		Amount: decimal.RequireFromString(amount),
	}
}
