// Package source feeds the pipeline with wallet transaction batches. Only a
// file-backed source ships here; live explorer or RPC retrieval sits behind
// the same interface and stays out of this repo.
package source

import (
	"context"

	"dex-trades/internal/domain"
	"dex-trades/internal/tokens"
)

// Batch is one wallet's transaction history on one chain, normalized to the
// detector's input shape. Token metadata rows are optional enrichment keyed
// by asset identifier.
type Batch struct {
	Chain        string                      `json:"chain"`
	Address      string                      `json:"address"`
	Transactions []domain.TransactionContext `json:"transactions"`
	Transfers    []domain.RawTransfer        `json:"transfers"`
	Tokens       map[string]tokens.Info      `json:"tokens,omitempty"`
}

// TransactionSource produces one batch per Load call. A returned error means
// the batch as a whole is unusable; record-level defects inside a loaded
// batch are the detector's problem.
type TransactionSource interface {
	Load(ctx context.Context) (*Batch, error)
}
