package detector

import (
	"dex-trades/internal/domain"
)

// GroupedTx is one transaction joined with the transfers sharing its id.
type GroupedTx struct {
	Ctx       domain.TransactionContext
	Transfers []domain.RawTransfer
}

// GroupResult is the join output plus counts of records that could not be
// joined at all.
type GroupResult struct {
	Transactions []GroupedTx
	Orphaned     int // transfers whose id matches no transaction in the batch
	Dropped      int // transactions without an id, or repeating an earlier id
}

// Group joins transfers onto their transactions by tx id, preserving the
// incoming transaction order. Transactions without a usable id and transfers
// referencing an unknown id are dropped and counted, never fatal.
func Group(txs []domain.TransactionContext, transfers []domain.RawTransfer) GroupResult {
	res := GroupResult{Transactions: make([]GroupedTx, 0, len(txs))}

	index := make(map[string]int, len(txs))
	for _, tx := range txs {
		if tx.TxID == "" {
			res.Dropped++
			continue
		}
		if _, dup := index[tx.TxID]; dup {
			res.Dropped++
			continue
		}
		index[tx.TxID] = len(res.Transactions)
		res.Transactions = append(res.Transactions, GroupedTx{Ctx: tx})
	}

	for _, tr := range transfers {
		i, ok := index[tr.TxID]
		if !ok {
			res.Orphaned++
			continue
		}
		res.Transactions[i].Transfers = append(res.Transactions[i].Transfers, tr)
	}
	return res
}
