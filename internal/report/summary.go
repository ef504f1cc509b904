// Package report aggregates one pipeline run's accounting and pushes the
// final numbers to the log and, optionally, a webhook.
package report

import (
	"github.com/rs/zerolog"

	"dex-trades/internal/domain"
)

// Summary is the final accounting of one processed batch. It separates the
// three outcomes a reader cares about: swaps not detected stay silent,
// detected-but-unpriced trades are counted explicitly, and dropped records
// are visible without failing the batch.
type Summary struct {
	Chain               string                            `json:"chain"`
	Address             string                            `json:"address"`
	Transactions        int                               `json:"transactions"`
	DroppedTransactions int                               `json:"dropped_transactions,omitempty"`
	MalformedTransfers  int                               `json:"malformed_transfers,omitempty"`
	Trades              int                               `json:"trades"`
	ByClassification    map[domain.ClassificationKind]int `json:"by_classification,omitempty"`
	LegsByProvenance    map[domain.Provenance]int         `json:"legs_by_provenance,omitempty"`
	UnpricedTrades      int                               `json:"unpriced_trades"`
}

// New starts an empty summary for one chain/address batch.
func New(chainName, address string) *Summary {
	return &Summary{
		Chain:            chainName,
		Address:          address,
		ByClassification: make(map[domain.ClassificationKind]int),
		LegsByProvenance: make(map[domain.Provenance]int),
	}
}

// RecordInput notes the batch shape after grouping and malformed filtering.
func (s *Summary) RecordInput(transactions, droppedTransactions, malformedTransfers int) {
	s.Transactions = transactions
	s.DroppedTransactions = droppedTransactions
	s.MalformedTransfers = malformedTransfers
}

// RecordTrade folds one priced trade into the accounting.
func (s *Summary) RecordTrade(kind domain.ClassificationKind, trade domain.PricedTrade) {
	s.Trades++
	s.ByClassification[kind]++
	s.LegsByProvenance[trade.QuoteIn.Provenance]++
	s.LegsByProvenance[trade.QuoteOut.Provenance]++
	if !trade.FullyPriced() {
		s.UnpricedTrades++
	}
}

// Log emits the summary at info level.
func (s *Summary) Log(logger zerolog.Logger) {
	evt := logger.Info().
		Str("chain", s.Chain).
		Str("address", s.Address).
		Int("transactions", s.Transactions).
		Int("trades", s.Trades).
		Int("unpriced_trades", s.UnpricedTrades)
	if s.DroppedTransactions > 0 {
		evt = evt.Int("dropped_transactions", s.DroppedTransactions)
	}
	if s.MalformedTransfers > 0 {
		evt = evt.Int("malformed_transfers", s.MalformedTransfers)
	}
	if len(s.ByClassification) > 0 {
		evt = evt.Interface("by_classification", s.ByClassification)
	}
	if len(s.LegsByProvenance) > 0 {
		evt = evt.Interface("legs_by_provenance", s.LegsByProvenance)
	}
	evt.Msg("batch processed")
}
