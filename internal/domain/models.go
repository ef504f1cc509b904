package domain

import (
	"github.com/shopspring/decimal"
)

// RawTransfer is one observed movement of a fungible asset within a
// transaction. Native-coin movements (transaction value, internal transfers)
// use the chain's native sentinel as the asset identifier. Direction is not
// stored; it is inferred against the subject wallet by the detector.
type RawTransfer struct {
	TxID   string          `json:"tx_id"`
	Asset  string          `json:"asset"`  // contract address, mint or native sentinel
	From   string          `json:"from"`   // sender address
	To     string          `json:"to"`     // receiver address
	Amount decimal.Decimal `json:"amount"` // raw integer units, non-negative
}

// TransactionContext is the per-transaction metadata the detector needs.
type TransactionContext struct {
	TxID        string `json:"tx_id"`
	BlockHeight int64  `json:"block_height"` // slot or checkpoint on non-EVM chains
	Timestamp   int64  `json:"timestamp"`    // unix seconds
	To          string `json:"to,omitempty"` // destination contract, if any
	Selector    string `json:"selector,omitempty"`
}

// Trade is one detected swap: the subject sent AssetIn and received AssetOut
// in the same transaction. At most one Trade exists per transaction and the
// struct is never mutated after creation.
type Trade struct {
	TxID        string          `json:"tx_hash"`
	Timestamp   int64           `json:"timestamp"`
	BlockHeight int64           `json:"block_height"`
	AssetIn     string          `json:"asset_in"`
	AssetOut    string          `json:"asset_out"`
	AmountIn    decimal.Decimal `json:"amount_in"`
	AmountOut   decimal.Decimal `json:"amount_out"`
	Dex         string          `json:"dex"` // best effort, DexUnknown when undetermined
}

// DexUnknown labels trades whose venue could not be identified.
const DexUnknown = "Unknown"

// PricePoint is one hourly price observation. (Symbol, Timestamp) is the
// logical key; Timestamp is hour-aligned unix seconds.
type PricePoint struct {
	Symbol    string          `json:"symbol"`
	Timestamp int64           `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
}

// Provenance identifies which resolution strategy produced a PriceQuote.
type Provenance string

const (
	ProvenanceStore       Provenance = "store"
	ProvenanceStablecoin  Provenance = "stablecoin"
	ProvenanceExternal    Provenance = "external-service"
	ProvenanceDerived     Provenance = "derived-ratio"
	ProvenanceUnavailable Provenance = "unavailable"
)

// PriceQuote is the resolved USD price for one trade leg. Price is zero when
// Provenance is ProvenanceUnavailable.
type PriceQuote struct {
	Symbol     string          `json:"symbol"`
	Timestamp  int64           `json:"timestamp"` // the trade's timestamp, not hour-aligned
	Price      decimal.Decimal `json:"price"`
	Provenance Provenance      `json:"provenance"`
}

// Unavailable reports whether the quote carries no usable price.
func (q PriceQuote) Unavailable() bool {
	return q.Provenance == ProvenanceUnavailable
}

// UnavailableQuote builds the terminal quote for a leg that could not be
// priced by any strategy.
func UnavailableQuote(symbol string, ts int64) PriceQuote {
	return PriceQuote{Symbol: symbol, Timestamp: ts, Provenance: ProvenanceUnavailable}
}

// PricedTrade is a Trade with one quote attached per leg. The embedded Trade
// fields are the detector's output, unmodified.
type PricedTrade struct {
	Trade
	QuoteIn  PriceQuote `json:"quote_in"`
	QuoteOut PriceQuote `json:"quote_out"`
}

// FullyPriced reports whether both legs resolved to a usable price.
func (t PricedTrade) FullyPriced() bool {
	return !t.QuoteIn.Unavailable() && !t.QuoteOut.Unavailable()
}

// HourFloor truncates a unix timestamp to the start of its hour.
func HourFloor(ts int64) int64 {
	return ts - ts%3600
}
