// Package tokens maps chain-level asset identifiers to display metadata.
// Pricing keys off symbols, so every Trade leg goes through this mapping
// before the resolver sees it; identifiers the registry cannot resolve price
// as SymbolUnknown and surface as unavailable quotes instead of blocking
// trade creation.
package tokens

import (
	"dex-trades/internal/chain"
)

// SymbolUnknown is used when no metadata exists for an asset identifier.
const SymbolUnknown = "UNKNOWN"

// Info is the metadata carried for one token.
type Info struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int32  `json:"decimals"`
}

// Registry resolves asset identifiers for a single chain. It is seeded with
// the chain's native sentinel, its wrapped-native token and the built-in
// known-token table, then extended with whatever metadata the batch supplies.
// Not safe for concurrent mutation; build it fully before processing.
type Registry struct {
	chain  chain.Chain
	byAddr map[string]Info
}

// NewRegistry builds a registry for the given chain.
func NewRegistry(c chain.Chain) *Registry {
	r := &Registry{chain: c, byAddr: make(map[string]Info)}
	r.Add(c.NativeAsset, Info{Name: c.NativeSymbol, Symbol: c.NativeSymbol, Decimals: c.NativeDecimals})
	if c.WrappedNative != "" && !c.IsNative(c.WrappedNative) {
		r.Add(c.WrappedNative, Info{Name: "Wrapped " + c.NativeSymbol, Symbol: "W" + c.NativeSymbol, Decimals: c.NativeDecimals})
	}
	for addr, info := range knownTokens[c.Name] {
		r.Add(addr, info)
	}
	return r
}

// Add registers metadata for an asset identifier, replacing any previous
// entry.
func (r *Registry) Add(addr string, info Info) {
	if addr == "" || info.Symbol == "" {
		return
	}
	r.byAddr[r.chain.NormalizeAddress(addr)] = info
}

// MergeAll registers a batch of (address, info) rows, typically harvested
// from the transfer records of the batch being processed.
func (r *Registry) MergeAll(rows map[string]Info) {
	for addr, info := range rows {
		r.Add(addr, info)
	}
}

// Resolve returns the metadata for an asset identifier.
func (r *Registry) Resolve(addr string) (Info, bool) {
	info, ok := r.byAddr[r.chain.NormalizeAddress(addr)]
	return info, ok
}

// SymbolFor returns the symbol for an asset identifier, or SymbolUnknown.
func (r *Registry) SymbolFor(addr string) string {
	if info, ok := r.Resolve(addr); ok {
		return info.Symbol
	}
	return SymbolUnknown
}

// DecimalsFor returns the display decimals for an asset identifier; assets
// without metadata fall back to 18, the dominant EVM convention.
func (r *Registry) DecimalsFor(addr string) int32 {
	if info, ok := r.Resolve(addr); ok {
		return info.Decimals
	}
	return 18
}

// Len reports how many identifiers the registry currently resolves.
func (r *Registry) Len() int {
	return len(r.byAddr)
}
