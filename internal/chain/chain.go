// Package chain holds the per-chain settings the detector depends on: router
// and swap-selector registries, the native-asset sentinel and address
// normalization rules for each supported network family.
package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
)

// Family distinguishes address and transfer shapes between network kinds.
type Family string

const (
	FamilyEVM    Family = "evm"
	FamilySolana Family = "solana"
	FamilySui    Family = "sui"
)

// Chain is the injected, read-only configuration for one network.
type Chain struct {
	Name           string
	Family         Family
	NativeSymbol   string
	NativeDecimals int32
	NativeAsset    string // sentinel asset identifier for native-coin transfers
	WrappedNative  string
	routers        map[string]string // normalized address -> venue name
	selectors      map[string]struct{}
}

// RouterDex reports whether addr is a known DEX router on this chain and, if
// so, the venue name associated with it.
func (c Chain) RouterDex(addr string) (string, bool) {
	if addr == "" {
		return "", false
	}
	name, ok := c.routers[c.NormalizeAddress(addr)]
	return name, ok
}

// SwapSelector reports whether sel is a known swap call selector.
func (c Chain) SwapSelector(sel string) bool {
	if sel == "" {
		return false
	}
	_, ok := c.selectors[normalizeSelector(sel)]
	return ok
}

// IsNative reports whether the asset identifier is this chain's native
// sentinel.
func (c Chain) IsNative(asset string) bool {
	return c.NormalizeAddress(asset) == c.NormalizeAddress(c.NativeAsset)
}

// NormalizeAddress canonicalizes an address or asset identifier for map
// lookups and equality checks. EVM addresses are case-insensitive hex; other
// families compare byte-for-byte.
func (c Chain) NormalizeAddress(addr string) string {
	if c.Family == FamilyEVM && common.IsHexAddress(addr) {
		return strings.ToLower(common.HexToAddress(addr).Hex())
	}
	return addr
}

// ValidAddress reports whether addr is well formed for this chain's family.
func (c Chain) ValidAddress(addr string) bool {
	switch c.Family {
	case FamilyEVM:
		return common.IsHexAddress(addr)
	case FamilySolana:
		raw, err := base58.Decode(addr)
		return err == nil && len(raw) == 32
	case FamilySui:
		// Coin types look like 0x2::sui::SUI; plain object ids are 0x + 64 hex.
		if strings.Contains(addr, "::") {
			return strings.HasPrefix(addr, "0x")
		}
		return strings.HasPrefix(addr, "0x") && len(addr) == 66
	}
	return addr != ""
}

// WithOverrides returns a copy of the chain with extra routers and selectors
// merged in. Existing entries keep their values unless overridden.
func (c Chain) WithOverrides(routers map[string]string, selectors []string) Chain {
	merged := c
	merged.routers = make(map[string]string, len(c.routers)+len(routers))
	for addr, name := range c.routers {
		merged.routers[addr] = name
	}
	for name, addr := range routers {
		merged.routers[c.NormalizeAddress(addr)] = name
	}
	merged.selectors = make(map[string]struct{}, len(c.selectors)+len(selectors))
	for sel := range c.selectors {
		merged.selectors[sel] = struct{}{}
	}
	for _, sel := range selectors {
		merged.selectors[normalizeSelector(sel)] = struct{}{}
	}
	return merged
}

func normalizeSelector(sel string) string {
	sel = strings.ToLower(strings.TrimSpace(sel))
	if !strings.HasPrefix(sel, "0x") {
		sel = "0x" + sel
	}
	return sel
}

func buildRouters(byName map[string]string, c Chain) map[string]string {
	out := make(map[string]string, len(byName))
	for name, addr := range byName {
		out[c.NormalizeAddress(addr)] = name
	}
	return out
}

func buildSelectors(sels []string) map[string]struct{} {
	out := make(map[string]struct{}, len(sels))
	for _, sel := range sels {
		out[normalizeSelector(sel)] = struct{}{}
	}
	return out
}
