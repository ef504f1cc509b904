package detector

import (
	"github.com/shopspring/decimal"

	"dex-trades/internal/chain"
	"dex-trades/internal/domain"
)

// legTotals accumulates per-asset amount sums for one direction, remembering
// the order assets first appeared so ties resolve to the earliest asset.
type legTotals struct {
	order []string
	sums  map[string]decimal.Decimal
}

func newLegTotals() *legTotals {
	return &legTotals{sums: make(map[string]decimal.Decimal)}
}

func (l *legTotals) add(asset string, amount decimal.Decimal) {
	if _, seen := l.sums[asset]; !seen {
		l.order = append(l.order, asset)
	}
	l.sums[asset] = l.sums[asset].Add(amount)
}

// top returns the asset with the greatest summed amount; first seen wins on
// ties.
func (l *legTotals) top() (string, decimal.Decimal, bool) {
	var (
		best    string
		bestSum decimal.Decimal
		found   bool
	)
	for _, asset := range l.order {
		if sum := l.sums[asset]; !found || sum.GreaterThan(bestSum) {
			best, bestSum, found = asset, sum, true
		}
	}
	return best, bestSum, found
}

// flow is the subject-relative view of one transaction's usable transfers.
// Router hops that split a swap across several transfers of the same asset
// collapse here into a single summed candidate per direction.
type flow struct {
	sent     *legTotals
	received *legTotals

	sentTokens     []string // distinct non-native assets, first-seen order
	receivedTokens []string
	nativeSent     decimal.Decimal
	nativeReceived decimal.Decimal
}

func newFlow(c chain.Chain, subject string, transfers []domain.RawTransfer) *flow {
	f := &flow{sent: newLegTotals(), received: newLegTotals()}
	for _, tr := range transfers {
		asset := c.NormalizeAddress(tr.Asset)
		native := c.IsNative(tr.Asset)
		switch subject {
		case c.NormalizeAddress(tr.From):
			if _, seen := f.sent.sums[asset]; !seen && !native {
				f.sentTokens = append(f.sentTokens, asset)
			}
			f.sent.add(asset, tr.Amount)
			if native {
				f.nativeSent = f.nativeSent.Add(tr.Amount)
			}
		case c.NormalizeAddress(tr.To):
			if _, seen := f.received.sums[asset]; !seen && !native {
				f.receivedTokens = append(f.receivedTokens, asset)
			}
			f.received.add(asset, tr.Amount)
			if native {
				f.nativeReceived = f.nativeReceived.Add(tr.Amount)
			}
		}
	}
	return f
}

// distinctTokenPair reports whether the subject both sent and received
// fungible tokens with at least one distinct pairing between the two sides.
func (f *flow) distinctTokenPair() bool {
	if len(f.sentTokens) == 0 || len(f.receivedTokens) == 0 {
		return false
	}
	if len(f.sentTokens) > 1 || len(f.receivedTokens) > 1 {
		return true
	}
	return f.sentTokens[0] != f.receivedTokens[0]
}

// classify runs the ordered strategy list. The outcome is a hint for
// reporting and the venue label; leg assets and amounts always come from the
// shared aggregation over all usable transfers.
func (d *Detector) classify(ctx domain.TransactionContext, f *flow) domain.Classification {
	if dex, ok := d.chain.RouterDex(ctx.To); ok {
		return domain.Classification{Kind: domain.RouterMatch, Dex: dex}
	}
	if d.chain.SwapSelector(ctx.Selector) {
		return domain.Classification{Kind: domain.SelectorMatch}
	}
	if f.distinctTokenPair() {
		return domain.Classification{Kind: domain.TransferPattern}
	}
	if d.nativeLeg(f) {
		return domain.Classification{Kind: domain.NativeLeg}
	}
	return domain.Classification{Kind: domain.NoMatch}
}

// nativeLeg recognizes the swap shapes where one side is the chain's native
// coin: a single token sent with native coming back, or native sent with
// tokens coming back. Native sums below the dust threshold do not count, so
// gas-scale refunds cannot stand in for a missing leg.
func (d *Detector) nativeLeg(f *flow) bool {
	if len(f.sentTokens) == 1 && len(f.receivedTokens) == 0 {
		return f.nativeReceived.GreaterThanOrEqual(d.dustRaw)
	}
	if len(f.sentTokens) == 0 && len(f.receivedTokens) > 0 {
		return f.nativeSent.GreaterThanOrEqual(d.dustRaw)
	}
	return false
}
