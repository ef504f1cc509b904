// Package detector turns one wallet's grouped transaction history into
// normalized swap Trades. Classification works through an ordered strategy
// list (router destination, call selector, transfer pattern, native leg);
// amounts come from summing all usable transfers per direction and picking
// the dominant asset on each side.
package detector

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"dex-trades/internal/chain"
	"dex-trades/internal/domain"
)

// Options configure a Detector for one wallet on one chain.
type Options struct {
	Subject string
	Chain   chain.Chain
	// DustThreshold is given in native display units and compared against
	// raw native amounts scaled by the chain's native decimals. Zero or
	// negative selects the default of 0.1.
	DustThreshold decimal.Decimal
}

// Detection pairs a detected Trade with the classification that flagged it.
type Detection struct {
	Trade          domain.Trade
	Classification domain.Classification
}

// Stats is the accounting of one detection run.
type Stats struct {
	Transactions       int
	MalformedTransfers int
	Trades             int
	ByKind             map[domain.ClassificationKind]int
}

// Detector is a pure function of its input batch: no external state, so
// re-running over the same transactions reproduces the same Trades.
type Detector struct {
	chain   chain.Chain
	subject string
	dustRaw decimal.Decimal
	logger  zerolog.Logger
}

// New builds a detector for the given subject wallet.
func New(opts Options, logger zerolog.Logger) *Detector {
	dust := opts.DustThreshold
	if dust.LessThanOrEqual(decimal.Zero) {
		dust = decimal.NewFromFloat(0.1)
	}
	return &Detector{
		chain:   opts.Chain,
		subject: opts.Chain.NormalizeAddress(opts.Subject),
		dustRaw: dust.Shift(opts.Chain.NativeDecimals),
		logger:  logger.With().Str("component", "detector").Logger(),
	}
}

// DetectBatch classifies every grouped transaction and returns the detected
// swaps sorted by ascending block height, tx id on ties.
func (d *Detector) DetectBatch(txs []GroupedTx) ([]Detection, Stats) {
	stats := Stats{ByKind: make(map[domain.ClassificationKind]int)}

	var detections []Detection
	for _, tx := range txs {
		stats.Transactions++
		det, skipped := d.detectOne(tx)
		stats.MalformedTransfers += skipped
		if det == nil {
			continue
		}
		stats.Trades++
		stats.ByKind[det.Classification.Kind]++
		detections = append(detections, *det)
	}

	sort.Slice(detections, func(i, j int) bool {
		a, b := detections[i].Trade, detections[j].Trade
		if a.BlockHeight != b.BlockHeight {
			return a.BlockHeight < b.BlockHeight
		}
		return a.TxID < b.TxID
	})
	return detections, stats
}

// detectOne yields at most one Detection per transaction, plus the number of
// transfers skipped as malformed. A nil Detection is the expected outcome for
// non-swaps, not an error.
func (d *Detector) detectOne(tx GroupedTx) (*Detection, int) {
	usable, skipped := d.usableTransfers(tx)
	f := newFlow(d.chain, d.subject, usable)

	cls := d.classify(tx.Ctx, f)
	if !cls.Swap() {
		return nil, skipped
	}

	assetIn, amountIn, okIn := f.sent.top()
	assetOut, amountOut, okOut := f.received.top()
	switch {
	case !okIn || !okOut:
		// Inbound-only activity (airdrops, rewards) lands here: the
		// subject must have sent something to qualify.
		return nil, skipped
	case assetIn == assetOut:
		return nil, skipped
	case !amountIn.IsPositive() || !amountOut.IsPositive():
		return nil, skipped
	}

	dex := cls.Dex
	if dex == "" {
		dex = domain.DexUnknown
	}
	return &Detection{
		Trade: domain.Trade{
			TxID:        tx.Ctx.TxID,
			Timestamp:   tx.Ctx.Timestamp,
			BlockHeight: tx.Ctx.BlockHeight,
			AssetIn:     assetIn,
			AssetOut:    assetOut,
			AmountIn:    amountIn,
			AmountOut:   amountOut,
			Dex:         dex,
		},
		Classification: cls,
	}, skipped
}

func (d *Detector) usableTransfers(tx GroupedTx) ([]domain.RawTransfer, int) {
	usable := make([]domain.RawTransfer, 0, len(tx.Transfers))
	skipped := 0
	for _, tr := range tx.Transfers {
		if reason := d.transferDefect(tr); reason != "" {
			skipped++
			d.logger.Debug().
				Str("tx_id", tx.Ctx.TxID).
				Str("asset", tr.Asset).
				Str("reason", reason).
				Msg("skipping transfer")
			continue
		}
		usable = append(usable, tr)
	}
	return usable, skipped
}

func (d *Detector) transferDefect(tr domain.RawTransfer) string {
	from := d.chain.NormalizeAddress(tr.From)
	to := d.chain.NormalizeAddress(tr.To)
	switch {
	case tr.TxID == "":
		return "empty tx id"
	case tr.Asset == "":
		return "empty asset"
	case tr.Amount.Sign() < 0:
		return "negative amount"
	case from != "" && from == to:
		return "self transfer"
	case from != d.subject && to != d.subject:
		return "does not touch subject"
	}
	return ""
}
