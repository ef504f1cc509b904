package domain

// ClassificationKind names the strategy that flagged a transaction as a swap.
type ClassificationKind string

const (
	RouterMatch     ClassificationKind = "router"
	SelectorMatch   ClassificationKind = "selector"
	TransferPattern ClassificationKind = "transfer-pattern"
	NativeLeg       ClassificationKind = "native-leg"
	NoMatch         ClassificationKind = "no-match"
)

// Classification is the outcome of the ordered strategy evaluation. Dex is
// only populated for router matches; the other kinds leave the venue unknown.
type Classification struct {
	Kind ClassificationKind `json:"kind"`
	Dex  string             `json:"dex,omitempty"`
}

// Swap reports whether the classification indicates a swap candidate.
func (c Classification) Swap() bool {
	return c.Kind != NoMatch
}
