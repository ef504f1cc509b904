package pricing

import "strings"

// Underlying maps a wrapper or derivative token symbol to the asset it
// tracks. The patterns are heuristic by nature; an adversarially named token
// can slip through, which is accepted as a pricing accuracy limit rather
// than guarded against.
//
//	PT-nBASIS-26MAR2026 -> nBASIS
//	aEthUSDC            -> USDC
//	aUSDC               -> USDC
//	fGHO                -> GHO
//
// Prefix checks are case sensitive on purpose: "AAVE" is not an a-token.
func Underlying(symbol string) (string, bool) {
	if strings.HasPrefix(symbol, "PT-") {
		parts := strings.Split(symbol, "-")
		if len(parts) >= 2 && parts[1] != "" {
			return parts[1], true
		}
		return "", false
	}

	if rest, ok := strings.CutPrefix(symbol, "aEth"); ok && rest != "" {
		return rest, true
	}
	if rest, ok := strings.CutPrefix(symbol, "a"); ok && rest != "" {
		return rest, true
	}
	if rest, ok := strings.CutPrefix(symbol, "f"); ok && rest != "" {
		return rest, true
	}

	return "", false
}
