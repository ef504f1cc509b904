package pricing

import "testing"

func TestUnderlying(t *testing.T) {
	cases := []struct {
		symbol string
		want   string
		ok     bool
	}{
		{"PT-nBASIS-26MAR2026", "nBASIS", true},
		{"PT-iUSD-4DEC2025", "iUSD", true},
		{"PT-sUSDE-29MAY2025", "sUSDE", true},
		{"aEthUSDC", "USDC", true},
		{"aEthWETH", "WETH", true},
		{"aUSDC", "USDC", true},
		{"fGHO", "GHO", true},
		{"fUSDC", "USDC", true},
		// Uppercase prefixes are not wrapper markers.
		{"AAVE", "", false},
		{"FRAX", "", false},
		{"USDC", "", false},
		{"PT-", "", false},
		{"a", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := Underlying(tc.symbol)
		if ok != tc.ok || got != tc.want {
			t.Errorf("Underlying(%q) = (%q, %v), 期望 (%q, %v)", tc.symbol, got, ok, tc.want, tc.ok)
		}
	}
}
