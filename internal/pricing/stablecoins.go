package pricing

// DefaultStablecoins are priced at exactly one dollar when the store and the
// backfill provider have nothing for them.
var DefaultStablecoins = []string{
	"USDC", "USDT", "DAI", "BUSD", "USDP", "TUSD", "USDD",
	"FRAX", "LUSD", "USD3", "NUSD", "AUSD", "USN",
}
