package tokens

// knownTokens is the built-in metadata table, keyed by chain name then by
// lowercase contract address. It covers the liquid assets that dominate swap
// volume; everything else comes from batch-supplied metadata.
var knownTokens = map[string]map[string]Info{
	"ethereum": {
		"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48": {Name: "USD Coin", Symbol: "USDC", Decimals: 6},
		"0xdac17f958d2ee523a2206206994597c13d831ec7": {Name: "Tether USD", Symbol: "USDT", Decimals: 6},
		"0x6b175474e89094c44da98b954eedeac495271d0f": {Name: "Dai Stablecoin", Symbol: "DAI", Decimals: 18},
		"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2": {Name: "Wrapped Ether", Symbol: "WETH", Decimals: 18},
		"0x2260fac5e5542a773aa44fbcfedf7c193bc2c599": {Name: "Wrapped BTC", Symbol: "WBTC", Decimals: 8},
		"0xae7ab96520de3a18e5e111b5eaab095312d7fe84": {Name: "stETH", Symbol: "stETH", Decimals: 18},
		"0x4c9edd5852cd905f086c759e8383e09bff1e68b3": {Name: "USDe", Symbol: "USDe", Decimals: 18},
		"0x7fc66500c84a76ad7e9c93437bfc5ac33e2ddae9": {Name: "Aave Token", Symbol: "AAVE", Decimals: 18},
		"0x808507121b80c02388fad14726482e061b8da827": {Name: "Pendle", Symbol: "PENDLE", Decimals: 18},
		"0xc00e94cb662c3520282e6f5717214004a7f26888": {Name: "Compound", Symbol: "COMP", Decimals: 18},
		"0x57e114b691db790c35207b2e685d4a43181e6061": {Name: "Ethena", Symbol: "ENA", Decimals: 18},
		"0x58d97b57bb95320f9a05dc918aef65434969c2b2": {Name: "Morpho Token", Symbol: "MORPHO", Decimals: 18},
		"0xec53bf9167f50cdeb3ae105f56099aaab9061f83": {Name: "Eigen", Symbol: "EIGEN", Decimals: 18},
		"0x40d16fc0246ad3160ccc09b8d0d3a2cd28ae6c2f": {Name: "GHO Token", Symbol: "GHO", Decimals: 18},
		"0x45804880de22913dafe09f4980848ece6ecbaf78": {Name: "Paxos Gold", Symbol: "PAXG", Decimals: 18},
		"0x98c23e9d8f34fefb1b7bd6a91b7ff122f4e16f5c": {Name: "Aave Ethereum USDC", Symbol: "aEthUSDC", Decimals: 6},
		"0x23878914efe38d27c4d67ab83ed1b93a74d4086a": {Name: "Aave Ethereum USDT", Symbol: "aEthUSDT", Decimals: 6},
		"0x4d5f47fa6a74757f35c14fd3a6ef8e3c9bc514e8": {Name: "Aave Ethereum WETH", Symbol: "aEthWETH", Decimals: 18},
		"0x9fb7b4477576fe5b32be4c1843afb1e55f251b33": {Name: "Fluid USD Coin", Symbol: "fUSDC", Decimals: 6},
		"0xfe0c30065b384f05761f15d0cc899d4f9f9cc0eb": {Name: "ether.fi governance token", Symbol: "ETHFI", Decimals: 18},
	},
	"solana": {
		"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v": {Name: "USD Coin", Symbol: "USDC", Decimals: 6},
		"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB": {Name: "Tether USD", Symbol: "USDT", Decimals: 6},
	},
}
