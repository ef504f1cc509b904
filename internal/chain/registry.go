package chain

import (
	"fmt"
	"sort"
	"strings"
)

// EVMNativeAsset is the conventional sentinel for the native coin on EVM
// chains (explorers report native movements without a contract address).
const EVMNativeAsset = "0x0000000000000000000000000000000000000000"

// WSOLMint doubles as the native sentinel on Solana, where swaps route
// through the wrapped form.
const WSOLMint = "So11111111111111111111111111111111111111112"

// SuiCoinType is the canonical coin type of the Sui native asset.
const SuiCoinType = "0x2::sui::SUI"

// swapSelectors is shared by every EVM chain: 4-byte selectors of the common
// swap entrypoints across router generations.
var swapSelectors = []string{
	// Uniswap V2 family
	"0x38ed1739", // swapExactTokensForTokens
	"0x8803dbee", // swapTokensForExactTokens
	"0x5c11d795", // swapExactTokensForTokensSupportingFeeOnTransferTokens
	"0x791ac947", // swapExactTokensForETHSupportingFeeOnTransferTokens
	"0x02751cec", // swapExactTokensForETH
	"0x4a25d94a", // swapETHForExactTokens
	"0x7ff36ab5", // swapExactETHForTokens
	"0x18cbafe5", // swapExactETHForTokensSupportingFeeOnTransferTokens
	// Uniswap V3 family
	"0x414bf389", // exactInputSingle
	"0xdb3e2198", // exactInput
	"0xf28c0498", // exactOutput
	// 1inch
	"0x12aa3caf", // swap
	"0x2e95b6c8", // unoswap
	"0x2521b930", // uniswapV3Swap
	"0xe449022e", // unoswapTo
	// Curve
	"0x3df02124", // exchange
	"0xa6417ed6", // exchange_underlying
	// 0x / Hashflow
	"0x415565b0", // transformERC20
	// Balancer V2
	"0x52bbbe29", // swap
	// aggregator catch-alls
	"0x7c025200",
	"0x3593564c",
	"0x90411a32", // OpenOcean swap
}

// ethereumRouters is the mainnet router book; other EVM chains carry their
// own native venues plus the cross-chain Uniswap V3 deployment.
var ethereumRouters = map[string]string{
	"Uniswap V2":        "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D",
	"Uniswap V3 Router": "0x68b3465833fb72A70ecDF485E0e4C7bD8665Fc45",
	"SushiSwap":         "0xd9e1cE17f2641f24aE83637ab66a2cca9C378B9F",
	"Curve Router":      "0x99C9FC46f92E8a1c0deC1b1747d010903E884bE1",
	"1inch V4":          "0x1111111254fb6c44bAC0beD2854e76F90643097d",
	"1inch V5":          "0x1111111254EEB25477B68fb85Ed929f73A960582",
	"Balancer V2":       "0xBA12222222228d8Ba445958a75a0704d566BF2C8",
	"0x Protocol":       "0xDef1C0ded9bec7F1a1670819833240f027b25EfF",
	"KyberSwap":         "0x6131B5fae19EA4f9D964eAc0408E4408b66337b5",
	"DODO":              "0xa356867fDCEa8e71AEaF87805808803806231FdC",
	"Paraswap":          "0xDEF171Fe48CF0115B1d80b88dc8eAB59176FEe57",
	"CowSwap":           "0x9008D19f58AAbD9eD0D60971565AA8510560ab41",
	"Bancor":            "0x2F9bC877DfB3c0dA6D8238173d855b566E030aF4",
	"ShibaSwap":         "0x03f7724180AA6b939894B5Ca4314783B0b36b329",
	"Clipper":           "0x5130f6cE257B8F9bF7fac0A0E519b25c120cB0b6",
	"Hashflow":          "0xE592427A0AEce92De3Edee1F18E0157C05861564",
	"OpenOcean":         "0x6352a56caadC4F1E25CD6c75970Fa768A3304e64",
}

var uniswapV3Shared = "0x68b3465833fb72A70ecDF485E0e4C7bD8665Fc45"

type chainSpec struct {
	family         Family
	nativeSymbol   string
	nativeDecimals int32
	nativeAsset    string
	wrappedNative  string
	routers        map[string]string
}

var specs = map[string]chainSpec{
	"ethereum": {FamilyEVM, "ETH", 18, EVMNativeAsset, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", ethereumRouters},
	"base": {FamilyEVM, "ETH", 18, EVMNativeAsset, "0x4200000000000000000000000000000000000006", map[string]string{
		"Uniswap V3 Router": "0x2626664c2603336E57B271c5C0b26F421741e481",
		"Uniswap V2":        "0x4752ba5dbc23f44d87826276bf6fd6b1c372ad24",
		"SushiSwap":         "0x6BDED42c6DA8FBf0d2bA55B2fa120C5e0c8D7891",
	}},
	"arbitrum": {FamilyEVM, "ETH", 18, EVMNativeAsset, "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1", map[string]string{
		"Uniswap V3 Router": uniswapV3Shared,
		"Uniswap V2":        "0xf164fC0Ec4E93095b805a8881656a6b3Fbe44F6a",
		"SushiSwap":         "0x1b02dA8Cb0d097eB8D57A175b88c7D8b47997506",
		"Camelot":           "0xc873fEcbd354f5A56E00E710B90EF4201db2448d",
	}},
	"optimism": {FamilyEVM, "ETH", 18, EVMNativeAsset, "0x4200000000000000000000000000000000000006", map[string]string{
		"Uniswap V3 Router": uniswapV3Shared,
		"Velodrome":         "0x9c12939390052919aF3155f41Bf4160Fd3666A6f",
	}},
	"polygon": {FamilyEVM, "MATIC", 18, EVMNativeAsset, "0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270", map[string]string{
		"Uniswap V3 Router": uniswapV3Shared,
		"QuickSwap":         "0xa5E0829CaCEd8fFDD4De3c43696c57F7D7A678ff",
		"SushiSwap":         "0x1b02dA8Cb0d097eB8D57A175b88c7D8b47997506",
	}},
	"monad": {FamilyEVM, "MON", 18, EVMNativeAsset, "", map[string]string{
		"Uniswap V3 Router": uniswapV3Shared,
	}},
	"avax": {FamilyEVM, "AVAX", 18, EVMNativeAsset, "0xB31f66AA3C1e785363F0875A1B74E27b85FD66c7", map[string]string{
		"Uniswap V3 Router": uniswapV3Shared,
		"Trader Joe":        "0x60aE616a2155Ee3d9A68541Ba4544862310933d4",
		"Pangolin":          "0xE54Ca86531e17Ef3616d22Ca28b0D458b6C89106",
	}},
	"binance": {FamilyEVM, "BNB", 18, EVMNativeAsset, "0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c", map[string]string{
		"Uniswap V3 Router": uniswapV3Shared,
		"PancakeSwap":       "0x10ED43C718714eb63d5aA57B78B54704E256024E",
		"Biswap":            "0x3a6d8cA21D1CF76F653A67577FA0D27453350dD8",
	}},
	"linea": {FamilyEVM, "ETH", 18, EVMNativeAsset, "0xe5D7C2a44FfDDf6b295A15c148167daaAf5Cf34f", map[string]string{
		"Uniswap V3 Router": "0x2626664c2603336E57B271c5C0b26F421741e481",
	}},
	"katana": {FamilyEVM, "KAT", 18, EVMNativeAsset, "0xc99a6A985eD2Cac1ef41640596C5A5f9F4E19Ef5", map[string]string{
		"Uniswap V3 Router": uniswapV3Shared,
	}},
	"solana": {FamilySolana, "SOL", 9, WSOLMint, WSOLMint, nil},
	"sui":    {FamilySui, "SUI", 9, SuiCoinType, SuiCoinType, nil},
}

// Lookup returns the built-in configuration for a chain by its lowercase
// name.
func Lookup(name string) (Chain, error) {
	spec, ok := specs[strings.ToLower(name)]
	if !ok {
		return Chain{}, fmt.Errorf("chain %q not supported (known: %s)", name, strings.Join(Names(), ", "))
	}
	c := Chain{
		Name:           strings.ToLower(name),
		Family:         spec.family,
		NativeSymbol:   spec.nativeSymbol,
		NativeDecimals: spec.nativeDecimals,
		NativeAsset:    spec.nativeAsset,
		WrappedNative:  spec.wrappedNative,
	}
	c.routers = buildRouters(spec.routers, c)
	if spec.family == FamilyEVM {
		c.selectors = buildSelectors(swapSelectors)
	} else {
		c.selectors = map[string]struct{}{}
	}
	return c, nil
}

// Names lists the supported chain names in stable order.
func Names() []string {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
