package chain

import (
	"strings"
	"testing"
)

func TestLookupEthereumRouters(t *testing.T) {
	c, err := Lookup("ethereum")
	if err != nil {
		t.Fatalf("Lookup 失败: %v", err)
	}

	// Router lookups must not depend on address casing.
	for _, addr := range []string{
		"0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D",
		"0x7A250D5630B4CF539739DF2C5DACB4C659F2488D",
		strings.ToLower("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"),
	} {
		dex, ok := c.RouterDex(addr)
		if !ok {
			t.Fatalf("未命中路由地址 %s", addr)
		}
		if dex != "Uniswap V2" {
			t.Fatalf("RouterDex(%s) = %q, 期望 Uniswap V2", addr, dex)
		}
	}

	if _, ok := c.RouterDex("0x1111111111111111111111111111111111111111"); ok {
		t.Fatal("未登记的地址不应命中路由")
	}
}

func TestSwapSelectorNormalization(t *testing.T) {
	c, err := Lookup("ethereum")
	if err != nil {
		t.Fatalf("Lookup 失败: %v", err)
	}

	for _, sel := range []string{"0x38ed1739", "0x38ED1739", "38ed1739"} {
		if !c.SwapSelector(sel) {
			t.Fatalf("选择器 %s 应被识别", sel)
		}
	}
	if c.SwapSelector("0xdeadbeef") {
		t.Fatal("未知选择器不应命中")
	}
	if c.SwapSelector("") {
		t.Fatal("空选择器不应命中")
	}
}

func TestNativeSentinel(t *testing.T) {
	c, err := Lookup("ethereum")
	if err != nil {
		t.Fatalf("Lookup 失败: %v", err)
	}
	if !c.IsNative("0x0000000000000000000000000000000000000000") {
		t.Fatal("零地址应视为原生资产")
	}
	if c.IsNative("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2") {
		t.Fatal("WETH 不应视为原生资产")
	}
}

func TestSolanaAddressValidation(t *testing.T) {
	c, err := Lookup("solana")
	if err != nil {
		t.Fatalf("Lookup 失败: %v", err)
	}
	if !c.ValidAddress(WSOLMint) {
		t.Fatalf("合法 mint 地址校验失败: %s", WSOLMint)
	}
	if c.ValidAddress("not-base58-0OIl") {
		t.Fatal("非法 base58 不应通过校验")
	}
	if c.ValidAddress("abc") {
		t.Fatal("过短地址不应通过校验")
	}
}

func TestLookupUnknownChain(t *testing.T) {
	if _, err := Lookup("nearprotocol"); err == nil {
		t.Fatal("不支持的链应报错")
	}
}

func TestWithOverrides(t *testing.T) {
	c, err := Lookup("ethereum")
	if err != nil {
		t.Fatalf("Lookup 失败: %v", err)
	}
	custom := c.WithOverrides(
		map[string]string{"TestSwap": "0x00000000000000000000000000000000DeaDBeef"},
		[]string{"0xabcdef01"},
	)

	if dex, ok := custom.RouterDex("0x00000000000000000000000000000000deadbeef"); !ok || dex != "TestSwap" {
		t.Fatalf("覆盖路由未生效: (%q, %v)", dex, ok)
	}
	if !custom.SwapSelector("0xabcdef01") {
		t.Fatal("覆盖选择器未生效")
	}

	// The original registry stays untouched.
	if _, ok := c.RouterDex("0x00000000000000000000000000000000deadbeef"); ok {
		t.Fatal("覆盖不应泄漏到基础配置")
	}
}
