package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintStableAcrossKeyOrder(t *testing.T) {
	a := Fingerprint("crypto_overview", "market", "BTC", map[string]interface{}{
		"vs_currency": "usd",
		"include_24h": true,
	})
	b := Fingerprint("crypto_overview", "market", "BTC", map[string]interface{}{
		"include_24h": true,
		"vs_currency": "usd",
	})
	assert.Equal(t, a, b, "key order must not affect the fingerprint")
}

func TestFingerprintDiffersOnParamChange(t *testing.T) {
	a := Fingerprint("crypto_overview", "market", "BTC", map[string]interface{}{"vs_currency": "usd"})
	b := Fingerprint("crypto_overview", "market", "BTC", map[string]interface{}{"vs_currency": "eur"})
	assert.NotEqual(t, a, b)
}

func TestFingerprintNormalizesToolCapabilityCase(t *testing.T) {
	a := Fingerprint("Crypto_Overview", "Market", "btc", nil)
	b := Fingerprint("crypto_overview", "market", "btc", nil)
	assert.Equal(t, a, b)
}

func TestFingerprintUppercasesSymbol(t *testing.T) {
	fp := Fingerprint("market_microstructure", "ticker", "btc", nil)
	assert.Contains(t, fp, "BTC")
}

func TestFingerprintOmitsSymbolSegmentWhenEmpty(t *testing.T) {
	fp := Fingerprint("macro_hub", "rates", "", map[string]interface{}{"region": "us"})
	assert.Equal(t, "macro_hub:rates", fp[:len("macro_hub:rates")])
}

func TestFingerprintSortsStringListElements(t *testing.T) {
	a := Fingerprint("tool", "cap", "", map[string]interface{}{"tags": []string{"b", "a"}})
	b := Fingerprint("tool", "cap", "", map[string]interface{}{"tags": []string{"a", "b"}})
	assert.Equal(t, a, b)
}
