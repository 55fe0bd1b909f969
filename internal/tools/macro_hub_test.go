package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capabilityByName(facade *Facade, name string) *Capability {
	for i := range facade.Capabilities {
		if facade.Capabilities[i].Name == name {
			return &facade.Capabilities[i]
		}
	}
	return nil
}

func TestMacroHubRatesDefaultsToUSRegion(t *testing.T) {
	entry := macroHubEntry()
	rates := capabilityByName(entry.facade, "rates")
	require.NotNil(t, rates)

	req, err := rates.BuildRequest(map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "us", req.Symbol)
	assert.Equal(t, "us", req.Params["region"])
}

func TestMacroHubRatesHonorsExplicitRegion(t *testing.T) {
	entry := macroHubEntry()
	rates := capabilityByName(entry.facade, "rates")
	require.NotNil(t, rates)

	req, err := rates.BuildRequest(map[string]interface{}{"region": "eu"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "eu", req.Symbol)
}

func TestMacroHubFXDefaultsToUSDEUR(t *testing.T) {
	entry := macroHubEntry()
	fx := capabilityByName(entry.facade, "fx")
	require.NotNil(t, fx)

	req, err := fx.BuildRequest(map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "USDEUR", req.Symbol)
	assert.Equal(t, "USD", req.Params["base"])
	assert.Equal(t, "EUR", req.Params["quote"])
}

func TestMacroHubFXHonorsExplicitPair(t *testing.T) {
	entry := macroHubEntry()
	fx := capabilityByName(entry.facade, "fx")
	require.NotNil(t, fx)

	req, err := fx.BuildRequest(map[string]interface{}{"base": "GBP", "quote": "JPY"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "GBPJPY", req.Symbol)
}
