package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtocolSlugRequiresProtocol(t *testing.T) {
	_, err := protocolSlug(map[string]interface{}{})
	assert.Error(t, err)

	slug, err := protocolSlug(map[string]interface{}{"protocol": "aave"})
	require.NoError(t, err)
	assert.Equal(t, "aave", slug)
}

func TestOnchainTVLFeesWindowDefaultsTo24h(t *testing.T) {
	entry := onchainTVLFeesEntry()
	var fees *Capability
	for i := range entry.facade.Capabilities {
		if entry.facade.Capabilities[i].Name == "fees" {
			fees = &entry.facade.Capabilities[i]
		}
	}
	require.NotNil(t, fees)

	req, err := fees.BuildRequest(map[string]interface{}{"protocol": "aave"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "24h", req.Params["window"])
}

func TestOnchainTVLFeesWindowHonorsExplicitValue(t *testing.T) {
	entry := onchainTVLFeesEntry()
	var fees *Capability
	for i := range entry.facade.Capabilities {
		if entry.facade.Capabilities[i].Name == "fees" {
			fees = &entry.facade.Capabilities[i]
		}
	}
	require.NotNil(t, fees)

	req, err := fees.BuildRequest(map[string]interface{}{"protocol": "aave", "window": "7d"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "7d", req.Params["window"])
}
