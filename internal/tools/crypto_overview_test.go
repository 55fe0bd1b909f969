package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoOverviewDisambiguationWarnsOnMinorAsset(t *testing.T) {
	entry := cryptoOverviewEntry()
	warning := entry.facade.DisambiguationCheck(map[string]interface{}{"symbol": "UNI"})
	assert.Contains(t, warning, "ambiguous")
}

func TestCryptoOverviewDisambiguationSkipsMajorAsset(t *testing.T) {
	entry := cryptoOverviewEntry()
	warning := entry.facade.DisambiguationCheck(map[string]interface{}{"symbol": "BTC"})
	assert.Empty(t, warning)
}

func TestCryptoOverviewDisambiguationSkipsWhenChainGiven(t *testing.T) {
	entry := cryptoOverviewEntry()
	warning := entry.facade.DisambiguationCheck(map[string]interface{}{"symbol": "UNI", "chain": "ethereum"})
	assert.Empty(t, warning)
}

func TestBuildSymbolRequestRequiresSymbol(t *testing.T) {
	_, err := buildSymbolRequest(map[string]interface{}{}, "/coins/info", "basic")
	assert.Error(t, err)
}

func TestBuildSymbolRequestIncludesOptionalParams(t *testing.T) {
	req, err := buildSymbolRequest(map[string]interface{}{
		"symbol": "BTC", "chain": "ethereum", "token_address": "0xabc",
	}, "/coins/info", "basic")
	require.NoError(t, err)
	assert.Equal(t, "ethereum", req.Params["chain"])
	assert.Equal(t, "0xabc", req.Params["token_address"])
	assert.Equal(t, "BTC", req.Symbol)
}

func TestExtractGitHubURLPrefersHomepage(t *testing.T) {
	basic := map[string]interface{}{"homepage": "https://github.com/ethereum/go-ethereum"}
	assert.Equal(t, "https://github.com/ethereum/go-ethereum", extractGitHubURL(basic))
}

func TestExtractGitHubURLFallsBackToLinks(t *testing.T) {
	basic := map[string]interface{}{
		"homepage": "https://ethereum.org",
		"links":    []interface{}{"https://twitter.com/ethereum", "https://github.com/ethereum/go-ethereum"},
	}
	assert.Equal(t, "https://github.com/ethereum/go-ethereum", extractGitHubURL(basic))
}

func TestExtractGitHubURLReturnsEmptyWhenAbsent(t *testing.T) {
	basic := map[string]interface{}{"homepage": "https://ethereum.org"}
	assert.Empty(t, extractGitHubURL(basic))
}

func TestCryptoOverviewHoldersRequiresChainAndToken(t *testing.T) {
	entry := cryptoOverviewEntry()
	var holders *Capability
	for i := range entry.facade.Capabilities {
		if entry.facade.Capabilities[i].Name == "holders" {
			holders = &entry.facade.Capabilities[i]
		}
	}
	require.NotNil(t, holders)

	_, err := holders.BuildRequest(map[string]interface{}{"symbol": "BTC"}, nil)
	assert.Error(t, err)

	req, err := holders.BuildRequest(map[string]interface{}{
		"symbol": "BTC", "chain": "ethereum", "token_address": "0xabc",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ethereum", req.Params["chain"])
}

func TestCryptoOverviewDevActivityRequiresGitHubRepo(t *testing.T) {
	entry := cryptoOverviewEntry()
	var devActivity *Capability
	for i := range entry.facade.Capabilities {
		if entry.facade.Capabilities[i].Name == "dev_activity" {
			devActivity = &entry.facade.Capabilities[i]
		}
	}
	require.NotNil(t, devActivity)

	_, err := devActivity.BuildRequest(map[string]interface{}{"symbol": "BTC"}, map[string]interface{}{
		"basic": map[string]interface{}{"homepage": "https://bitcoin.org"},
	})
	assert.Error(t, err)

	req, err := devActivity.BuildRequest(map[string]interface{}{"symbol": "BTC"}, map[string]interface{}{
		"basic": map[string]interface{}{"homepage": "https://github.com/bitcoin/bitcoin"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/bitcoin/bitcoin", req.Params["repo"])
}
