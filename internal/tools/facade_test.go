package tools

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataforge/gateway/internal/config"
	"github.com/dataforge/gateway/internal/core"
	"github.com/dataforge/gateway/internal/monitoring"
)

// stubAdapter is a minimal core.Adapter double for facade-level tests,
// where only the fallback/cross-check composition is under test, not
// the adapters themselves.
type stubAdapter struct {
	core.BaseAdapter
	payload interface{}
	err     *core.DataSourceError
}

func (s *stubAdapter) FetchRaw(ctx context.Context, endpoint string, params map[string]interface{}) (interface{}, *core.DataSourceError) {
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

func (s *stubAdapter) Transform(raw interface{}, dataType string) (interface{}, *core.DataSourceError) {
	return raw, nil
}

func (s *stubAdapter) Close() error { return nil }

func newStubAdapter(name string, payload interface{}, err *core.DataSourceError) *stubAdapter {
	return &stubAdapter{BaseAdapter: core.NewBaseAdapter(name, core.SourceDescriptor{Name: name}), payload: payload, err: err}
}

func testLogger() *monitoring.Logger {
	return monitoring.New(monitoring.LoggerConfig{Level: "error", Output: "stdout"})
}

func newTestCore(adapters ...core.Adapter) *core.Core {
	registry := core.NewRegistry()
	descriptors := make([]core.SourceDescriptor, 0, len(adapters))
	for _, a := range adapters {
		registry.Register(a)
		descriptors = append(descriptors, a.Descriptor())
	}
	logger := testLogger()
	return core.New(registry, core.NewMemoryCache(), descriptors, map[string]float64{"price": 1.0}, logger, nil)
}

func singleSourceConfig(tool, capability, source string) *config.Config {
	return &config.Config{
		TTLPolicy: map[string]map[string]int{tool: {capability: 60}},
		SourceChains: map[string]map[string][]config.SourceConfig{
			tool: {capability: {{Name: source, Priority: 0}}},
		},
	}
}

func twoSourceConfig(tool, capability, primary, secondary string) *config.Config {
	return &config.Config{
		TTLPolicy: map[string]map[string]int{tool: {capability: 60}},
		SourceChains: map[string]map[string][]config.SourceConfig{
			tool: {capability: {
				{Name: primary, Priority: 0},
				{Name: secondary, Priority: 1},
			}},
		},
	}
}

func buildRequestFromSymbol(input, prior map[string]interface{}) (core.FetchRequest, error) {
	symbol, _ := input["symbol"].(string)
	return core.FetchRequest{Symbol: symbol}, nil
}

func TestExecuteFallbackSingleCapability(t *testing.T) {
	adapter := newStubAdapter("coingecko", map[string]interface{}{"price": 100.0}, nil)
	c := newTestCore(adapter)
	cfg := singleSourceConfig("crypto_overview", "basic", "coingecko")
	executor := NewExecutor(c, cfg)

	facade := &Facade{
		ToolName: "crypto_overview",
		Capabilities: []Capability{
			{Name: "basic", BuildRequest: buildRequestFromSymbol},
		},
	}

	envelope, err := executor.Execute(context.Background(), facade, map[string]interface{}{"symbol": "btc"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"price": 100.0}, envelope.Data["basic"])
	assert.Empty(t, envelope.Warnings)
}

func TestExecuteFallbackWarnsOnAllSourcesFailed(t *testing.T) {
	adapter := newStubAdapter("coingecko", nil, core.NewDataSourceError("coingecko", core.KindTimeout, "timed out", nil))
	c := newTestCore(adapter)
	cfg := singleSourceConfig("crypto_overview", "basic", "coingecko")
	executor := NewExecutor(c, cfg)

	facade := &Facade{
		ToolName:     "crypto_overview",
		Capabilities: []Capability{{Name: "basic", BuildRequest: buildRequestFromSymbol}},
	}

	envelope, err := executor.Execute(context.Background(), facade, map[string]interface{}{"symbol": "btc"})
	require.NoError(t, err)
	assert.Nil(t, envelope.Data["basic"])
	require.Len(t, envelope.Warnings, 1)
	assert.Contains(t, envelope.Warnings[0], "basic")
}

func TestExecuteCrossCheckAveragesWithinThreshold(t *testing.T) {
	primary := newStubAdapter("coingecko", map[string]interface{}{"price": 100.0}, nil)
	secondary := newStubAdapter("coinmarketcap", map[string]interface{}{"price": 100.4}, nil)
	c := newTestCore(primary, secondary)
	cfg := twoSourceConfig("crypto_overview", "market", "coingecko", "coinmarketcap")
	executor := NewExecutor(c, cfg)

	facade := &Facade{
		ToolName: "crypto_overview",
		Capabilities: []Capability{
			{Name: "market", CrossCheck: true, CrossCheckField: "price", BuildRequest: buildRequestFromSymbol},
		},
	}

	envelope, err := executor.Execute(context.Background(), facade, map[string]interface{}{"symbol": "btc"})
	require.NoError(t, err)
	require.Len(t, envelope.Conflicts, 1)
	assert.Equal(t, core.ResolutionAverage, envelope.Conflicts[0].Resolution)
	assert.Len(t, envelope.SourceMeta, 2)
}

func TestExecuteCrossCheckFallsBackToSurvivorOnOneFailure(t *testing.T) {
	primary := newStubAdapter("coingecko", nil, core.NewDataSourceError("coingecko", core.KindTimeout, "timed out", nil))
	secondary := newStubAdapter("coinmarketcap", map[string]interface{}{"price": 100.4}, nil)
	c := newTestCore(primary, secondary)
	cfg := twoSourceConfig("crypto_overview", "market", "coingecko", "coinmarketcap")
	executor := NewExecutor(c, cfg)

	facade := &Facade{
		ToolName: "crypto_overview",
		Capabilities: []Capability{
			{Name: "market", CrossCheck: true, CrossCheckField: "price", BuildRequest: buildRequestFromSymbol},
		},
	}

	envelope, err := executor.Execute(context.Background(), facade, map[string]interface{}{"symbol": "btc"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"price": 100.4}, envelope.Data["market"])
	assert.Empty(t, envelope.Conflicts, "no conflict can be recorded when only one side of the cross-check succeeded")
}

func TestExecuteRespectsDependencyOrder(t *testing.T) {
	basicAdapter := newStubAdapter("coingecko", map[string]interface{}{"repo": "ethereum/go-ethereum"}, nil)
	devAdapter := newStubAdapter("github", map[string]interface{}{"stars": 42.0}, nil)
	c := newTestCore(basicAdapter, devAdapter)

	cfg := &config.Config{
		TTLPolicy: map[string]map[string]int{
			"crypto_overview": {"basic": 60, "dev_activity": 60},
		},
		SourceChains: map[string]map[string][]config.SourceConfig{
			"crypto_overview": {
				"basic":        {{Name: "coingecko", Priority: 0}},
				"dev_activity": {{Name: "github", Priority: 0}},
			},
		},
	}
	executor := NewExecutor(c, cfg)

	var devActivityRanAfterBasic bool
	facade := &Facade{
		ToolName: "crypto_overview",
		Capabilities: []Capability{
			{Name: "dev_activity", DependsOn: []string{"basic"}, BuildRequest: func(input, prior map[string]interface{}) (core.FetchRequest, error) {
				_, devActivityRanAfterBasic = prior["basic"]
				return core.FetchRequest{}, nil
			}},
			{Name: "basic", BuildRequest: buildRequestFromSymbol},
		},
	}

	_, err := executor.Execute(context.Background(), facade, map[string]interface{}{"symbol": "eth", "include_fields": "all"})
	require.NoError(t, err)
	assert.True(t, devActivityRanAfterBasic, "dev_activity must observe basic's result, proving topo order ran basic first")
}

func TestResolveCapabilitySetDefaultsToAll(t *testing.T) {
	facade := &Facade{Capabilities: []Capability{{Name: "a"}, {Name: "b"}}}
	set := resolveCapabilitySet(facade, map[string]interface{}{})
	assert.True(t, set["a"])
	assert.True(t, set["b"])
}

func TestResolveCapabilitySetHonorsExplicitList(t *testing.T) {
	facade := &Facade{Capabilities: []Capability{{Name: "a"}, {Name: "b"}, {Name: "c"}}}
	set := resolveCapabilitySet(facade, map[string]interface{}{"include_fields": []interface{}{"a", "c"}})
	assert.True(t, set["a"])
	assert.False(t, set["b"])
	assert.True(t, set["c"])
}

func TestNormalizeSymbolUppercasesAndTrims(t *testing.T) {
	input := map[string]interface{}{"symbol": " btc "}
	normalizeSymbol(input)
	assert.Equal(t, "BTC", input["symbol"])
}

func TestDisambiguationCheckAddsWarning(t *testing.T) {
	adapter := newStubAdapter("coingecko", map[string]interface{}{"price": 1.0}, nil)
	c := newTestCore(adapter)
	cfg := singleSourceConfig("crypto_overview", "basic", "coingecko")
	executor := NewExecutor(c, cfg)

	facade := &Facade{
		ToolName:            "crypto_overview",
		Capabilities:        []Capability{{Name: "basic", BuildRequest: buildRequestFromSymbol}},
		DisambiguationCheck: func(input map[string]interface{}) string { return fmt.Sprintf("ambiguous: %v", input["symbol"]) },
	}

	envelope, err := executor.Execute(context.Background(), facade, map[string]interface{}{"symbol": "usdt"})
	require.NoError(t, err)
	require.NotEmpty(t, envelope.Warnings)
	assert.Contains(t, envelope.Warnings[0], "ambiguous")
}
