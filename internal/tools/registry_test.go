package tools

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataforge/gateway/internal/config"
	"github.com/dataforge/gateway/internal/core"
	"github.com/dataforge/gateway/internal/persistence"
)

func emptyTestCore() *core.Core {
	return core.New(core.NewRegistry(), core.NewMemoryCache(), nil, nil, testLogger(), nil)
}

func TestNewRegistryRegistersAllSixTools(t *testing.T) {
	c := emptyTestCore()
	cfg := &config.Config{ToolsEnabled: map[string]bool{}}
	r := NewRegistry(c, cfg)

	names := r.Names()
	assert.ElementsMatch(t, []string{
		"crypto_overview",
		"market_microstructure",
		"derivatives_hub",
		"onchain_tvl_fees",
		"sentiment_aggregator",
		"macro_hub",
	}, names)
}

func TestNewRegistryHonorsDisabledTool(t *testing.T) {
	c := emptyTestCore()
	cfg := &config.Config{ToolsEnabled: map[string]bool{"macro_hub": false}}
	r := NewRegistry(c, cfg)

	assert.Nil(t, r.Get("macro_hub"))
	assert.NotContains(t, r.Names(), "macro_hub")
	assert.NotNil(t, r.Get("crypto_overview"))
}

func TestRegistryInvokeUnknownToolReturnsValidationError(t *testing.T) {
	c := emptyTestCore()
	cfg := &config.Config{ToolsEnabled: map[string]bool{}}
	r := NewRegistry(c, cfg)

	_, err := r.Invoke(context.Background(), "not_a_real_tool", nil)
	require.Error(t, err)
	_, ok := err.(*core.ValidationError)
	assert.True(t, ok)
}

func TestRegistryInvokeDisabledToolReturnsConfigurationError(t *testing.T) {
	c := emptyTestCore()
	cfg := &config.Config{ToolsEnabled: map[string]bool{"macro_hub": false}}
	r := NewRegistry(c, cfg)

	assert.True(t, r.IsDisabled("macro_hub"))
	_, err := r.Invoke(context.Background(), "macro_hub", nil)
	require.Error(t, err)
	_, ok := err.(*core.ConfigurationError)
	assert.True(t, ok)
}

type stubPersister struct {
	mu       sync.Mutex
	bundles  []persistence.EvidenceBundle
	received chan struct{}
}

func newStubPersister() *stubPersister {
	return &stubPersister{received: make(chan struct{}, 8)}
}

func (s *stubPersister) Persist(ctx context.Context, bundle persistence.EvidenceBundle) error {
	s.mu.Lock()
	s.bundles = append(s.bundles, bundle)
	s.mu.Unlock()
	s.received <- struct{}{}
	return nil
}

func (s *stubPersister) Close() error { return nil }

func TestInvokeEmitsEvidenceBundleWhenPersisterSet(t *testing.T) {
	adapter := newStubAdapter("coingecko", map[string]interface{}{"price": 100.0}, nil)
	c := newTestCore(adapter)
	cfg := singleSourceConfig("crypto_overview", "basic", "coingecko")
	cfg.ToolsEnabled = map[string]bool{}

	r := NewRegistry(c, cfg)
	sink := newStubPersister()
	r.SetPersister(persistence.NewFanOut(testLogger(), sink))

	_, err := r.Invoke(context.Background(), "crypto_overview", map[string]interface{}{
		"symbol":         "BTC",
		"include_fields": []string{"basic"},
	})
	require.NoError(t, err)

	select {
	case <-sink.received:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for evidence bundle")
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.bundles, 1)
	assert.Equal(t, "BTC", sink.bundles[0].Asset)
}

func TestRegistryGetReturnsMetadata(t *testing.T) {
	c := emptyTestCore()
	cfg := &config.Config{ToolsEnabled: map[string]bool{}}
	r := NewRegistry(c, cfg)

	entry := r.Get("crypto_overview")
	require.NotNil(t, entry)
	assert.Equal(t, "crypto_overview", entry.Name)
	assert.NotEmpty(t, entry.Capabilities)
	assert.NotEmpty(t, entry.Description)
}
