package tools

import (
	"context"
	"time"

	"github.com/dataforge/gateway/internal/config"
	"github.com/dataforge/gateway/internal/core"
	"github.com/dataforge/gateway/internal/persistence"
)

// defaultFreshnessSLA bounds how old an envelope's as_of_utc may be
// before an evidence bundle is flagged as missing its freshness SLA.
const defaultFreshnessSLA = 5 * time.Minute

// Freshness documents a tool's cache behavior for consumers.
type Freshness struct {
	TypicalTTLSeconds int    `json:"typical_ttl_seconds"`
	AsOfSemantics     string `json:"as_of_semantics"`
}

// RegistryEntry is the full description of one tool surfaced at
// GET /tools/registry, per spec §6.
type RegistryEntry struct {
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	Endpoint     string                 `json:"endpoint"`
	InputSchema  map[string]interface{} `json:"input_schema"`
	OutputSchema map[string]interface{} `json:"output_schema"`
	Examples     []map[string]interface{} `json:"examples"`
	Capabilities []string               `json:"capabilities"`
	Freshness    Freshness              `json:"freshness"`
	Limitations  []string               `json:"limitations"`
	CostHints    map[string]interface{} `json:"cost_hints"`

	facade *Facade
}

// Registry holds every tool façade and its registry metadata, filtered
// to what configuration enables.
type Registry struct {
	executor  *Executor
	config    *config.Config
	entries   map[string]*RegistryEntry
	order     []string
	disabled  map[string]*RegistryEntry
	persister *persistence.FanOut
}

// SetPersister attaches the evidence-bundle sidecar. Optional: a
// Registry built without one simply skips bundle emission, per spec
// §6's collaborator-interface contract (the core neither depends on
// nor blocks on persistence).
func (r *Registry) SetPersister(p *persistence.FanOut) {
	r.persister = p
}

// NewRegistry builds the representative tool set: crypto_overview,
// market_microstructure, derivatives_hub, onchain_tvl_fees,
// sentiment_aggregator, and macro_hub, per SPEC_FULL.md §C.1. Tools
// disabled by configuration are kept out of Names/Get (so neither
// transport registers them) but tracked separately so Invoke can
// distinguish "disabled" from "unknown" and surface the HTTP 503 spec
// §6 calls for.
func NewRegistry(c *core.Core, cfg *config.Config) *Registry {
	executor := NewExecutor(c, cfg)
	r := &Registry{
		executor: executor,
		config:   cfg,
		entries:  make(map[string]*RegistryEntry),
		disabled: make(map[string]*RegistryEntry),
	}

	for _, entry := range []*RegistryEntry{
		cryptoOverviewEntry(),
		marketMicrostructureEntry(),
		derivativesHubEntry(),
		onchainTVLFeesEntry(),
		sentimentAggregatorEntry(),
		macroHubEntry(),
	} {
		if !cfg.IsToolEnabled(entry.Name) {
			r.disabled[entry.Name] = entry
			continue
		}
		r.entries[entry.Name] = entry
		r.order = append(r.order, entry.Name)
	}
	return r
}

// Names returns every enabled tool name, in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Get returns the registry entry for name, or nil if unknown/disabled.
func (r *Registry) Get(name string) *RegistryEntry {
	return r.entries[name]
}

// IsDisabled reports whether name is a known tool that configuration
// has turned off, as opposed to one that doesn't exist at all.
func (r *Registry) IsDisabled(name string) bool {
	_, ok := r.disabled[name]
	return ok
}

// Invoke executes the named tool's façade against input, returning the
// resulting envelope. A disabled tool yields a ConfigurationError so
// the REST transport can map it to HTTP 503 rather than 404.
func (r *Registry) Invoke(ctx context.Context, name string, input map[string]interface{}) (*core.Envelope, error) {
	if r.IsDisabled(name) {
		return nil, &core.ConfigurationError{Message: "tool disabled: " + name}
	}
	entry := r.entries[name]
	if entry == nil {
		return nil, &core.ValidationError{Message: "unknown tool: " + name}
	}
	envelope, err := r.executor.Execute(ctx, entry.facade, input)
	if err != nil {
		return nil, err
	}
	if r.persister != nil {
		bundle := persistence.NewEvidenceBundle(name, assetFromInput(input), envelope, defaultFreshnessSLA)
		r.persister.PersistAsync(context.WithoutCancel(ctx), bundle)
	}
	return envelope, nil
}

// assetFromInput picks the input field tool façades use to identify
// the subject of a bundle; not every tool keys on "symbol".
func assetFromInput(input map[string]interface{}) string {
	for _, key := range []string{"symbol", "protocol", "token_address", "query"} {
		if v, ok := input[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
