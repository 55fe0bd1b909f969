package core

import (
	"context"
	"sort"

	"golang.org/x/sync/singleflight"

	"github.com/dataforge/gateway/internal/monitoring"
	"github.com/dataforge/gateway/internal/telemetry"
)

// FallbackEngine is the heart of the fabric: given a capability fetch
// request, it tries a configured chain of adapters in priority order,
// serving from cache when possible and recording one reason per failed
// source when the chain is exhausted.
type FallbackEngine struct {
	registry *Registry
	cache    Cache
	limiters *Limiters
	circuits *Circuits
	logger   *monitoring.Logger
	tracer   *telemetry.Provider
	group    singleflight.Group
}

// NewFallbackEngine wires a fallback engine over the given
// collaborators. tracer may be nil, in which case fetches are
// unspanned.
func NewFallbackEngine(registry *Registry, cache Cache, limiters *Limiters, circuits *Circuits, logger *monitoring.Logger, tracer *telemetry.Provider) *FallbackEngine {
	return &FallbackEngine{registry: registry, cache: cache, limiters: limiters, circuits: circuits, logger: logger, tracer: tracer}
}

// Fetch resolves (tool, capability, symbol, params) to a payload and
// its provenance, trying the cache first and then the configured
// fallback chain in priority order. Concurrent callers for the exact
// same fingerprint are deduplicated via singleflight so a cache
// stampede does not fan out into N identical upstream calls.
func (e *FallbackEngine) Fetch(ctx context.Context, req FetchRequest, chain []SourceDescriptor, ttlSeconds int) (interface{}, SourceMeta, error) {
	return e.fetch(ctx, req, chain, ttlSeconds, "")
}

// FetchFromSource fetches a single named source in isolation, keyed
// independently of Fetch's capability-wide fingerprint. The Cross-Source
// Verifier calls this once per side of a comparison, concurrently, and
// both sides must actually reach the network: sharing Fetch's fingerprint
// as the singleflight key would let the primary's in-flight call answer
// for the secondary (or vice versa), collapsing the comparison down to
// whichever source happened to register with the group first and hiding
// every real disagreement between them.
func (e *FallbackEngine) FetchFromSource(ctx context.Context, req FetchRequest, source SourceDescriptor, ttlSeconds int) (interface{}, SourceMeta, error) {
	return e.fetch(ctx, req, []SourceDescriptor{source}, ttlSeconds, source.Name)
}

func (e *FallbackEngine) fetch(ctx context.Context, req FetchRequest, chain []SourceDescriptor, ttlSeconds int, keyScope string) (interface{}, SourceMeta, error) {
	key := Fingerprint(req.Tool, req.Capability, req.Symbol, req.Params)
	if keyScope != "" {
		key = key + ":" + keyScope
	}

	if entry, ok := e.cache.Get(ctx, key); ok {
		return entry.Payload, entry.SourceMeta, nil
	}

	result, err, _ := e.group.Do(key, func() (interface{}, error) {
		payload, meta, ferr := e.fetchChain(ctx, req, chain, ttlSeconds, key)
		if ferr != nil {
			return nil, ferr
		}
		return fetchOutcome{payload: payload, meta: meta}, nil
	})
	if err != nil {
		return nil, SourceMeta{}, err
	}
	outcome := result.(fetchOutcome)
	return outcome.payload, outcome.meta, nil
}

type fetchOutcome struct {
	payload interface{}
	meta    SourceMeta
}

func (e *FallbackEngine) fetchChain(ctx context.Context, req FetchRequest, chain []SourceDescriptor, ttlSeconds int, cacheKey string) (interface{}, SourceMeta, error) {
	sorted := append([]SourceDescriptor(nil), chain...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })

	adapters := e.registry.Chain(sorted)
	if len(adapters) == 0 {
		return nil, SourceMeta{}, NewAllSourcesFailedError(req.Capability, map[string]string{
			"error": "no sources configured",
		})
	}

	errs := make(map[string]string, len(adapters))
	primaryName := adapters[0].Name()

	for i, adapter := range adapters {
		isPrimary := i == 0
		name := adapter.Name()

		if e.circuits != nil && !e.circuits.Allow(name) {
			errs[name] = "circuit open"
			continue
		}
		if e.limiters != nil && !e.limiters.Allow(name) {
			errs[name] = "rate limited"
			if e.circuits != nil {
				e.circuits.Record(name, false)
			}
			continue
		}

		var endSpan func(error)
		spanCtx := ctx
		if e.tracer != nil {
			spanCtx, endSpan = e.tracer.FetchSpan(ctx, req.Tool, req.Capability, name)
		}
		result := Fetch(spanCtx, adapter, req.Endpoint, req.Params, req.DataType, ttlSeconds)
		if endSpan != nil {
			if !result.Ok() {
				endSpan(result.Err)
			} else {
				endSpan(nil)
			}
		}
		if e.circuits != nil {
			e.circuits.Record(name, result.Ok())
		}
		if !result.Ok() {
			errs[name] = result.Err.Error()
			continue
		}

		meta := result.Meta
		if !isPrimary {
			meta.Degraded = true
			meta.FallbackUsed = primaryName
		}

		e.cache.Set(ctx, cacheKey, CacheEntry{Payload: result.Payload, SourceMeta: meta}, ttlSeconds)
		return result.Payload, meta, nil
	}

	return nil, SourceMeta{}, NewAllSourcesFailedError(req.Capability, errs)
}
