package core

import (
	"github.com/dataforge/gateway/internal/monitoring"
	"github.com/dataforge/gateway/internal/telemetry"
)

// Core is the constructed Data Source Orchestration Fabric: the
// explicit set of collaborators every tool façade is handed, replacing
// the source system's process-wide registry/cache_manager globals with
// injected dependencies (§9 "global registry → explicit context").
type Core struct {
	Registry *Registry
	Cache    Cache
	Limiters *Limiters
	Circuits *Circuits
	Engine   *FallbackEngine
	Verifier *Verifier
	Resolver *Resolver
	Logger   *monitoring.Logger
}

// New builds a Core over a populated registry, a cache backend, and
// per-field conflict thresholds. descriptors is the union of every
// SourceDescriptor across all configured chains, used to size the
// limiter and circuit tables.
func New(registry *Registry, cache Cache, descriptors []SourceDescriptor, thresholds map[string]float64, logger *monitoring.Logger, tracer *telemetry.Provider) *Core {
	limiters := NewLimiters(descriptors)

	names := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		names = append(names, d.Name)
	}
	circuits := NewCircuits(names, logger)

	engine := NewFallbackEngine(registry, cache, limiters, circuits, logger, tracer)
	verifier := NewVerifier(engine)
	resolver := NewResolver(thresholds)

	return &Core{
		Registry: registry,
		Cache:    cache,
		Limiters: limiters,
		Circuits: circuits,
		Engine:   engine,
		Verifier: verifier,
		Resolver: resolver,
		Logger:   logger,
	}
}

// Close releases every adapter and the cache backend.
func (c *Core) Close() error {
	c.Registry.Close()
	return c.Cache.Close()
}
