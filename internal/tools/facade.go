// Package tools implements the data-driven Tool Façade layer: each
// domain tool describes its capability set, dependency order, and
// cross-check policy, and a single shared executor drives the fallback
// engine (and verifier, where enabled) per spec §4.9.
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/dataforge/gateway/internal/config"
	"github.com/dataforge/gateway/internal/core"
)

// Capability describes one named sub-query of a tool: its dependency
// order, whether it is cross-checked, and how to build the fetch
// request from the façade's resolved input.
type Capability struct {
	Name string
	// DependsOn names capabilities that, when they are also requested,
	// complete (successfully or not) before this one is attempted, so
	// their output can feed this one's params (e.g. a follow-on
	// dev_activity fetch derives a repo URL from basic info). A
	// dependency that is not requested is not fetched.
	DependsOn []string
	// CrossCheck enables the verifier for this capability instead of a
	// plain fallback fetch.
	CrossCheck bool
	// CrossCheckField is the dotted JSON path compared when CrossCheck
	// is set.
	CrossCheckField string
	// BuildRequest produces the fetch request for this capability given
	// the façade's normalized input and the outputs of capabilities it
	// depends on.
	BuildRequest func(input map[string]interface{}, prior map[string]interface{}) (core.FetchRequest, error)
}

// Facade is a small, data-driven description of one domain tool.
type Facade struct {
	ToolName     string
	Description  string
	Capabilities []Capability
	// DisambiguationCheck, when non-nil, inspects the normalized input
	// and returns a warning string if the symbol is under-specified
	// (e.g. a multi-chain asset with no chain or token_address).
	DisambiguationCheck func(input map[string]interface{}) string
}

// Executor drives façades against the orchestration fabric.
type Executor struct {
	core   *core.Core
	config *config.Config
}

// NewExecutor builds an Executor over the core fabric and resolved
// configuration (TTL policy, source chains, tool enablement).
func NewExecutor(c *core.Core, cfg *config.Config) *Executor {
	return &Executor{core: c, config: cfg}
}

// Execute normalizes input, resolves the requested capability set in
// dependency order, and returns the composed envelope. Per-capability
// AllSourcesFailedError is caught and converted into a warning; the
// envelope is still returned with every other capability that
// succeeded.
func (ex *Executor) Execute(ctx context.Context, f *Facade, input map[string]interface{}) (*core.Envelope, error) {
	normalizeSymbol(input)

	builder := core.NewEnvelopeBuilder()

	if f.DisambiguationCheck != nil {
		if warning := f.DisambiguationCheck(input); warning != "" {
			builder.Warn(warning)
		}
	}

	requested := resolveCapabilitySet(f, input)
	ordered := topoSort(f.Capabilities, requested)

	results := make(map[string]interface{}, len(ordered))

	for _, cap := range ordered {
		if cap.CrossCheck {
			ex.executeCrossChecked(ctx, f.ToolName, cap, input, results, builder)
			continue
		}
		ex.executeFallback(ctx, f.ToolName, cap, input, results, builder)
	}

	return builder.Build(), nil
}

func (ex *Executor) executeFallback(ctx context.Context, tool string, cap Capability, input map[string]interface{}, results map[string]interface{}, builder *core.EnvelopeBuilder) {
	req, err := cap.BuildRequest(input, results)
	if err != nil {
		builder.Warn(fmt.Sprintf("%s: %s", cap.Name, err.Error()))
		return
	}
	req.Tool, req.Capability = tool, cap.Name

	chain := ex.config.SourceChain(tool, cap.Name)
	ttl := ex.config.TTL(tool, cap.Name)

	payload, meta, err := ex.core.Engine.Fetch(ctx, req, chain, ttl)
	if err != nil {
		builder.Warn(fmt.Sprintf("%s: %s", cap.Name, err.Error()))
		return
	}

	results[cap.Name] = payload
	builder.SetData(cap.Name, payload)
	builder.AppendSourceMeta(meta)
	if meta.Degraded {
		builder.Warn(fmt.Sprintf("%s: served by fallback source %s (primary %s unavailable)", cap.Name, meta.Provider, meta.FallbackUsed))
	}
}

func (ex *Executor) executeCrossChecked(ctx context.Context, tool string, cap Capability, input map[string]interface{}, results map[string]interface{}, builder *core.EnvelopeBuilder) {
	req, err := cap.BuildRequest(input, results)
	if err != nil {
		builder.Warn(fmt.Sprintf("%s: %s", cap.Name, err.Error()))
		return
	}
	req.Tool, req.Capability = tool, cap.Name

	chain := ex.config.SourceChain(tool, cap.Name)
	if len(chain) == 0 {
		builder.Warn(fmt.Sprintf("%s: no sources configured", cap.Name))
		return
	}
	ttl := ex.config.TTL(tool, cap.Name)

	primary := chain[0]
	if len(chain) == 1 {
		ex.executeFallback(ctx, tool, cap, input, results, builder)
		return
	}
	secondary := chain[1]

	a, b := ex.core.Verifier.Verify(ctx, req, primary, secondary, ttl)
	if a.Err != nil && b.Err != nil {
		builder.Warn(fmt.Sprintf("%s: %s", cap.Name, a.Err.Error()))
		return
	}
	if a.Err != nil {
		meta := b.Meta
		meta.Degraded = true
		meta.FallbackUsed = a.Source
		results[cap.Name] = b.Payload
		builder.SetData(cap.Name, b.Payload)
		builder.AppendSourceMeta(meta)
		builder.Warn(fmt.Sprintf("%s: served by fallback source %s (primary %s unavailable)", cap.Name, meta.Provider, meta.FallbackUsed))
		return
	}
	if b.Err != nil {
		results[cap.Name] = a.Payload
		builder.SetData(cap.Name, a.Payload)
		builder.AppendSourceMeta(a.Meta)
		return
	}

	final, conflict, hasConflict := ex.core.Resolver.Resolve(a.Payload, cap.CrossCheckField, a.Source, b.Source, b.Payload)
	results[cap.Name] = final
	builder.SetData(cap.Name, final)
	builder.AppendSourceMeta(a.Meta)
	builder.AppendSourceMeta(b.Meta)
	if hasConflict {
		builder.AppendConflict(conflict)
	}
}

// resolveCapabilitySet expands include_fields ("all" or an explicit
// list) into the concrete capability set to fetch.
func resolveCapabilitySet(f *Facade, input map[string]interface{}) map[string]bool {
	set := make(map[string]bool, len(f.Capabilities))

	raw, ok := input["include_fields"]
	if !ok {
		for _, c := range f.Capabilities {
			set[c.Name] = true
		}
		return set
	}

	var fields []string
	switch v := raw.(type) {
	case []string:
		fields = v
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				fields = append(fields, s)
			}
		}
	case string:
		fields = []string{v}
	}

	for _, field := range fields {
		if field == "all" {
			for _, c := range f.Capabilities {
				set[c.Name] = true
			}
			return set
		}
		set[field] = true
	}
	return set
}

// topoSort orders the requested capabilities so every DependsOn entry
// comes before its dependents, preserving declaration order otherwise.
func topoSort(all []Capability, requested map[string]bool) []Capability {
	byName := make(map[string]Capability, len(all))
	for _, c := range all {
		byName[c.Name] = c
	}

	var ordered []Capability
	visited := make(map[string]bool)

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		cap, ok := byName[name]
		if !ok {
			return
		}
		visited[name] = true
		for _, dep := range cap.DependsOn {
			if requested[dep] {
				visit(dep)
			}
		}
		ordered = append(ordered, cap)
	}

	for _, c := range all {
		if requested[c.Name] {
			visit(c.Name)
		}
	}
	return ordered
}

func normalizeSymbol(input map[string]interface{}) {
	if sym, ok := input["symbol"].(string); ok {
		input["symbol"] = strings.ToUpper(strings.TrimSpace(sym))
	}
}
