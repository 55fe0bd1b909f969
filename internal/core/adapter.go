package core

import (
	"context"
	"time"
)

// AdapterResult is the sum type a fallback engine folds over: either a
// normalized payload with its provenance, or a classified failure.
// Replaces exception-based control flow with an explicit result value.
type AdapterResult struct {
	Payload interface{}
	Meta    SourceMeta
	Err     *DataSourceError
}

// Ok reports whether the result carries a usable payload.
func (r AdapterResult) Ok() bool { return r.Err == nil }

// Adapter is the uniform contract a provider must satisfy: fetch raw,
// transform, fetch (= fetch_raw then transform then stamp), and close.
// Adapters are stateless across calls and safe for concurrent use.
type Adapter interface {
	// Name is the adapter identifier used in fallback chains, errors,
	// and provenance ("coingecko", "etherscan", …).
	Name() string

	// Descriptor returns this adapter's static chain configuration.
	Descriptor() SourceDescriptor

	// FetchRaw performs one upstream call, respecting the adapter's
	// timeout. The rate-limit token is taken by the fallback engine
	// before this is called. Returns a raw, untransformed value.
	FetchRaw(ctx context.Context, endpoint string, params map[string]interface{}) (interface{}, *DataSourceError)

	// Transform is a pure function from a raw value to a normalized
	// payload for the given data type. The set of legal data types is
	// per-adapter.
	Transform(raw interface{}, dataType string) (interface{}, *DataSourceError)

	// Close releases any adapter-held resources (connections, websocket
	// sessions). Called once at shutdown.
	Close() error
}

// Fetch composes FetchRaw, Transform, and SourceMeta construction: the
// single operation the fallback engine invokes per chain entry.
func Fetch(ctx context.Context, a Adapter, endpoint string, params map[string]interface{}, dataType string, ttlSeconds int) AdapterResult {
	start := time.Now()
	raw, err := a.FetchRaw(ctx, endpoint, params)
	if err != nil {
		return AdapterResult{Err: err}
	}

	normalized, err := a.Transform(raw, dataType)
	if err != nil {
		return AdapterResult{Err: err}
	}

	elapsed := time.Since(start)
	meta := SourceMeta{
		Provider:       a.Name(),
		Endpoint:       endpoint,
		AsOfUTC:        NowUTC(),
		TTLSecs:        ttlSeconds,
		Version:        "v3",
		ResponseTimeMs: elapsed.Milliseconds(),
	}
	return AdapterResult{Payload: normalized, Meta: meta}
}

// BaseAdapter supplies the descriptor plumbing every concrete adapter
// embeds, mirroring the teacher's shared-struct-over-inheritance idiom.
type BaseAdapter struct {
	name       string
	descriptor SourceDescriptor
}

func NewBaseAdapter(name string, descriptor SourceDescriptor) BaseAdapter {
	descriptor.Name = name
	return BaseAdapter{name: name, descriptor: descriptor}
}

func (a *BaseAdapter) Name() string                 { return a.name }
func (a *BaseAdapter) Descriptor() SourceDescriptor { return a.descriptor }
