package core

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// VerifiedResult is one source's contribution to a cross-checked
// capability fetch.
type VerifiedResult struct {
	Source  string
	Payload interface{}
	Meta    SourceMeta
	Err     error
}

// Verifier fans a capability fetch out to two sources in parallel and
// returns both outcomes, used only when a tool façade explicitly wants
// cross-checking (today: price quotes, funding rates, and TVL). Both calls proceed
// independently — if both are cache hits, both return instantly; if
// one source fails, the other's result still comes back.
type Verifier struct {
	engine *FallbackEngine
}

// NewVerifier wraps a fallback engine for cross-source verification.
func NewVerifier(engine *FallbackEngine) *Verifier {
	return &Verifier{engine: engine}
}

// Verify fetches req from primary and secondary concurrently via
// FetchFromSource, each keyed independently so cache, rate limiting,
// and singleflight dedup apply per source rather than per capability —
// otherwise one side's in-flight call would silently stand in for the
// other's.
func (v *Verifier) Verify(ctx context.Context, req FetchRequest, primary, secondary SourceDescriptor, ttlSeconds int) (VerifiedResult, VerifiedResult) {
	var results [2]VerifiedResult
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		payload, meta, err := v.engine.FetchFromSource(gctx, req, primary, ttlSeconds)
		results[0] = VerifiedResult{Source: primary.Name, Payload: payload, Meta: meta, Err: err}
		return nil
	})
	g.Go(func() error {
		payload, meta, err := v.engine.FetchFromSource(gctx, req, secondary, ttlSeconds)
		results[1] = VerifiedResult{Source: secondary.Name, Payload: payload, Meta: meta, Err: err}
		return nil
	})

	// Errors are per-source outcomes, not group failures: a failed
	// secondary must never cancel the primary's in-flight call.
	_ = g.Wait()

	return results[0], results[1]
}
