// Package persistence writes evidence bundles to one or more sidecar
// stores: an embedded or production relational index, and an object
// store. The core emits bundles fire-and-forget; a persister's failure
// never affects a tool invocation's result, per spec §6.
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dataforge/gateway/internal/core"
	"github.com/dataforge/gateway/internal/monitoring"
)

// EvidenceItem is one SourceMeta's contribution to a bundle.
// NewEvidenceBundle fills Capability with that SourceMeta's Endpoint
// (an upstream path such as "/ticker"), not the capability name.
type EvidenceItem struct {
	Capability string         `json:"capability"`
	SourceMeta core.SourceMeta `json:"source_meta"`
}

// EvidenceBundle is the unit a Persister writes: one tool invocation's
// full provenance trail.
type EvidenceBundle struct {
	BundleID        string         `json:"bundle_id"`
	AsOf            string         `json:"as_of"`
	Watermark       time.Time      `json:"watermark"`
	Asset           string         `json:"asset"`
	Items           []EvidenceItem `json:"items"`
	ConflictsCount  int            `json:"conflicts_count"`
	Hash            string         `json:"hash"`
	FreshnessSLAMet bool           `json:"freshness_sla_met"`
}

// NewEvidenceBundle builds a bundle from a completed envelope.
func NewEvidenceBundle(tool, asset string, envelope *core.Envelope, freshnessSLA time.Duration) EvidenceBundle {
	items := make([]EvidenceItem, 0, len(envelope.SourceMeta))
	for _, m := range envelope.SourceMeta {
		items = append(items, EvidenceItem{Capability: m.Endpoint, SourceMeta: m})
	}

	watermark := time.Now().UTC()
	slaMet := true
	if asOf, err := time.Parse(time.RFC3339, envelope.AsOfUTC); err == nil {
		slaMet = watermark.Sub(asOf) <= freshnessSLA
	}

	return EvidenceBundle{
		BundleID:        uuid.NewString(),
		AsOf:            envelope.AsOfUTC,
		Watermark:       watermark,
		Asset:           asset,
		Items:           items,
		ConflictsCount:  len(envelope.Conflicts),
		Hash:            bundleHash(tool, asset, envelope),
		FreshnessSLAMet: slaMet,
	}
}

// Persister is the sidecar contract: write one bundle, best-effort.
type Persister interface {
	Persist(ctx context.Context, bundle EvidenceBundle) error
	Close() error
}

// FanOut dispatches a bundle to every configured persister
// concurrently on a background goroutine, logging but never
// propagating individual failures.
type FanOut struct {
	persisters []Persister
	logger     *monitoring.Logger
}

func NewFanOut(logger *monitoring.Logger, persisters ...Persister) *FanOut {
	return &FanOut{persisters: persisters, logger: logger}
}

// PersistAsync fires Persist on every backend without blocking the
// caller; the supplied context should be independent of the request
// that produced bundle (it may outlive it).
func (f *FanOut) PersistAsync(ctx context.Context, bundle EvidenceBundle) {
	for _, p := range f.persisters {
		p := p
		go func() {
			if err := p.Persist(ctx, bundle); err != nil {
				f.logger.Warn().Err(err).Str("bundle_id", bundle.BundleID).Msg("evidence persist failed")
			}
		}()
	}
}

func (f *FanOut) Close() error {
	var first error
	for _, p := range f.persisters {
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
