package persistence

import "context"

// Noop discards every bundle. Used when no persistence backend is
// configured; AllDescriptors-style empty configuration should not
// require a nil check at every call site.
type Noop struct{}

func (Noop) Persist(ctx context.Context, bundle EvidenceBundle) error { return nil }
func (Noop) Close() error                                             { return nil }
