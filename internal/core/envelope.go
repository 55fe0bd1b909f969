package core

import "time"

// EnvelopeBuilder accumulates SourceMeta, conflicts, and warnings for
// one tool invocation and stamps the final envelope. It never strips a
// SourceMeta once appended.
type EnvelopeBuilder struct {
	envelope *Envelope
}

// NewEnvelopeBuilder starts a builder over a fresh envelope.
func NewEnvelopeBuilder() *EnvelopeBuilder {
	return &EnvelopeBuilder{envelope: NewEnvelope()}
}

// SetData assigns the domain payload for one capability.
func (b *EnvelopeBuilder) SetData(capability string, payload interface{}) {
	b.envelope.Data[capability] = payload
}

// AppendSourceMeta records provenance for one upstream contribution, in
// the order upstream responses were finalized.
func (b *EnvelopeBuilder) AppendSourceMeta(meta SourceMeta) {
	b.envelope.SourceMeta = append(b.envelope.SourceMeta, meta)
}

// AppendConflict records a resolved divergence.
func (b *EnvelopeBuilder) AppendConflict(c Conflict) {
	b.envelope.Conflicts = append(b.envelope.Conflicts, c)
}

// Warn appends a human-readable warning.
func (b *EnvelopeBuilder) Warn(w string) {
	b.envelope.AddWarning(w)
}

// MarkCached annotates the envelope as served from cache, without
// touching any SourceMeta field.
func (b *EnvelopeBuilder) MarkCached() {
	b.envelope.Cached = true
}

// Build stamps as_of_utc and returns the finished envelope.
func (b *EnvelopeBuilder) Build() *Envelope {
	b.envelope.Stamp(time.Now())
	return b.envelope
}
