package core

import "golang.org/x/time/rate"

// Limiters holds one token bucket per adapter, refilled at
// rate_limit_per_min / 60 tokens/sec with capacity equal to the
// per-minute quota. Acquisition is non-blocking (Allow, not Wait): the
// spec's default policy is fail-fast inside a fallback chain so a
// rate-limited source moves the chain to the next one rather than
// stalling it.
type Limiters struct {
	buckets map[string]*rate.Limiter
}

// NewLimiters builds one limiter per descriptor.
func NewLimiters(descriptors []SourceDescriptor) *Limiters {
	buckets := make(map[string]*rate.Limiter, len(descriptors))
	for _, d := range descriptors {
		perMin := d.RateLimitPerMin
		if perMin <= 0 {
			perMin = 60
		}
		buckets[d.Name] = rate.NewLimiter(rate.Limit(float64(perMin)/60.0), perMin)
	}
	return &Limiters{buckets: buckets}
}

// Allow acquires one token for source, returning false if the bucket is
// empty. A source with no registered limiter is treated as unlimited.
func (l *Limiters) Allow(source string) bool {
	b, ok := l.buckets[source]
	if !ok {
		return true
	}
	return b.Allow()
}
