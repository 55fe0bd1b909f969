package core

import (
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/dataforge/gateway/internal/monitoring"
)

// Circuits holds one circuit breaker per adapter. N consecutive
// failures within a window mark a source temporarily_unavailable;
// subsequent calls short-circuit until a half-open probe succeeds.
// Settings mirror the notification circuit breaker manager pattern
// used elsewhere in the pack.
type Circuits struct {
	breakers map[string]*gobreaker.CircuitBreaker
	logger   *monitoring.Logger
}

// NewCircuits builds one breaker per descriptor name.
func NewCircuits(names []string, logger *monitoring.Logger) *Circuits {
	c := &Circuits{breakers: make(map[string]*gobreaker.CircuitBreaker, len(names)), logger: logger}
	for _, name := range names {
		source := name
		c.breakers[name] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        source,
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				c.logger.Warn().
					Str("source", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("circuit_state_change")
			},
		})
	}
	return c
}

// Allow reports whether source's breaker permits a call right now,
// without executing anything (the fallback engine needs a cheap
// pre-check before it decides to spend a rate-limit token).
func (c *Circuits) Allow(source string) bool {
	b, ok := c.breakers[source]
	if !ok {
		return true
	}
	state := b.State()
	return state != gobreaker.StateOpen
}

// Record reports the outcome of a call through source's breaker so its
// failure counters advance.
func (c *Circuits) Record(source string, success bool) {
	b, ok := c.breakers[source]
	if !ok {
		return
	}
	_, _ = b.Execute(func() (interface{}, error) {
		if !success {
			return nil, errCircuitRecordedFailure
		}
		return nil, nil
	})
}

var errCircuitRecordedFailure = errors.New("recorded failure")
