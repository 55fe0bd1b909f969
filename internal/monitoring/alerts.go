// Package monitoring - alerts.go flags anomalies and errors.
//
// DESIGN: AlertManager logs notable events at appropriate levels:
//   - FlagHighLatency:     Warn when a tool invocation exceeds threshold
//   - FlagAllSourcesFailed: Warn when a capability's fallback chain is exhausted
//   - FlagSourceError:     Warn on one adapter's failure
//   - FlagPanic:           Error on recovered panics
package monitoring

import "time"

// AlertManager flags anomalies and errors.
type AlertManager struct {
	logger               *Logger
	highLatencyThreshold time.Duration
}

// NewAlertManager creates a new alert manager.
func NewAlertManager(logger *Logger, cfg AlertConfig) *AlertManager {
	threshold := cfg.HighLatencyThreshold
	if threshold == 0 {
		threshold = 5 * time.Second
	}
	return &AlertManager{logger: logger, highLatencyThreshold: threshold}
}

// FlagHighLatency logs when a tool invocation's latency exceeds threshold.
func (am *AlertManager) FlagHighLatency(requestID string, latency time.Duration, tool string) {
	if latency < am.highLatencyThreshold {
		return
	}
	am.logger.Warn().
		Str("request_id", requestID).
		Dur("latency", latency).
		Str("tool", tool).
		Msg("high_latency")
}

// FlagAllSourcesFailed logs that a capability's fallback chain was
// exhausted and surfaced as an envelope warning.
func (am *AlertManager) FlagAllSourcesFailed(requestID, capability string, errs map[string]string) {
	am.logger.Warn().
		Str("request_id", requestID).
		Str("capability", capability).
		Interface("errors", errs).
		Msg("all_sources_failed")
}

// FlagSourceError logs one adapter-level failure.
func (am *AlertManager) FlagSourceError(requestID, source, kind, reason string) {
	am.logger.Warn().
		Str("request_id", requestID).
		Str("source", source).
		Str("kind", kind).
		Str("reason", reason).
		Msg("source_error")
}

// FlagCircuitOpen logs a source's circuit breaker tripping open.
func (am *AlertManager) FlagCircuitOpen(source string) {
	am.logger.Warn().Str("source", source).Msg("circuit_open")
}

// FlagInvalidRequest logs an invalid request.
func (am *AlertManager) FlagInvalidRequest(requestID, reason string, details map[string]interface{}) {
	am.logger.Debug().
		Str("request_id", requestID).
		Str("reason", reason).
		Interface("details", details).
		Msg("invalid_request")
}

// FlagPanic logs a recovered panic.
func (am *AlertManager) FlagPanic(requestID string, panicValue interface{}, stack string) {
	am.logger.Error().
		Str("request_id", requestID).
		Interface("panic", panicValue).
		Str("stack", stack).
		Msg("panic_recovered")
}
