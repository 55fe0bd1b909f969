// Package monitoring - request_logger.go logs tool invocation lifecycle.
//
// DESIGN: Structured logging for request tracing at DEBUG level:
//   - LogIncoming:  Tool call received from a transport
//   - LogFetch:     One capability fetch resolved (cache, source, outcome)
//   - LogResponse:  Envelope returned to the transport
package monitoring

import "time"

// RequestLogger logs tool invocation lifecycle events.
type RequestLogger struct {
	logger *Logger
}

// NewRequestLogger creates a new request logger.
func NewRequestLogger(logger *Logger) *RequestLogger {
	return &RequestLogger{logger: logger}
}

// RequestInfo describes an incoming tool call.
type RequestInfo struct {
	RequestID string
	Transport TransportKind
	Tool      string
	StartTime time.Time
}

// LogIncoming logs an incoming tool call.
func (rl *RequestLogger) LogIncoming(info RequestInfo) {
	rl.logger.Debug().
		Str("request_id", info.RequestID).
		Str("transport", string(info.Transport)).
		Str("tool", info.Tool).
		Msg("incoming")
}

// FetchInfo describes one resolved capability fetch.
type FetchInfo struct {
	RequestID  string
	Capability string
	Source     string
	CacheHit   bool
	Degraded   bool
	Err        string
	Latency    time.Duration
}

// LogFetch logs one capability fetch outcome.
func (rl *RequestLogger) LogFetch(info FetchInfo) {
	event := rl.logger.Debug().
		Str("request_id", info.RequestID).
		Str("capability", info.Capability).
		Str("source", info.Source).
		Bool("cache_hit", info.CacheHit).
		Bool("degraded", info.Degraded).
		Dur("latency", info.Latency)
	if info.Err != "" {
		event = event.Str("error", info.Err)
	}
	event.Msg("fetch")
}

// ResponseInfo describes the final envelope returned to a transport.
type ResponseInfo struct {
	RequestID      string
	StatusCode     int
	WarningsCount  int
	ConflictsCount int
	Latency        time.Duration
}

// LogResponse logs a response.
func (rl *RequestLogger) LogResponse(info ResponseInfo) {
	rl.logger.Debug().
		Str("request_id", info.RequestID).
		Int("status", info.StatusCode).
		Int("warnings", info.WarningsCount).
		Int("conflicts", info.ConflictsCount).
		Dur("latency", info.Latency).
		Msg("response")
}
