// Package monitoring - types.go defines shared telemetry types.
//
// DESIGN: These types are used by both core/ and the transports.
// Defined here once to avoid duplication and circular imports.
package monitoring

import "time"

// TransportKind identifies which transport served a request.
type TransportKind string

const (
	TransportStdio TransportKind = "stdio"
	TransportREST  TransportKind = "rest"
)

// RequestEvent captures one tool invocation through a transport.
type RequestEvent struct {
	RequestID      string        `json:"request_id"`
	Timestamp      time.Time     `json:"timestamp"`
	Transport      TransportKind `json:"transport"`
	Tool           string        `json:"tool"`
	Capabilities   []string      `json:"capabilities,omitempty"`
	CacheHits      int           `json:"cache_hits"`
	CacheMisses    int           `json:"cache_misses"`
	SourcesUsed    []string      `json:"sources_used,omitempty"`
	DegradedCount  int           `json:"degraded_count"`
	ConflictsCount int           `json:"conflicts_count"`
	WarningsCount  int           `json:"warnings_count"`
	Success        bool          `json:"success"`
	Error          string        `json:"error,omitempty"`
	LatencyMs      int64         `json:"latency_ms"`
}

// TelemetryConfig contains telemetry configuration.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	LogPath     string `yaml:"log_path"`
	LogToStdout bool   `yaml:"log_to_stdout"`
}

// LoggerConfig contains logging configuration.
type LoggerConfig struct {
	Level      string `yaml:"level"`       // debug, info, warn, error
	Format     string `yaml:"format"`      // json, console
	Output     string `yaml:"output"`      // stdout, stderr, or file path
	MaxSizeMB  int    `yaml:"max_size_mb"` // lumberjack rotation size, file output only
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// AlertConfig contains alert thresholds.
type AlertConfig struct {
	HighLatencyThreshold time.Duration `yaml:"high_latency_threshold"`
}
