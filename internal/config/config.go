// Package config loads and validates gateway configuration: the
// capability-indexed TTL policy, the per-(tool,capability) source
// chains, conflict thresholds, tool enablement, and ambient settings
// (server, cache, persistence, monitoring).
package config

import (
	"fmt"
	"time"

	"github.com/dataforge/gateway/internal/core"
	"github.com/dataforge/gateway/internal/monitoring"
)

// Config is the root gateway configuration.
type Config struct {
	Server       ServerConfig
	TTLPolicy    map[string]map[string]int            // policy[tool][capability] -> seconds
	SourceChains map[string]map[string][]SourceConfig // chain[tool][capability] -> descriptors
	Thresholds   map[string]float64                   // diff-percent threshold by field name
	ToolsEnabled map[string]bool
	Credentials  CredentialsConfig
	Cache        CacheConfig
	Persistence  PersistenceConfig
	Monitoring   MonitoringConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SourceConfig is the YAML/env-facing shape of core.SourceDescriptor.
type SourceConfig struct {
	Name            string
	Priority        int
	BaseURL         string
	TimeoutMs       int
	RateLimitPerMin int
	RequiresAPIKey  bool
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend    string // "memory" | "redis"
	RedisAddr  string
	RedisDB    int
	DefaultTTL int
}

// PersistenceConfig selects the evidence bundle sink(s).
type PersistenceConfig struct {
	Backends   []string // any of "sqlite", "postgres", "s3"; empty = none
	SQLitePath string
	PostgresDSN string
	S3Bucket   string
	S3Region   string
}

// MonitoringConfig holds logging, tracing, and alert settings.
type MonitoringConfig struct {
	Logger  monitoring.LoggerConfig
	Alert   monitoring.AlertConfig
	Tracing TracingConfig
	Metrics MetricsConfig
}

// TracingConfig configures the OpenTelemetry exporter.
type TracingConfig struct {
	Enabled     bool
	OTLPEndpoint string
	ServiceName string
	SampleRate  float64
}

// MetricsConfig configures the Prometheus HTTP exposition.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// TTL resolves the TTL for (tool, capability), falling back to
// policy["default"]["default"] and finally a hardcoded 60s.
func (c *Config) TTL(tool, capability string) int {
	if byTool, ok := c.TTLPolicy[tool]; ok {
		if ttl, ok := byTool[capability]; ok {
			return ttl
		}
	}
	if def, ok := c.TTLPolicy["default"]; ok {
		if ttl, ok := def["default"]; ok {
			return ttl
		}
	}
	return 60
}

// SourceChain returns the configured descriptor list for (tool,
// capability) in configuration order. It neither drops unregistered
// sources nor sorts by priority; the fallback engine does both.
func (c *Config) SourceChain(tool, capability string) []core.SourceDescriptor {
	byTool, ok := c.SourceChains[tool]
	if !ok {
		return nil
	}
	sources, ok := byTool[capability]
	if !ok {
		return nil
	}

	out := make([]core.SourceDescriptor, 0, len(sources))
	for _, s := range sources {
		out = append(out, core.SourceDescriptor{
			Name:            s.Name,
			Priority:        core.Priority(s.Priority),
			BaseURL:         s.BaseURL,
			TimeoutMs:       s.TimeoutMs,
			RateLimitPerMin: s.RateLimitPerMin,
			RequiresAPIKey:  s.RequiresAPIKey,
		})
	}
	return out
}

// AllDescriptors flattens every configured source chain into one
// slice, deduplicated by name, for sizing the limiter and circuit
// tables at startup.
func (c *Config) AllDescriptors() []core.SourceDescriptor {
	seen := make(map[string]bool)
	var all []core.SourceDescriptor
	for tool, byCap := range c.SourceChains {
		for capability, sources := range byCap {
			_ = tool
			_ = capability
			for _, s := range sources {
				if seen[s.Name] {
					continue
				}
				seen[s.Name] = true
				all = append(all, core.SourceDescriptor{
					Name:            s.Name,
					Priority:        core.Priority(s.Priority),
					BaseURL:         s.BaseURL,
					TimeoutMs:       s.TimeoutMs,
					RateLimitPerMin: s.RateLimitPerMin,
					RequiresAPIKey:  s.RequiresAPIKey,
				})
			}
		}
	}
	return all
}

// IsToolEnabled reports whether a tool may be registered or invoked.
func (c *Config) IsToolEnabled(tool string) bool {
	enabled, ok := c.ToolsEnabled[tool]
	return !ok || enabled
}

// Validate checks required fields are present. All-or-nothing; a
// missing server port or empty source chain table is a fatal
// ConfigurationError, matching the original's startup validation.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &core.ConfigurationError{Message: fmt.Sprintf("invalid server port: %d", c.Server.Port)}
	}
	if len(c.SourceChains) == 0 {
		return &core.ConfigurationError{Message: "no data source chains configured"}
	}
	if len(c.TTLPolicy) == 0 {
		return &core.ConfigurationError{Message: "no TTL policy configured"}
	}
	return nil
}
