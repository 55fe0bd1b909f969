package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dataforge/gateway/internal/monitoring"
)

const envPrefix = "GATEWAY_"

// Loader assembles a Config from layered sources: built-in defaults,
// an optional YAML file, then environment overrides — the same
// three-tier precedence the network-logistics loader uses.
type Loader struct {
	k           *koanf.Koanf
	configPaths []string
}

// NewLoader returns a Loader that searches the given config paths (or
// a small default set) for a YAML file.
func NewLoader(configPaths ...string) *Loader {
	if len(configPaths) == 0 {
		configPaths = []string{"config.yaml", "config/gateway.yaml", "/etc/dataforge/gateway.yaml"}
	}
	return &Loader{k: koanf.New("."), configPaths: configPaths}
}

// Load runs the full precedence chain and returns a validated Config.
func (l *Loader) Load() (*Config, error) {
	if err := l.k.Load(confmap.Provider(ambientDefaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if err := l.loadConfigFile(); err != nil {
		// A config file is optional; environment and defaults may be
		// sufficient for simple deployments.
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
	}

	if err := l.k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         l.k.String("server.host"),
			Port:         l.k.Int("server.port"),
			ReadTimeout:  l.k.Duration("server.read_timeout"),
			WriteTimeout: l.k.Duration("server.write_timeout"),
		},
		Cache: CacheConfig{
			Backend:    l.k.String("cache.backend"),
			RedisAddr:  l.k.String("cache.redis_addr"),
			RedisDB:    l.k.Int("cache.redis_db"),
			DefaultTTL: l.k.Int("cache.default_ttl"),
		},
		Persistence: PersistenceConfig{
			Backends:    l.k.Strings("persistence.backends"),
			SQLitePath:  l.k.String("persistence.sqlite_path"),
			PostgresDSN: l.k.String("persistence.postgres_dsn"),
			S3Bucket:    l.k.String("persistence.s3_bucket"),
			S3Region:    l.k.String("persistence.s3_region"),
		},
		Monitoring: MonitoringConfig{
			Logger: monitoring.LoggerConfig{
				Level:  l.k.String("monitoring.log.level"),
				Format: l.k.String("monitoring.log.format"),
				Output: l.k.String("monitoring.log.output"),
			},
			Alert: monitoring.AlertConfig{
				HighLatencyThreshold: l.k.Duration("monitoring.high_latency_threshold"),
			},
			Tracing: TracingConfig{
				Enabled:      l.k.Bool("monitoring.tracing.enabled"),
				OTLPEndpoint: l.k.String("monitoring.tracing.otlp_endpoint"),
				ServiceName:  l.k.String("monitoring.tracing.service_name"),
				SampleRate:   l.k.Float64("monitoring.tracing.sample_rate"),
			},
			Metrics: MetricsConfig{
				Enabled: l.k.Bool("monitoring.metrics.enabled"),
				Path:    l.k.String("monitoring.metrics.path"),
			},
		},
		TTLPolicy:    defaultTTLPolicy(),
		SourceChains: defaultSourceChains(),
		Thresholds:   defaultThresholds(),
		ToolsEnabled: defaultToolsEnabled(),
		Credentials:  resolveCredentials(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) loadConfigFile() error {
	if p := os.Getenv("GATEWAY_CONFIG_PATH"); p != "" {
		if _, err := os.Stat(p); err == nil {
			return l.k.Load(file.Provider(p), yaml.Parser())
		}
	}
	for _, path := range l.configPaths {
		abs, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		if _, err := os.Stat(abs); err == nil {
			return l.k.Load(file.Provider(abs), yaml.Parser())
		}
	}
	return fmt.Errorf("no config file found in %v, using defaults and env", l.configPaths)
}

// ambientDefaults returns the scalar ambient settings koanf layers
// file and env overrides on top of.
func ambientDefaults() map[string]interface{} {
	return map[string]interface{}{
		"server.host":                          "0.0.0.0",
		"server.port":                          8000,
		"server.read_timeout":                  30 * time.Second,
		"server.write_timeout":                 30 * time.Second,
		"cache.backend":                        "memory",
		"cache.redis_addr":                     "localhost:6379",
		"cache.redis_db":                       0,
		"cache.default_ttl":                    300,
		"persistence.backends":                 []string{},
		"persistence.sqlite_path":              "evidence.db",
		"persistence.s3_region":                "us-east-1",
		"monitoring.log.level":                 "info",
		"monitoring.log.format":                "json",
		"monitoring.log.output":                "stdout",
		"monitoring.high_latency_threshold":    5 * time.Second,
		"monitoring.tracing.enabled":           false,
		"monitoring.tracing.otlp_endpoint":     "localhost:4317",
		"monitoring.tracing.service_name":      "dataforge-gateway",
		"monitoring.tracing.sample_rate":       0.1,
		"monitoring.metrics.enabled":           true,
		"monitoring.metrics.path":              "/metrics",
	}
}

// Load is a convenience entry point using default search paths.
func Load() (*Config, error) {
	return NewLoader().Load()
}
