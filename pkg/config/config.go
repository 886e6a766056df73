// Package config provides unified configuration for the crewgate gateway.
//
// Configuration is loaded with a layered approach:
//  1. .env file (via godotenv, when present)
//  2. Built-in defaults
//  3. YAML config file (discovered or explicitly specified)
//  4. Environment variable overrides (CREWGATE_ prefix)
//  5. File reference resolution (_file suffix fields)
//  6. Validation
package config

import "time"

// Config holds all configuration for the crewgate gateway.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Pipeline      PipelineConfig      `yaml:"pipeline"`
	Model         ModelConfig         `yaml:"model"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
	Observability ObservabilityConfig `yaml:"observability"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `yaml:"port"`          // default: 8000
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"` // default: 150s
	AllowOrigin  string        `yaml:"allow_origin"`  // CORS origin, default: "*"
	StrictErrors bool          `yaml:"strict_errors"` // default: false (legacy 200 error body)
}

// PipelineConfig holds settings for the external RAG pipeline.
type PipelineConfig struct {
	Type        string        `yaml:"type"`         // "crew" or "static", default: "crew"
	BackendURL  string        `yaml:"backend_url"`  // required for type=crew
	APIKey      string        `yaml:"api_key"`      // optional
	APIKeyFile  string        `yaml:"api_key_file"` // _file variant for api_key
	Timeout     time.Duration `yaml:"timeout"`      // default: 120s
	StaticReply string        `yaml:"static_reply"` // reply template for type=static
}

// ModelConfig holds the advertised model card settings.
type ModelConfig struct {
	ID            string `yaml:"id"`             // default: "app-rag-model"
	ContextLength int    `yaml:"context_length"` // default: 131072
}

// TelemetryConfig holds OpenTelemetry tracing settings. Tracing is
// optional; when enabled without an endpoint, spans go to a rotated
// local file.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`      // default: false
	Endpoint    string `yaml:"endpoint"`     // OTLP/HTTP collector URL, optional
	ServiceName string `yaml:"service_name"` // default: "crewgate"
	TraceFile   string `yaml:"trace_file"`   // default: "logs/crewgate_traces.log"
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error; default: "info"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:         8000,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 150 * time.Second,
			AllowOrigin:  "*",
		},
		Pipeline: PipelineConfig{
			Type:    "crew",
			Timeout: 120 * time.Second,
		},
		Model: ModelConfig{
			ID:            "app-rag-model",
			ContextLength: 131072,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "crewgate",
			TraceFile:   "logs/crewgate_traces.log",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
