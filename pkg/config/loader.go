package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. .env file in the working directory (ignored when absent)
//  2. Built-in defaults
//  3. YAML config file (explicit path, CREWGATE_CONFIG env,
//     ./config.yaml, /etc/crewgate/config.yaml)
//  4. CREWGATE_* environment variable overrides
//  5. File reference resolution (_file suffix)
//  6. Validation
func Load(configPath string) (*Config, error) {
	// Populate the environment from .env first so the overrides below
	// see its values. A missing file is not an error.
	_ = godotenv.Load()

	// Start with defaults.
	cfg := Defaults()

	// Discover and load YAML config file.
	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	// Apply environment variable overrides.
	applyEnvOverrides(&cfg)

	// Resolve _file references.
	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	// Validate.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. CREWGATE_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/crewgate/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	// Explicit path takes priority.
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("CREWGATE_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"config.yaml",
		"/etc/crewgate/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps CREWGATE_* environment variables to config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CREWGATE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("CREWGATE_ALLOW_ORIGIN"); v != "" {
		cfg.Server.AllowOrigin = v
	}
	if v := os.Getenv("CREWGATE_STRICT_ERRORS"); v != "" {
		if strict, err := strconv.ParseBool(v); err == nil {
			cfg.Server.StrictErrors = strict
		}
	}
	if v := os.Getenv("CREWGATE_PIPELINE"); v != "" {
		cfg.Pipeline.Type = v
	}
	if v := os.Getenv("CREWGATE_BACKEND_URL"); v != "" {
		cfg.Pipeline.BackendURL = v
	}
	if v := os.Getenv("CREWGATE_API_KEY"); v != "" {
		cfg.Pipeline.APIKey = v
	}
	if v := os.Getenv("CREWGATE_PIPELINE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Pipeline.Timeout = d
		}
	}
	if v := os.Getenv("CREWGATE_MODEL"); v != "" {
		cfg.Model.ID = v
	}
	if v := os.Getenv("CREWGATE_TELEMETRY_ENDPOINT"); v != "" {
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.Endpoint = v
	}
	if v := os.Getenv("CREWGATE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// resolveFileReferences loads the contents of _file suffixed fields into
// their plain counterparts. An explicitly set plain value wins over the
// file reference.
func resolveFileReferences(cfg *Config) error {
	if cfg.Pipeline.APIKey == "" && cfg.Pipeline.APIKeyFile != "" {
		data, err := os.ReadFile(cfg.Pipeline.APIKeyFile)
		if err != nil {
			return fmt.Errorf("reading pipeline.api_key_file: %w", err)
		}
		cfg.Pipeline.APIKey = strings.TrimSpace(string(data))
	}
	return nil
}
