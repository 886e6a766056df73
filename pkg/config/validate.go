package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	// server.port must be positive.
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	// pipeline.type must be a known value.
	switch c.Pipeline.Type {
	case "crew", "static":
		// valid
	default:
		errs = append(errs, fmt.Errorf("pipeline.type must be \"crew\" or \"static\", got %q", c.Pipeline.Type))
	}

	// The crew runner needs a backend to talk to.
	if c.Pipeline.Type == "crew" && c.Pipeline.BackendURL == "" {
		errs = append(errs, fmt.Errorf("pipeline.backend_url is required when pipeline.type is \"crew\""))
	}

	if c.Model.ContextLength <= 0 {
		errs = append(errs, fmt.Errorf("model.context_length must be > 0, got %d", c.Model.ContextLength))
	}

	if c.Observability.Metrics.Enabled && !strings.HasPrefix(c.Observability.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("observability.metrics.path must start with \"/\", got %q", c.Observability.Metrics.Path))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		errs = append(errs, fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}
