package crew

import "time"

// Config holds configuration for the crew service client.
type Config struct {
	// BaseURL is the crew service URL (e.g., "http://localhost:9090").
	BaseURL string

	// APIKey sent as a bearer token to the crew service (optional).
	APIKey string

	// Timeout for a full pipeline run. The crew executes retrieval and
	// generation synchronously, so this bounds the whole request.
	// Defaults to 120s; zero after defaulting means no client timeout.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: 120 * time.Second,
	}
}
