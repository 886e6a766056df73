package pipeline

import "context"

// Runner abstracts the external RAG pipeline. An implementation receives
// the extracted user query and runs the pipeline synchronously to
// completion, returning the generated text.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Runner interface {
	// Name returns the runner identifier (e.g., "crew", "static"),
	// used in logs and metric labels.
	Name() string

	// Generate runs the pipeline for the given query and returns its
	// textual result. The call blocks for the full duration of
	// retrieval and generation; cancellation is driven by ctx.
	Generate(ctx context.Context, query string) (string, error)

	// Close releases runner resources (HTTP clients, connections).
	Close() error
}

// RunnerFunc adapts an ordinary function to a Runner. Intended for tests.
type RunnerFunc func(ctx context.Context, query string) (string, error)

// Name returns "func".
func (f RunnerFunc) Name() string { return "func" }

// Generate calls f(ctx, query).
func (f RunnerFunc) Generate(ctx context.Context, query string) (string, error) {
	return f(ctx, query)
}

// Close is a no-op.
func (f RunnerFunc) Close() error { return nil }
