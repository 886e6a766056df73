// Package static provides a deterministic pipeline.Runner that answers
// every query with a configured reply. It backs local development and
// tests when no crew service is running.
package static

import (
	"context"
	"strings"

	"github.com/crewgate/crewgate/pkg/pipeline"
)

// Runner answers every query with Reply. When Reply contains the
// placeholder "{query}", it is substituted with the incoming query.
type Runner struct {
	Reply string
}

var _ pipeline.Runner = (*Runner)(nil)

// New creates a static runner. An empty reply defaults to an echo of
// the query.
func New(reply string) *Runner {
	if reply == "" {
		reply = "You asked: {query}"
	}
	return &Runner{Reply: reply}
}

// Name returns the runner identifier.
func (r *Runner) Name() string { return "static" }

// Generate returns the configured reply, honoring ctx cancellation.
func (r *Runner) Generate(ctx context.Context, query string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return strings.ReplaceAll(r.Reply, "{query}", query), nil
}

// Close is a no-op.
func (r *Runner) Close() error { return nil }
