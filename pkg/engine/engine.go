package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/crewgate/crewgate/pkg/api"
	"github.com/crewgate/crewgate/pkg/observability"
	"github.com/crewgate/crewgate/pkg/pipeline"
	"github.com/crewgate/crewgate/pkg/transport"
)

// tracerName identifies this instrumentation scope.
const tracerName = "github.com/crewgate/crewgate/pkg/engine"

// Config holds engine settings.
type Config struct {
	// ModelID is the identifier advertised by the model listing.
	// Empty means api.DefaultModelID.
	ModelID string

	// ContextLength advertised by the model listing. Zero means
	// api.DefaultContextSize.
	ContextLength int

	// Logger for the per-query diagnostic line. Nil means slog.Default().
	Logger *slog.Logger
}

// Engine bridges the transport layer and the pipeline runner.
type Engine struct {
	runner pipeline.Runner
	card   api.Model
	logger *slog.Logger
}

// Ensure Engine implements transport.Completer at compile time.
var _ transport.Completer = (*Engine)(nil)

// New creates a new Engine. The runner must not be nil.
func New(r pipeline.Runner, cfg Config) (*Engine, error) {
	if r == nil {
		return nil, fmt.Errorf("engine: runner must not be nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		runner: r,
		card:   api.NewModelCard(cfg.ModelID, cfg.ContextLength),
		logger: logger,
	}, nil
}

// ModelList returns the static single-element model listing. The listing
// is built once at construction and never changes, so repeated calls
// serialize to identical bytes.
func (e *Engine) ModelList() api.ModelList {
	return api.NewModelList(e.card)
}

// ChatCompletion extracts the last user message, runs the pipeline
// synchronously with it, and wraps the result in a completion envelope.
// The model name is echoed back verbatim; usage stays at zero because
// the gateway performs no token accounting.
func (e *Engine) ChatCompletion(ctx context.Context, req *api.ChatCompletionRequest) (*api.ChatCompletionResponse, error) {
	query, ok := api.LastUserMessage(req.Messages)
	if !ok {
		return nil, api.ErrNoUserMessage
	}

	e.logger.InfoContext(ctx, "received query",
		slog.String("request_id", transport.RequestIDFromContext(ctx)),
		slog.String("model", req.Model),
		slog.String("query", query),
	)

	result, err := e.run(ctx, query)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		return nil, api.NewPipelineError(err.Error())
	}

	return api.NewChatCompletionResponse(req.Model, result, time.Now().Unix()), nil
}

// run invokes the pipeline runner once, recording a trace span and the
// pipeline metrics around the call.
func (e *Engine) run(ctx context.Context, query string) (string, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "pipeline.generate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("pipeline.name", e.runner.Name()),
			attribute.Int("query.length", len(query)),
		))
	defer span.End()

	start := time.Now()
	result, err := e.runner.Generate(ctx, query)
	observability.PipelineLatency.WithLabelValues(e.runner.Name()).Observe(time.Since(start).Seconds())

	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	observability.PipelineRequestsTotal.WithLabelValues(e.runner.Name(), status).Inc()

	return result, err
}
