package transport

import (
	"context"
	"log/slog"
	"time"

	"github.com/crewgate/crewgate/pkg/api"
)

// Logging returns middleware that emits structured log entries for each
// completion request. The log entry includes the request ID (from
// context), the requested model, message count, duration, and whether
// the request succeeded or failed.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Completer) Completer {
		return CompleterFunc(func(ctx context.Context, req *api.ChatCompletionRequest) (*api.ChatCompletionResponse, error) {
			start := time.Now()
			requestID := RequestIDFromContext(ctx)

			resp, err := next.ChatCompletion(ctx, req)

			attrs := []slog.Attr{
				slog.String("request_id", requestID),
				slog.String("model", req.Model),
				slog.Int("messages", len(req.Messages)),
				slog.Duration("duration", time.Since(start)),
			}

			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				logger.LogAttrs(ctx, slog.LevelError, "completion failed", attrs...)
			} else {
				logger.LogAttrs(ctx, slog.LevelInfo, "completion succeeded", attrs...)
			}

			return resp, err
		})
	}
}
