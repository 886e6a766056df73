package transport

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/crewgate/crewgate/pkg/api"
)

// RequestID returns middleware that assigns a unique request ID to each
// request. If the incoming request context already carries a request ID
// (set by the HTTP adapter from the X-Request-ID header), that value is
// used. Otherwise, a new unique ID is generated.
//
// The request ID is stored in the context and can be retrieved with
// RequestIDFromContext.
func RequestID() Middleware {
	return func(next Completer) Completer {
		return CompleterFunc(func(ctx context.Context, req *api.ChatCompletionRequest) (*api.ChatCompletionResponse, error) {
			id := RequestIDFromContext(ctx)
			if id == "" {
				id = NewRequestID()
				ctx = ContextWithRequestID(ctx, id)
			}
			return next.ChatCompletion(ctx, req)
		})
	}
}

// NewRequestID creates a new unique request ID as a hex string.
func NewRequestID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
