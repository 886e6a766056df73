package transport

import (
	"context"

	"github.com/crewgate/crewgate/pkg/api"
)

// Completer handles the core chat-completion operation. The
// implementation receives a decoded request and returns the completed
// response envelope, or an error to be shaped by the HTTP adapter.
type Completer interface {
	ChatCompletion(ctx context.Context, req *api.ChatCompletionRequest) (*api.ChatCompletionResponse, error)
}

// CompleterFunc is an adapter that allows using an ordinary function
// as a Completer.
type CompleterFunc func(ctx context.Context, req *api.ChatCompletionRequest) (*api.ChatCompletionResponse, error)

// ChatCompletion calls f(ctx, req).
func (f CompleterFunc) ChatCompletion(ctx context.Context, req *api.ChatCompletionRequest) (*api.ChatCompletionResponse, error) {
	return f(ctx, req)
}
