// Package transport defines the handler contract and middleware chain
// between the HTTP layer and the gateway engine.
//
// The Completer interface is the single processing contract: it receives
// a decoded chat-completion request and returns the completed envelope or
// an error. Middleware wraps Completer with cross-cutting concerns; the
// built-ins provide panic recovery, request ID assignment (X-Request-ID),
// and structured logging via log/slog.
//
// The HTTP-specific pieces (routing, CORS, serialization, the server
// lifecycle) live in the http subpackage.
package transport
