package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/crewgate/crewgate/pkg/api"
	"github.com/crewgate/crewgate/pkg/transport"
)

// Adapter serves the OpenAI-compatible gateway API over HTTP. It routes
// requests to the appropriate handler and serializes responses.
type Adapter struct {
	completer  transport.Completer
	modelsJSON []byte // pre-serialized model listing, byte-stable
	mux        *http.ServeMux
	config     Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	Addr        string
	MaxBodySize int64

	// AllowOrigin is the CORS Access-Control-Allow-Origin value.
	// Defaults to "*" (unrestricted), matching the original contract;
	// production deployments should narrow it.
	AllowOrigin string

	// StrictErrors controls the missing-user-message response. When
	// false (default) the adapter preserves the legacy contract: HTTP
	// 200 with body {"error":"No user message found"}. When true it
	// returns a proper 400 invalid_request error instead.
	StrictErrors bool
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		Addr:        ":8000",
		MaxBodySize: 10 << 20, // 10 MB
		AllowOrigin: "*",
	}
}

// NewAdapter creates an HTTP adapter with the given Completer and the
// model listing to serve. Middleware is applied to the Completer in the
// given order.
func NewAdapter(completer transport.Completer, models api.ModelList, cfg Config, middlewares ...transport.Middleware) *Adapter {
	if len(middlewares) > 0 {
		completer = transport.Chain(middlewares...)(completer)
	}

	// Serialize the listing once: the endpoint is pure and repeated
	// calls must return byte-identical output.
	modelsJSON, err := json.Marshal(models)
	if err != nil {
		// Model cards contain only plain JSON-serializable fields.
		panic("http: marshaling model list: " + err.Error())
	}

	a := &Adapter{
		completer:  completer,
		modelsJSON: modelsJSON,
		mux:        http.NewServeMux(),
		config:     cfg,
	}

	a.mux.HandleFunc("GET /v1/models", a.handleListModels)
	a.mux.HandleFunc("POST /v1/chat/completions", a.handleChatCompletions)

	return a
}

// Handler returns the http.Handler for this adapter. Use this to
// integrate with an http.Server or test with httptest. The returned
// handler includes HTTP-level middleware for CORS and X-Request-ID
// propagation.
func (a *Adapter) Handler() http.Handler {
	return a.corsMiddleware(httpRequestIDMiddleware(a.mux))
}

// corsMiddleware applies the configured CORS policy to every response
// and answers preflight requests directly.
func (a *Adapter) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", a.config.AllowOrigin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// httpRequestIDMiddleware assigns each request its X-Request-ID: the
// client-supplied header when present, a freshly generated ID otherwise.
// The ID is stored in the request context before the handler runs and
// returned on the response, so logs and clients see the same value. The
// transport-level RequestID middleware finds it in the context and keeps
// it; it only generates IDs for non-HTTP callers.
func httpRequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = transport.NewRequestID()
		}
		r = r.WithContext(transport.ContextWithRequestID(r.Context(), id))
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// handleListModels handles GET /v1/models. The listing is static and
// pure: it was serialized at construction time and every call writes
// the same bytes.
func (a *Adapter) handleListModels(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(a.modelsJSON)
}

// handleChatCompletions handles POST /v1/chat/completions.
func (a *Adapter) handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	// Validate Content-Type, tolerating parameters like charset.
	ct := r.Header.Get("Content-Type")
	if ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err != nil || mt != "application/json" {
			transport.WriteErrorResponse(w,
				api.NewInvalidRequestError("content_type", "Content-Type must be application/json"),
				http.StatusUnsupportedMediaType,
			)
			return
		}
	}

	// Limit body size.
	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	// Decode request.
	var req api.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			transport.WriteErrorResponse(w,
				api.NewInvalidRequestError("body", fmt.Sprintf("request body too large (max %d bytes)", a.config.MaxBodySize)),
				http.StatusRequestEntityTooLarge,
			)
			return
		}
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("body", "invalid JSON: "+err.Error()),
			http.StatusBadRequest,
		)
		return
	}

	resp, err := a.completer.ChatCompletion(r.Context(), &req)
	if err != nil {
		a.writeCompletionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// writeCompletionError shapes handler errors. The missing-user-message
// case follows the configured compatibility mode; everything else maps
// through the APIError taxonomy.
func (a *Adapter) writeCompletionError(w http.ResponseWriter, err error) {
	if errors.Is(err, api.ErrNoUserMessage) {
		if a.config.StrictErrors {
			transport.WriteErrorResponse(w,
				api.NewInvalidRequestError("messages", "no user message found"),
				http.StatusBadRequest,
			)
			return
		}
		// Legacy contract: HTTP 200 with the flat error body.
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.LegacyNoUserMessage())
		return
	}

	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		apiErr = api.NewServerError(err.Error())
	}
	transport.WriteAPIError(w, apiErr)
}
