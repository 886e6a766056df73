// Package crew implements pipeline.Runner against a crew service: an
// external process that hosts the agentic RAG pipeline and exposes it as
// a single kickoff endpoint. The service contract is deliberately small:
//
//	POST {base_url}/kickoff {"query": "..."}  ->  200 {"result": "..."}
//
// Everything behind that endpoint (retrieval, agents, tools) is opaque
// to the gateway.
package crew

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/crewgate/crewgate/pkg/api"
	"github.com/crewgate/crewgate/pkg/pipeline"
)

// Client implements pipeline.Runner for a crew service backend.
type Client struct {
	cfg    Config
	client *http.Client
}

// Ensure Client implements pipeline.Runner at compile time.
var _ pipeline.Runner = (*Client)(nil)

// New creates a crew service client. Returns an error if the
// configuration is invalid.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("crew: BaseURL is required")
	}

	// Normalize: remove trailing slash from base URL.
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Name returns the runner identifier.
func (c *Client) Name() string {
	return "crew"
}

// kickoffRequest is the body sent to the crew service.
type kickoffRequest struct {
	Query string `json:"query"`
}

// kickoffResponse is the body returned by the crew service. Error carries
// a message on failure responses.
type kickoffResponse struct {
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Generate runs the crew pipeline for the given query. The call blocks
// until the crew finishes or ctx is cancelled.
func (c *Client) Generate(ctx context.Context, query string) (string, error) {
	body, err := json.Marshal(kickoffRequest{Query: query})
	if err != nil {
		return "", fmt.Errorf("crew: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/kickoff", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("crew: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", api.NewPipelineError("crew connection error: " + err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", mapHTTPError(resp)
	}

	var result kickoffResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", api.NewPipelineError("crew returned malformed response: " + err.Error())
	}
	if result.Error != "" {
		return "", api.NewPipelineError(result.Error)
	}

	return result.Result, nil
}

// Close releases the HTTP client's idle connections.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// mapHTTPError converts a non-200 crew service response into an APIError,
// extracting a message from the body when one is present.
func mapHTTPError(resp *http.Response) *api.APIError {
	message := extractErrorMessage(resp.Body)
	if message == "" {
		message = fmt.Sprintf("crew service error (HTTP %d)", resp.StatusCode)
	}
	return api.NewPipelineError(message)
}

// extractErrorMessage tries to parse the response body as a kickoff error
// and returns the message if found. FastAPI-style services report errors
// under "detail", others under "error".
func extractErrorMessage(body io.Reader) string {
	if body == nil {
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var errResp kickoffResponse
	if err := json.Unmarshal(data, &errResp); err != nil {
		return ""
	}
	if errResp.Error != "" {
		return errResp.Error
	}
	return errResp.Detail
}
