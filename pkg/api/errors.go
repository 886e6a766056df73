package api

import (
	"errors"
	"fmt"
)

// ErrNoUserMessage signals that a chat-completion request carried no
// message with the "user" role. The HTTP adapter translates it into the
// legacy error body (or a 400 in strict mode); see pkg/transport/http.
var ErrNoUserMessage = errors.New("no user message found")

// LegacyError is the flat error body the original API contract uses for
// the missing-user-message case: {"error": "No user message found"}.
// It predates the structured APIError taxonomy and is preserved for
// client compatibility.
type LegacyError struct {
	Error string `json:"error"`
}

// LegacyNoUserMessage is the exact legacy body for ErrNoUserMessage.
func LegacyNoUserMessage() LegacyError {
	return LegacyError{Error: "No user message found"}
}

// ErrorType represents the category of an API error.
type ErrorType string

const (
	ErrorTypeInvalidRequest ErrorType = "invalid_request"
	ErrorTypeNotFound       ErrorType = "not_found"
	ErrorTypeServerError    ErrorType = "server_error"
	ErrorTypePipelineError  ErrorType = "pipeline_error"
)

// APIError represents a structured API error with type, param, and message.
type APIError struct {
	Type    ErrorType `json:"type"`
	Param   string    `json:"param,omitempty"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param: %s)", e.Type, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ErrorResponse wraps an APIError as the top-level JSON error response.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// NewInvalidRequestError creates an APIError for invalid request parameters.
func NewInvalidRequestError(param, message string) *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidRequest,
		Param:   param,
		Message: message,
	}
}

// NewNotFoundError creates an APIError for resources that cannot be found.
func NewNotFoundError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewServerError creates an APIError for internal server errors.
func NewServerError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeServerError,
		Message: message,
	}
}

// NewPipelineError creates an APIError for failures in the external
// pipeline, covering both construction and execution.
func NewPipelineError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypePipelineError,
		Message: message,
	}
}
