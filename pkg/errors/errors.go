// Package errors provides custom error types for the crosscheck system.
// The two top-level failure classes callers are expected to branch on are
// ParsingError (malformed input documents, recoverable by re-submitting a
// corrected file) and AIAnalysisError (credential/transport/provider
// failures, recoverable by retrying at a higher layer).
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the crosscheck system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired indicates that an API key is required but not provided
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrAPIKeyInvalid indicates that the provided API key is invalid
	ErrAPIKeyInvalid = errors.New("API key invalid")

	// ErrProviderUnavailable indicates that a provider is temporarily unavailable
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrRateLimited indicates that the API rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrEmptyDocument indicates a structurally valid document with no readable text
	ErrEmptyDocument = errors.New("no readable text")

	// ErrUnparsableDocument indicates a corrupt or unreadable document package
	ErrUnparsableDocument = errors.New("invalid document")
)

// ParsingError represents a failure to parse an input document
// (spreadsheet or slide deck). It always carries a human-readable cause
// sufficient to diagnose without inspecting logs.
type ParsingError struct {
	Format  string // "xlsx", "pptx"
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParsingError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("failed to parse %s file: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("failed to parse file: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParsingError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParsingError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewParsingError creates a new ParsingError
func NewParsingError(format, message string, err error) *ParsingError {
	return &ParsingError{Format: format, Message: message, Err: err}
}

// WrapParsing wraps an error as a ParsingError
func WrapParsing(format string, err error) error {
	if err == nil {
		return nil
	}
	return &ParsingError{Format: format, Message: err.Error(), Err: err}
}

// AIAnalysisError represents a failure of the generative-model analysis:
// a missing credential, a transport failure, or an auth/rate-limit
// rejection from the model provider.
type AIAnalysisError struct {
	Provider string
	Message  string
	Err      error
}

// Error implements the error interface
func (e *AIAnalysisError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("AI analysis failed (%s): %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("AI analysis failed: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *AIAnalysisError) Unwrap() error {
	return e.Err
}

// NewAIAnalysisError creates a new AIAnalysisError
func NewAIAnalysisError(provider, message string, err error) *AIAnalysisError {
	return &AIAnalysisError{Provider: provider, Message: message, Err: err}
}

// APIError represents an error from a provider API
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Provider, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode == 429 {
		return target == ErrRateLimited
	}
	if e.StatusCode == 401 || e.StatusCode == 403 {
		return target == ErrAPIKeyInvalid
	}
	if e.StatusCode >= 500 {
		return target == ErrProviderUnavailable
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(provider string, statusCode int, message string) *APIError {
	return &APIError{
		Provider:   provider,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Message: err.Error(), Err: err}
}

// Helper functions for error checking

// IsParsingError checks if an error is a document parsing error
func IsParsingError(err error) bool {
	var pe *ParsingError
	return errors.As(err, &pe)
}

// IsAIAnalysisError checks if an error is an AI analysis error
func IsAIAnalysisError(err error) bool {
	var ae *AIAnalysisError
	return errors.As(err, &ae)
}

// IsAPIKeyError checks if an error is related to API keys
func IsAPIKeyError(err error) bool {
	return errors.Is(err, ErrAPIKeyRequired) || errors.Is(err, ErrAPIKeyInvalid)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsProviderUnavailable checks if an error indicates provider unavailability
func IsProviderUnavailable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}
