// Package apperrors defines the error taxonomy surfaced at the request
// boundary. Every failure in the backtest pipeline maps onto one of these
// types; the HTTP delivery layer converts them into structured JSON bodies.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ConfigurationError means a required external credential or config value is
// missing. Its message is deliberately generic so the missing credential is
// never leaked to the caller.
type ConfigurationError struct {
	// Key names the missing config entry, for logs only.
	Key string
}

func (e *ConfigurationError) Error() string {
	return "service is not configured for this operation"
}

func NewConfiguration(key string) *ConfigurationError {
	return &ConfigurationError{Key: key}
}

// NotFoundError means a requested strategy or candle file does not exist.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

func NewNotFound(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

// StrategyInvalidError means the retrieved strategy source, after cleaning,
// does not define the required entry point, or its result lacks the required
// trades container.
type StrategyInvalidError struct {
	Reason string
}

func (e *StrategyInvalidError) Error() string {
	return fmt.Sprintf("invalid strategy: %s", e.Reason)
}

func NewStrategyInvalid(reason string) *StrategyInvalidError {
	return &StrategyInvalidError{Reason: reason}
}

// StrategyExecutionError means the strategy's own logic raised an error while
// running. SourcePreview carries a bounded prefix of the source for
// diagnostics, never the full untrusted text.
type StrategyExecutionError struct {
	Message       string
	SourcePreview string
}

func (e *StrategyExecutionError) Error() string {
	return fmt.Sprintf("strategy execution failed: %s", e.Message)
}

func NewStrategyExecution(message, sourcePreview string) *StrategyExecutionError {
	return &StrategyExecutionError{Message: message, SourcePreview: sourcePreview}
}

// UpstreamError means the strategy-retrieval collaborator returned an error
// or non-success status.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (%d): %s", e.StatusCode, e.Message)
}

func NewUpstream(statusCode int, message string) *UpstreamError {
	return &UpstreamError{StatusCode: statusCode, Message: message}
}

// HTTPStatus maps an error to the status code it should be reported with.
func HTTPStatus(err error) int {
	var (
		notFound  *NotFoundError
		invalid   *StrategyInvalidError
		execution *StrategyExecutionError
		upstream  *UpstreamError
		configErr *ConfigurationError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &execution):
		return http.StatusInternalServerError
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	case errors.As(err, &configErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Preview returns at most n bytes of source for diagnostic payloads.
func Preview(source string, n int) string {
	if n <= 0 || len(source) <= n {
		return source
	}
	return source[:n] + "..."
}
