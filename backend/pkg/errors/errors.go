package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeTool represents tool lookup and execution errors
	ErrorTypeTool ErrorType = "tool"
	// ErrorTypeInput represents invalid caller-supplied tool arguments
	ErrorTypeInput ErrorType = "input"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeContext represents context cancellation/timeout errors
	ErrorTypeContext ErrorType = "context"
	// ErrorTypeUpstream represents failures of third-party services a tool depends on
	ErrorTypeUpstream ErrorType = "upstream"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// ErrorKind lets IsErrorType see through the kind structs that embed *BaseError.
func (e *BaseError) ErrorKind() ErrorType {
	return e.Type
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Tool Errors

// ErrToolNotFound is returned when no descriptor matches the requested slug
type ErrToolNotFound struct {
	*BaseError
	Slug string
}

func NewToolNotFound(slug string) *ErrToolNotFound {
	return &ErrToolNotFound{
		BaseError: NewBaseError(ErrorTypeTool, fmt.Sprintf("tool not found: %s", slug), nil),
		Slug:      slug,
	}
}

// ErrToolLogicMissing is returned when a loader resolves without a callable entry point.
// It is a configuration defect and is never retried by the caller.
type ErrToolLogicMissing struct {
	*BaseError
	ToolID string
}

func NewToolLogicMissing(toolID string) *ErrToolLogicMissing {
	return &ErrToolLogicMissing{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("tool logic missing: %s", toolID), nil),
		ToolID:    toolID,
	}
}

// ErrToolLoadFailed is returned when a tool loader itself returns an error
type ErrToolLoadFailed struct {
	*BaseError
	ToolID string
}

func NewToolLoadFailed(toolID string, err error) *ErrToolLoadFailed {
	return &ErrToolLoadFailed{
		BaseError: NewBaseError(ErrorTypeTool, fmt.Sprintf("failed to load tool: %s", toolID), err),
		ToolID:    toolID,
	}
}

// ErrToolExecutionFailed is returned when a tool cannot complete its work
type ErrToolExecutionFailed struct {
	*BaseError
	ToolName string
	Reason   string
}

func NewToolExecutionFailed(toolName, reason string, err error) *ErrToolExecutionFailed {
	return &ErrToolExecutionFailed{
		BaseError: NewBaseError(ErrorTypeTool, fmt.Sprintf("tool execution failed: %s: %s", toolName, reason), err),
		ToolName:  toolName,
		Reason:    reason,
	}
}

// ErrDuplicateTool is returned when two descriptors share a slug or an id
type ErrDuplicateTool struct {
	*BaseError
	Field string
	Value string
}

func NewDuplicateTool(field, value string) *ErrDuplicateTool {
	return &ErrDuplicateTool{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("duplicate tool %s: %s", field, value), nil),
		Field:     field,
		Value:     value,
	}
}

// Input Errors

// ErrInvalidInput is returned when tool arguments are malformed or out of range
type ErrInvalidInput struct {
	*BaseError
	Field  string
	Reason string
}

func NewInvalidInput(field, reason string) *ErrInvalidInput {
	msg := fmt.Sprintf("invalid input: %s", reason)
	if field != "" {
		msg = fmt.Sprintf("invalid input: %s - %s", field, reason)
	}
	return &ErrInvalidInput{
		BaseError: NewBaseError(ErrorTypeInput, msg, nil),
		Field:     field,
		Reason:    reason,
	}
}

// Upstream Errors

// ErrUpstreamFailed is returned when a remote API used by a tool misbehaves
type ErrUpstreamFailed struct {
	*BaseError
	Service    string
	StatusCode int
}

func NewUpstreamFailed(service string, statusCode int, err error) *ErrUpstreamFailed {
	msg := fmt.Sprintf("%s request failed", service)
	if statusCode != 0 {
		msg = fmt.Sprintf("%s returned HTTP %d", service, statusCode)
	}
	return &ErrUpstreamFailed{
		BaseError:  NewBaseError(ErrorTypeUpstream, msg, err),
		Service:    service,
		StatusCode: statusCode,
	}
}

// Context Errors

// ErrContextTimeout is returned when context times out
type ErrContextTimeout struct {
	*BaseError
	Operation string
	Timeout   time.Duration
}

func NewContextTimeout(operation string, timeout time.Duration) *ErrContextTimeout {
	return &ErrContextTimeout{
		BaseError: NewBaseError(ErrorTypeContext, fmt.Sprintf("context timeout: %s (timeout: %v)", operation, timeout), nil),
		Operation: operation,
		Timeout:   timeout,
	}
}

// Config Errors

// ErrConfigValidationFailed is returned when configuration validation fails
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// Helper functions

type kinded interface {
	ErrorKind() ErrorType
}

// IsErrorType checks if an error, or anything it wraps, is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		if k, ok := err.(kinded); ok && k.ErrorKind() == errType {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	// Configuration defects never heal on their own
	if IsErrorType(err, ErrorTypeConfig) || IsErrorType(err, ErrorTypeInput) {
		return false
	}
	if IsErrorType(err, ErrorTypeContext) {
		return false
	}
	return IsErrorType(err, ErrorTypeUpstream)
}

// As is errors.As re-exported so callers need only this package.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Is is errors.Is re-exported so callers need only this package.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
