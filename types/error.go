package types

import "fmt"

// ErrorCode represents a unified error code across the engine.
type ErrorCode string

// Capability error codes
const (
	ErrGenerationFailed ErrorCode = "GENERATION_FAILED"
	ErrEmbeddingFailed  ErrorCode = "EMBEDDING_FAILED"
	ErrStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	ErrTimeout          ErrorCode = "TIMEOUT"
)

// Persona / identity error codes
const (
	ErrPersonaInvalid   ErrorCode = "PERSONA_INVALID"
	ErrPersonaConflict  ErrorCode = "PERSONA_CONFLICT"
	ErrPersonaSynthesis ErrorCode = "PERSONA_SYNTHESIS"
)

// Session / scheduling error codes
const (
	ErrSessionNotInitialized ErrorCode = "SESSION_NOT_INITIALIZED"
	ErrTurnFailed            ErrorCode = "TURN_FAILED"
	ErrSynthesisFailed       ErrorCode = "SYNTHESIS_FAILED"
)

// Error represents a structured error with code, message, and metadata.
type Error struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
	Persona   string    `json:"persona,omitempty"`
	Turn      int       `json:"turn,omitempty"`
	Cause     error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithRetryable marks the error as retryable.
func (e *Error) WithRetryable(retryable bool) *Error {
	e.Retryable = retryable
	return e
}

// WithPersona records which persona was being processed.
func (e *Error) WithPersona(name string) *Error {
	e.Persona = name
	return e
}

// WithTurn records which turn index was being processed.
func (e *Error) WithTurn(turn int) *Error {
	e.Turn = turn
	return e
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) ErrorCode {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}
