package models

import "fmt"

// ErrorKind classifies a failure for the client: transport errors are
// retryable, validation errors never reached the upstream store,
// authorization errors carry a fresh role snapshot, structural errors ask
// for a full refetch.
type ErrorKind string

const (
	KindTransport     ErrorKind = "transport"
	KindValidation    ErrorKind = "validation"
	KindAuthorization ErrorKind = "authorization"
	KindStructural    ErrorKind = "structural"
	KindNotFound      ErrorKind = "not_found"
)

// AppError is the machine-readable error envelope every failing gateway
// response carries. Message is always human-readable; upstream-reported
// messages are passed through verbatim.
type AppError struct {
	Kind      ErrorKind `json:"kind"`
	Message   string    `json:"error"`
	Retryable bool      `json:"retryable,omitempty"`
	Refetch   bool      `json:"refetch,omitempty"`
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewTransportError wraps a network-level failure as retryable.
func NewTransportError(message string) *AppError {
	return &AppError{Kind: KindTransport, Message: message, Retryable: true}
}

// NewValidationError rejects a request before anything is sent upstream.
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// NewAuthorizationError reports a permission denial.
func NewAuthorizationError(message string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: message}
}

// NewStructuralError reports a thread integrity problem; the client should
// refetch the whole thread rather than patch locally.
func NewStructuralError(message string) *AppError {
	return &AppError{Kind: KindStructural, Message: message, Refetch: true}
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}
