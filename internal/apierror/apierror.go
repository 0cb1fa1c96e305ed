// Package apierror provides the tagged error taxonomy and the standardized
// response envelope for the API. All errors returned to clients go through
// this package to ensure consistency and to prevent leaking internal details
// (stack traces, DB errors, etc.). Handlers map the Kind to an HTTP status;
// clients never need to shape-sniff payloads.
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies a business failure. Every error crossing the service
// boundary carries exactly one Kind.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindInsufficientStock Kind = "insufficient_stock"
	KindEmptyCart         Kind = "empty_cart"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	// KindConsistency marks the fatal "stock committed but ticket persistence
	// failed" state. Never exposed verbatim to clients.
	KindConsistency Kind = "consistency"
	KindInternal    Kind = "internal"
)

// Error is a business error with a Kind tag.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func Validation(msg string) *Error        { return &Error{Kind: KindValidation, Detail: msg} }
func NotFound(msg string) *Error          { return &Error{Kind: KindNotFound, Detail: msg} }
func InsufficientStock(msg string) *Error { return &Error{Kind: KindInsufficientStock, Detail: msg} }
func EmptyCart(msg string) *Error         { return &Error{Kind: KindEmptyCart, Detail: msg} }
func Unauthorized(msg string) *Error      { return &Error{Kind: KindUnauthorized, Detail: msg} }
func Forbidden(msg string) *Error         { return &Error{Kind: KindForbidden, Detail: msg} }
func Consistency(msg string) *Error       { return &Error{Kind: KindConsistency, Detail: msg} }
func Internal(msg string) *Error          { return &Error{Kind: KindInternal, Detail: msg} }

// KindOf extracts the Kind of err, or KindInternal for untagged errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Status maps a Kind to its canonical HTTP status code.
func Status(k Kind) int {
	switch k {
	case KindValidation, KindInsufficientStock, KindEmptyCart:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
	Kind   Kind   `json:"kind,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Envelope builds the wire payload for err. Consistency faults are masked:
// the client is told the outcome is unknown and to check ticket history
// before retrying, never the internal detail.
func Envelope(err error) *APIError {
	switch KindOf(err) {
	case KindConsistency:
		return &APIError{
			Kind:   KindConsistency,
			Detail: "The outcome of this operation is unknown. Check ticket history before retrying.",
		}
	case KindInternal:
		return &APIError{Kind: KindInternal, Detail: "Internal server error"}
	default:
		return &APIError{Kind: KindOf(err), Detail: err.Error()}
	}
}

// ValidationFields wraps multiple field errors from request binding.
type ValidationFields struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationFields {
	return &ValidationFields{Detail: "Validation error", Fields: fields}
}
