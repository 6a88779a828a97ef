// Package apperr defines the error kinds the POS services return and the
// HTTP statuses controllers map them to.
//
// Services wrap a human-readable message in a kind:
//
//	return apperr.NotFound("order not found")
//
// Controllers hand any service error to response.FromError, which inspects
// the kind and writes the right envelope.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a service failure.
type Kind int

const (
	// KindValidation — malformed or out-of-range input.
	KindValidation Kind = iota
	// KindNotFound — a referenced entity does not exist.
	KindNotFound
	// KindUnprocessable — valid request, invalid current state.
	KindUnprocessable
	// KindPaymentGateway — the outbound payment call failed.
	KindPaymentGateway
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	// Fields carries field-level validation messages when Kind is KindValidation.
	Fields map[string]string
	// Err is the wrapped cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the kind to an HTTP status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	case KindPaymentGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Validation builds a KindValidation error.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// ValidationFields builds a KindValidation error carrying field messages.
func ValidationFields(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

// NotFound builds a KindNotFound error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Unprocessable builds a KindUnprocessable error.
func Unprocessable(msg string) *Error {
	return &Error{Kind: KindUnprocessable, Message: msg}
}

// PaymentGateway builds a KindPaymentGateway error wrapping the cause.
func PaymentGateway(msg string, cause error) *Error {
	return &Error{Kind: KindPaymentGateway, Message: msg, Err: cause}
}

// As extracts an *Error from err, if it is one.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}
