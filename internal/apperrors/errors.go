// Package apperrors defines the error taxonomy shared by services and handlers.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping.
type Kind int

// KindNone is reported by KindOf for a nil error.
const KindNone Kind = -1

const (
	KindUnexpected Kind = iota
	KindValidation
	KindAuth
	KindConfig
	KindConflict
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindConfig:
		return "config"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	default:
		return "unexpected"
	}
}

// Codes used by more than one layer.
const (
	CodePaymentVerificationFailed = "payment_verification_failed"
	CodeDuplicateTicket           = "duplicate_ticket"
	CodeIdentityConflict          = "identity_conflict"
	CodeDuplicateWinner           = "duplicate_winner"
	CodeGatewayUnconfigured       = "gateway_unconfigured"
	CodeSecretUnconfigured        = "secret_unconfigured"
)

// Error is the concrete error type carried across layers.
type Error struct {
	Kind    Kind
	Code    string
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind and code so sentinel-style comparisons work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// Validation reports malformed or missing input.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Code: "invalid_input", Message: message}
}

// InvalidField reports a validation failure attributed to one input field.
func InvalidField(field, message string) *Error {
	return &Error{Kind: KindValidation, Code: "invalid_input", Field: field, Message: message}
}

// Auth reports missing, invalid or expired credentials.
func Auth(code, message string) *Error {
	return &Error{Kind: KindAuth, Code: code, Message: message}
}

// Config reports a required secret or credential that is absent.
func Config(code, message string) *Error {
	return &Error{Kind: KindConfig, Code: code, Message: message}
}

// Conflict reports a uniqueness violation.
func Conflict(code, field, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Field: field, Message: message}
}

// NotFound reports a missing resource.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Code: "not_found", Message: message}
}

// Unexpected wraps anything the caller cannot act on.
func Unexpected(message string, err error) *Error {
	return &Error{Kind: KindUnexpected, Code: "internal", Message: message, Err: err}
}

// PaymentVerificationFailed is returned when a gateway signature does not match.
var PaymentVerificationFailed = &Error{
	Kind:    KindValidation,
	Code:    CodePaymentVerificationFailed,
	Message: "Payment verification failed",
}

// As extracts an *Error from err. Errors outside the taxonomy become Unexpected.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Unexpected("Server error", err)
}

// KindOf returns the kind of err, KindUnexpected for foreign errors and KindNone for nil.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	return As(err).Kind
}

// HTTPStatus maps a kind to its response status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
