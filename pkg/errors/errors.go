package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors by code so sentinels survive Wrap/Clone.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e != nil && t != nil && e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for the legacy backend client.
var (
	// ErrTransport covers unreachable network and non-2xx HTTP statuses.
	ErrTransport = New("TRANSPORT_FAILURE", http.StatusBadGateway, "request to backend failed")
	// ErrCrossOrigin is the same-origin-policy block, kept as a distinct kind
	// so callers can show platform-specific remediation.
	ErrCrossOrigin = New("CROSS_ORIGIN_BLOCKED", http.StatusBadGateway, "backend rejected the request origin")
	// ErrDecode marks an undecodable backend response body.
	ErrDecode = New("DECODE_FAILURE", http.StatusBadGateway, "backend response could not be decoded")
	// ErrBackendCode marks an envelope whose code field is not 200.
	ErrBackendCode = New("BACKEND_CODE", http.StatusBadGateway, "backend reported a non-success code")

	ErrLoginRejected        = New("LOGIN_REJECTED", http.StatusUnauthorized, "backend rejected the credentials")
	ErrNoSession            = New("NO_SESSION", http.StatusUnauthorized, "no active session")
	ErrCredentialsNotFound  = New("CREDENTIALS_NOT_FOUND", http.StatusNotFound, "no stored credentials")
	ErrBiometricUnavailable = New("BIOMETRIC_UNAVAILABLE", http.StatusPreconditionFailed, "biometric hardware unavailable or not enrolled")
	ErrBiometricRejected    = New("BIOMETRIC_REJECTED", http.StatusUnauthorized, "biometric prompt was not confirmed")

	ErrValidation = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrNotFound   = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrInternal   = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
