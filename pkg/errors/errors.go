package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// GenericMessage is shown to users when the API gives no message of its own.
const GenericMessage = "Ha ocurrido un error. Vuelva a intentarlo."

// Error represents a typed error with HTTP awareness.
type Error struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Status  int               `json:"status"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
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

// Is matches errors by code so clones of a predefined error still compare equal.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrMissingCredential = New("MISSING_CREDENTIAL", http.StatusUnauthorized, "no stored credential")
	ErrNoSession         = New("NO_SESSION", http.StatusUnauthorized, "session not found")
	ErrUnauthorized      = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrForbidden         = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrNotFound          = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation        = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInvalidTransition = New("INVALID_TRANSITION", http.StatusConflict, "invalid selection")
	ErrPrecondition      = New("PRECONDITION_FAILED", http.StatusPreconditionFailed, "precondition failed")
	ErrUpstream          = New("UPSTREAM_ERROR", http.StatusBadGateway, GenericMessage)
	ErrUnreachable       = New("UPSTREAM_UNREACHABLE", http.StatusBadGateway, GenericMessage)
	ErrDownload          = New("DOWNLOAD_FAILED", http.StatusBadGateway, "No se ha podido descargar el certificado.")
	ErrInternal          = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
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

// Validation builds a validation error carrying per-field messages.
func Validation(fields map[string]string) *Error {
	clone := Clone(ErrValidation, "")
	clone.Fields = fields
	return clone
}

// Upstream builds an error for a failed EDUCA API call. The server message is
// kept when present, otherwise the generic message is used.
func Upstream(status int, message string, cause error) *Error {
	if message == "" {
		message = GenericMessage
	}
	if status < 400 {
		status = ErrUpstream.Status
	}
	return &Error{Code: ErrUpstream.Code, Status: status, Message: message, Err: cause}
}

// UserMessage returns the text to show the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" && e.Code != ErrInternal.Code {
		return e.Message
	}
	return GenericMessage
}
