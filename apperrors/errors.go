package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds. Callers classify with errors.Is and keep the
// human-readable message from Error().
var (
	ErrValidation          = errors.New("validation error")
	ErrConflict            = errors.New("conflict")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUpstreamAuth        = errors.New("upstream authentication failed")
	ErrUpstreamTimeout     = errors.New("upstream timeout")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newf(kind error, format string, args ...any) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error {
	return newf(ErrValidation, format, args...)
}

func Conflict(format string, args ...any) error {
	return newf(ErrConflict, format, args...)
}

func NotFound(format string, args ...any) error {
	return newf(ErrNotFound, format, args...)
}

// InvalidCredentials deliberately carries one fixed message so that a failed
// lookup and a failed password check are indistinguishable to the client.
func InvalidCredentials() error {
	return &kindError{kind: ErrInvalidCredentials, msg: "invalid credentials"}
}

func UpstreamAuth(format string, args ...any) error {
	return newf(ErrUpstreamAuth, format, args...)
}

func UpstreamTimeout(format string, args ...any) error {
	return newf(ErrUpstreamTimeout, format, args...)
}

func UpstreamUnavailable(format string, args ...any) error {
	return newf(ErrUpstreamUnavailable, format, args...)
}

// Status maps an error to the HTTP status code the REST layer responds with.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUpstreamAuth),
		errors.Is(err, ErrUpstreamTimeout),
		errors.Is(err, ErrUpstreamUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
