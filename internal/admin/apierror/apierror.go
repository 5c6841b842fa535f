// Package apierror defines the error kinds the admin API reports to callers.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an admin API error.
type Code string

const (
	// BadRequest: caller-supplied data failed parsing or validation.
	BadRequest Code = "BadRequest"
	// NotFound: a referenced group, partition or user does not exist.
	NotFound Code = "NotFound"
	// Internal: a dispatched operation's backing service failed.
	Internal Code = "Internal"
	// Unavailable: the server is not ready to serve requests yet.
	Unavailable Code = "Unavailable"
)

// Error is the admin API error type. Msg is what the caller sees.
type Error struct {
	Code Code
	Msg  string
}

func (e Error) Error() string {
	return fmt.Sprintf("admin api: %s - %s", e.Code, e.Msg)
}

func New(code Code, format string, args ...any) Error {
	return Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// CanonicalCode extracts the Code from err, defaulting to Internal for
// errors that did not originate here.
func CanonicalCode(err error) Code {
	var e Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Internal
}

// Message returns the caller-facing message for err.
func Message(err error) string {
	var e Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return err.Error()
}

// HTTPStatus maps an error to the status code of its kind.
func HTTPStatus(err error) int {
	switch CanonicalCode(err) {
	case BadRequest:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
