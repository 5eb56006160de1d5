package apperror

import (
	"fmt"
	"net/http"
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

// The errors below describe collaborator failures inside a conversation.
// None of them abort a session: the controller downgrades each to a
// warning, a re-prompt, or deterministic fallback content.

// ServiceDegraded marks an optional external check (MX lookup, geocoder)
// as unavailable. The result it would have confirmed is accepted with
// reduced confidence.
type ServiceDegraded struct {
	Service string
	Err     error
}

func (e *ServiceDegraded) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
}

func (e *ServiceDegraded) Unwrap() error {
	return e.Err
}

func Degraded(service string, err error) *ServiceDegraded {
	return &ServiceDegraded{Service: service, Err: err}
}

// ModelCallFailed reports that the model API stayed unreachable for the
// whole retry budget. Callers substitute statically templated content.
type ModelCallFailed struct {
	Provider string
	Err      error
}

func (e *ModelCallFailed) Error() string {
	return fmt.Sprintf("model call via %s failed: %v", e.Provider, e.Err)
}

func (e *ModelCallFailed) Unwrap() error {
	return e.Err
}

// PersistenceFailed reports a storage write error. The session keeps its
// state in memory and the user sees a non-fatal warning.
type PersistenceFailed struct {
	Op  string
	Err error
}

func (e *PersistenceFailed) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceFailed) Unwrap() error {
	return e.Err
}
