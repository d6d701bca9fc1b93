package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation = "validation"
	CodeConflict   = "conflict"
	CodeNotFound   = "not_found"
	CodeExecution  = "execution"
)

type Error struct {
	Status  int
	Code    string
	Err     error
	Details any
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Validation covers client-class failures raised before any write.
func Validation(err error) *Error {
	return New(http.StatusBadRequest, CodeValidation, err)
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

func Conflict(err error) *Error {
	return New(http.StatusConflict, CodeConflict, err)
}

// VersionConflict carries the true current draft version so the caller can
// refetch and retry.
func VersionConflict(err error, currentVersion int) *Error {
	e := Conflict(err)
	e.Details = map[string]any{"current_version": currentVersion}
	return e
}

// Execution marks a storage failure during an already-validated batch. The
// failed receipt makes a later retry safe.
func Execution(err error) *Error {
	return New(http.StatusInternalServerError, CodeExecution, err)
}

// From extracts the *Error from an error chain, wrapping unknown errors as
// execution failures.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Execution(err)
}
