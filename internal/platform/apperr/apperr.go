// Package apperr holds the error classes shared by every module.
// Services wrap one of these sentinels so handlers can pick a status code
// with errors.Is instead of matching message text.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks rejected input: negative amounts, missing fields, bad ids.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidTransition marks a status change the state machine does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	// ErrForbidden marks a request outside the caller's company.
	ErrForbidden = errors.New("forbidden")
	// ErrDependency marks a failed side effect (e.g. spawning a record) that
	// caused the triggering operation to be rolled back.
	ErrDependency = errors.New("dependent operation failed")
)

// classified carries a client-facing message and matches its class with
// errors.Is without repeating the class text in Error().
type classified struct {
	msg   string
	class error
	cause error
}

func (e *classified) Error() string        { return e.msg }
func (e *classified) Is(target error) bool { return target == e.class }
func (e *classified) Unwrap() error        { return e.cause }

func newf(class error, format string, args ...any) error {
	return &classified{msg: fmt.Sprintf(format, args...), class: class}
}

// Validation returns an ErrValidation-classified error with a formatted message.
func Validation(format string, args ...any) error {
	return newf(ErrValidation, format, args...)
}

// Transition returns an ErrInvalidTransition-classified error.
func Transition(format string, args ...any) error {
	return newf(ErrInvalidTransition, format, args...)
}

func NotFound(format string, args ...any) error {
	return newf(ErrNotFound, format, args...)
}

func Conflict(format string, args ...any) error {
	return newf(ErrConflict, format, args...)
}

func Forbidden(format string, args ...any) error {
	return newf(ErrForbidden, format, args...)
}

// Dependency wraps cause so that both ErrDependency and cause match errors.Is.
func Dependency(what string, cause error) error {
	return &classified{msg: what + ": " + cause.Error(), class: ErrDependency, cause: cause}
}
