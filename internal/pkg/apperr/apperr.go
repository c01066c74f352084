// Package apperr defines the error taxonomy shared by the journal, mood,
// trend and recommendation services.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation     Kind = "validation"
	KindClassification Kind = "classification"
	KindStore          Kind = "store"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return string(e.Kind) + " error"
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether the caller may safely repeat the operation.
func (e *Error) Retryable() bool {
	return e != nil && (e.Kind == KindClassification || e.Kind == KindStore)
}

func New(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, nil, format, args...)
}

func Classification(err error, format string, args ...any) *Error {
	return New(KindClassification, err, format, args...)
}

func Store(err error, format string, args ...any) *Error {
	return New(KindStore, err, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, nil, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(KindConflict, nil, format, args...)
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsRetryable reports whether err is a classification or store failure.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable()
}
