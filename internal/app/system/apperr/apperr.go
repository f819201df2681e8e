// internal/app/system/apperr/apperr.go

// Package apperr defines the error taxonomy shared by the group directory,
// the poll engine and the activity catalog.
//
// Domain-significant store failures (duplicate keys) are remapped to
// Conflict at the store boundary; everything else from the store is wrapped
// as Internal so callers never see driver-specific detail. Handlers map the
// five kinds to HTTP status codes and nothing else crosses the boundary.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers. Kinds are comparable sentinels:
// errors.Is(err, apperr.NotFound) reports whether err carries that kind.
type Kind struct{ name string }

func (k *Kind) Error() string { return k.name }

var (
	NotFound   = &Kind{"not found"}
	Conflict   = &Kind{"conflict"}
	Forbidden  = &Kind{"forbidden"}
	BadRequest = &Kind{"bad request"}
	Internal   = &Kind{"internal error"}
)

// Error is a classified application error with an optional wrapped cause.
type Error struct {
	Kind *Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is(err, apperr.Conflict) work on classified errors.
func (e *Error) Is(target error) bool {
	k, ok := target.(*Kind)
	return ok && e.Kind == k
}

// New returns a classified error with a formatted message.
func New(kind *Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error. The cause is retained for logging
// but the message is what callers and clients see.
func Wrap(kind *Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind carried by err, or Internal when err is
// unclassified. Nil errors have no kind.
func KindOf(err error) *Kind {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}
