package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error for transport-level mapping.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindInvalidState Kind = "invalid_state"
	KindDuplicate    Kind = "duplicate"
	KindUploadFailed Kind = "upload_failed"
)

// Error carries a classification and a human-readable message safe to return
// to API clients.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NotFound reports a missing entity.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidState reports a request that is well-formed but violates a precondition.
func InvalidState(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// Duplicate reports an egg observation colliding with an existing unpicked egg.
func Duplicate(format string, args ...any) *Error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

// UploadFailed wraps an image store failure. The cause is kept for logging but
// never exposed through Message.
func UploadFailed(cause error, format string, args ...any) *Error {
	return &Error{Kind: KindUploadFailed, Message: fmt.Sprintf(format, args...), cause: cause}
}

// KindOf extracts the Kind from err, or "" when err is not an application error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// MessageOf returns the client-safe message for err, or fallback when err is
// not an application error.
func MessageOf(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return fallback
}
