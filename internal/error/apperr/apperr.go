// Package apperr holds the error kinds shared by usecases and transports.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("not authenticated")
	ErrForbidden    = errors.New("not enough privileges")
	ErrNotFound     = errors.New("record not found")
	ErrConflict     = errors.New("record already exists")
	ErrValidation   = errors.New("invalid input")
	ErrSelfDelete   = errors.New("cannot delete own account")
)

// Error ties a kind to the offending field and a message id that the
// transports localize.
type Error struct {
	Kind      error
	Field     string
	MessageID string
	Err       error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func Conflict(field, messageID string) error {
	return &Error{Kind: ErrConflict, Field: field, MessageID: messageID}
}

func NotFound(messageID string) error {
	return &Error{Kind: ErrNotFound, MessageID: messageID}
}

func Invalid(field, messageID string, cause error) error {
	return &Error{Kind: ErrValidation, Field: field, MessageID: messageID, Err: cause}
}

func Invalidf(field, messageID, format string, args ...any) error {
	return Invalid(field, messageID, fmt.Errorf(format, args...))
}

// MessageID returns the message id carried by err, or "" when err is not an *Error.
func MessageID(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.MessageID
	}
	return ""
}
