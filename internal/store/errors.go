package store

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Error carries a user-facing message next to one of the sentinel kinds.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%v: %s", e.Kind, e.Message) }
func (e *Error) Unwrap() error { return e.Kind }

func notFound(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }
func invalid(msg string) error  { return &Error{Kind: ErrValidation, Message: msg} }
func conflict(msg string) error { return &Error{Kind: ErrConflict, Message: msg} }
func invalidf(format string, args ...interface{}) error {
	return invalid(fmt.Sprintf(format, args...))
}
func conflictf(format string, args ...interface{}) error {
	return conflict(fmt.Sprintf(format, args...))
}

// Message returns the user-facing text of err, or "" when err is not a
// store error.
func Message(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}

// missing maps mongo.ErrNoDocuments to a not-found error with msg.
func missing(err error, msg string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFound(msg)
	}
	return err
}
