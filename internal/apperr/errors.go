// Package apperr defines the error taxonomy shared by services and
// handlers. Services return these; the HTTP layer maps them to status
// codes instead of inspecting database errors directly.
package apperr

import "errors"

var (
	// ErrNotFound covers both truly absent rows and rows owned by a
	// different user, so cross-user probes cannot distinguish the two.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals a uniqueness violation, e.g. duplicate
	// registration email or username.
	ErrConflict = errors.New("already exists")

	// ErrInvalidCredentials deliberately merges "unknown email" and
	// "wrong password" into a single failure.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError marks malformed or missing caller input. Its message
// is safe to return to the client verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError with the given user-facing message.
func Validation(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is a ValidationError and returns its
// message.
func IsValidation(err error) (string, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Msg, true
	}
	return "", false
}
