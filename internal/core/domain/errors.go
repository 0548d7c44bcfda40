package domain

import "errors"

// Sentinel errors for the forum domain. The API error handler maps each of
// these to a deterministic HTTP status code.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDeveloperNotFound = errors.New("developer not found")
	ErrGameNotFound      = errors.New("game not found")
	ErrCommentNotFound   = errors.New("comment not found")

	ErrEmailExists = errors.New("email already exists")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("no credential provided")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	// ErrIntegrity signals a dangling reference discovered while walking the
	// ownership chain. It is a bug-class error, never retried and never
	// swallowed.
	ErrIntegrity = errors.New("referential integrity violation")
)

// ValidationError reports a malformed or missing field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
