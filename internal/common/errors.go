// Package common defines shared constants and sentinel errors used across
// client and server layers of QuickNotes. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

// RequestError is a failure that is reported back to the caller as is.
// Kind is one of the sentinel errors above and decides the response status.
type RequestError struct {
	Kind    error
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Kind
}

// NewRequestError builds a RequestError of the given kind.
func NewRequestError(kind error, message string) *RequestError {
	return &RequestError{Kind: kind, Message: message}
}

// Client-facing failures of the auth and notes flows.
var (
	ErrMissingSignupFields = NewRequestError(ErrorValidation, "Name, email, and password are required")
	ErrMissingLoginFields  = NewRequestError(ErrorValidation, "Email and password are required")
	ErrMissingNoteFields   = NewRequestError(ErrorValidation, "Title and content are required")
	ErrInvalidPagination   = NewRequestError(ErrorValidation, "Invalid pagination parameters")
	ErrInvalidRequestBody  = NewRequestError(ErrorValidation, "Invalid request body")
	ErrPasswordTooLong     = NewRequestError(ErrorValidation, "Password is too long")

	ErrUserExists = NewRequestError(ErrorAlreadyExists, "User already exists")

	ErrUserNotFound = NewRequestError(ErrorNotFound, "User not found")
	ErrNoteNotFound = NewRequestError(ErrorNotFound, "Note not found or unauthorized")

	ErrUseGoogleSignIn    = NewRequestError(ErrorUnauthorized, "Please sign in with Google")
	ErrInvalidCredentials = NewRequestError(ErrorUnauthorized, "Invalid credentials")
	ErrGoogleAuthFailed   = NewRequestError(ErrorUnauthorized, "Google authentication failed")
	ErrNoTokenProvided    = NewRequestError(ErrorUnauthorized, "No token provided")
	ErrTokenRejected      = NewRequestError(ErrorUnauthorized, "Invalid token")
)
