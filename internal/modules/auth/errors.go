package auth

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrUserExists         = errors.New("username or email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized covers missing, replayed and raced refresh tokens.
	// A rotated-away token is reported exactly like a missing one so a
	// caller cannot probe which tokens were ever valid.
	ErrUnauthorized = errors.New("unauthorized")
)
