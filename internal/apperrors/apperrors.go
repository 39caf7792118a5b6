package apperrors

import "errors"

var (
	// ErrNotFound covers both missing records and records owned by another
	// user, so responses never leak existence of other users' data.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for malformed input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict is reserved for uniqueness violations.
	ErrConflict = errors.New("conflict")
	// ErrUpstream marks failures from the AI provider.
	ErrUpstream = errors.New("upstream failure")
)
