package request

import "errors"

var (
	// ErrInternalServer is returned to the client when the handler failed unexpectedly.
	ErrInternalServer = errors.New("internal server error")

	// ErrNotFound is returned to the client when the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned to the client when the request does not carry valid credentials.
	ErrUnauthorized = errors.New("unauthorized")
)
