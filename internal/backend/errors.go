package backend

import "errors"

var (
	// ErrAuthRequired covers a missing, empty or rejected credential.
	ErrAuthRequired = errors.New("authentication required")

	// ErrNotFound is the raw 404 signal. Callers decide whether it means
	// "empty resource" (cart fetch) or a real failure.
	ErrNotFound = errors.New("resource not found")
)
