package store

import "errors"

// Sentinel errors returned by repository implementations.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUserNotFound    = errors.New("user not found")
)
