package domain

import "errors"

// Cross-cutting error taxonomy. Entity-specific sentinels (ErrUserNotFound,
// ErrClientNotFound, ErrSessionNotFound) live next to their types.
var (
	// ErrValidation marks missing or malformed input (400).
	ErrValidation = errors.New("invalid input")

	// ErrRateLimited marks a login attempt rejected by the rate limiter (429).
	// Deliberately distinct from ErrInvalidCredentials so legitimate users get
	// useful feedback without leaking whether the username exists.
	ErrRateLimited = errors.New("too many attempts")

	// ErrUnauthenticated marks a request with no valid session (401).
	ErrUnauthenticated = errors.New("unauthorized")

	// ErrForbidden marks a valid session with the wrong role or the wrong
	// client scope (403).
	ErrForbidden = errors.New("forbidden")

	// ErrAdminExists rejects bootstrap once an admin account is present (403).
	ErrAdminExists = errors.New("admin already exists")
)
