package mock

import "github.com/mekedron/city-discovery/internal/result"

// Error is a classified failure raised by the in-memory backend.
type Error struct {
	kind      result.Kind
	message   string
	retryable bool
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Kind() result.Kind {
	return e.kind
}

func (e *Error) Retryable() bool {
	return e.retryable
}

func newError(kind result.Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

var (
	errLoginNetwork  = newError(result.NetworkFailure, "Network error")
	errEmailTaken    = newError(result.ValidationFailure, "Email already exists")
	errNearbyTimeout = &Error{kind: result.NetworkFailure, message: "Network timeout", retryable: true}
	errSearchFailed  = newError(result.NetworkFailure, "Search failed")
	errBadLogin      = newError(result.AuthFailure, "Geçersiz e-posta veya şifre")
	errVenueNotFound = newError(result.NotFoundFailure, "Venue not found")
	errUserNotFound  = newError(result.NotFoundFailure, "User not found")
)
