package domain

import "errors"

// Sentinel errors shared by both services. Handlers and the central HTTP
// error handler match on these with errors.Is; everything else is reported
// to the client as a generic internal error.
var (
	// ErrAuthentication covers every credential failure: missing, malformed,
	// expired, forged, or naming an unknown principal. Collapsing these into
	// one sentinel keeps the client from learning which case occurred.
	ErrAuthentication = errors.New("not authenticated")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrLinkNotFound = errors.New("no such shortened url exists")
	ErrValidation   = errors.New("invalid request")
)
