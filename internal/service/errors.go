package service

import "errors"

// Error taxonomy surfaced by every service method. The HTTP layer maps
// these to status codes; services must not collapse them into generic
// failures.
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidState        = errors.New("invalid state")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
