package domain

import "errors"

// Not found
var (
	ErrFounderNotFound = errors.New("founder profile not found")
	ErrStartupNotFound = errors.New("startup profile not found")
	ErrMentorNotFound  = errors.New("mentor not found")
	ErrRequestNotFound = errors.New("mentorship request not found")
)

// Conflict
var (
	ErrRequestNotPending = errors.New("mentorship request is not pending")
	ErrDuplicateRequest  = errors.New("a pending request to this mentor already exists")
)

// Validation / authorization
var (
	ErrInvalidStatus     = errors.New("invalid request status")
	ErrCannotRequestSelf = errors.New("cannot send a mentorship request to yourself")
	ErrForbidden         = errors.New("operation not allowed for this user")
)

var ErrInvalidToken = errors.New("invalid or expired token")
