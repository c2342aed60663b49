package services

import "errors"

// Sentinel errors shared by the service layer. Handlers translate these to
// HTTP status codes.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOverlap           = errors.New("appointment overlaps an existing booking")
	ErrAccountLocked     = errors.New("account is locked")
)
