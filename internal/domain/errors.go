package domain

import "errors"

// Error kinds surfaced to clients. Repository and handler code wraps these with
// fmt.Errorf("...: %w", Err...) so callers can branch with errors.Is while the
// message stays human-readable.
var (
	ErrUnauthorized = errors.New("caller cannot manage this shop")
	ErrPrecondition = errors.New("precondition failed")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflicting concurrent operation")
)
