package service

import "errors"

// The four failure kinds every operation maps into. Callers branch
// with errors.Is; details travel in the wrapping message.
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidState     = errors.New("invalid state")
	ErrConflict         = errors.New("conflict")
)
