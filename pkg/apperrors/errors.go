package apperrors

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrUnknownTrigger = errors.New("unknown trigger type")
	ErrUnknownAgent   = errors.New("unknown agent")
	ErrMissingAPIKey  = errors.New("provider API key is not configured")
)
