package domain

import "errors"

// Domain errors shared across services; each service owns its own
// operation-specific sentinels.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidPassword = errors.New("invalid password")
)
