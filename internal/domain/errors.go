package domain

import "errors"

var (
	// ErrAccountNotFound signals that no account exists for the requested id.
	ErrAccountNotFound = errors.New("account not found")
	// ErrValidation signals that a client-supplied account payload is invalid.
	// Specific field failures wrap this sentinel.
	ErrValidation = errors.New("invalid account data")
)
