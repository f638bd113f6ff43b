package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound       = errors.New("not found")
	ErrNotFitted      = errors.New("not fitted")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrModelNotFound  = errors.New("model artifact not found")
	ErrModelCorrupt   = errors.New("model artifact corrupt")
	ErrVocabMismatch  = errors.New("model vocabulary mismatch")
	ErrListingMissing = errors.New("listing no longer exists")
)
