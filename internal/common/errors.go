package common

import "errors"

// Sentinel errors for the ledger and master-data layer. Handlers map these to
// HTTP status codes; everything else is treated as a persistence failure.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation failed")
)
