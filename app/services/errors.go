package services

import (
	"errors"
	"fmt"
)

// Expected, recoverable conditions surfaced by the waterfall engine.
// Anything else coming out of the engine is a persistence failure and is
// safe to retry: a retry either finds the distribution still pending or
// observes ErrAlreadyExecuted instead of double-moving money.
var (
	ErrDistributionNotFound = errors.New("distribution not found")
	ErrAlreadyExecuted      = errors.New("distribution already executed")
)

// ValidationError reports a malformed or out-of-range input field. Nothing
// is persisted when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
