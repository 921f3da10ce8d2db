package timeline

import "errors"

var (
	// ErrValidation indicates malformed or missing required input. The
	// offending operation is rejected; nothing is written.
	ErrValidation = errors.New("invalid event input")
	// ErrStorage indicates an underlying persistence failure. It is surfaced
	// as-is and never retried here.
	ErrStorage = errors.New("event storage failure")
	// ErrEventNotFound indicates a lookup by identifier matched nothing.
	// Range, category, and search queries return empty sequences instead.
	ErrEventNotFound = errors.New("event not found")
)
