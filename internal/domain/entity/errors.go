package entity

import "errors"

var (
	// ErrStoreUnavailable marks a failed read/write against the external
	// document store.
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrMalformedReport marks a status report with no structured content
	// or with required keys missing.
	ErrMalformedReport = errors.New("malformed status report")

	// ErrQueueExhausted signals that no not-completed task remains. It is a
	// terminal signal, not a failure.
	ErrQueueExhausted = errors.New("task queue exhausted")
)
