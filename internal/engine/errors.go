package engine

import "errors"

var (
	// ErrNotInitialized is returned when a score mutation runs before
	// Initialize. This is a caller sequencing bug, not a runtime condition.
	ErrNotInitialized = errors.New("vitals not initialized")

	// ErrAlreadyInitialized is returned when Initialize runs twice.
	ErrAlreadyInitialized = errors.New("vitals already initialized")

	// ErrWorkoutNotFound is returned by workout update/delete on an unknown id.
	ErrWorkoutNotFound = errors.New("workout not found")
)
