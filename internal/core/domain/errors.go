package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoMatch indicates no search strategy produced an acceptable
	// candidate for a locality. Non-fatal: the locality stays
	// unresolved and is retried on the next incremental run.
	ErrNoMatch = errors.New("no matching entity")

	// ErrNoStatistics indicates resolution succeeded but neither
	// statistic fetch returned anything usable.
	ErrNoStatistics = errors.New("no usable statistics")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRunInProgress indicates a batch run is already running.
	ErrRunInProgress = errors.New("batch run in progress")
)
