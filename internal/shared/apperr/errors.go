// Package apperr defines error kinds shared across features.
// Handlers translate these into HTTP responses; lower layers wrap them with %w.
package apperr

import "errors"

var (
	// ErrNotFound is returned when an entity does not exist or is not visible to the requester.
	// A task owned by another user is reported with this same error.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable indicates an infrastructure fault in the backing store
	// (timeout, lost connection, driver error). Callers may retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)
