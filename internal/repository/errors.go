// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services and handlers to distinguish between different failure
// scenarios. For example, ErrSeatTaken indicates that a requested
// (row, seat) position already carries an active reservation, while
// ErrConflict signals that an operation cannot proceed due to
// dependent records (e.g. deleting a ticket type that is still
// referenced by prices).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as deleting a venue
// that still has shows. Handlers should translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrSeatTaken is returned when a seat reservation is attempted on a
// (plan, row, seat) position already held by a non-cancelled ticket
// for the same performance.
var ErrSeatTaken = errors.New("seat already reserved")

// ErrPerformanceCancelled is returned when a mutation targets tickets
// of a performance that has been cancelled.
var ErrPerformanceCancelled = errors.New("performance cancelled, tickets can no longer be updated")
