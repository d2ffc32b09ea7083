// Package repository implements MySQL persistence for the booking
// backend.  This file defines the sentinel errors shared across the
// repositories.  Higher layers match them with errors.Is to translate
// failures into HTTP responses; none of them indicates an internal
// fault.
package repository

import "errors"

// Not-found sentinels.  Handlers translate these into 404 responses.
var (
    ErrUserNotFound    = errors.New("user not found")
    ErrMovieNotFound   = errors.New("movie not found")
    ErrVenueNotFound   = errors.New("venue not found")
    ErrScreenNotFound  = errors.New("screen not found")
    ErrShowNotFound    = errors.New("show not found")
    ErrLockNotFound    = errors.New("seat lock not found")
    ErrBookingNotFound = errors.New("booking not found")
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate this into 403.
var ErrForbidden = errors.New("forbidden")

// ErrEmailTaken is returned when registering with an email address that
// already has an account.
var ErrEmailTaken = errors.New("email already registered")

// ErrInventoryUnderflow is returned when a decrement would push a
// show's available seat counter below zero.  The write is refused.  If
// the contention checks upstream are correct this never fires; seeing
// it means a concurrency-control bug, and the service logs it loudly.
var ErrInventoryUnderflow = errors.New("available seats would go negative")
