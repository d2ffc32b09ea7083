package service

import (
    "errors"
    "fmt"
    "strings"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/model"
)

// Business-rule failures returned by the booking service.  These are
// structured results, not faults: handlers translate them to 4xx
// responses and clients are expected to recover (pick other seats,
// re-lock, fix the request).
var (
    // ErrSeatsUnavailable signals seat contention: at least one
    // requested seat is covered by another active lock or by a
    // pending/confirmed booking.  Retryable with different seats.
    ErrSeatsUnavailable = errors.New("seats unavailable")

    // ErrShowInactive is returned when the referenced show exists but
    // is not open for booking.
    ErrShowInactive = errors.New("show is not active")

    // ErrInvalidLock covers a presented lock that is missing, expired,
    // deactivated, bound to another show, or owned by someone else.
    ErrInvalidLock = errors.New("invalid or expired seat lock")

    // ErrLockNotOwner is returned when a release is attempted by a user
    // other than the lock's holder.
    ErrLockNotOwner = errors.New("lock is held by another user")

    // ErrLockInactive is returned when releasing a lock that is already
    // deactivated or past its TTL.
    ErrLockInactive = errors.New("lock is already inactive")

    // ErrInvalidPaymentMethod rejects unrecognised payment methods
    // before any mutation is attempted.
    ErrInvalidPaymentMethod = errors.New("invalid payment method")

    // ErrValidation rejects malformed input such as an empty seat set
    // or seats outside the screen layout.
    ErrValidation = errors.New("validation error")

    // ErrStorageTimeout indicates the storage operation exceeded its
    // bounded timeout.  The whole operation is safe to retry from
    // scratch; no partial writes survive a failed transaction.
    ErrStorageTimeout = errors.New("storage operation timed out")
)

// SeatsUnavailableError carries the contested seats so handlers can
// report exactly which seats the client lost.  It unwraps to
// ErrSeatsUnavailable for errors.Is matching.
type SeatsUnavailableError struct {
    Seats []model.Seat
}

func (e *SeatsUnavailableError) Error() string {
    labels := make([]string, 0, len(e.Seats))
    for _, s := range e.Seats {
        labels = append(labels, s.Label())
    }
    return fmt.Sprintf("seats unavailable: %s", strings.Join(labels, ", "))
}

func (e *SeatsUnavailableError) Unwrap() error { return ErrSeatsUnavailable }
