// Package ports declares the storage and messaging interfaces consumed
// by the booking service.  The MySQL implementation lives in
// internal/repository; an in-memory implementation used by tests and
// local development lives in internal/repository/memstore.
package ports

import (
    "context"
    "time"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/model"
)

// Store bundles the per-aggregate stores and the transaction boundary.
// ExecTx runs fn against a transactional view of the store: either every
// write made inside fn becomes visible atomically, or none of them do.
// Implementations must return the error from fn unchanged so callers
// can match sentinels with errors.Is.
type Store interface {
    Shows() ShowStore
    SeatLocks() SeatLockStore
    Bookings() BookingStore

    ExecTx(ctx context.Context, fn func(Store) error) error
}

// ShowStore reads show records and maintains the denormalised seat
// inventory counter.
type ShowStore interface {
    // GetByID returns the show or repository.ErrShowNotFound.
    GetByID(ctx context.Context, showID uint64) (*model.Show, error)
    // ScreenByID returns the screen a show plays on, including its seat
    // layout, or repository.ErrScreenNotFound.
    ScreenByID(ctx context.Context, screenID uint64) (*model.Screen, error)
    // DecrementAvailableSeats atomically subtracts n from the show's
    // available seat counter.  It must refuse (without writing) any
    // decrement that would push the counter below zero and report it
    // with repository.ErrInventoryUnderflow.
    DecrementAvailableSeats(ctx context.Context, showID uint64, n uint32) error
    // IncrementAvailableSeats adds n back, capped at TotalSeats.
    IncrementAvailableSeats(ctx context.Context, showID uint64, n uint32) error
}

// SeatLockStore persists seat locks.
type SeatLockStore interface {
    // Create inserts the lock with its seats and assigns lock.ID.
    Create(ctx context.Context, lock *model.SeatLock) error
    // GetByID returns the lock (seats included) or
    // repository.ErrLockNotFound.
    GetByID(ctx context.Context, lockID uint64) (*model.SeatLock, error)
    // ActiveByShow returns all locks for the show whose stored active
    // flag is still set, expired or not.  Callers decide expiry.
    ActiveByShow(ctx context.Context, showID uint64) ([]model.SeatLock, error)
    // Deactivate clears the active flag of one lock.
    Deactivate(ctx context.Context, lockID uint64) error
    // DeactivateExpired clears the active flag of every lock whose
    // ExpiresAt is at or before now and returns how many were swept.
    DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// BookingStore persists bookings and answers which seats they occupy.
type BookingStore interface {
    // Create inserts the booking with its seats and assigns booking.ID.
    Create(ctx context.Context, b *model.Booking) error
    // GetByID returns the booking or repository.ErrBookingNotFound.
    GetByID(ctx context.Context, bookingID uint64) (*model.Booking, error)
    // ListByUser returns the user's bookings, newest first, optionally
    // filtered by status ("" means all).
    ListByUser(ctx context.Context, userID uint64, status string) ([]model.Booking, error)
    // SeatsTaken returns the seats of the show covered by bookings in
    // pending or confirmed status.
    SeatsTaken(ctx context.Context, showID uint64) ([]model.Seat, error)
}

// BookingNotifier receives domain events after a booking commit.  The
// service calls it outside the transaction and on a best-effort basis;
// failures must not affect the booking.
type BookingNotifier interface {
    BookingConfirmed(ctx context.Context, b *model.Booking)
}
