// Package service implements the seat availability and locking core:
// the lock manager, the availability index and the booking committer.
// All business rules live here, behind the ports.Store interface, so
// the concurrency behaviour can be exercised directly in tests.
package service

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/google/uuid"
    "github.com/sirupsen/logrus"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/model"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/repository"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/service/ports"
)

// defaultOpTimeout bounds every storage operation so no request blocks
// indefinitely on the database.
const defaultOpTimeout = 5 * time.Second

// BookingService coordinates seat locks and bookings for shows.  The
// check-then-write sequences of LockSeats and CreateBooking run inside
// a per-show critical section combined with a storage transaction, so
// that for any two operations touching overlapping seat sets of the
// same show at most one succeeds.  Operations on different shows never
// serialise against each other.
type BookingService struct {
    store    ports.Store
    notifier ports.BookingNotifier
    log      *logrus.Logger

    shows     *showMutex
    lockTTL   time.Duration
    opTimeout time.Duration
    now       func() time.Time
}

// Option customises a BookingService.
type Option func(*BookingService)

// WithClock injects the time source.  Tests use it to move past lock
// TTLs deterministically.
func WithClock(now func() time.Time) Option {
    return func(s *BookingService) { s.now = now }
}

// WithLockTTL overrides the seat lock TTL (default model.LockTTL).
func WithLockTTL(d time.Duration) Option {
    return func(s *BookingService) { s.lockTTL = d }
}

// WithOpTimeout overrides the per-operation storage timeout.
func WithOpTimeout(d time.Duration) Option {
    return func(s *BookingService) { s.opTimeout = d }
}

// NewBookingService constructs the booking core.  notifier may be nil
// when no broker is configured.
func NewBookingService(store ports.Store, notifier ports.BookingNotifier, log *logrus.Logger, opts ...Option) *BookingService {
    if store == nil {
        panic("nil store passed to NewBookingService")
    }
    if log == nil {
        log = logrus.StandardLogger()
    }
    s := &BookingService{
        store:     store,
        notifier:  notifier,
        log:       log,
        shows:     newShowMutex(),
        lockTTL:   model.LockTTL,
        opTimeout: defaultOpTimeout,
        now:       time.Now,
    }
    for _, opt := range opts {
        opt(s)
    }
    return s
}

// opCtx derives the bounded context every storage call runs under.
func (s *BookingService) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(ctx, s.opTimeout)
}

// translateErr maps storage deadline failures onto the retryable
// ErrStorageTimeout sentinel; business errors pass through untouched.
func translateErr(err error) error {
    if err == nil {
        return nil
    }
    if errors.Is(err, context.DeadlineExceeded) {
        return fmt.Errorf("%w: %v", ErrStorageTimeout, err)
    }
    return err
}

// contestedSeats returns the subset of seats that are covered by a
// pending/confirmed booking or by an active, unexpired lock other than
// excludeLockID.  Expiry is evaluated against now regardless of the
// stored active flag, so a lock is never honoured past its TTL even if
// the background sweep has not run yet.
func contestedSeats(ctx context.Context, tx ports.Store, showID uint64, seats []model.Seat, now time.Time, excludeLockID uint64) ([]model.Seat, error) {
    blocked := make(map[model.Seat]struct{})

    taken, err := tx.Bookings().SeatsTaken(ctx, showID)
    if err != nil {
        return nil, err
    }
    for _, st := range taken {
        blocked[st] = struct{}{}
    }

    locks, err := tx.SeatLocks().ActiveByShow(ctx, showID)
    if err != nil {
        return nil, err
    }
    for _, l := range locks {
        if l.ID == excludeLockID || l.Expired(now) {
            continue
        }
        for _, ls := range l.Seats {
            blocked[ls] = struct{}{}
        }
    }

    var conflicts []model.Seat
    for _, st := range seats {
        if _, ok := blocked[st]; ok {
            conflicts = append(conflicts, st)
        }
    }
    return conflicts, nil
}

// activeScreen loads the show and its screen, rejecting missing or
// inactive shows and seats outside the screen layout.
func activeScreen(ctx context.Context, tx ports.Store, showID uint64, seats []model.Seat) (*model.Show, *model.Screen, error) {
    show, err := tx.Shows().GetByID(ctx, showID)
    if err != nil {
        return nil, nil, err
    }
    if !show.IsActive {
        return nil, nil, ErrShowInactive
    }
    screen, err := tx.Shows().ScreenByID(ctx, show.ScreenID)
    if err != nil {
        return nil, nil, err
    }
    for _, st := range seats {
        if !screen.Contains(st) {
            return nil, nil, fmt.Errorf("%w: seat %s is outside the screen layout", ErrValidation, st.Label())
        }
    }
    return show, screen, nil
}

// LockSeats places a temporary exclusive hold on the given seats of a
// show for the user.  It fails with ErrSeatsUnavailable when any seat
// is covered by another active lock (regardless of holder) or by a
// pending/confirmed booking.  The returned lock expires lockTTL after
// creation whether or not it is ever used.
func (s *BookingService) LockSeats(ctx context.Context, userID, showID uint64, seats []model.Seat) (*model.SeatLock, error) {
    seats = model.DedupSeats(seats)
    if len(seats) == 0 {
        return nil, fmt.Errorf("%w: at least one seat is required", ErrValidation)
    }

    unlock := s.shows.Lock(showID)
    defer unlock()

    ctx, cancel := s.opCtx(ctx)
    defer cancel()

    var lock *model.SeatLock
    err := s.store.ExecTx(ctx, func(tx ports.Store) error {
        show, _, err := activeScreen(ctx, tx, showID, seats)
        if err != nil {
            return err
        }
        if uint32(len(seats)) > show.AvailableSeats {
            return fmt.Errorf("%w: only %d seats left for this show", ErrSeatsUnavailable, show.AvailableSeats)
        }

        now := s.now().UTC()
        conflicts, err := contestedSeats(ctx, tx, showID, seats, now, 0)
        if err != nil {
            return err
        }
        if len(conflicts) > 0 {
            return &SeatsUnavailableError{Seats: conflicts}
        }

        lock = &model.SeatLock{
            ShowID:    showID,
            UserID:    userID,
            Seats:     seats,
            HoldToken: uuid.NewString(),
            IsActive:  true,
            CreatedAt: now,
            ExpiresAt: now.Add(s.lockTTL),
        }
        return tx.SeatLocks().Create(ctx, lock)
    })
    if err != nil {
        return nil, translateErr(err)
    }

    s.log.WithFields(logrus.Fields{
        "lock_id": lock.ID,
        "show_id": showID,
        "user_id": userID,
        "seats":   len(lock.Seats),
    }).Info("seat lock acquired")
    return lock, nil
}

// ReleaseLock deactivates a lock, immediately freeing its seats.  Only
// the holder may release; releasing a lock that is already inactive or
// past its TTL fails with ErrLockInactive.
func (s *BookingService) ReleaseLock(ctx context.Context, userID, lockID uint64) error {
    ctx, cancel := s.opCtx(ctx)
    defer cancel()

    err := s.store.ExecTx(ctx, func(tx ports.Store) error {
        lock, err := tx.SeatLocks().GetByID(ctx, lockID)
        if err != nil {
            return err
        }
        if lock.UserID != userID {
            return ErrLockNotOwner
        }
        if !lock.IsActive || lock.Expired(s.now().UTC()) {
            return ErrLockInactive
        }
        return tx.SeatLocks().Deactivate(ctx, lockID)
    })
    if err != nil {
        return translateErr(err)
    }

    s.log.WithFields(logrus.Fields{"lock_id": lockID, "user_id": userID}).Info("seat lock released")
    return nil
}

// CreateBooking turns a seat selection into a durable booking.  A lock
// may be presented but is a courtesy, not a guarantee: contention is
// re-checked inside the critical section, and a selection whose lock
// expired mid-flow fails with ErrInvalidLock or ErrSeatsUnavailable.
// The booking insert, the inventory decrement and the lock
// deactivation are a single atomic unit.  lockID 0 means no lock.
func (s *BookingService) CreateBooking(ctx context.Context, userID, showID uint64, seats []model.Seat, paymentMethod string, lockID uint64) (*model.Booking, error) {
    seats = model.DedupSeats(seats)
    if len(seats) == 0 {
        return nil, fmt.Errorf("%w: at least one seat is required", ErrValidation)
    }
    if !model.ValidPaymentMethod(paymentMethod) {
        return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, paymentMethod)
    }

    unlock := s.shows.Lock(showID)
    defer unlock()

    ctx, cancel := s.opCtx(ctx)
    defer cancel()

    var booking *model.Booking
    err := s.store.ExecTx(ctx, func(tx ports.Store) error {
        show, _, err := activeScreen(ctx, tx, showID, seats)
        if err != nil {
            return err
        }

        now := s.now().UTC()
        if lockID != 0 {
            lock, err := tx.SeatLocks().GetByID(ctx, lockID)
            if err != nil {
                if errors.Is(err, repository.ErrLockNotFound) {
                    return ErrInvalidLock
                }
                return err
            }
            if lock.ShowID != showID || lock.UserID != userID || !lock.IsActive || lock.Expired(now) {
                return ErrInvalidLock
            }
        }

        conflicts, err := contestedSeats(ctx, tx, showID, seats, now, lockID)
        if err != nil {
            return err
        }
        if len(conflicts) > 0 {
            return &SeatsUnavailableError{Seats: conflicts}
        }

        booked := make([]model.BookedSeat, 0, len(seats))
        for _, st := range seats {
            booked = append(booked, model.BookedSeat{Seat: st, PriceCents: show.PriceCents})
        }
        booking = &model.Booking{
            Code:             model.NewBookingCode(now),
            UserID:           userID,
            ShowID:           showID,
            MovieID:          show.MovieID,
            VenueID:          show.VenueID,
            Seats:            booked,
            TotalAmountCents: show.PriceCents * uint32(len(seats)),
            Status:           model.BookingStatusConfirmed,
            PaymentStatus:    model.PaymentStatusCompleted,
            PaymentMethod:    paymentMethod,
            NumberOfSeats:    uint32(len(seats)),
            ShowDate:         show.Date,
            ShowTime:         show.Time,
            ScreenName:       show.ScreenName,
            CreatedAt:        now,
            UpdatedAt:        now,
        }
        if err := tx.Bookings().Create(ctx, booking); err != nil {
            return err
        }
        if err := tx.Shows().DecrementAvailableSeats(ctx, showID, uint32(len(seats))); err != nil {
            if errors.Is(err, repository.ErrInventoryUnderflow) {
                // This cannot happen if the contention checks above are
                // sound; treat it as a concurrency-control bug, not a
                // user error.
                s.log.WithFields(logrus.Fields{
                    "show_id": showID,
                    "seats":   len(seats),
                }).Error("seat inventory underflow during booking commit")
            }
            return err
        }
        if lockID != 0 {
            return tx.SeatLocks().Deactivate(ctx, lockID)
        }
        return nil
    })
    if err != nil {
        return nil, translateErr(err)
    }

    s.log.WithFields(logrus.Fields{
        "booking_id": booking.ID,
        "code":       booking.Code,
        "show_id":    showID,
        "user_id":    userID,
        "seats":      len(booking.Seats),
        "amount":     booking.TotalAmountCents,
    }).Info("booking confirmed")

    if s.notifier != nil {
        go s.notifier.BookingConfirmed(context.WithoutCancel(ctx), booking)
    }
    return booking, nil
}

// SeatMap computes the availability view for a show: every seat of the
// screen layout in deterministic row-major order, flagged unavailable
// when covered by a pending/confirmed booking or an active unexpired
// lock.  This is a pure read; no availability state is cached.
func (s *BookingService) SeatMap(ctx context.Context, showID uint64) (*model.Show, []model.SeatInfo, error) {
    ctx, cancel := s.opCtx(ctx)
    defer cancel()

    var (
        show  *model.Show
        infos []model.SeatInfo
    )
    err := s.store.ExecTx(ctx, func(tx ports.Store) error {
        var err error
        show, err = tx.Shows().GetByID(ctx, showID)
        if err != nil {
            return err
        }
        screen, err := tx.Shows().ScreenByID(ctx, show.ScreenID)
        if err != nil {
            return err
        }

        now := s.now().UTC()
        blocked := make(map[model.Seat]struct{})
        taken, err := tx.Bookings().SeatsTaken(ctx, showID)
        if err != nil {
            return err
        }
        for _, st := range taken {
            blocked[st] = struct{}{}
        }
        locks, err := tx.SeatLocks().ActiveByShow(ctx, showID)
        if err != nil {
            return err
        }
        for _, l := range locks {
            if l.Expired(now) {
                continue
            }
            for _, ls := range l.Seats {
                blocked[ls] = struct{}{}
            }
        }

        infos = make([]model.SeatInfo, 0, screen.Rows*screen.SeatsPerRow)
        for row := 0; row < int(screen.Rows); row++ {
            for n := uint32(1); n <= screen.SeatsPerRow; n++ {
                seat := model.Seat{Row: model.RowLabel(row), SeatNumber: n}
                _, isBlocked := blocked[seat]
                infos = append(infos, model.SeatInfo{
                    Seat:        seat,
                    SeatID:      seat.Label(),
                    IsAvailable: !isBlocked,
                    PriceCents:  show.PriceCents,
                })
            }
        }
        return nil
    })
    if err != nil {
        return nil, nil, translateErr(err)
    }
    return show, infos, nil
}

// ExpireLocks deactivates every lock whose TTL has elapsed.  The
// scheduler runs it periodically; correctness never depends on it
// because every availability read also checks expiry itself.
func (s *BookingService) ExpireLocks(ctx context.Context) (int64, error) {
    ctx, cancel := s.opCtx(ctx)
    defer cancel()

    n, err := s.store.SeatLocks().DeactivateExpired(ctx, s.now().UTC())
    if err != nil {
        return 0, translateErr(err)
    }
    if n > 0 {
        s.log.WithField("expired", n).Info("swept expired seat locks")
    }
    return n, nil
}

// BookingByID returns one booking.  Regular users may only read their
// own bookings; admins may read any.
func (s *BookingService) BookingByID(ctx context.Context, userID uint64, role string, bookingID uint64) (*model.Booking, error) {
    ctx, cancel := s.opCtx(ctx)
    defer cancel()

    b, err := s.store.Bookings().GetByID(ctx, bookingID)
    if err != nil {
        return nil, translateErr(err)
    }
    if b.UserID != userID && role != model.RoleAdmin {
        return nil, repository.ErrForbidden
    }
    return b, nil
}

// ListBookings returns the user's booking history, newest first,
// optionally filtered by status.
func (s *BookingService) ListBookings(ctx context.Context, userID uint64, status string) ([]model.Booking, error) {
    switch status {
    case "", model.BookingStatusPending, model.BookingStatusConfirmed,
        model.BookingStatusCancelled, model.BookingStatusExpired:
    default:
        return nil, fmt.Errorf("%w: unknown booking status %q", ErrValidation, status)
    }

    ctx, cancel := s.opCtx(ctx)
    defer cancel()

    list, err := s.store.Bookings().ListByUser(ctx, userID, status)
    if err != nil {
        return nil, translateErr(err)
    }
    return list, nil
}
