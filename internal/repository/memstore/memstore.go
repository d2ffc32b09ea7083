// Package memstore is an in-memory implementation of ports.Store used
// by service tests and local development.  ExecTx runs the callback
// against a deep copy of the state and swaps it in on success, so a
// failed transaction leaves no partial writes behind, matching the SQL
// store's semantics.
package memstore

import (
    "context"
    "sync"
    "time"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/model"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/repository"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/service/ports"
)

// Store holds all state behind one mutex.  Direct (non-transactional)
// calls take the mutex per operation; ExecTx holds it for the whole
// callback, which also gives transactions full mutual exclusion.
type Store struct {
    mu   sync.Mutex
    data *state
}

type state struct {
    shows    map[uint64]*model.Show
    screens  map[uint64]*model.Screen
    locks    map[uint64]*model.SeatLock
    bookings map[uint64]*model.Booking

    nextLockID    uint64
    nextBookingID uint64
}

// New returns an empty store.
func New() *Store {
    return &Store{data: &state{
        shows:         make(map[uint64]*model.Show),
        screens:       make(map[uint64]*model.Screen),
        locks:         make(map[uint64]*model.SeatLock),
        bookings:      make(map[uint64]*model.Booking),
        nextLockID:    1,
        nextBookingID: 1,
    }}
}

// AddScreen seeds a screen.
func (s *Store) AddScreen(sc model.Screen) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.data.screens[sc.ID] = &sc
}

// AddShow seeds a show.
func (s *Store) AddShow(sw model.Show) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.data.shows[sw.ID] = &sw
}

// Show returns a copy of the stored show, for assertions.
func (s *Store) Show(id uint64) (model.Show, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    sw, ok := s.data.shows[id]
    if !ok {
        return model.Show{}, false
    }
    return *sw, true
}

// Lock returns a copy of the stored lock, for assertions.
func (s *Store) Lock(id uint64) (model.SeatLock, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    l, ok := s.data.locks[id]
    if !ok {
        return model.SeatLock{}, false
    }
    return cloneLock(l), true
}

func (s *Store) Shows() ports.ShowStore         { return showStore{s} }
func (s *Store) SeatLocks() ports.SeatLockStore { return lockStore{s} }
func (s *Store) Bookings() ports.BookingStore   { return bookingStore{s} }

// ExecTx copies the state, runs fn against the copy and commits it by
// swapping pointers.  Nested ExecTx calls join the open transaction.
func (s *Store) ExecTx(ctx context.Context, fn func(ports.Store) error) error {
    if err := ctx.Err(); err != nil {
        return err
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    next := cloneState(s.data)
    if err := fn(txStore{next}); err != nil {
        return err
    }
    s.data = next
    return nil
}

// txStore is the transactional view handed to ExecTx callbacks.  The
// outer mutex is already held, so its accessors operate lock-free on
// the working copy.
type txStore struct {
    st *state
}

func (t txStore) Shows() ports.ShowStore         { return txShowStore{t.st} }
func (t txStore) SeatLocks() ports.SeatLockStore { return txLockStore{t.st} }
func (t txStore) Bookings() ports.BookingStore   { return txBookingStore{t.st} }

func (t txStore) ExecTx(ctx context.Context, fn func(ports.Store) error) error {
    if err := ctx.Err(); err != nil {
        return err
    }
    return fn(t)
}

// Direct accessors lock per call and delegate to the shared state
// functions below.

type showStore struct{ s *Store }

func (r showStore) GetByID(ctx context.Context, id uint64) (*model.Show, error) {
    r.s.mu.Lock()
    defer r.s.mu.Unlock()
    return getShow(ctx, r.s.data, id)
}

func (r showStore) ScreenByID(ctx context.Context, id uint64) (*model.Screen, error) {
    r.s.mu.Lock()
    defer r.s.mu.Unlock()
    return getScreen(ctx, r.s.data, id)
}

func (r showStore) DecrementAvailableSeats(ctx context.Context, id uint64, n uint32) error {
    r.s.mu.Lock()
    defer r.s.mu.Unlock()
    return decrementSeats(ctx, r.s.data, id, n)
}

func (r showStore) IncrementAvailableSeats(ctx context.Context, id uint64, n uint32) error {
    r.s.mu.Lock()
    defer r.s.mu.Unlock()
    return incrementSeats(ctx, r.s.data, id, n)
}

type lockStore struct{ s *Store }

func (r lockStore) Create(ctx context.Context, l *model.SeatLock) error {
    r.s.mu.Lock()
    defer r.s.mu.Unlock()
    return createLock(ctx, r.s.data, l)
}

func (r lockStore) GetByID(ctx context.Context, id uint64) (*model.SeatLock, error) {
    r.s.mu.Lock()
    defer r.s.mu.Unlock()
    return getLock(ctx, r.s.data, id)
}

func (r lockStore) ActiveByShow(ctx context.Context, showID uint64) ([]model.SeatLock, error) {
    r.s.mu.Lock()
    defer r.s.mu.Unlock()
    return activeLocks(ctx, r.s.data, showID)
}

func (r lockStore) Deactivate(ctx context.Context, id uint64) error {
    r.s.mu.Lock()
    defer r.s.mu.Unlock()
    return deactivateLock(ctx, r.s.data, id)
}

func (r lockStore) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
    r.s.mu.Lock()
    defer r.s.mu.Unlock()
    return deactivateExpired(ctx, r.s.data, now)
}

type bookingStore struct{ s *Store }

func (r bookingStore) Create(ctx context.Context, b *model.Booking) error {
    r.s.mu.Lock()
    defer r.s.mu.Unlock()
    return createBooking(ctx, r.s.data, b)
}

func (r bookingStore) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
    r.s.mu.Lock()
    defer r.s.mu.Unlock()
    return getBooking(ctx, r.s.data, id)
}

func (r bookingStore) ListByUser(ctx context.Context, userID uint64, status string) ([]model.Booking, error) {
    r.s.mu.Lock()
    defer r.s.mu.Unlock()
    return listBookings(ctx, r.s.data, userID, status)
}

func (r bookingStore) SeatsTaken(ctx context.Context, showID uint64) ([]model.Seat, error) {
    r.s.mu.Lock()
    defer r.s.mu.Unlock()
    return seatsTaken(ctx, r.s.data, showID)
}

// Transactional accessors work on the copy without locking.

type txShowStore struct{ st *state }

func (r txShowStore) GetByID(ctx context.Context, id uint64) (*model.Show, error) {
    return getShow(ctx, r.st, id)
}

func (r txShowStore) ScreenByID(ctx context.Context, id uint64) (*model.Screen, error) {
    return getScreen(ctx, r.st, id)
}

func (r txShowStore) DecrementAvailableSeats(ctx context.Context, id uint64, n uint32) error {
    return decrementSeats(ctx, r.st, id, n)
}

func (r txShowStore) IncrementAvailableSeats(ctx context.Context, id uint64, n uint32) error {
    return incrementSeats(ctx, r.st, id, n)
}

type txLockStore struct{ st *state }

func (r txLockStore) Create(ctx context.Context, l *model.SeatLock) error {
    return createLock(ctx, r.st, l)
}

func (r txLockStore) GetByID(ctx context.Context, id uint64) (*model.SeatLock, error) {
    return getLock(ctx, r.st, id)
}

func (r txLockStore) ActiveByShow(ctx context.Context, showID uint64) ([]model.SeatLock, error) {
    return activeLocks(ctx, r.st, showID)
}

func (r txLockStore) Deactivate(ctx context.Context, id uint64) error {
    return deactivateLock(ctx, r.st, id)
}

func (r txLockStore) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
    return deactivateExpired(ctx, r.st, now)
}

type txBookingStore struct{ st *state }

func (r txBookingStore) Create(ctx context.Context, b *model.Booking) error {
    return createBooking(ctx, r.st, b)
}

func (r txBookingStore) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
    return getBooking(ctx, r.st, id)
}

func (r txBookingStore) ListByUser(ctx context.Context, userID uint64, status string) ([]model.Booking, error) {
    return listBookings(ctx, r.st, userID, status)
}

func (r txBookingStore) SeatsTaken(ctx context.Context, showID uint64) ([]model.Seat, error) {
    return seatsTaken(ctx, r.st, showID)
}

// State operations.  Each checks the context first so cancelled calls
// fail the way a driver would.

func getShow(ctx context.Context, st *state, id uint64) (*model.Show, error) {
    if err := ctx.Err(); err != nil {
        return nil, err
    }
    sw, ok := st.shows[id]
    if !ok {
        return nil, repository.ErrShowNotFound
    }
    cp := *sw
    return &cp, nil
}

func getScreen(ctx context.Context, st *state, id uint64) (*model.Screen, error) {
    if err := ctx.Err(); err != nil {
        return nil, err
    }
    sc, ok := st.screens[id]
    if !ok {
        return nil, repository.ErrScreenNotFound
    }
    cp := *sc
    return &cp, nil
}

func decrementSeats(ctx context.Context, st *state, id uint64, n uint32) error {
    if err := ctx.Err(); err != nil {
        return err
    }
    sw, ok := st.shows[id]
    if !ok {
        return repository.ErrShowNotFound
    }
    if sw.AvailableSeats < n {
        return repository.ErrInventoryUnderflow
    }
    cp := *sw
    cp.AvailableSeats -= n
    st.shows[id] = &cp
    return nil
}

func incrementSeats(ctx context.Context, st *state, id uint64, n uint32) error {
    if err := ctx.Err(); err != nil {
        return err
    }
    sw, ok := st.shows[id]
    if !ok {
        return repository.ErrShowNotFound
    }
    cp := *sw
    cp.AvailableSeats += n
    if cp.AvailableSeats > cp.TotalSeats {
        cp.AvailableSeats = cp.TotalSeats
    }
    st.shows[id] = &cp
    return nil
}

func createLock(ctx context.Context, st *state, l *model.SeatLock) error {
    if err := ctx.Err(); err != nil {
        return err
    }
    l.ID = st.nextLockID
    st.nextLockID++
    cp := cloneLock(l)
    st.locks[l.ID] = &cp
    return nil
}

func getLock(ctx context.Context, st *state, id uint64) (*model.SeatLock, error) {
    if err := ctx.Err(); err != nil {
        return nil, err
    }
    l, ok := st.locks[id]
    if !ok {
        return nil, repository.ErrLockNotFound
    }
    cp := cloneLock(l)
    return &cp, nil
}

func activeLocks(ctx context.Context, st *state, showID uint64) ([]model.SeatLock, error) {
    if err := ctx.Err(); err != nil {
        return nil, err
    }
    out := make([]model.SeatLock, 0)
    for _, l := range st.locks {
        if l.ShowID == showID && l.IsActive {
            out = append(out, cloneLock(l))
        }
    }
    return out, nil
}

func deactivateLock(ctx context.Context, st *state, id uint64) error {
    if err := ctx.Err(); err != nil {
        return err
    }
    l, ok := st.locks[id]
    if !ok {
        return repository.ErrLockNotFound
    }
    cp := cloneLock(l)
    cp.IsActive = false
    st.locks[id] = &cp
    return nil
}

func deactivateExpired(ctx context.Context, st *state, now time.Time) (int64, error) {
    if err := ctx.Err(); err != nil {
        return 0, err
    }
    var n int64
    for id, l := range st.locks {
        if l.IsActive && !now.Before(l.ExpiresAt) {
            cp := cloneLock(l)
            cp.IsActive = false
            st.locks[id] = &cp
            n++
        }
    }
    return n, nil
}

func createBooking(ctx context.Context, st *state, b *model.Booking) error {
    if err := ctx.Err(); err != nil {
        return err
    }
    b.ID = st.nextBookingID
    st.nextBookingID++
    cp := cloneBooking(b)
    st.bookings[b.ID] = &cp
    return nil
}

func getBooking(ctx context.Context, st *state, id uint64) (*model.Booking, error) {
    if err := ctx.Err(); err != nil {
        return nil, err
    }
    b, ok := st.bookings[id]
    if !ok {
        return nil, repository.ErrBookingNotFound
    }
    cp := cloneBooking(b)
    return &cp, nil
}

func listBookings(ctx context.Context, st *state, userID uint64, status string) ([]model.Booking, error) {
    if err := ctx.Err(); err != nil {
        return nil, err
    }
    out := make([]model.Booking, 0)
    for _, b := range st.bookings {
        if b.UserID != userID {
            continue
        }
        if status != "" && b.Status != status {
            continue
        }
        out = append(out, cloneBooking(b))
    }
    // Newest first by ID; IDs are assigned monotonically.
    for i := 0; i < len(out); i++ {
        for j := i + 1; j < len(out); j++ {
            if out[j].ID > out[i].ID {
                out[i], out[j] = out[j], out[i]
            }
        }
    }
    return out, nil
}

func seatsTaken(ctx context.Context, st *state, showID uint64) ([]model.Seat, error) {
    if err := ctx.Err(); err != nil {
        return nil, err
    }
    out := make([]model.Seat, 0)
    for _, b := range st.bookings {
        if b.ShowID != showID {
            continue
        }
        active := false
        for _, s := range model.ActiveBookingStatuses {
            if b.Status == s {
                active = true
                break
            }
        }
        if !active {
            continue
        }
        out = append(out, b.SeatIdentities()...)
    }
    return out, nil
}

func cloneState(st *state) *state {
    next := &state{
        shows:         make(map[uint64]*model.Show, len(st.shows)),
        screens:       st.screens,
        locks:         make(map[uint64]*model.SeatLock, len(st.locks)),
        bookings:      make(map[uint64]*model.Booking, len(st.bookings)),
        nextLockID:    st.nextLockID,
        nextBookingID: st.nextBookingID,
    }
    for id, sw := range st.shows {
        cp := *sw
        next.shows[id] = &cp
    }
    for id, l := range st.locks {
        cp := cloneLock(l)
        next.locks[id] = &cp
    }
    for id, b := range st.bookings {
        cp := cloneBooking(b)
        next.bookings[id] = &cp
    }
    return next
}

func cloneLock(l *model.SeatLock) model.SeatLock {
    cp := *l
    cp.Seats = append([]model.Seat(nil), l.Seats...)
    return cp
}

func cloneBooking(b *model.Booking) model.Booking {
    cp := *b
    cp.Seats = append([]model.BookedSeat(nil), b.Seats...)
    return cp
}
