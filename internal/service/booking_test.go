package service_test

import (
    "context"
    "errors"
    "sync"
    "testing"
    "time"

    "github.com/sirupsen/logrus"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/model"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/repository"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/repository/memstore"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/service"
)

const (
    testShowID   = uint64(1)
    testScreenID = uint64(10)
)

// fakeClock is a mutable time source shared with the service under
// test.
type fakeClock struct {
    mu sync.Mutex
    t  time.Time
}

func newFakeClock() *fakeClock {
    return &fakeClock{t: time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
    c.mu.Lock()
    defer c.mu.Unlock()
    return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.t = c.t.Add(d)
}

// captureNotifier records confirmed bookings on a channel so tests can
// wait for the asynchronous notification.
type captureNotifier struct {
    ch chan *model.Booking
}

func newCaptureNotifier() *captureNotifier {
    return &captureNotifier{ch: make(chan *model.Booking, 16)}
}

func (n *captureNotifier) BookingConfirmed(_ context.Context, b *model.Booking) {
    n.ch <- b
}

func quietLogger() *logrus.Logger {
    log := logrus.New()
    log.SetLevel(logrus.PanicLevel)
    return log
}

// newTestService seeds a 5x10 screen with one active show and returns
// the service wired to an in-memory store.
func newTestService(t *testing.T, opts ...service.Option) (*service.BookingService, *memstore.Store, *fakeClock) {
    t.Helper()

    store := memstore.New()
    store.AddScreen(model.Screen{
        ID:          testScreenID,
        VenueID:     1,
        Name:        "Screen 1",
        Capacity:    50,
        Rows:        5,
        SeatsPerRow: 10,
        IsActive:    true,
    })
    store.AddShow(model.Show{
        ID:             testShowID,
        MovieID:        1,
        VenueID:        1,
        ScreenID:       testScreenID,
        ScreenName:     "Screen 1",
        Date:           time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
        Time:           "19:30",
        PriceCents:     25000,
        TotalSeats:     50,
        AvailableSeats: 50,
        ShowType:       model.ShowType2D,
        Language:       "English",
        IsActive:       true,
    })

    clock := newFakeClock()
    opts = append([]service.Option{service.WithClock(clock.Now)}, opts...)
    svc := service.NewBookingService(store, nil, quietLogger(), opts...)
    return svc, store, clock
}

func seat(row string, n uint32) model.Seat {
    return model.Seat{Row: row, SeatNumber: n}
}

func TestLockSeats(t *testing.T) {
    svc, _, _ := newTestService(t)
    ctx := context.Background()

    lock, err := svc.LockSeats(ctx, 1, testShowID, []model.Seat{seat("A", 1), seat("A", 2)})
    require.NoError(t, err)
    require.NotNil(t, lock)
    assert.NotZero(t, lock.ID)
    assert.NotEmpty(t, lock.HoldToken)
    assert.True(t, lock.IsActive)
    assert.Equal(t, lock.CreatedAt.Add(model.LockTTL), lock.ExpiresAt)
    assert.Len(t, lock.Seats, 2)
}

func TestLockSeats_DeduplicatesSelection(t *testing.T) {
    svc, _, _ := newTestService(t)

    lock, err := svc.LockSeats(context.Background(), 1, testShowID,
        []model.Seat{seat("A", 1), seat("A", 1), seat("A", 2)})
    require.NoError(t, err)
    assert.Len(t, lock.Seats, 2)
}

func TestLockSeats_EmptySelection(t *testing.T) {
    svc, _, _ := newTestService(t)

    _, err := svc.LockSeats(context.Background(), 1, testShowID, nil)
    assert.ErrorIs(t, err, service.ErrValidation)
}

func TestLockSeats_SeatOutsideLayout(t *testing.T) {
    svc, _, _ := newTestService(t)

    _, err := svc.LockSeats(context.Background(), 1, testShowID, []model.Seat{seat("Z", 1)})
    assert.ErrorIs(t, err, service.ErrValidation)

    _, err = svc.LockSeats(context.Background(), 1, testShowID, []model.Seat{seat("A", 11)})
    assert.ErrorIs(t, err, service.ErrValidation)
}

func TestLockSeats_UnknownShow(t *testing.T) {
    svc, _, _ := newTestService(t)

    _, err := svc.LockSeats(context.Background(), 1, 999, []model.Seat{seat("A", 1)})
    assert.ErrorIs(t, err, repository.ErrShowNotFound)
}

// A second user asking for an overlapping selection must lose with the
// exact contested seats reported, while disjoint selections coexist.
func TestLockSeats_OverlapConflict(t *testing.T) {
    svc, _, _ := newTestService(t)
    ctx := context.Background()

    _, err := svc.LockSeats(ctx, 1, testShowID, []model.Seat{seat("A", 1), seat("A", 2)})
    require.NoError(t, err)

    _, err = svc.LockSeats(ctx, 2, testShowID, []model.Seat{seat("A", 2), seat("A", 3)})
    require.ErrorIs(t, err, service.ErrSeatsUnavailable)

    var su *service.SeatsUnavailableError
    require.ErrorAs(t, err, &su)
    assert.Equal(t, []model.Seat{seat("A", 2)}, su.Seats)

    // The same holder is not exempt from contention either.
    _, err = svc.LockSeats(ctx, 1, testShowID, []model.Seat{seat("A", 1)})
    assert.ErrorIs(t, err, service.ErrSeatsUnavailable)

    // Disjoint seats remain lockable.
    _, err = svc.LockSeats(ctx, 2, testShowID, []model.Seat{seat("B", 1)})
    assert.NoError(t, err)
}

// N goroutines racing for the same seat: exactly one lock wins.
func TestLockSeats_RaceSingleWinner(t *testing.T) {
    svc, _, _ := newTestService(t)

    const n = 32
    var wg sync.WaitGroup
    results := make(chan error, n)
    for i := 0; i < n; i++ {
        wg.Add(1)
        go func(user uint64) {
            defer wg.Done()
            _, err := svc.LockSeats(context.Background(), user, testShowID, []model.Seat{seat("C", 5)})
            results <- err
        }(uint64(i + 1))
    }
    wg.Wait()
    close(results)

    wins, losses := 0, 0
    for err := range results {
        if err == nil {
            wins++
        } else {
            require.ErrorIs(t, err, service.ErrSeatsUnavailable)
            losses++
        }
    }
    assert.Equal(t, 1, wins)
    assert.Equal(t, n-1, losses)
}

func TestReleaseLock(t *testing.T) {
    svc, store, _ := newTestService(t)
    ctx := context.Background()

    lock, err := svc.LockSeats(ctx, 1, testShowID, []model.Seat{seat("A", 1)})
    require.NoError(t, err)

    require.NoError(t, svc.ReleaseLock(ctx, 1, lock.ID))

    stored, ok := store.Lock(lock.ID)
    require.True(t, ok)
    assert.False(t, stored.IsActive)

    // The seat frees up immediately.
    _, err = svc.LockSeats(ctx, 2, testShowID, []model.Seat{seat("A", 1)})
    assert.NoError(t, err)
}

func TestReleaseLock_NotOwner(t *testing.T) {
    svc, _, _ := newTestService(t)
    ctx := context.Background()

    lock, err := svc.LockSeats(ctx, 1, testShowID, []model.Seat{seat("A", 1)})
    require.NoError(t, err)

    err = svc.ReleaseLock(ctx, 2, lock.ID)
    assert.ErrorIs(t, err, service.ErrLockNotOwner)
}

func TestReleaseLock_DoubleRelease(t *testing.T) {
    svc, _, _ := newTestService(t)
    ctx := context.Background()

    lock, err := svc.LockSeats(ctx, 1, testShowID, []model.Seat{seat("A", 1)})
    require.NoError(t, err)
    require.NoError(t, svc.ReleaseLock(ctx, 1, lock.ID))

    err = svc.ReleaseLock(ctx, 1, lock.ID)
    assert.ErrorIs(t, err, service.ErrLockInactive)
}

func TestReleaseLock_Expired(t *testing.T) {
    svc, _, clock := newTestService(t)
    ctx := context.Background()

    lock, err := svc.LockSeats(ctx, 1, testShowID, []model.Seat{seat("A", 1)})
    require.NoError(t, err)

    clock.Advance(model.LockTTL + time.Second)
    err = svc.ReleaseLock(ctx, 1, lock.ID)
    assert.ErrorIs(t, err, service.ErrLockInactive)
}

func TestReleaseLock_Unknown(t *testing.T) {
    svc, _, _ := newTestService(t)

    err := svc.ReleaseLock(context.Background(), 1, 999)
    assert.ErrorIs(t, err, repository.ErrLockNotFound)
}

// TTL expiry alone frees the seats, with no release and no sweep.
func TestLockExpiry_SeatsRelockable(t *testing.T) {
    svc, _, clock := newTestService(t)
    ctx := context.Background()

    _, err := svc.LockSeats(ctx, 1, testShowID, []model.Seat{seat("A", 1)})
    require.NoError(t, err)

    clock.Advance(model.LockTTL + time.Second)

    lock2, err := svc.LockSeats(ctx, 2, testShowID, []model.Seat{seat("A", 1)})
    require.NoError(t, err)
    assert.Equal(t, uint64(2), lock2.UserID)
}

func TestCreateBooking_WithLock(t *testing.T) {
    svc, store, _ := newTestService(t)
    ctx := context.Background()

    lock, err := svc.LockSeats(ctx, 1, testShowID, []model.Seat{seat("A", 1), seat("A", 2)})
    require.NoError(t, err)

    b, err := svc.CreateBooking(ctx, 1, testShowID, lock.Seats, "card", lock.ID)
    require.NoError(t, err)
    assert.NotZero(t, b.ID)
    assert.NotEmpty(t, b.Code)
    assert.Equal(t, model.BookingStatusConfirmed, b.Status)
    assert.Equal(t, model.PaymentStatusCompleted, b.PaymentStatus)
    assert.Equal(t, uint32(50000), b.TotalAmountCents)
    assert.Equal(t, uint32(2), b.NumberOfSeats)

    // Inventory decremented and the lock consumed.
    show, ok := store.Show(testShowID)
    require.True(t, ok)
    assert.Equal(t, uint32(48), show.AvailableSeats)

    stored, ok := store.Lock(lock.ID)
    require.True(t, ok)
    assert.False(t, stored.IsActive)
}

func TestCreateBooking_WithoutLock(t *testing.T) {
    svc, store, _ := newTestService(t)

    b, err := svc.CreateBooking(context.Background(), 1, testShowID, []model.Seat{seat("B", 4)}, "upi", 0)
    require.NoError(t, err)
    assert.Equal(t, uint32(1), b.NumberOfSeats)

    show, _ := store.Show(testShowID)
    assert.Equal(t, uint32(49), show.AvailableSeats)
}

func TestCreateBooking_InvalidPaymentMethod(t *testing.T) {
    svc, _, _ := newTestService(t)

    _, err := svc.CreateBooking(context.Background(), 1, testShowID, []model.Seat{seat("A", 1)}, "cash", 0)
    assert.ErrorIs(t, err, service.ErrInvalidPaymentMethod)
}

func TestCreateBooking_SeatTakenByBooking(t *testing.T) {
    svc, _, _ := newTestService(t)
    ctx := context.Background()

    _, err := svc.CreateBooking(ctx, 1, testShowID, []model.Seat{seat("A", 1)}, "card", 0)
    require.NoError(t, err)

    _, err = svc.CreateBooking(ctx, 2, testShowID, []model.Seat{seat("A", 1)}, "card", 0)
    require.ErrorIs(t, err, service.ErrSeatsUnavailable)

    var su *service.SeatsUnavailableError
    require.ErrorAs(t, err, &su)
    assert.Equal(t, []model.Seat{seat("A", 1)}, su.Seats)
}

func TestCreateBooking_SeatHeldByOtherLock(t *testing.T) {
    svc, _, _ := newTestService(t)
    ctx := context.Background()

    _, err := svc.LockSeats(ctx, 1, testShowID, []model.Seat{seat("A", 1)})
    require.NoError(t, err)

    _, err = svc.CreateBooking(ctx, 2, testShowID, []model.Seat{seat("A", 1)}, "card", 0)
    assert.ErrorIs(t, err, service.ErrSeatsUnavailable)
}

// An expired lock presented at commit is rejected, and the seats are
// independently relockable and bookable by someone else afterwards.
func TestCreateBooking_ExpiredLock(t *testing.T) {
    svc, _, clock := newTestService(t)
    ctx := context.Background()

    lock, err := svc.LockSeats(ctx, 1, testShowID, []model.Seat{seat("A", 1)})
    require.NoError(t, err)

    clock.Advance(model.LockTTL + time.Second)

    _, err = svc.CreateBooking(ctx, 1, testShowID, lock.Seats, "card", lock.ID)
    assert.ErrorIs(t, err, service.ErrInvalidLock)

    lock2, err := svc.LockSeats(ctx, 2, testShowID, []model.Seat{seat("A", 1)})
    require.NoError(t, err)
    _, err = svc.CreateBooking(ctx, 2, testShowID, lock2.Seats, "card", lock2.ID)
    assert.NoError(t, err)
}

func TestCreateBooking_ForeignLock(t *testing.T) {
    svc, _, _ := newTestService(t)
    ctx := context.Background()

    lock, err := svc.LockSeats(ctx, 1, testShowID, []model.Seat{seat("A", 1)})
    require.NoError(t, err)

    _, err = svc.CreateBooking(ctx, 2, testShowID, lock.Seats, "card", lock.ID)
    assert.ErrorIs(t, err, service.ErrInvalidLock)
}

func TestCreateBooking_UnknownLock(t *testing.T) {
    svc, _, _ := newTestService(t)

    _, err := svc.CreateBooking(context.Background(), 1, testShowID, []model.Seat{seat("A", 1)}, "card", 999)
    assert.ErrorIs(t, err, service.ErrInvalidLock)
}

// Two users race CreateBooking for the same seat with no locks held:
// exactly one booking is created and the counter moves exactly once.
func TestCreateBooking_RaceSingleWinner(t *testing.T) {
    svc, store, _ := newTestService(t)

    const n = 16
    var wg sync.WaitGroup
    results := make(chan error, n)
    for i := 0; i < n; i++ {
        wg.Add(1)
        go func(user uint64) {
            defer wg.Done()
            _, err := svc.CreateBooking(context.Background(), user, testShowID, []model.Seat{seat("D", 7)}, "card", 0)
            results <- err
        }(uint64(i + 1))
    }
    wg.Wait()
    close(results)

    wins := 0
    for err := range results {
        if err == nil {
            wins++
        } else {
            require.ErrorIs(t, err, service.ErrSeatsUnavailable)
        }
    }
    assert.Equal(t, 1, wins)

    show, _ := store.Show(testShowID)
    assert.Equal(t, uint32(49), show.AvailableSeats)
}

// Concurrent multi-seat bookings never oversell and never drive the
// counter negative.
func TestCreateBooking_ConcurrentNeverOversells(t *testing.T) {
    svc, store, _ := newTestService(t)

    // 25 workers each try to book a distinct pair plus one shared seat,
    // so every pair conflicts with every other pair.
    const n = 25
    var wg sync.WaitGroup
    var mu sync.Mutex
    booked := make(map[model.Seat]int)
    for i := 0; i < n; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            seats := []model.Seat{
                seat("E", uint32(i%10+1)),
                seat("A", 1), // shared contended seat
            }
            b, err := svc.CreateBooking(context.Background(), uint64(i+1), testShowID, seats, "wallet", 0)
            if err != nil {
                return
            }
            mu.Lock()
            for _, s := range b.Seats {
                booked[s.Seat]++
            }
            mu.Unlock()
        }(i)
    }
    wg.Wait()

    for s, count := range booked {
        assert.Equalf(t, 1, count, "seat %s booked %d times", s.Label(), count)
    }

    show, _ := store.Show(testShowID)
    assert.LessOrEqual(t, show.AvailableSeats, uint32(50))
    assert.Equal(t, uint32(50-len(booked)), show.AvailableSeats)
}

func TestCreateBooking_CapacityExhausted(t *testing.T) {
    svc, store, _ := newTestService(t)
    ctx := context.Background()

    // Book every seat of the 5x10 screen.
    for row := 0; row < 5; row++ {
        seats := make([]model.Seat, 0, 10)
        for n := uint32(1); n <= 10; n++ {
            seats = append(seats, seat(model.RowLabel(row), n))
        }
        _, err := svc.CreateBooking(ctx, 1, testShowID, seats, "card", 0)
        require.NoError(t, err)
    }

    show, _ := store.Show(testShowID)
    assert.Equal(t, uint32(0), show.AvailableSeats)

    _, err := svc.LockSeats(ctx, 2, testShowID, []model.Seat{seat("A", 1)})
    assert.ErrorIs(t, err, service.ErrSeatsUnavailable)
}

func TestCreateBooking_NotifiesAfterCommit(t *testing.T) {
    store := memstore.New()
    store.AddScreen(model.Screen{ID: testScreenID, VenueID: 1, Name: "Screen 1", Capacity: 50, Rows: 5, SeatsPerRow: 10, IsActive: true})
    store.AddShow(model.Show{ID: testShowID, MovieID: 1, VenueID: 1, ScreenID: testScreenID, ScreenName: "Screen 1",
        Date: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), Time: "19:30", PriceCents: 25000,
        TotalSeats: 50, AvailableSeats: 50, IsActive: true})

    notifier := newCaptureNotifier()
    svc := service.NewBookingService(store, notifier, quietLogger())

    b, err := svc.CreateBooking(context.Background(), 1, testShowID, []model.Seat{seat("A", 1)}, "card", 0)
    require.NoError(t, err)

    select {
    case got := <-notifier.ch:
        assert.Equal(t, b.Code, got.Code)
    case <-time.After(2 * time.Second):
        t.Fatal("booking confirmation was never published")
    }
}

func TestCreateBooking_InactiveShow(t *testing.T) {
    svc, store, _ := newTestService(t)

    show, _ := store.Show(testShowID)
    show.IsActive = false
    store.AddShow(show)

    _, err := svc.CreateBooking(context.Background(), 1, testShowID, []model.Seat{seat("A", 1)}, "card", 0)
    assert.ErrorIs(t, err, service.ErrShowInactive)
}

func TestSeatMap(t *testing.T) {
    svc, _, _ := newTestService(t)
    ctx := context.Background()

    _, err := svc.CreateBooking(ctx, 1, testShowID, []model.Seat{seat("A", 1)}, "card", 0)
    require.NoError(t, err)
    _, err = svc.LockSeats(ctx, 2, testShowID, []model.Seat{seat("B", 3)})
    require.NoError(t, err)

    show, infos, err := svc.SeatMap(ctx, testShowID)
    require.NoError(t, err)
    require.Equal(t, testShowID, show.ID)
    require.Len(t, infos, 50)

    // Row-major enumeration: A-1..A-10, B-1..B-10, ...
    assert.Equal(t, "A-1", infos[0].SeatID)
    assert.Equal(t, "A-10", infos[9].SeatID)
    assert.Equal(t, "B-1", infos[10].SeatID)
    assert.Equal(t, "E-10", infos[49].SeatID)

    unavailable := make(map[string]bool)
    for _, info := range infos {
        assert.Equal(t, uint32(25000), info.PriceCents)
        if !info.IsAvailable {
            unavailable[info.SeatID] = true
        }
    }
    assert.Equal(t, map[string]bool{"A-1": true, "B-3": true}, unavailable)
}

func TestSeatMap_ExpiredLockShowsAvailable(t *testing.T) {
    svc, _, clock := newTestService(t)
    ctx := context.Background()

    _, err := svc.LockSeats(ctx, 1, testShowID, []model.Seat{seat("B", 3)})
    require.NoError(t, err)

    clock.Advance(model.LockTTL + time.Second)

    _, infos, err := svc.SeatMap(ctx, testShowID)
    require.NoError(t, err)
    for _, info := range infos {
        assert.Truef(t, info.IsAvailable, "seat %s should be free after lock expiry", info.SeatID)
    }
}

func TestExpireLocks(t *testing.T) {
    svc, store, clock := newTestService(t)
    ctx := context.Background()

    l1, err := svc.LockSeats(ctx, 1, testShowID, []model.Seat{seat("A", 1)})
    require.NoError(t, err)

    clock.Advance(model.LockTTL / 2)
    l2, err := svc.LockSeats(ctx, 2, testShowID, []model.Seat{seat("A", 2)})
    require.NoError(t, err)

    clock.Advance(model.LockTTL/2 + time.Second)

    n, err := svc.ExpireLocks(ctx)
    require.NoError(t, err)
    assert.Equal(t, int64(1), n)

    stored1, _ := store.Lock(l1.ID)
    stored2, _ := store.Lock(l2.ID)
    assert.False(t, stored1.IsActive)
    assert.True(t, stored2.IsActive)
}

func TestBookingByID_Ownership(t *testing.T) {
    svc, _, _ := newTestService(t)
    ctx := context.Background()

    b, err := svc.CreateBooking(ctx, 1, testShowID, []model.Seat{seat("A", 1)}, "card", 0)
    require.NoError(t, err)

    got, err := svc.BookingByID(ctx, 1, model.RoleUser, b.ID)
    require.NoError(t, err)
    assert.Equal(t, b.ID, got.ID)

    _, err = svc.BookingByID(ctx, 2, model.RoleUser, b.ID)
    assert.ErrorIs(t, err, repository.ErrForbidden)

    _, err = svc.BookingByID(ctx, 2, model.RoleAdmin, b.ID)
    assert.NoError(t, err)
}

func TestListBookings(t *testing.T) {
    svc, _, _ := newTestService(t)
    ctx := context.Background()

    _, err := svc.CreateBooking(ctx, 1, testShowID, []model.Seat{seat("A", 1)}, "card", 0)
    require.NoError(t, err)
    _, err = svc.CreateBooking(ctx, 1, testShowID, []model.Seat{seat("A", 2)}, "upi", 0)
    require.NoError(t, err)

    list, err := svc.ListBookings(ctx, 1, "")
    require.NoError(t, err)
    assert.Len(t, list, 2)
    // Newest first.
    assert.True(t, list[0].ID > list[1].ID)

    confirmed, err := svc.ListBookings(ctx, 1, model.BookingStatusConfirmed)
    require.NoError(t, err)
    assert.Len(t, confirmed, 2)

    cancelled, err := svc.ListBookings(ctx, 1, model.BookingStatusCancelled)
    require.NoError(t, err)
    assert.Empty(t, cancelled)

    _, err = svc.ListBookings(ctx, 1, "bogus")
    assert.ErrorIs(t, err, service.ErrValidation)

    other, err := svc.ListBookings(ctx, 2, "")
    require.NoError(t, err)
    assert.Empty(t, other)
}

// Release of a lock mid-race: the freed seat goes to exactly one of the
// waiting contenders.
func TestLockSeats_ReleasedSeatGoesToOneContender(t *testing.T) {
    svc, _, _ := newTestService(t)
    ctx := context.Background()

    lock, err := svc.LockSeats(ctx, 1, testShowID, []model.Seat{seat("C", 1)})
    require.NoError(t, err)
    require.NoError(t, svc.ReleaseLock(ctx, 1, lock.ID))

    const n = 8
    var wg sync.WaitGroup
    results := make(chan error, n)
    for i := 0; i < n; i++ {
        wg.Add(1)
        go func(user uint64) {
            defer wg.Done()
            _, err := svc.LockSeats(context.Background(), user, testShowID, []model.Seat{seat("C", 1)})
            results <- err
        }(uint64(i + 2))
    }
    wg.Wait()
    close(results)

    wins := 0
    for err := range results {
        if err == nil {
            wins++
        }
    }
    assert.Equal(t, 1, wins)
}

func TestCreateBooking_EmptySeats(t *testing.T) {
    svc, _, _ := newTestService(t)

    _, err := svc.CreateBooking(context.Background(), 1, testShowID, nil, "card", 0)
    assert.ErrorIs(t, err, service.ErrValidation)
}

func TestErrorsAreDistinguishable(t *testing.T) {
    // SeatsUnavailableError unwraps to the sentinel and carries seats.
    err := error(&service.SeatsUnavailableError{Seats: []model.Seat{seat("A", 1)}})
    assert.ErrorIs(t, err, service.ErrSeatsUnavailable)
    assert.Contains(t, err.Error(), "A-1")
    assert.False(t, errors.Is(err, service.ErrInvalidLock))
}
