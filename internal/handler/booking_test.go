package handler_test

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strconv"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/handler"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/middleware"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/model"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/repository/memstore"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/service"
)

// asUser injects an authenticated identity the way the JWT middleware
// would.
func asUser(userID uint64, role string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            c.Set(middleware.CtxUserID, userID)
            c.Set(middleware.CtxRole, role)
            return next(c)
        }
    }
}

func newTestServer(t *testing.T) (*echo.Echo, *handler.BookingHandler) {
    t.Helper()

    store := memstore.New()
    store.AddScreen(model.Screen{ID: 10, VenueID: 1, Name: "Screen 1", Capacity: 20, Rows: 2, SeatsPerRow: 10, IsActive: true})
    store.AddShow(model.Show{
        ID: 1, MovieID: 1, VenueID: 1, ScreenID: 10, ScreenName: "Screen 1",
        Date: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), Time: "19:30",
        PriceCents: 20000, TotalSeats: 20, AvailableSeats: 20,
        ShowType: model.ShowType2D, IsActive: true,
    })

    log := logrus.New()
    log.SetLevel(logrus.PanicLevel)
    svc := service.NewBookingService(store, nil, log)
    return echo.New(), handler.NewBookingHandler(svc)
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
    req := httptest.NewRequest(method, path, strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func TestLockAndCommitFlow(t *testing.T) {
    e, h := newTestServer(t)
    e.POST("/api/bookings/lock-seats", h.LockSeats, asUser(1, model.RoleUser))
    e.POST("/api/bookings", h.CreateBooking, asUser(1, model.RoleUser))
    e.GET("/api/bookings/show/:showId/seats", h.ShowSeats)
    e.GET("/api/bookings/:id", h.GetBooking, asUser(1, model.RoleUser))

    // Acquire a lock on two seats.
    rec := doJSON(e, http.MethodPost, "/api/bookings/lock-seats",
        `{"showId":1,"seats":[{"row":"A","seatNumber":1},{"row":"A","seatNumber":2}]}`)
    require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

    var lockResp struct {
        Lock model.SeatLock `json:"lock"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lockResp))
    require.NotZero(t, lockResp.Lock.ID)
    assert.NotEmpty(t, lockResp.Lock.HoldToken)

    // The seat map shows the held seats as unavailable.
    rec = doJSON(e, http.MethodGet, "/api/bookings/show/1/seats", "")
    require.Equal(t, http.StatusOK, rec.Code)
    var mapResp struct {
        Seats []model.SeatInfo `json:"seats"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mapResp))
    require.Len(t, mapResp.Seats, 20)
    assert.False(t, mapResp.Seats[0].IsAvailable)
    assert.False(t, mapResp.Seats[1].IsAvailable)
    assert.True(t, mapResp.Seats[2].IsAvailable)

    // Commit the held seats.
    rec = doJSON(e, http.MethodPost, "/api/bookings",
        `{"showId":1,"seats":[{"row":"A","seatNumber":1},{"row":"A","seatNumber":2}],"paymentMethod":"card","lockId":`+
            strconv.FormatUint(lockResp.Lock.ID, 10)+`}`)
    require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

    var bookResp struct {
        Booking model.Booking `json:"booking"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookResp))
    assert.True(t, strings.HasPrefix(bookResp.Booking.Code, "BK"))
    assert.Equal(t, model.BookingStatusConfirmed, bookResp.Booking.Status)
    assert.Equal(t, uint32(40000), bookResp.Booking.TotalAmountCents)

    // The booking is readable by its owner.
    rec = doJSON(e, http.MethodGet, "/api/bookings/"+strconv.FormatUint(bookResp.Booking.ID, 10), "")
    assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLockContentionReturns409WithSeats(t *testing.T) {
    e, h := newTestServer(t)
    e.POST("/u1/lock", h.LockSeats, asUser(1, model.RoleUser))
    e.POST("/u2/lock", h.LockSeats, asUser(2, model.RoleUser))

    rec := doJSON(e, http.MethodPost, "/u1/lock", `{"showId":1,"seats":[{"row":"A","seatNumber":5}]}`)
    require.Equal(t, http.StatusCreated, rec.Code)

    rec = doJSON(e, http.MethodPost, "/u2/lock", `{"showId":1,"seats":[{"row":"A","seatNumber":5},{"row":"A","seatNumber":6}]}`)
    require.Equal(t, http.StatusConflict, rec.Code)

    var resp struct {
        Error string   `json:"error"`
        Seats []string `json:"seats"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.Equal(t, []string{"A-5"}, resp.Seats)
}

func TestReleaseLockForbiddenForNonOwner(t *testing.T) {
    e, h := newTestServer(t)
    e.POST("/u1/lock", h.LockSeats, asUser(1, model.RoleUser))
    e.DELETE("/u2/locks/:lockId", h.ReleaseLock, asUser(2, model.RoleUser))

    rec := doJSON(e, http.MethodPost, "/u1/lock", `{"showId":1,"seats":[{"row":"A","seatNumber":1}]}`)
    require.Equal(t, http.StatusCreated, rec.Code)
    var lockResp struct {
        Lock model.SeatLock `json:"lock"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lockResp))

    rec = doJSON(e, http.MethodDelete, "/u2/locks/"+strconv.FormatUint(lockResp.Lock.ID, 10), "")
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateBookingValidation(t *testing.T) {
    e, h := newTestServer(t)
    e.POST("/api/bookings", h.CreateBooking, asUser(1, model.RoleUser))

    // Unknown payment method.
    rec := doJSON(e, http.MethodPost, "/api/bookings",
        `{"showId":1,"seats":[{"row":"A","seatNumber":1}],"paymentMethod":"cash"}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    // Unknown show.
    rec = doJSON(e, http.MethodPost, "/api/bookings",
        `{"showId":99,"seats":[{"row":"A","seatNumber":1}],"paymentMethod":"card"}`)
    assert.Equal(t, http.StatusNotFound, rec.Code)

    // Stale lock.
    rec = doJSON(e, http.MethodPost, "/api/bookings",
        `{"showId":1,"seats":[{"row":"A","seatNumber":1}],"paymentMethod":"card","lockId":777}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBookingForbiddenForOtherUser(t *testing.T) {
    e, h := newTestServer(t)
    e.POST("/u1/bookings", h.CreateBooking, asUser(1, model.RoleUser))
    e.GET("/u2/bookings/:id", h.GetBooking, asUser(2, model.RoleUser))
    e.GET("/admin/bookings/:id", h.GetBooking, asUser(3, model.RoleAdmin))

    rec := doJSON(e, http.MethodPost, "/u1/bookings",
        `{"showId":1,"seats":[{"row":"B","seatNumber":1}],"paymentMethod":"upi"}`)
    require.Equal(t, http.StatusCreated, rec.Code)
    var bookResp struct {
        Booking model.Booking `json:"booking"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookResp))
    id := strconv.FormatUint(bookResp.Booking.ID, 10)

    rec = doJSON(e, http.MethodGet, "/u2/bookings/"+id, "")
    assert.Equal(t, http.StatusForbidden, rec.Code)

    rec = doJSON(e, http.MethodGet, "/admin/bookings/"+id, "")
    assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTicketQRReturnsPNG(t *testing.T) {
    e, h := newTestServer(t)
    e.POST("/api/bookings", h.CreateBooking, asUser(1, model.RoleUser))
    e.GET("/api/bookings/:id/qr", h.TicketQR, asUser(1, model.RoleUser))

    rec := doJSON(e, http.MethodPost, "/api/bookings",
        `{"showId":1,"seats":[{"row":"B","seatNumber":2}],"paymentMethod":"card"}`)
    require.Equal(t, http.StatusCreated, rec.Code)
    var bookResp struct {
        Booking model.Booking `json:"booking"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookResp))

    rec = doJSON(e, http.MethodGet, "/api/bookings/"+strconv.FormatUint(bookResp.Booking.ID, 10)+"/qr", "")
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
    body := rec.Body.Bytes()
    require.True(t, len(body) > 4)
    assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, body[:4])
}
