package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/model"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/service"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/utils"
)

// BookingHandler exposes the seat locking and booking endpoints.  All
// availability decisions are made by the booking service; the handler
// only shapes requests and responses.
type BookingHandler struct {
    Svc *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
    return &BookingHandler{Svc: svc}
}

type lockSeatsReq struct {
    ShowID uint64       `json:"showId"`
    Seats  []model.Seat `json:"seats"`
}

type createBookingReq struct {
    ShowID        uint64       `json:"showId"`
    Seats         []model.Seat `json:"seats"`
    PaymentMethod string       `json:"paymentMethod"`
    LockID        uint64       `json:"lockId"` // optional; 0 means no lock
}

// LockSeats places a temporary hold on seats ahead of payment.  On
// contention it responds 409 with the exact seats that were lost.
func (h *BookingHandler) LockSeats(c echo.Context) error {
    userID, _ := currentUser(c)

    var req lockSeatsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.ShowID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "showId is required"})
    }

    lock, err := h.Svc.LockSeats(c.Request().Context(), userID, req.ShowID, req.Seats)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"lock": lock})
}

// ReleaseLock frees a held lock before it expires.
func (h *BookingHandler) ReleaseLock(c echo.Context) error {
    userID, _ := currentUser(c)

    lockID, err := pathID(c, "lockId")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lock id"})
    }
    if err := h.Svc.ReleaseLock(c.Request().Context(), userID, lockID); err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"released": true})
}

// CreateBooking commits a seat selection into a confirmed booking.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
    userID, _ := currentUser(c)

    var req createBookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.ShowID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "showId is required"})
    }

    booking, err := h.Svc.CreateBooking(c.Request().Context(), userID, req.ShowID, req.Seats, req.PaymentMethod, req.LockID)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"booking": booking})
}

// ShowSeats returns the full seat map of a show with per-seat
// availability.
func (h *BookingHandler) ShowSeats(c echo.Context) error {
    showID, err := pathID(c, "showId")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
    }

    show, seats, err := h.Svc.SeatMap(c.Request().Context(), showID)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "show":  show,
        "seats": seats,
    })
}

// ListBookings returns the caller's booking history, optionally
// filtered by ?status=.
func (h *BookingHandler) ListBookings(c echo.Context) error {
    userID, _ := currentUser(c)

    bookings, err := h.Svc.ListBookings(c.Request().Context(), userID, c.QueryParam("status"))
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// GetBooking returns one booking.  Users see only their own; admins
// see any.
func (h *BookingHandler) GetBooking(c echo.Context) error {
    userID, role := currentUser(c)

    bookingID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    b, err := h.Svc.BookingByID(c.Request().Context(), userID, role, bookingID)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"booking": b})
}

// TicketQR renders the booking code as a PNG QR image, the same code
// gate scanners validate.
func (h *BookingHandler) TicketQR(c echo.Context) error {
    userID, role := currentUser(c)

    bookingID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    b, err := h.Svc.BookingByID(c.Request().Context(), userID, role, bookingID)
    if err != nil {
        return fail(c, err)
    }
    png, err := utils.TicketQR(b.Code, 256)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render qr failed"})
    }
    return c.Blob(http.StatusOK, "image/png", png)
}
