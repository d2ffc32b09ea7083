package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/model"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/repository"
)

// AdminHandler manages catalog writes and platform-wide reads.  Every
// route it serves sits behind RequireRole(admin).
type AdminHandler struct {
    Movies   *repository.MovieRepo
    Venues   *repository.VenueRepo
    Shows    *repository.ShowRepo
    Users    *repository.UserRepo
    Bookings *repository.BookingRepo
}

func NewAdminHandler(m *repository.MovieRepo, v *repository.VenueRepo, s *repository.ShowRepo, u *repository.UserRepo, b *repository.BookingRepo) *AdminHandler {
    return &AdminHandler{Movies: m, Venues: v, Shows: s, Users: u, Bookings: b}
}

// CreateMovie adds a movie to the catalog.
func (h *AdminHandler) CreateMovie(c echo.Context) error {
    var m model.Movie
    if err := c.Bind(&m); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if strings.TrimSpace(m.Title) == "" || m.DurationMin == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and duration are required"})
    }
    m.IsActive = true

    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Movies.Create(ctx, &m); err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"movie": m})
}

// CreateVenue adds a venue together with its screens.
func (h *AdminHandler) CreateVenue(c echo.Context) error {
    var v model.Venue
    if err := c.Bind(&v); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if strings.TrimSpace(v.Name) == "" || strings.TrimSpace(v.City) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and city are required"})
    }
    for _, sc := range v.Screens {
        if sc.Rows == 0 || sc.SeatsPerRow == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "every screen needs rows and seatsPerRow"})
        }
    }
    v.IsActive = true
    for i := range v.Screens {
        v.Screens[i].IsActive = true
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Venues.Create(ctx, &v); err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"venue": v})
}

type createShowReq struct {
    MovieID    uint64 `json:"movieId"`
    VenueID    uint64 `json:"venueId"`
    ScreenID   uint64 `json:"screenId"`
    Date       string `json:"date"` // YYYY-MM-DD
    Time       string `json:"time"` // HH:MM
    PriceCents uint32 `json:"price"`
    ShowType   string `json:"showType"`
    Language   string `json:"language"`
    Subtitles  string `json:"subtitles"`
}

// CreateShow schedules a screening.  Seat inventory starts at the
// screen's full capacity.
func (h *AdminHandler) CreateShow(c echo.Context) error {
    var req createShowReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.MovieID == 0 || req.VenueID == 0 || req.ScreenID == 0 || req.PriceCents == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "movieId, venueId, screenId and price are required"})
    }
    date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
    }
    if _, err := time.Parse("15:04", req.Time); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "time must be HH:MM"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    // The referenced movie and screen must exist; the screen must
    // belong to the referenced venue.
    if _, err := h.Movies.GetByID(ctx, req.MovieID); err != nil {
        return fail(c, err)
    }
    screen, err := h.Shows.ScreenByID(ctx, req.ScreenID)
    if err != nil {
        return fail(c, err)
    }
    if screen.VenueID != req.VenueID {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "screen does not belong to the venue"})
    }

    sh := &model.Show{
        MovieID:    req.MovieID,
        VenueID:    req.VenueID,
        ScreenID:   req.ScreenID,
        ScreenName: screen.Name,
        Date:       date,
        Time:       req.Time,
        PriceCents: req.PriceCents,
        TotalSeats: screen.Capacity,
        ShowType:   req.ShowType,
        Language:   req.Language,
        Subtitles:  req.Subtitles,
        IsActive:   true,
    }
    if err := h.Shows.Create(ctx, sh); err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"show": sh})
}

// ListUsers returns every registered account.
func (h *AdminHandler) ListUsers(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    users, err := h.Users.List(ctx)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// ListBookings returns every booking on the platform.
func (h *AdminHandler) ListBookings(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    bookings, err := h.Bookings.ListAll(ctx)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}
