package handler

import (
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/repository"
)

// CatalogHandler serves the public browse endpoints: movies, venues and
// show listings.  Everything here is read-only reference data and safe
// to put behind the response cache.
type CatalogHandler struct {
    Movies *repository.MovieRepo
    Venues *repository.VenueRepo
    Shows  *repository.ShowRepo
}

func NewCatalogHandler(m *repository.MovieRepo, v *repository.VenueRepo, s *repository.ShowRepo) *CatalogHandler {
    return &CatalogHandler{Movies: m, Venues: v, Shows: s}
}

// ListMovies returns active movies.  With ?city= it narrows to movies
// actually playing in that city; with ?search= it filters by title,
// description or genre.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    if term := strings.TrimSpace(c.QueryParam("search")); term != "" {
        movies, err := h.Movies.Search(ctx, term)
        if err != nil {
            return fail(c, err)
        }
        return c.JSON(http.StatusOK, echo.Map{"movies": movies})
    }

    if city := strings.TrimSpace(c.QueryParam("city")); city != "" {
        date := parseDate(c.QueryParam("date"))
        ids, err := h.Shows.ActiveMovieIDsForCity(ctx, city, date)
        if err != nil {
            return fail(c, err)
        }
        movies, err := h.Movies.ListByIDs(ctx, ids)
        if err != nil {
            return fail(c, err)
        }
        return c.JSON(http.StatusOK, echo.Map{"movies": movies})
    }

    movies, err := h.Movies.ListActive(ctx)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"movies": movies})
}

// GetMovie returns one movie by ID.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    m, err := h.Movies.GetByID(ctx, id)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"movie": m})
}

// ListVenues returns active venues, optionally filtered by ?city=.
func (h *CatalogHandler) ListVenues(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    if city := strings.TrimSpace(c.QueryParam("city")); city != "" {
        venues, err := h.Venues.ListByCity(ctx, city)
        if err != nil {
            return fail(c, err)
        }
        return c.JSON(http.StatusOK, echo.Map{"venues": venues})
    }
    venues, err := h.Venues.ListActive(ctx)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"venues": venues})
}

// GetVenue returns one venue with its screens.
func (h *CatalogHandler) GetVenue(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    v, err := h.Venues.GetByID(ctx, id)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"venue": v})
}

// ListCities returns the cities with at least one active venue.
func (h *CatalogHandler) ListCities(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    cities, err := h.Venues.Cities(ctx)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"cities": cities})
}

// ListShows returns active shows filtered by optional ?movieId=,
// ?venueId= and ?date= (YYYY-MM-DD) query parameters.
func (h *CatalogHandler) ListShows(c echo.Context) error {
    movieID, _ := strconv.ParseUint(c.QueryParam("movieId"), 10, 64)
    venueID, _ := strconv.ParseUint(c.QueryParam("venueId"), 10, 64)
    date := parseDate(c.QueryParam("date"))

    ctx, cancel := reqCtx(c)
    defer cancel()

    shows, err := h.Shows.List(ctx, movieID, venueID, date)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"shows": shows})
}

// ShowsByMovie returns active shows of one movie, optionally narrowed
// by ?date=.
func (h *CatalogHandler) ShowsByMovie(c echo.Context) error {
    movieID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    shows, err := h.Shows.List(ctx, movieID, 0, parseDate(c.QueryParam("date")))
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"shows": shows})
}

// ShowsByVenue returns active shows at one venue, optionally narrowed
// by ?date=.
func (h *CatalogHandler) ShowsByVenue(c echo.Context) error {
    venueID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    shows, err := h.Shows.List(ctx, 0, venueID, parseDate(c.QueryParam("date")))
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"shows": shows})
}

// VenuesByCity returns active venues in the city given as a path
// parameter.
func (h *CatalogHandler) VenuesByCity(c echo.Context) error {
    city := strings.TrimSpace(c.Param("city"))
    if city == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "city is required"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    venues, err := h.Venues.ListByCity(ctx, city)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"venues": venues})
}

// GetShow returns one show with its live availability counter.
func (h *CatalogHandler) GetShow(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
    }

    ctx, cancel := reqCtx(c)
    defer cancel()

    sh, err := h.Shows.GetByID(ctx, id)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"show": sh})
}

// parseDate parses a YYYY-MM-DD query value, returning nil for empty or
// malformed input so callers treat it as "no filter".
func parseDate(s string) *time.Time {
    s = strings.TrimSpace(s)
    if s == "" {
        return nil
    }
    t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
    if err != nil {
        return nil
    }
    return &t
}
