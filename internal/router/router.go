// Package router wires the HTTP surface: which handlers serve which
// paths and which middleware guards them.
package router

import (
    "github.com/labstack/echo/v4"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/handler"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/middleware"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/model"
)

// Handlers collects the handler groups the router registers.
type Handlers struct {
    Auth    *handler.AuthHandler
    Catalog *handler.CatalogHandler
    Booking *handler.BookingHandler
    Admin   *handler.AdminHandler
}

// Middleware collects the cross-cutting middleware applied per group.
// Cache and RateLimit may be nil when Redis is not configured.
type Middleware struct {
    Cache     echo.MiddlewareFunc
    RateLimit echo.MiddlewareFunc
}

// Register mounts the full API under /api.
func Register(e *echo.Echo, h Handlers, mw Middleware, jwtSecret string) {
    api := e.Group("/api")

    api.GET("/health", handler.Health)

    // Auth.
    api.POST("/auth/register", h.Auth.Register)
    api.POST("/auth/login", h.Auth.Login)
    api.GET("/auth/profile", h.Auth.Profile, middleware.JWTAuth(jwtSecret))

    // Public catalog.  Reference data only, safe to cache; seat maps
    // stay uncached below.
    catalog := api.Group("")
    if mw.Cache != nil {
        catalog.Use(mw.Cache)
    }
    catalog.GET("/movies", h.Catalog.ListMovies)
    catalog.GET("/movies/:id", h.Catalog.GetMovie)
    catalog.GET("/venues", h.Catalog.ListVenues)
    catalog.GET("/venues/cities/all", h.Catalog.ListCities)
    catalog.GET("/venues/city/:city", h.Catalog.VenuesByCity)
    catalog.GET("/venues/:id", h.Catalog.GetVenue)
    catalog.GET("/shows", h.Catalog.ListShows)
    catalog.GET("/shows/:id", h.Catalog.GetShow)
    catalog.GET("/shows/movie/:id", h.Catalog.ShowsByMovie)
    catalog.GET("/shows/venue/:id", h.Catalog.ShowsByVenue)

    // Live availability is computed per request and never cached.
    api.GET("/bookings/show/:showId/seats", h.Booking.ShowSeats)

    // Booking flow.  Rate limited to keep one client from hammering
    // the contention paths.
    booked := api.Group("/bookings", middleware.JWTAuth(jwtSecret))
    if mw.RateLimit != nil {
        booked.Use(mw.RateLimit)
    }
    booked.POST("/lock-seats", h.Booking.LockSeats)
    booked.DELETE("/locks/:lockId", h.Booking.ReleaseLock)
    booked.POST("", h.Booking.CreateBooking)
    booked.GET("/history", h.Booking.ListBookings)
    booked.GET("/:id", h.Booking.GetBooking)
    booked.GET("/:id/qr", h.Booking.TicketQR)

    // Admin.
    admin := api.Group("/admin", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))
    admin.POST("/movies", h.Admin.CreateMovie)
    admin.POST("/venues", h.Admin.CreateVenue)
    admin.POST("/shows", h.Admin.CreateShow)
    admin.GET("/users", h.Admin.ListUsers)
    admin.GET("/bookings", h.Admin.ListBookings)
}
