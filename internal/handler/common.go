// Package handler contains the HTTP layer: request DTOs, response
// shaping and the mapping from domain errors to status codes.  No
// business rules live here.
package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Siva-yadav-489/bookmyshow-server/internal/middleware"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/repository"
    "github.com/Siva-yadav-489/bookmyshow-server/internal/service"
)

// dbTimeout bounds handler-level repository calls that do not go
// through the booking service.
const dbTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// currentUser reads the identity placed in context by the JWT
// middleware.
func currentUser(c echo.Context) (uint64, string) {
    id, _ := c.Get(middleware.CtxUserID).(uint64)
    role, _ := c.Get(middleware.CtxRole).(string)
    return id, role
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
    return strconv.ParseUint(c.Param(name), 10, 64)
}

// fail maps domain errors to HTTP responses.  Not-found sentinels
// become 404, contention 409, bad presented state 400, ownership 403
// and storage timeouts 503; anything unrecognised is a 500 with a
// generic message.
func fail(c echo.Context, err error) error {
    switch {
    case errors.Is(err, repository.ErrShowNotFound),
        errors.Is(err, repository.ErrScreenNotFound),
        errors.Is(err, repository.ErrMovieNotFound),
        errors.Is(err, repository.ErrVenueNotFound),
        errors.Is(err, repository.ErrBookingNotFound),
        errors.Is(err, repository.ErrLockNotFound),
        errors.Is(err, repository.ErrUserNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})

    case errors.Is(err, service.ErrSeatsUnavailable):
        resp := echo.Map{"error": "seats unavailable"}
        var su *service.SeatsUnavailableError
        if errors.As(err, &su) {
            labels := make([]string, 0, len(su.Seats))
            for _, s := range su.Seats {
                labels = append(labels, s.Label())
            }
            resp["seats"] = labels
        }
        return c.JSON(http.StatusConflict, resp)

    case errors.Is(err, service.ErrShowInactive),
        errors.Is(err, service.ErrInvalidLock),
        errors.Is(err, service.ErrLockInactive),
        errors.Is(err, service.ErrInvalidPaymentMethod),
        errors.Is(err, service.ErrValidation):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})

    case errors.Is(err, service.ErrLockNotOwner),
        errors.Is(err, repository.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})

    case errors.Is(err, service.ErrStorageTimeout):
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage timeout, retry the request"})
    }
    c.Logger().Errorf("internal error: %v", err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
