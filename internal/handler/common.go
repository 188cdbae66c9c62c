package handler // handler defines the HTTP layer over the services

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-ticketing/internal/repository"
	"github.com/iliyamo/venue-ticketing/internal/service"
)

// reqTimeout bounds every handler's downstream work.
const reqTimeout = 5 * time.Second

// reqContext derives a bounded context from the request.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), reqTimeout)
}

// getUserID extracts the authenticated user's ID placed into context
// by the JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole extracts the authenticated role, empty when absent.
func getRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// pathIDFromString parses a numeric identifier from a query value.
func pathIDFromString(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

// writeErr maps domain errors onto HTTP status codes with a JSON body.
func writeErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrVenueNotFound),
		errors.Is(err, repository.ErrShowNotFound),
		errors.Is(err, repository.ErrPerformanceNotFound),
		errors.Is(err, repository.ErrTicketNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrTicketTypeNotFound),
		errors.Is(err, repository.ErrTicketPriceNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict),
		errors.Is(err, repository.ErrSeatTaken),
		errors.Is(err, repository.ErrPerformanceCancelled),
		errors.Is(err, repository.ErrEmailExists),
		errors.Is(err, repository.ErrTicketTypeExists),
		errors.Is(err, service.ErrScheduleConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrBadTimeWindow),
		errors.Is(err, service.ErrOutsideShowWindow),
		errors.Is(err, service.ErrBadSeatingType),
		errors.Is(err, service.ErrBadPrice),
		errors.Is(err, service.ErrBadPerformanceDate):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		c.Logger().Errorf("internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "something went wrong, please try again"})
	}
}
