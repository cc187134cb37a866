package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pedidos_api/internal/service"
)

var errInvalidID = errors.New("id must be a positive integer")

func parseID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

func location(c echo.Context, resource string, id int) {
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/v1/%s/%d", resource, id))
}

// failure logs a service error under event and turns it into the matching
// HTTP error. Anything that is not one of the service sentinels is a 500.
func failure(l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, service.ErrIDMismatch):
		l.Warn(event, "status", 400, "reason", "id in path and body differ", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id in path and body differ")
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "reason", "invalid request", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "reason", "not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", 409, "reason", "conflict", "error", err)
		return echo.NewHTTPError(http.StatusConflict, "product already in order")
	default:
		l.Error(event, "status", 500, "reason", "storage failure", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func badID(l *slog.Logger, event string, err error) error {
	l.Warn(event, "status", 400, "reason", "invalid id", "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
}

func badBody(l *slog.Logger, event string, err error) error {
	l.Warn(event, "status", 400, "reason", "invalid request", "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
}
