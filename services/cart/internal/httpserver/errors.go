package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/trustbasket/pkg/middleware/auth"
	"github.com/Skotchmaster/trustbasket/pkg/session"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/service"
)

// fail logs the outcome under event and converts err into an HTTP error.
func fail(l *slog.Logger, event string, err error) error {
	code, msg := http.StatusInternalServerError, "internal error"
	switch {
	case errors.Is(err, service.ErrValidation):
		code, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrEmptyCart):
		code, msg = http.StatusBadRequest, "cart is empty"
	case errors.Is(err, service.ErrNotFound):
		code, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrForbidden):
		code, msg = http.StatusForbidden, "access denied"
	case errors.Is(err, service.ErrConflict):
		code, msg = http.StatusConflict, err.Error()
	case errors.Is(err, session.ErrConflict):
		code, msg = http.StatusConflict, "cart changed concurrently, retry"
	}

	if code >= http.StatusInternalServerError {
		l.Error(event, "status", code, "reason", msg, "error", err)
	} else {
		l.Warn(event, "status", code, "reason", msg, "error", err)
	}
	return echo.NewHTTPError(code, msg)
}

func badRequest(l *slog.Logger, event, reason string, err error) error {
	l.Warn(event, "status", http.StatusBadRequest, "reason", reason, "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, reason)
}

func actorOf(c echo.Context) (service.Actor, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return service.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	role, _ := c.Get(middleware.ContextRole).(string)
	return service.Actor{ID: id, Role: role}, nil
}
