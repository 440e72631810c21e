package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/trustbasket/services/registration/internal/domain"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/repo"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/service"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/transport"
)

// fail logs the outcome under event and writes err as an HTTP response.
// Validation and attachment failures are returned as JSON bodies.
func fail(c echo.Context, l *slog.Logger, event string, err error) error {
	var (
		ve *domain.ValidationError
		ae *domain.AttachmentError
		se *domain.SubmissionError
	)
	switch {
	case errors.As(err, &ve):
		l.Warn(event, "status", http.StatusUnprocessableEntity, "reason", "validation failed", "step", ve.Step, "errors", ve.Messages)
		return c.JSON(http.StatusUnprocessableEntity, transport.ValidationErrorResponse{Step: ve.Step, Errors: ve.Messages})
	case errors.As(err, &ae):
		l.Warn(event, "status", http.StatusUnprocessableEntity, "reason", ae.Reason, "field", ae.Field)
		return c.JSON(http.StatusUnprocessableEntity, transport.AttachmentErrorResponse{Field: ae.Field, Error: ae.Reason})
	}

	code, msg := http.StatusInternalServerError, "internal error"
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		code, msg = http.StatusUnauthorized, service.ErrInvalidCredentials.Error()
	case errors.Is(err, service.ErrSessionNotFound):
		code, msg = http.StatusNotFound, "registration session not found"
	case errors.Is(err, domain.ErrUnknownField), errors.Is(err, domain.ErrInvalidRole):
		code, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFinalStep):
		code, msg = http.StatusConflict, err.Error()
	case errors.Is(err, repo.ErrAccountExists):
		code, msg = http.StatusConflict, repo.ErrAccountExists.Error()
	case errors.As(err, &se):
		code, msg = http.StatusBadGateway, "registration failed, please try again"
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
