package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/userdesk/user-management/internal/core/domain"
)

// errorEnvelope mirrors the success envelope: {success, message, errors?}.
type errorEnvelope struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Errors  []domain.FieldViolation `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns the terminal echo.HTTPErrorHandler. Every
// failure that escapes a handler lands here and is classified into the
// error taxonomy: validation (400), invalid id (400), not found (404),
// conflict (409), or internal (500). Internal detail only leaks in
// development mode.
func NewHTTPErrorHandler(log zerolog.Logger, development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c, development)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, development bool) (int, errorEnvelope) {
	// Structured validation failures carry the full per-field list.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorEnvelope{
			Message: "Validation failed",
			Errors:  ve.Violations,
		}
	}

	// Known domain errors map to deterministic statuses.
	switch {
	case errors.Is(err, domain.ErrInvalidUserID):
		return http.StatusBadRequest, errorEnvelope{Message: "Invalid ID format"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorEnvelope{Message: "User not found"}
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusConflict, errorEnvelope{
			Message: "Email already exists",
			Errors: []domain.FieldViolation{
				{Field: "Email", Message: "Email already exists"},
			},
		}
	}

	// Echo's own errors: bind failures, body-limit rejections, and the
	// router's catch-all, which echoes the attempted path back.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := fmt.Sprintf("%v", he.Message)
		if he.Code == http.StatusNotFound {
			msg = fmt.Sprintf("Route %s not found", c.Request().URL.Path)
		}
		return he.Code, errorEnvelope{Message: msg}
	}

	// Anything else is internal. Log the real cause; hide it from the
	// client unless running in development mode.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	msg := "Internal server error"
	if development {
		msg = err.Error()
	}
	return http.StatusInternalServerError, errorEnvelope{Message: msg}
}
