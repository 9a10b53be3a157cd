package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tiendavale/ecommerce-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Code is
// present only for catalog errors carrying a machine-readable code.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps typed catalog errors to their own status and code.
//   - Maps echo's errors (bind failures, 404 from router) through unchanged.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Typed catalog errors carry their own status and code. The cause and
	// any wrapped error are diagnostic only.
	var de *domain.Error
	if errors.As(err, &de) {
		log.Debug().
			Str("code", string(de.Code)).
			Str("cause", de.Cause).
			Err(de.Err).
			Str("path", c.Path()).
			Msg("request failed")
		return de.Status, errorResponse{Error: de.Message, Code: string(de.Code)}
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
