package middleware

import (
	"log/slog"
	"net/http"

	deliverycontext "minibank/internal/delivery/context"
	"minibank/internal/delivery/http/response"
	domainerrors "minibank/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Attempt to parse as AppError
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		// Internal failures keep their detail in the logs; the client only
		// ever sees the user-facing message.
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logger.Error("Request failed",
				slog.String("request_id", deliverycontext.GetRequestID(c)),
				slog.String("error_code", appErr.ErrorCode()),
				slog.String("path", c.Request().URL.Path),
				slog.String("method", c.Request().Method),
				slog.Any("error", err),
			)
		}

		_ = response.Error(c, appErr.HTTPCode(), appErr.Message())

		return
	}

	// Check if it is an Echo HTTPError (routing 404/405, body limit, binding)
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}

		_ = response.Error(c, httpErr.Code, message)

		return
	}

	// Default to internal error: log the cause, return a generic message
	m.logger.Error("Unhandled error",
		slog.String("request_id", deliverycontext.GetRequestID(c)),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
		slog.Any("error", err),
	)

	_ = response.Error(c, http.StatusInternalServerError, "Internal server error")
}
