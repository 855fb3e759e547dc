package http

import (
	"errors"
	"log/slog"
	"net/http"

	"restaurant/internal/generated/servers"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const kindUnauthorized = "Unauthorized"

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindInvalidState, errs.KindConcurrentModification:
		return http.StatusConflict
	case errs.KindNoPriceAvailable:
		return http.StatusUnprocessableEntity
	case errs.KindNumberingUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as a servers.Error. Internal failures are logged and
// their details kept out of the response.
func writeError(ctx echo.Context, logger *slog.Logger, err error) error {
	kind := errs.KindOf(err)
	status := StatusOf(kind)
	message := err.Error()

	if kind == errs.KindInternal {
		logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = http.StatusText(status)
	}

	return ctx.JSON(status, servers.Error{
		Code:    status,
		Kind:    kind.String(),
		Message: message,
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Kind:    errs.KindValidation.String(),
		Message: message,
	})
}

// ErrorHandler renders errors returned by middleware and the router, such as
// unknown routes and malformed path parameters, in the same shape as handler
// errors.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			_ = writeError(ctx, logger, err)
			return
		}

		body := servers.Error{Code: he.Code, Kind: kindForStatus(he.Code), Message: http.StatusText(he.Code)}
		if msg, ok := he.Message.(string); ok {
			body.Message = msg
		}
		if he.Code >= http.StatusInternalServerError {
			logger.ErrorContext(ctx.Request().Context(), "request failed", "path", ctx.Path(), "error", err)
		}

		if ctx.Request().Method == http.MethodHead {
			_ = ctx.NoContent(he.Code)
			return
		}
		_ = ctx.JSON(he.Code, body)
	}
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return errs.KindValidation.String()
	case http.StatusUnauthorized:
		return kindUnauthorized
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return errs.KindNotFound.String()
	default:
		return errs.KindInternal.String()
	}
}
