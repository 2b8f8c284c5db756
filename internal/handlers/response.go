package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/anonto42/socially/internal/identity"
	"github.com/anonto42/socially/internal/middleware"
	"github.com/anonto42/socially/internal/models"
	"github.com/labstack/echo/v4"
)

// errUnauthenticated marks a missing principal, as opposed to acting on
// someone else's resource.
var errUnauthenticated = models.NewUnauthorizedError("Authentication required")

// statusFor maps an error classification to an HTTP status.
func statusFor(err error) int {
	if errors.Is(err, errUnauthenticated) {
		return http.StatusUnauthorized
	}
	switch models.KindOf(err) {
	case models.KindValidation:
		return http.StatusBadRequest
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func success[T any](c echo.Context, status int, data T) error {
	return c.JSON(status, models.Ok(data))
}

func failure(c echo.Context, err error) error {
	return c.JSON(statusFor(err), models.Fail[any](err))
}

// actorID resolves the authenticated caller to an internal user id.
func actorID(c echo.Context, resolver *identity.Resolver) (uint, error) {
	id, ok, err := resolver.CurrentUserID(c.Request().Context(), middleware.ProfileFrom(c))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errUnauthenticated
	}
	return id, nil
}

// viewerID is actorID for read paths, where any failure means "anonymous".
func viewerID(c echo.Context, resolver *identity.Resolver) (uint, bool) {
	id, err := actorID(c, resolver)
	return id, err == nil
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return models.NewValidationError("Invalid request payload")
	}
	return c.Validate(req)
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid " + name)
	}
	return uint(id), nil
}

// ErrorHandler renders errors that escape handlers, including routing and
// middleware rejections, as a failed action result.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			message, _ := he.Message.(string)
			if message == "" {
				message = http.StatusText(he.Code)
			}
			body := models.ActionResult[any]{Error: &models.ActionError{Kind: kindForStatus(he.Code), Message: message}}
			if err := c.JSON(he.Code, body); err != nil {
				logger.ErrorContext(c.Request().Context(), "write error response failed", slog.String("error", err.Error()))
			}
			return
		}

		if err := failure(c, err); err != nil {
			logger.ErrorContext(c.Request().Context(), "write error response failed", slog.String("error", err.Error()))
		}
	}
}

func kindForStatus(code int) models.ErrorKind {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return models.KindUnauthorized
	case code == http.StatusNotFound:
		return models.KindNotFound
	case code >= 400 && code < 500:
		return models.KindValidation
	default:
		return models.KindStorage
	}
}
