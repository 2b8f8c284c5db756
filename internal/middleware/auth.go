package middleware

import (
	"net/http"
	"strings"

	"github.com/anonto42/socially/internal/identity"
	"github.com/labstack/echo/v4"
)

const profileKey = "identityProfile"

// Authenticate verifies a Bearer token when one is present and stores the
// verified profile in the context. Requests without an Authorization header
// pass through unauthenticated; malformed or invalid tokens are rejected.
func Authenticate(verifier identity.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			profile, err := verifier.Verify(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token").SetInternal(err)
			}

			c.Set(profileKey, profile)
			return next(c)
		}
	}
}

// RequireProfile rejects requests that Authenticate left unauthenticated.
func RequireProfile(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ProfileFrom(c) == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}
		return next(c)
	}
}

// ProfileFrom returns the verified caller, or nil when unauthenticated.
func ProfileFrom(c echo.Context) *identity.Profile {
	p, _ := c.Get(profileKey).(*identity.Profile)
	return p
}
