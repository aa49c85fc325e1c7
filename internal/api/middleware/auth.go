package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/devsquad/devlog-api/internal/core/ports"
)

// CurrentUserKey is the context key under which the authenticated user's
// live record is stored.
const CurrentUserKey = "current_user"

// Auth validates the bearer token and loads the live user record. The token
// claims alone are not trusted as up-to-date identity: a token for a deleted
// account is rejected here even though its signature is still valid.
func Auth(tokens ports.TokenVerifier, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "token is no longer valid")
			}

			c.Set(CurrentUserKey, user)
			return next(c)
		}
	}
}
