package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devsquad/devlog-api/internal/api/middleware"
	"github.com/devsquad/devlog-api/internal/core/domain"
)

// currentUser extracts the live user record injected by the Auth middleware.
// Its presence proves the middleware ran; a protected handler reached without
// it is a routing mistake and is rejected with 401.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.CurrentUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
