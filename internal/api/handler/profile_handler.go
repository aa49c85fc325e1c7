package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devsquad/devlog-api/internal/core/ports"
)

// ProfileHandler exposes the authenticated user's own record.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Me handles GET /profile/me.
//
// @Summary      Get the current user's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserView
// @Failure      401  {object}  errorResponse
// @Router       /profile/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Update handles PUT /profile. Only present fields overwrite; password and
// role cannot be changed through this endpoint.
//
// @Summary      Update the current user's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  domain.UserView
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.service.Update(c.Request().Context(), user.ID, ports.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Team:  req.Team,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}
