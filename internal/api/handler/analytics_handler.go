package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devsquad/devlog-api/internal/core/ports"
)

// AnalyticsHandler exposes usage statistics derived from the stores.
type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Stats handles GET /analytics/stats — the caller's own entry count.
//
// @Summary      Get the current user's entry statistics
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.UserStats
// @Failure      401  {object}  errorResponse
// @Router       /analytics/stats [get]
func (h *AnalyticsHandler) Stats(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	stats, err := h.service.UserStats(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Team handles GET /analytics/team — a bounded listing of known users.
//
// @Summary      Get the team members overview
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.TeamOverview
// @Failure      401  {object}  errorResponse
// @Router       /analytics/team [get]
func (h *AnalyticsHandler) Team(c echo.Context) error {
	overview, err := h.service.TeamOverview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}
