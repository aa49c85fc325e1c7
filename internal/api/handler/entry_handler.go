package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devsquad/devlog-api/internal/api/metrics"
	"github.com/devsquad/devlog-api/internal/core/ports"
)

// EntryHandler handles HTTP requests for work-log entries.
type EntryHandler struct {
	service ports.EntryService
}

func NewEntryHandler(service ports.EntryService) *EntryHandler {
	return &EntryHandler{service: service}
}

// Create handles POST /entries.
//
// @Summary      Create a daily log entry
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEntryRequest  true  "Entry details"
// @Success      201   {object}  entryResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /entries [post]
func (h *EntryHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	input := ports.CreateEntryInput{
		WorkDone:         req.WorkDone,
		Blockers:         req.Blockers,
		Learnings:        req.Learnings,
		GithubCommitLink: req.GithubCommitLink,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	entry, err := h.service.Create(c.Request().Context(), input, user.ID)
	if err != nil {
		return err
	}

	metrics.EntriesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// List handles GET /entries — the team feed, newest date first.
//
// @Summary      List all log entries (team view)
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entryResponse
// @Failure      401  {object}  errorResponse
// @Router       /entries [get]
func (h *EntryHandler) List(c echo.Context) error {
	entries, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /entries/:id. Reads are team-wide: any authenticated user
// may fetch any entry, matching the feed's visibility.
//
// @Summary      Get a single entry by id
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Entry id"
// @Success      200  {object}  entryResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /entries/{id} [get]
func (h *EntryHandler) Get(c echo.Context) error {
	entry, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// Update handles PUT /entries/:id (owner only).
//
// @Summary      Update an entry (owner only)
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Entry id"
// @Param        body  body      updateEntryRequest  true  "Fields to update"
// @Success      200   {object}  entryResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /entries/{id} [put]
func (h *EntryHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	entry, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateEntryInput{
		WorkDone:         req.WorkDone,
		Blockers:         req.Blockers,
		Learnings:        req.Learnings,
		GithubCommitLink: req.GithubCommitLink,
	}, user.ID)
	if err != nil {
		return err
	}

	metrics.EntriesMutatedTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// Delete handles DELETE /entries/:id (owner only). Returns an acknowledgment,
// not the deleted content.
//
// @Summary      Delete an entry (owner only)
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Entry id"
// @Success      200  {object}  deleteEntryResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /entries/{id} [delete]
func (h *EntryHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return err
	}

	metrics.EntriesMutatedTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, deleteEntryResponse{Message: "Entry deleted successfully"})
}
