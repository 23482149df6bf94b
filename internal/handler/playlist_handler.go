package handler

import (
	"errors"
	"net/http"

	"github.com/gigwise/eventops/internal/dto"
	"github.com/gigwise/eventops/internal/middleware"
	"github.com/gigwise/eventops/internal/models"
	"github.com/gigwise/eventops/internal/service"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type PlaylistHandler struct {
	svc service.PlaylistService
}

func NewPlaylistHandler(svc service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{svc: svc}
}

// RegisterRoutes wires the employee-facing playlist routes.
func (h *PlaylistHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/events/:id/playlist", h.AddEntry, middleware.RequireCan("read_events"))
	g.GET("/events/:id/playlist", h.ListEntries, middleware.RequireCan("read_events"))
	g.DELETE("/playlist/:id", h.RemoveEntry, middleware.RequireCan("manage_events"))
}

// RegisterGuestRoutes wires the unauthenticated guest submission endpoint.
func (h *PlaylistHandler) RegisterGuestRoutes(g *echo.Group) {
	g.POST("/events/:id/playlist", h.AddGuestEntry)
}

func (h *PlaylistHandler) AddEntry(c echo.Context) error {
	return h.addEntry(c, false)
}

func (h *PlaylistHandler) AddGuestEntry(c echo.Context) error {
	return h.addEntry(c, true)
}

func (h *PlaylistHandler) addEntry(c echo.Context, guest bool) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.AddPlaylistEntryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	entry := models.PlaylistEntry{
		EventID:  id,
		Song:     req.Song,
		Artist:   req.Artist,
		Category: req.Category,
		AddedBy:  req.AddedBy,
		Guest:    guest,
	}
	if entry.Category == "" {
		entry.Category = "General"
	}

	if err := h.svc.AddEntry(c.Request().Context(), &entry); err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPlaylistClosed):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *PlaylistHandler) ListEntries(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	entries, err := h.svc.ListEntries(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *PlaylistHandler) RemoveEntry(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.RemoveEntry(c.Request().Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "playlist entry not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
