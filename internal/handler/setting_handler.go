package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gigwise/eventops/internal/dto"
	"github.com/gigwise/eventops/internal/middleware"
	"github.com/gigwise/eventops/internal/perms"
	"github.com/gigwise/eventops/internal/repository"
	"github.com/labstack/echo/v4"
)

// SettingHandler exposes the options store. Settings are admin territory, so
// every route is gated on the full-admin capability.
type SettingHandler struct {
	settings repository.SettingRepository
}

func NewSettingHandler(settings repository.SettingRepository) *SettingHandler {
	return &SettingHandler{settings: settings}
}

func (h *SettingHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:key", h.Get, middleware.RequireCan(perms.ManageCap))
	g.PUT("/:key", h.Put, middleware.RequireCan(perms.ManageCap))
	g.DELETE("/:key", h.Delete, middleware.RequireCan(perms.ManageCap))
}

func (h *SettingHandler) Get(c echo.Context) error {
	key := c.Param("key")

	var value json.RawMessage
	found, err := h.settings.Get(c.Request().Context(), key, &value)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "setting not found")
	}
	return c.JSON(http.StatusOK, dto.SettingResponse{Key: key, Value: value})
}

func (h *SettingHandler) Put(c echo.Context) error {
	key := c.Param("key")

	var req dto.SetSettingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.settings.Set(c.Request().Context(), key, req.Value); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.SettingResponse{Key: key, Value: req.Value})
}

func (h *SettingHandler) Delete(c echo.Context) error {
	if err := h.settings.Delete(c.Request().Context(), c.Param("key")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
