package handler

import (
	"errors"
	"net/http"

	"github.com/gigwise/eventops/internal/dto"
	"github.com/gigwise/eventops/internal/middleware"
	"github.com/gigwise/eventops/internal/models"
	"github.com/gigwise/eventops/internal/repository"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Venues are simple enough that the handler talks straight to the
// repository.
type VenueHandler struct {
	venues repository.VenueRepository
}

func NewVenueHandler(venues repository.VenueRepository) *VenueHandler {
	return &VenueHandler{venues: venues}
}

func (h *VenueHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Create, middleware.RequireCan("add_venue"))
	g.GET("", h.List, middleware.RequireCan("list_venues"))
	g.GET("/:id", h.Get, middleware.RequireCan("list_venues"))
	g.PUT("/:id", h.Update, middleware.RequireCan("add_venue"))
	g.DELETE("/:id", h.Delete, middleware.RequireCan("add_venue"))
}

func (h *VenueHandler) Create(c echo.Context) error {
	var req dto.CreateVenueRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	venue := venueFromRequest(&req)
	if err := h.venues.Create(c.Request().Context(), venue); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, venue)
}

func (h *VenueHandler) List(c echo.Context) error {
	venues, err := h.venues.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, venues)
}

func (h *VenueHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	venue, err := h.venues.FindByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "venue not found")
	}
	return c.JSON(http.StatusOK, venue)
}

func (h *VenueHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.venues.FindByID(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "venue not found")
	}

	var req dto.CreateVenueRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	venue := venueFromRequest(&req)
	venue.ID = id
	if err := h.venues.Update(c.Request().Context(), venue); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, venue)
}

func (h *VenueHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.venues.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "venue not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func venueFromRequest(req *dto.CreateVenueRequest) *models.Venue {
	return &models.Venue{
		Name:            req.Name,
		Address1:        req.Address1,
		Address2:        req.Address2,
		Town:            req.Town,
		County:          req.County,
		Postcode:        req.Postcode,
		ContactName:     req.ContactName,
		ContactPhone:    req.ContactPhone,
		ContactEmail:    req.ContactEmail,
		LowCeiling:      req.LowCeiling,
		PATRequired:     req.PATRequired,
		StairsToVenue:   req.StairsToVenue,
		LimitedParking:  req.LimitedParking,
		SoundLimiter:    req.SoundLimiter,
		InsuranceNeeded: req.InsuranceNeeded,
		Notes:           req.Notes,
	}
}
