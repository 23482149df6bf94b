package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gigwise/eventops/internal/dto"
	"github.com/gigwise/eventops/internal/middleware"
	"github.com/gigwise/eventops/internal/models"
	"github.com/gigwise/eventops/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateEnquiry, middleware.RequireCan("manage_events"))
	g.GET("", h.ListEvents, middleware.RequireCan("read_events"))
	g.GET("/:id", h.GetEvent, middleware.RequireCan("read_events"))
	g.PUT("/:id", h.UpdateEvent, middleware.RequireCan("edit_events"))
	g.PUT("/:id/status", h.SetStatus, middleware.RequireCan("manage_events"))
	g.POST("/:id/employees", h.AssignEmployee, middleware.RequireCan("manage_employees"))
	g.GET("/:id/employees", h.ListEmployees, middleware.RequireCan("read_events"))
	g.GET("/:id/journal", h.ListJournal, middleware.RequireCan("read_events"))
}

func (h *EventHandler) CreateEnquiry(c echo.Context) error {
	var req dto.CreateEnquiryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event := models.Event{
		Name:      req.Name,
		ClientID:  req.ClientID,
		EventDate: req.EventDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		VenueID:   req.VenueID,
		Package:   req.Package,
		Addons:    req.Addons,
		Cost:      req.Cost,
		Deposit:   req.Deposit,
		Notes:     req.Notes,
		Status:    models.StatusEnquiry,
	}
	if user := middleware.CurrentUser(c); user != nil {
		event.PrimaryEmployeeID = user.ID
	}

	if err := h.svc.CreateEnquiry(c.Request().Context(), &event); err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	event, err := h.svc.GetEvent(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "event not found")
	}
	return c.JSON(http.StatusOK, event)
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	var status *models.EventStatus
	if s := c.QueryParam("status"); s != "" {
		es := models.EventStatus(s)
		status = &es
	}

	var from, to *time.Time
	if s := c.QueryParam("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid from date")
		}
		from = &t
	}
	if s := c.QueryParam("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid to date")
		}
		to = &t
	}

	events, err := h.svc.ListEvents(c.Request().Context(), status, from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, events)
}

// UpdateEvent rewrites the booking detail of an existing event. Status and
// payment flags are not touched here; those move through SetStatus and the
// transaction flow.
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event, err := h.svc.GetEvent(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "event not found")
	}

	event.Name = req.Name
	event.EventDate = req.EventDate
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime
	event.VenueID = req.VenueID
	event.Package = req.Package
	event.Addons = req.Addons
	event.Cost = req.Cost
	event.Deposit = req.Deposit
	event.Notes = req.Notes

	if err := h.svc.UpdateEvent(c.Request().Context(), event); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, event)
}

func (h *EventHandler) SetStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.SetStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var actorID uint
	if user := middleware.CurrentUser(c); user != nil {
		actorID = user.ID
	}

	err = h.svc.SetStatus(c.Request().Context(), id, models.EventStatus(req.Status), actorID, req.Note)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EventHandler) AssignEmployee(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.AssignEmployeeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	assignment := models.EventEmployee{
		EventID:    id,
		EmployeeID: req.EmployeeID,
		Role:       req.Role,
		Wage:       req.Wage,
	}
	if err := h.svc.AssignEmployee(c.Request().Context(), &assignment); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, assignment)
}

func (h *EventHandler) ListEmployees(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	assignments, err := h.svc.ListEmployees(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, assignments)
}

func (h *EventHandler) ListJournal(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	entries, err := h.svc.ListJournal(c.Request().Context(), id, false)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entries)
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
