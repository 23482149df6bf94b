package handler

import (
	"errors"
	"net/http"

	"github.com/gigwise/eventops/internal/dto"
	"github.com/gigwise/eventops/internal/middleware"
	"github.com/gigwise/eventops/internal/models"
	"github.com/gigwise/eventops/internal/service"
	"github.com/labstack/echo/v4"
)

type TransactionHandler struct {
	svc service.TransactionService
}

func NewTransactionHandler(svc service.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

func (h *TransactionHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/transactions", h.Create, middleware.RequireCan("edit_txns"))
	g.GET("/transactions/:id", h.Get, middleware.RequireCan("edit_txns"))
	g.PUT("/transactions/:id/complete", h.MarkCompleted, middleware.RequireCan("edit_txns"))
	g.GET("/events/:id/transactions", h.ListByEvent, middleware.RequireCan("edit_txns"))
	g.POST("/events/:id/pay-wages", h.PayWages, middleware.RequireCan("manage_employees"))
}

func (h *TransactionHandler) Create(c echo.Context) error {
	var req dto.CreateTransactionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	txn := models.Transaction{
		EventID:   req.EventID,
		Direction: models.TxnDirection(req.Direction),
		Amount:    req.Amount,
		Party:     req.Party,
		Source:    req.Source,
		Detail:    req.Detail,
	}
	if err := h.svc.Create(c.Request().Context(), &txn); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, txn)
}

func (h *TransactionHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	txn, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "transaction not found")
	}
	return c.JSON(http.StatusOK, txn)
}

func (h *TransactionHandler) MarkCompleted(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var actorID uint
	if user := middleware.CurrentUser(c); user != nil {
		actorID = user.ID
	}

	txn, err := h.svc.MarkCompleted(c.Request().Context(), id, actorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTxnNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTxnNotPending):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, txn)
}

func (h *TransactionHandler) ListByEvent(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	txns, err := h.svc.ListByEvent(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, txns)
}

func (h *TransactionHandler) PayWages(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var actorID uint
	if user := middleware.CurrentUser(c); user != nil {
		actorID = user.ID
	}

	txns, err := h.svc.PayEmployeeWages(c.Request().Context(), id, actorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNothingToPay):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, txns)
}
