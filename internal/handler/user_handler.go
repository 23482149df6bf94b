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

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Create, middleware.RequireCan("manage_employees"))
	g.GET("", h.List, middleware.RequireCan("list_employees"))
}

func (h *UserHandler) Create(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user := models.User{
		Email:     req.Email,
		Type:      models.UserType(req.Type),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      req.Role,
	}
	err := h.svc.CreateUser(c.Request().Context(), &user, req.Password, req.Levels)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		if errors.Is(err, service.ErrUnknownLevel) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, dto.ToUserResponse(&user))
}

func (h *UserHandler) List(c echo.Context) error {
	userType := models.UserEmployee
	if t := c.QueryParam("type"); t != "" {
		userType = models.UserType(t)
	}

	users, err := h.svc.ListUsers(c.Request().Context(), userType)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.ToUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, resp)
}
