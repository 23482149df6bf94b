package handler

import (
	"errors"
	"net/http"

	"github.com/gigwise/eventops/internal/dto"
	"github.com/gigwise/eventops/internal/middleware"
	"github.com/gigwise/eventops/internal/repository"
	"github.com/gigwise/eventops/internal/tasks"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type TaskHandler struct {
	taskRepo repository.TaskRepository
	runner   *tasks.Runner
}

func NewTaskHandler(taskRepo repository.TaskRepository, runner *tasks.Runner) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo, runner: runner}
}

func (h *TaskHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.List, middleware.RequireCan("manage_events"))
	g.PUT("/:slug/active", h.SetActive, middleware.RequireCan("manage_events"))
	g.POST("/:slug/run", h.RunNow, middleware.RequireCan("manage_events"))
}

func (h *TaskHandler) List(c echo.Context) error {
	all, err := h.taskRepo.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.TaskResponse, len(all))
	for i := range all {
		resp[i] = dto.ToTaskResponse(&all[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TaskHandler) SetActive(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid slug")
	}

	var req dto.SetTaskActiveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.taskRepo.SetActive(c.Request().Context(), slug, req.Active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "task not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TaskHandler) RunNow(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid slug")
	}

	result, err := h.runner.Run(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, tasks.ErrUnknownTask) || errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "task not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToRunResultResponse(result))
}
