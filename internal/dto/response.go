package dto

import (
	"encoding/json"
	"time"

	"github.com/gigwise/eventops/internal/models"
	"github.com/gigwise/eventops/internal/tasks"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Role      string `json:"role,omitempty"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.DisplayName(),
		Type:  string(u.Type),
		Role:  u.Role,
	}
}

type TaskResponse struct {
	Slug       string     `json:"slug"`
	Name       string     `json:"name"`
	Active     bool       `json:"active"`
	Frequency  string     `json:"frequency"`
	RunWhen    string     `json:"run_when"`
	Age        string     `json:"age"`
	NextRun    *time.Time `json:"next_run,omitempty"`
	LastRan    *time.Time `json:"last_ran,omitempty"`
	TotalRuns  int        `json:"total_runs"`
	LastResult string     `json:"last_result,omitempty"`
}

func ToTaskResponse(t *models.Task) TaskResponse {
	return TaskResponse{
		Slug:       t.Slug,
		Name:       t.Name,
		Active:     t.Active,
		Frequency:  string(t.Frequency),
		RunWhen:    string(t.RunWhen),
		Age:        t.Age,
		NextRun:    t.NextRun,
		LastRan:    t.LastRan,
		TotalRuns:  t.TotalRuns,
		LastResult: t.LastResult,
	}
}

type SettingResponse struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type RunResultResponse struct {
	Slug      string `json:"slug"`
	Ran       bool   `json:"ran"`
	Completed bool   `json:"completed"`
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
}

func ToRunResultResponse(r tasks.RunResult) RunResultResponse {
	return RunResultResponse{
		Slug:      r.Slug,
		Ran:       r.Ran,
		Completed: r.Completed,
		Processed: r.Processed,
		Skipped:   r.Skipped,
	}
}
