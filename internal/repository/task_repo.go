package repository

import (
	"context"
	"errors"
	"time"

	"github.com/gigwise/eventops/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStaleTask means another runner updated the task row between our read and
// write. The caller should treat the run's bookkeeping as lost to the other
// writer, not retry blindly.
var ErrStaleTask = errors.New("task row was modified concurrently")

type TaskRepository interface {
	FindBySlug(ctx context.Context, slug string) (*models.Task, error)
	ListAll(ctx context.Context) ([]models.Task, error)
	Seed(ctx context.Context, task *models.Task) error
	SetActive(ctx context.Context, slug string, active bool) error

	// CompleteRun persists post-run bookkeeping with an optimistic version
	// check; returns ErrStaleTask when the row changed underneath us.
	CompleteRun(ctx context.Context, task *models.Task) error

	HasRun(ctx context.Context, slug string, eventID uint) (bool, error)
	RecordRun(ctx context.Context, slug string, eventID uint, ranAt time.Time) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) FindBySlug(ctx context.Context, slug string) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListAll(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).Order("slug ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Seed inserts a default task definition, leaving any existing row for the
// same slug untouched so operator edits survive restarts.
func (r *taskRepository) Seed(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).
		Create(task).Error
}

func (r *taskRepository) SetActive(ctx context.Context, slug string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("slug = ?", slug).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *taskRepository) CompleteRun(ctx context.Context, task *models.Task) error {
	res := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]any{
			"next_run":    task.NextRun,
			"last_ran":    task.LastRan,
			"total_runs":  task.TotalRuns,
			"last_result": task.LastResult,
			"version":     task.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleTask
	}
	task.Version++
	return nil
}

func (r *taskRepository) HasRun(ctx context.Context, slug string, eventID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TaskLog{}).
		Where("task_slug = ? AND event_id = ?", slug, eventID).
		Count(&count).Error
	return count > 0, err
}

func (r *taskRepository) RecordRun(ctx context.Context, slug string, eventID uint, ranAt time.Time) error {
	return r.db.WithContext(ctx).Create(&models.TaskLog{
		TaskSlug: slug,
		EventID:  eventID,
		RanAt:    ranAt,
	}).Error
}
