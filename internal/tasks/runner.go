package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gigwise/eventops/internal/models"
	"github.com/gigwise/eventops/internal/repository"
)

var (
	ErrUnknownTask = errors.New("no handler registered for task")
)

// Runner executes tasks on demand. Creating a Runner never runs anything;
// all execution goes through Run.
type Runner struct {
	tasks    repository.TaskRepository
	registry *Registry

	// now is swappable for tests.
	now func() time.Time
}

func NewRunner(tasks repository.TaskRepository, registry *Registry) *Runner {
	return &Runner{tasks: tasks, registry: registry, now: time.Now}
}

// ReadyToExecute reports whether a task is due: it must be active, and its
// next run must be unset or already reached. An inactive task is never due,
// whatever its next-run time says.
func ReadyToExecute(task *models.Task, now time.Time) bool {
	if task == nil || !task.Active {
		return false
	}
	return task.NextRun == nil || !task.NextRun.After(now)
}

// Run executes the named task if it is due. A task that is not due returns
// a RunResult with Ran=false and no error. Bookkeeping (total runs, last
// ran, next run) only advances when the handler reports completion; a
// not-completed pass leaves the task due again on the next beat.
func (r *Runner) Run(ctx context.Context, slug string) (RunResult, error) {
	task, err := r.tasks.FindBySlug(ctx, slug)
	if err != nil {
		return RunResult{Slug: slug}, fmt.Errorf("load task %q: %w", slug, err)
	}

	now := r.now()
	if !ReadyToExecute(task, now) {
		return RunResult{Slug: slug}, nil
	}

	handler, ok := r.registry.Lookup(slug)
	if !ok {
		return RunResult{Slug: slug}, fmt.Errorf("%w: %q", ErrUnknownTask, slug)
	}

	result, err := handler(ctx, task)
	result.Slug = slug
	result.Ran = true
	if err != nil {
		return result, fmt.Errorf("task %q: %w", slug, err)
	}

	if !result.Completed {
		return result, nil
	}

	if err := r.completeTask(ctx, task, now, result); err != nil {
		return result, err
	}
	return result, nil
}

func (r *Runner) completeTask(ctx context.Context, task *models.Task, now time.Time, result RunResult) error {
	next := now.Add(task.Frequency.Duration())
	task.NextRun = &next
	task.LastRan = &now
	task.TotalRuns++
	task.LastResult = result.Summary()

	err := r.tasks.CompleteRun(ctx, task)
	if errors.Is(err, repository.ErrStaleTask) {
		// Another runner recorded its own pass first; its bookkeeping wins.
		log.Printf("[Tasks] %s: concurrent update, bookkeeping skipped", task.Slug)
		return nil
	}
	return err
}
