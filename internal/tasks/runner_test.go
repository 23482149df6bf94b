package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gigwise/eventops/internal/models"
	"github.com/gigwise/eventops/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock TaskRepository ---

type mockTaskRepo struct {
	findBySlugFn  func(ctx context.Context, slug string) (*models.Task, error)
	completeRunFn func(ctx context.Context, task *models.Task) error
	hasRunFn      func(ctx context.Context, slug string, eventID uint) (bool, error)
	recordRunFn   func(ctx context.Context, slug string, eventID uint, ranAt time.Time) error
}

func (m *mockTaskRepo) FindBySlug(ctx context.Context, slug string) (*models.Task, error) {
	return m.findBySlugFn(ctx, slug)
}
func (m *mockTaskRepo) ListAll(ctx context.Context) ([]models.Task, error) { return nil, nil }
func (m *mockTaskRepo) Seed(ctx context.Context, task *models.Task) error  { return nil }
func (m *mockTaskRepo) SetActive(ctx context.Context, slug string, active bool) error {
	return nil
}
func (m *mockTaskRepo) CompleteRun(ctx context.Context, task *models.Task) error {
	return m.completeRunFn(ctx, task)
}
func (m *mockTaskRepo) HasRun(ctx context.Context, slug string, eventID uint) (bool, error) {
	if m.hasRunFn == nil {
		return false, nil
	}
	return m.hasRunFn(ctx, slug, eventID)
}
func (m *mockTaskRepo) RecordRun(ctx context.Context, slug string, eventID uint, ranAt time.Time) error {
	if m.recordRunFn == nil {
		return nil
	}
	return m.recordRunFn(ctx, slug, eventID, ranAt)
}

var _ repository.TaskRepository = (*mockTaskRepo)(nil)

// --- ReadyToExecute ---

func TestReadyToExecute(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	cases := []struct {
		name    string
		active  bool
		nextRun *time.Time
		want    bool
	}{
		{"active with no next run", true, nil, true},
		{"active and due", true, &past, true},
		{"active and due exactly now", true, &now, true},
		{"active but not yet due", true, &future, false},
		{"inactive with no next run", false, nil, false},
		{"inactive even when due", false, &past, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := &models.Task{Active: tc.active, NextRun: tc.nextRun}
			assert.Equal(t, tc.want, ReadyToExecute(task, now))
		})
	}
}

func TestReadyToExecute_NilTask(t *testing.T) {
	assert.False(t, ReadyToExecute(nil, time.Now()))
}

// --- Run ---

func fixedRunner(repo *mockTaskRepo, registry *Registry, now time.Time) *Runner {
	r := NewRunner(repo, registry)
	r.now = func() time.Time { return now }
	return r
}

func TestRun_NotDue(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)

	repo := &mockTaskRepo{
		findBySlugFn: func(ctx context.Context, slug string) (*models.Task, error) {
			return &models.Task{Slug: slug, Active: true, NextRun: &future}, nil
		},
	}

	registry := NewRegistry()
	called := false
	require.NoError(t, registry.Register("some-task", func(ctx context.Context, task *models.Task) (RunResult, error) {
		called = true
		return RunResult{Completed: true}, nil
	}))

	result, err := fixedRunner(repo, registry, now).Run(context.Background(), "some-task")

	assert.NoError(t, err)
	assert.False(t, result.Ran)
	assert.False(t, called)
}

func TestRun_CompletedAdvancesNextRun(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	var saved *models.Task
	repo := &mockTaskRepo{
		findBySlugFn: func(ctx context.Context, slug string) (*models.Task, error) {
			return &models.Task{Slug: slug, Active: true, Frequency: models.FreqDaily, TotalRuns: 4}, nil
		},
		completeRunFn: func(ctx context.Context, task *models.Task) error {
			saved = task
			return nil
		},
	}

	registry := NewRegistry()
	require.NoError(t, registry.Register("some-task", func(ctx context.Context, task *models.Task) (RunResult, error) {
		return RunResult{Completed: true, Processed: 2}, nil
	}))

	result, err := fixedRunner(repo, registry, now).Run(context.Background(), "some-task")

	require.NoError(t, err)
	assert.True(t, result.Ran)
	assert.True(t, result.Completed)

	require.NotNil(t, saved)
	require.NotNil(t, saved.NextRun)
	assert.Equal(t, now.Add(24*time.Hour), *saved.NextRun)
	require.NotNil(t, saved.LastRan)
	assert.Equal(t, now, *saved.LastRan)
	assert.Equal(t, 5, saved.TotalRuns)
	assert.Equal(t, "processed 2, skipped 0", saved.LastResult)
}

func TestRun_UnknownFrequencyDefaultsToHourly(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	var saved *models.Task
	repo := &mockTaskRepo{
		findBySlugFn: func(ctx context.Context, slug string) (*models.Task, error) {
			return &models.Task{Slug: slug, Active: true, Frequency: "Fortnightly"}, nil
		},
		completeRunFn: func(ctx context.Context, task *models.Task) error {
			saved = task
			return nil
		},
	}

	registry := NewRegistry()
	require.NoError(t, registry.Register("some-task", func(ctx context.Context, task *models.Task) (RunResult, error) {
		return RunResult{Completed: true, Processed: 1}, nil
	}))

	_, err := fixedRunner(repo, registry, now).Run(context.Background(), "some-task")

	require.NoError(t, err)
	require.NotNil(t, saved.NextRun)
	assert.Equal(t, now.Add(time.Hour), *saved.NextRun)
}

func TestRun_NotCompletedLeavesBookkeepingUntouched(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	bookkeepingTouched := false
	repo := &mockTaskRepo{
		findBySlugFn: func(ctx context.Context, slug string) (*models.Task, error) {
			return &models.Task{Slug: slug, Active: true, Frequency: models.FreqDaily, TotalRuns: 7}, nil
		},
		completeRunFn: func(ctx context.Context, task *models.Task) error {
			bookkeepingTouched = true
			return nil
		},
	}

	registry := NewRegistry()
	require.NoError(t, registry.Register("some-task", func(ctx context.Context, task *models.Task) (RunResult, error) {
		return RunResult{Completed: false}, nil
	}))

	result, err := fixedRunner(repo, registry, now).Run(context.Background(), "some-task")

	assert.NoError(t, err)
	assert.True(t, result.Ran)
	assert.False(t, result.Completed)
	assert.False(t, bookkeepingTouched)
}

func TestRun_HandlerErrorSkipsBookkeeping(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	bookkeepingTouched := false
	repo := &mockTaskRepo{
		findBySlugFn: func(ctx context.Context, slug string) (*models.Task, error) {
			return &models.Task{Slug: slug, Active: true, Frequency: models.FreqDaily}, nil
		},
		completeRunFn: func(ctx context.Context, task *models.Task) error {
			bookkeepingTouched = true
			return nil
		},
	}

	registry := NewRegistry()
	require.NoError(t, registry.Register("some-task", func(ctx context.Context, task *models.Task) (RunResult, error) {
		return RunResult{}, errors.New("db down")
	}))

	_, err := fixedRunner(repo, registry, now).Run(context.Background(), "some-task")

	assert.Error(t, err)
	assert.False(t, bookkeepingTouched)
}

func TestRun_UnknownSlug(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	repo := &mockTaskRepo{
		findBySlugFn: func(ctx context.Context, slug string) (*models.Task, error) {
			return &models.Task{Slug: slug, Active: true}, nil
		},
	}

	_, err := fixedRunner(repo, NewRegistry(), now).Run(context.Background(), "no-such-task")

	assert.ErrorIs(t, err, ErrUnknownTask)
}

func TestRun_StaleBookkeepingIsNotAnError(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	repo := &mockTaskRepo{
		findBySlugFn: func(ctx context.Context, slug string) (*models.Task, error) {
			return &models.Task{Slug: slug, Active: true, Frequency: models.FreqHourly}, nil
		},
		completeRunFn: func(ctx context.Context, task *models.Task) error {
			return repository.ErrStaleTask
		},
	}

	registry := NewRegistry()
	require.NoError(t, registry.Register("some-task", func(ctx context.Context, task *models.Task) (RunResult, error) {
		return RunResult{Completed: true, Processed: 1}, nil
	}))

	result, err := fixedRunner(repo, registry, now).Run(context.Background(), "some-task")

	assert.NoError(t, err)
	assert.True(t, result.Completed)
}

// --- Registry ---

func TestRegistry_DuplicateRegistration(t *testing.T) {
	r := NewRegistry()
	handler := func(ctx context.Context, task *models.Task) (RunResult, error) { return RunResult{}, nil }

	assert.NoError(t, r.Register("a-task", handler))
	assert.Error(t, r.Register("a-task", handler))
}

func TestRegistry_Slugs(t *testing.T) {
	r := NewRegistry()
	handler := func(ctx context.Context, task *models.Task) (RunResult, error) { return RunResult{}, nil }

	assert.NoError(t, r.Register("b-task", handler))
	assert.NoError(t, r.Register("a-task", handler))

	assert.Equal(t, []string{"a-task", "b-task"}, r.Slugs())
}
