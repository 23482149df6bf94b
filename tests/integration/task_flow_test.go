//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/gigwise/eventops/internal/models"
	"github.com/gigwise/eventops/internal/repository"
	"github.com/gigwise/eventops/internal/service"
	"github.com/gigwise/eventops/internal/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskStack(t *testing.T) (*tasks.Runner, repository.TaskRepository, repository.EventRepository, repository.JournalRepository) {
	t.Helper()

	eventRepo := repository.NewEventRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	journalRepo := repository.NewJournalRepository(testDB)
	taskRepo := repository.NewTaskRepository(testDB)
	playlistRepo := repository.NewPlaylistRepository(testDB)

	eventSvc := service.NewEventService(eventRepo, userRepo, journalRepo, nil)

	registry := tasks.NewRegistry()
	handlers := tasks.NewHandlers(eventRepo, taskRepo, userRepo, playlistRepo, eventSvc, nil)
	require.NoError(t, handlers.RegisterAll(registry))

	return tasks.NewRunner(taskRepo, registry), taskRepo, eventRepo, journalRepo
}

func seedClient(t *testing.T) *models.User {
	t.Helper()
	client := models.User{
		Type:         models.UserClient,
		Email:        "client@example.com",
		PasswordHash: "x",
		FirstName:    "Ayesha",
		LastName:     "Khan",
	}
	require.NoError(t, testDB.Create(&client).Error)
	return &client
}

// The complete-events task must transition an approved event that finished
// over an hour ago to completed, exactly once.
func TestCompleteEvents_EndToEnd(t *testing.T) {
	cleanTables()
	ctx := context.Background()

	runner, taskRepo, eventRepo, journalRepo := newTaskStack(t)
	require.NoError(t, tasks.SeedDefaults(ctx, taskRepo))

	client := seedClient(t)

	yesterday := time.Now().Add(-24 * time.Hour)
	event := models.Event{
		Name:      "Wedding at The Grange",
		ClientID:  client.ID,
		Status:    models.StatusApproved,
		EventDate: yesterday,
		EndTime:   yesterday,
		Cost:      1000,
		Deposit:   200,
	}
	require.NoError(t, testDB.Create(&event).Error)

	result, err := runner.Run(ctx, tasks.SlugCompleteEvents)
	require.NoError(t, err)
	assert.True(t, result.Ran)
	assert.True(t, result.Completed)
	assert.Equal(t, 1, result.Processed)

	updated, err := eventRepo.FindByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)

	entries, err := journalRepo.ListByEvent(ctx, event.ID, false)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// The task's bookkeeping advanced, so the immediate re-run is not due.
	second, err := runner.Run(ctx, tasks.SlugCompleteEvents)
	require.NoError(t, err)
	assert.False(t, second.Ran)

	// Even with next_run forced back, the run record keeps the event from
	// being transitioned or journaled twice.
	testDB.Model(&models.Task{}).Where("slug = ?", tasks.SlugCompleteEvents).Update("next_run", nil)
	third, err := runner.Run(ctx, tasks.SlugCompleteEvents)
	require.NoError(t, err)
	assert.True(t, third.Ran)
	assert.Equal(t, 0, third.Processed)

	entries, err = journalRepo.ListByEvent(ctx, event.ID, false)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// A due task whose handler finds no work leaves its bookkeeping untouched
// and remains eligible on the next beat.
func TestCompleteEvents_NoWorkLeavesTaskDue(t *testing.T) {
	cleanTables()
	ctx := context.Background()

	runner, taskRepo, _, _ := newTaskStack(t)
	require.NoError(t, tasks.SeedDefaults(ctx, taskRepo))

	result, err := runner.Run(ctx, tasks.SlugCompleteEvents)
	require.NoError(t, err)
	assert.True(t, result.Ran)
	assert.False(t, result.Completed)

	task, err := taskRepo.FindBySlug(ctx, tasks.SlugCompleteEvents)
	require.NoError(t, err)
	assert.Nil(t, task.NextRun)
	assert.Nil(t, task.LastRan)
	assert.Equal(t, 0, task.TotalRuns)
}

// Concurrent bookkeeping writes must not silently clobber each other.
func TestCompleteRun_OptimisticLock(t *testing.T) {
	cleanTables()
	ctx := context.Background()

	taskRepo := repository.NewTaskRepository(testDB)
	require.NoError(t, tasks.SeedDefaults(ctx, taskRepo))

	first, err := taskRepo.FindBySlug(ctx, tasks.SlugCompleteEvents)
	require.NoError(t, err)
	second, err := taskRepo.FindBySlug(ctx, tasks.SlugCompleteEvents)
	require.NoError(t, err)

	now := time.Now()
	first.LastRan = &now
	first.TotalRuns++
	require.NoError(t, taskRepo.CompleteRun(ctx, first))

	second.LastRan = &now
	second.TotalRuns++
	assert.ErrorIs(t, taskRepo.CompleteRun(ctx, second), repository.ErrStaleTask)
}

// Wage payouts create one completed expenditure transaction per unpaid
// assignment and link it back.
func TestPayEmployeeWages_EndToEnd(t *testing.T) {
	cleanTables()
	ctx := context.Background()

	eventRepo := repository.NewEventRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	journalRepo := repository.NewJournalRepository(testDB)
	txnRepo := repository.NewTransactionRepository(testDB)

	eventSvc := service.NewEventService(eventRepo, userRepo, journalRepo, nil)
	txnSvc := service.NewTransactionService(txnRepo, eventRepo, userRepo, eventSvc)

	client := seedClient(t)
	dj := models.User{Type: models.UserEmployee, Email: "dj@example.com", PasswordHash: "x", FirstName: "Marco"}
	require.NoError(t, testDB.Create(&dj).Error)

	event := models.Event{
		Name:      "Birthday Party",
		ClientID:  client.ID,
		Status:    models.StatusCompleted,
		EventDate: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, testDB.Create(&event).Error)
	require.NoError(t, testDB.Create(&models.EventEmployee{
		EventID: event.ID, EmployeeID: dj.ID, Role: "DJ", Wage: 150,
	}).Error)

	created, err := txnSvc.PayEmployeeWages(ctx, event.ID, 1)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, models.TxnCompleted, created[0].Status)
	assert.Equal(t, models.TxnExpenditure, created[0].Direction)
	assert.Equal(t, 150.0, created[0].Amount)

	assignments, err := eventRepo.ListEmployees(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, models.PaymentPaid, assignments[0].PaymentStatus)
	require.NotNil(t, assignments[0].WageTxnID)
	assert.Equal(t, created[0].ID, *assignments[0].WageTxnID)

	// Second payout attempt finds nothing due.
	_, err = txnSvc.PayEmployeeWages(ctx, event.ID, 1)
	assert.ErrorIs(t, err, service.ErrNothingToPay)
}
