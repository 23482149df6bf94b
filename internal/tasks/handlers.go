package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gigwise/eventops/internal/models"
	"github.com/gigwise/eventops/internal/notify"
	"github.com/gigwise/eventops/internal/repository"
	"github.com/gigwise/eventops/internal/service"
)

// Handlers owns the per-task behaviour. Each handler follows the same shape:
// build the time window, fetch qualifying events, skip any event the task has
// already run for, apply the effect, then record the run so the skip holds
// next time.
type Handlers struct {
	events    repository.EventRepository
	taskRepo  repository.TaskRepository
	users     repository.UserRepository
	playlists repository.PlaylistRepository
	eventSvc  service.EventService
	mailer    *notify.Mailer

	now func() time.Time
}

func NewHandlers(
	events repository.EventRepository,
	taskRepo repository.TaskRepository,
	users repository.UserRepository,
	playlists repository.PlaylistRepository,
	eventSvc service.EventService,
	mailer *notify.Mailer,
) *Handlers {
	return &Handlers{
		events:    events,
		taskRepo:  taskRepo,
		users:     users,
		playlists: playlists,
		eventSvc:  eventSvc,
		mailer:    mailer,
		now:       time.Now,
	}
}

// RegisterAll wires every known slug into the registry. Startup fails loudly
// on a duplicate rather than resolving handlers reflectively at run time.
func (h *Handlers) RegisterAll(r *Registry) error {
	for slug, fn := range map[string]Handler{
		SlugCompleteEvents:       h.CompleteEvents,
		SlugFailEnquiry:          h.FailEnquiries,
		SlugRequestDeposit:       h.RequestDeposit,
		SlugBalanceReminder:      h.BalanceReminder,
		SlugPlaylistNotification: h.PlaylistNotification,
	} {
		if err := r.Register(slug, fn); err != nil {
			return err
		}
	}
	return nil
}

// CompleteEvents transitions approved events whose finish time passed longer
// ago than the task's age into completed.
func (h *Handlers) CompleteEvents(ctx context.Context, task *models.Task) (RunResult, error) {
	var result RunResult

	window, err := BuildWindow(task.RunWhen, task.Age, h.now())
	if err != nil {
		return result, err
	}

	events, err := h.events.FindEndedBefore(ctx, window.Cutoff)
	if err != nil {
		return result, err
	}

	for i := range events {
		event := &events[i]
		ran, err := h.taskRepo.HasRun(ctx, task.Slug, event.ID)
		if err != nil {
			return result, err
		}
		if ran {
			result.Skipped++
			continue
		}

		if err := h.eventSvc.SetStatus(ctx, event.ID, models.StatusCompleted, service.SystemActor,
			"Event marked as completed by the maintenance task"); err != nil {
			log.Printf("[Tasks] %s: event %d: %v", task.Slug, event.ID, err)
			continue
		}
		if err := h.taskRepo.RecordRun(ctx, task.Slug, event.ID, h.now()); err != nil {
			return result, err
		}
		result.Processed++
	}

	result.Completed = result.Processed > 0
	return result, nil
}

// FailEnquiries marks enquiries that were never progressed within the task's
// age as failed.
func (h *Handlers) FailEnquiries(ctx context.Context, task *models.Task) (RunResult, error) {
	var result RunResult

	window, err := BuildWindow(task.RunWhen, task.Age, h.now())
	if err != nil {
		return result, err
	}

	events, err := h.events.FindStaleEnquiries(ctx, window.Cutoff)
	if err != nil {
		return result, err
	}

	for i := range events {
		event := &events[i]
		ran, err := h.taskRepo.HasRun(ctx, task.Slug, event.ID)
		if err != nil {
			return result, err
		}
		if ran {
			result.Skipped++
			continue
		}

		if err := h.eventSvc.SetStatus(ctx, event.ID, models.StatusFailed, service.SystemActor,
			"Enquiry marked as lost by the maintenance task"); err != nil {
			log.Printf("[Tasks] %s: event %d: %v", task.Slug, event.ID, err)
			continue
		}
		if err := h.taskRepo.RecordRun(ctx, task.Slug, event.ID, h.now()); err != nil {
			return result, err
		}
		result.Processed++
	}

	result.Completed = result.Processed > 0
	return result, nil
}

// RequestDeposit emails clients whose deposit is still due a set time after
// their event was approved.
func (h *Handlers) RequestDeposit(ctx context.Context, task *models.Task) (RunResult, error) {
	return h.reminderPass(ctx, task, func(ctx context.Context, window Window) ([]models.Event, error) {
		return h.events.FindDepositDueSince(ctx, window.Cutoff)
	}, "Deposit request sent to client")
}

// BalanceReminder emails clients whose balance is still due as their event
// date approaches.
func (h *Handlers) BalanceReminder(ctx context.Context, task *models.Task) (RunResult, error) {
	return h.reminderPass(ctx, task, func(ctx context.Context, window Window) ([]models.Event, error) {
		return h.events.FindBalanceDueBetween(ctx, window.From, window.To)
	}, "Balance reminder sent to client")
}

// reminderPass is the shared shape of the client payment emails: select,
// skip already-notified, render, send, journal, record.
func (h *Handlers) reminderPass(
	ctx context.Context,
	task *models.Task,
	find func(ctx context.Context, window Window) ([]models.Event, error),
	journalNote string,
) (RunResult, error) {
	var result RunResult

	window, err := BuildWindow(task.RunWhen, task.Age, h.now())
	if err != nil {
		return result, err
	}

	events, err := find(ctx, window)
	if err != nil {
		return result, err
	}

	for i := range events {
		event := &events[i]
		ran, err := h.taskRepo.HasRun(ctx, task.Slug, event.ID)
		if err != nil {
			return result, err
		}
		if ran {
			result.Skipped++
			continue
		}

		client, err := h.users.FindByID(ctx, event.ClientID)
		if err != nil {
			log.Printf("[Tasks] %s: event %d has no client %d: %v", task.Slug, event.ID, event.ClientID, err)
			continue
		}

		data := notify.TemplateData{
			ClientName: client.DisplayName(),
			EventName:  event.Name,
			EventDate:  event.EventDate.Format("Monday, 2 January 2006"),
			Deposit:    fmt.Sprintf("%.2f", event.Deposit),
			Balance:    fmt.Sprintf("%.2f", event.Cost-event.Deposit),
		}
		if err := h.mailer.Send(client.Email, task.EmailFrom, task.EmailSubject, task.EmailTemplate, event.ID, data); err != nil {
			log.Printf("[Tasks] %s: event %d: send failed: %v", task.Slug, event.ID, err)
			continue
		}

		if err := h.eventSvc.Journal(ctx, event.ID, service.SystemActor, journalNote, true); err != nil {
			return result, err
		}
		if err := h.taskRepo.RecordRun(ctx, task.Slug, event.ID, h.now()); err != nil {
			return result, err
		}
		result.Processed++
	}

	result.Completed = result.Processed > 0
	return result, nil
}

// PlaylistNotification reminds the primary employee of each upcoming approved
// event how many playlist entries the client and guests have submitted.
func (h *Handlers) PlaylistNotification(ctx context.Context, task *models.Task) (RunResult, error) {
	var result RunResult

	window, err := BuildWindow(task.RunWhen, task.Age, h.now())
	if err != nil {
		return result, err
	}

	events, err := h.events.FindApprovedBetween(ctx, window.From, window.To)
	if err != nil {
		return result, err
	}

	for i := range events {
		event := &events[i]
		ran, err := h.taskRepo.HasRun(ctx, task.Slug, event.ID)
		if err != nil {
			return result, err
		}
		if ran {
			result.Skipped++
			continue
		}

		count, err := h.playlists.CountByEvent(ctx, event.ID)
		if err != nil {
			return result, err
		}
		if count == 0 {
			result.Skipped++
			continue
		}

		employee, err := h.users.FindByID(ctx, event.PrimaryEmployeeID)
		if err != nil {
			log.Printf("[Tasks] %s: event %d has no primary employee: %v", task.Slug, event.ID, err)
			continue
		}

		data := notify.TemplateData{
			EmployeeName: employee.DisplayName(),
			EventName:    event.Name,
			EventDate:    event.EventDate.Format("Monday, 2 January 2006"),
		}
		if err := h.mailer.Send(employee.Email, task.EmailFrom, task.EmailSubject, task.EmailTemplate, event.ID, data); err != nil {
			log.Printf("[Tasks] %s: event %d: send failed: %v", task.Slug, event.ID, err)
			continue
		}

		if err := h.taskRepo.RecordRun(ctx, task.Slug, event.ID, h.now()); err != nil {
			return result, err
		}
		result.Processed++
	}

	result.Completed = result.Processed > 0
	return result, nil
}
