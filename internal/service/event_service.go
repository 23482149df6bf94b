package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gigwise/eventops/internal/models"
	"github.com/gigwise/eventops/internal/repository"
)

// SystemActor is the actor ID journal entries carry when a scheduled task,
// rather than a person, made the change.
const SystemActor uint = 0

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrClientNotFound = errors.New("client not found")
)

// Publisher is the slice of the AMQP publisher the services need.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

type EventService interface {
	CreateEnquiry(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListEvents(ctx context.Context, status *models.EventStatus, from, to *time.Time) ([]models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) error

	// SetStatus performs the generic "update state + journal + notify"
	// transition. No legal-transition check is applied: any status may be
	// set on any event.
	SetStatus(ctx context.Context, eventID uint, status models.EventStatus, actorID uint, note string) error

	AssignEmployee(ctx context.Context, assignment *models.EventEmployee) error
	ListEmployees(ctx context.Context, eventID uint) ([]models.EventEmployee, error)

	Journal(ctx context.Context, eventID uint, actorID uint, entry string, clientVisible bool) error
	ListJournal(ctx context.Context, eventID uint, clientOnly bool) ([]models.JournalEntry, error)
}

type eventService struct {
	events    repository.EventRepository
	users     repository.UserRepository
	journal   repository.JournalRepository
	publisher Publisher
}

func NewEventService(
	events repository.EventRepository,
	users repository.UserRepository,
	journal repository.JournalRepository,
	publisher Publisher,
) EventService {
	return &eventService{events: events, users: users, journal: journal, publisher: publisher}
}

func (s *eventService) CreateEnquiry(ctx context.Context, event *models.Event) error {
	client, err := s.users.FindByID(ctx, event.ClientID)
	if err != nil {
		return ErrClientNotFound
	}

	if event.Status == "" {
		event.Status = models.StatusEnquiry
	}
	if err := s.events.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	_ = s.Journal(ctx, event.ID, event.ClientID,
		fmt.Sprintf("Enquiry received from %s", client.DisplayName()), false)

	if s.publisher != nil {
		_ = s.publisher.Publish("event.created", event)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, status *models.EventStatus, from, to *time.Time) ([]models.Event, error) {
	return s.events.List(ctx, status, from, to)
}

func (s *eventService) UpdateEvent(ctx context.Context, event *models.Event) error {
	return s.events.Update(ctx, event)
}

func (s *eventService) SetStatus(ctx context.Context, eventID uint, status models.EventStatus, actorID uint, note string) error {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return ErrEventNotFound
	}

	previous := event.Status
	event.Status = status
	if status == models.StatusApproved && event.ApprovedAt == nil {
		now := time.Now()
		event.ApprovedAt = &now
	}

	if err := s.events.Update(ctx, event); err != nil {
		return fmt.Errorf("update event %d: %w", eventID, err)
	}

	entry := fmt.Sprintf("Status changed from %s to %s", previous, status)
	if note != "" {
		entry = entry + ". " + note
	}
	if err := s.Journal(ctx, eventID, actorID, entry, true); err != nil {
		return err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.status_changed", map[string]any{
			"event_id": eventID,
			"from":     previous,
			"to":       status,
		})
	}
	return nil
}

func (s *eventService) AssignEmployee(ctx context.Context, assignment *models.EventEmployee) error {
	if _, err := s.events.FindByID(ctx, assignment.EventID); err != nil {
		return ErrEventNotFound
	}
	employee, err := s.users.FindByID(ctx, assignment.EmployeeID)
	if err != nil {
		return fmt.Errorf("employee %d: %w", assignment.EmployeeID, err)
	}

	if err := s.events.AssignEmployee(ctx, assignment); err != nil {
		return fmt.Errorf("assign employee: %w", err)
	}

	return s.Journal(ctx, assignment.EventID, assignment.EmployeeID,
		fmt.Sprintf("%s assigned as %s", employee.DisplayName(), assignment.Role), false)
}

func (s *eventService) ListEmployees(ctx context.Context, eventID uint) ([]models.EventEmployee, error) {
	return s.events.ListEmployees(ctx, eventID)
}

func (s *eventService) Journal(ctx context.Context, eventID uint, actorID uint, entry string, clientVisible bool) error {
	return s.journal.Append(ctx, &models.JournalEntry{
		EventID:       eventID,
		ActorID:       actorID,
		Entry:         entry,
		ClientVisible: clientVisible,
	})
}

func (s *eventService) ListJournal(ctx context.Context, eventID uint, clientOnly bool) ([]models.JournalEntry, error) {
	return s.journal.ListByEvent(ctx, eventID, clientOnly)
}
