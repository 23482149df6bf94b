package repository

import (
	"context"
	"time"

	"github.com/gigwise/eventops/internal/models"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error)
	List(ctx context.Context, status *models.EventStatus, from, to *time.Time) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.EventStatus) error

	AssignEmployee(ctx context.Context, assignment *models.EventEmployee) error
	ListEmployees(ctx context.Context, eventID uint) ([]models.EventEmployee, error)
	ListEmployeesForUpdate(ctx context.Context, tx *gorm.DB, eventID uint) ([]models.EventEmployee, error)
	UpdateEmployee(ctx context.Context, tx *gorm.DB, assignment *models.EventEmployee) error

	// Task-runner selection queries. Cutoffs are computed by the caller; the
	// repository only turns them into SQL.
	FindEndedBefore(ctx context.Context, cutoff time.Time) ([]models.Event, error)
	FindStaleEnquiries(ctx context.Context, cutoff time.Time) ([]models.Event, error)
	FindDepositDueSince(ctx context.Context, cutoff time.Time) ([]models.Event, error)
	FindBalanceDueBetween(ctx context.Context, from, to time.Time) ([]models.Event, error)
	FindApprovedBetween(ctx context.Context, from, to time.Time) ([]models.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Preload("Employees").First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	var event models.Event
	err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context, status *models.EventStatus, from, to *time.Time) ([]models.Event, error) {
	var events []models.Event
	q := r.db.WithContext(ctx)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if from != nil {
		q = q.Where("event_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("event_date <= ?", *to)
	}
	if err := q.Order("event_date ASC, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.EventStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *eventRepository) AssignEmployee(ctx context.Context, assignment *models.EventEmployee) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *eventRepository) ListEmployees(ctx context.Context, eventID uint) ([]models.EventEmployee, error) {
	var assignments []models.EventEmployee
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *eventRepository) ListEmployeesForUpdate(ctx context.Context, tx *gorm.DB, eventID uint) ([]models.EventEmployee, error) {
	var assignments []models.EventEmployee
	err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *eventRepository) UpdateEmployee(ctx context.Context, tx *gorm.DB, assignment *models.EventEmployee) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Save(assignment).Error
}

// FindEndedBefore returns approved events whose finish time is older than the
// cutoff. This is the only task query with an ordering contract (event date
// ascending); the others make no promise about iteration order.
func (r *eventRepository) FindEndedBefore(ctx context.Context, cutoff time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusApproved).
		Where("event_date + (end_time - date_trunc('day', end_time)) < ?", cutoff).
		Order("event_date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindStaleEnquiries(ctx context.Context, cutoff time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("status IN ?", []models.EventStatus{models.StatusUnattended, models.StatusEnquiry}).
		Where("created_at < ?", cutoff).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindDepositDueSince(ctx context.Context, cutoff time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusApproved).
		Where("deposit_status = ?", models.PaymentDue).
		Where("approved_at IS NOT NULL AND approved_at < ?", cutoff).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindBalanceDueBetween(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusApproved).
		Where("balance_status = ?", models.PaymentDue).
		Where("event_date BETWEEN ? AND ?", from, to).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindApprovedBetween(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusApproved).
		Where("event_date BETWEEN ? AND ?", from, to).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
