package repository

import (
	"context"

	"github.com/gigwise/eventops/internal/models"
	"gorm.io/gorm"
)

type JournalRepository interface {
	Append(ctx context.Context, entry *models.JournalEntry) error
	ListByEvent(ctx context.Context, eventID uint, clientOnly bool) ([]models.JournalEntry, error)
}

type journalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) Append(ctx context.Context, entry *models.JournalEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *journalRepository) ListByEvent(ctx context.Context, eventID uint, clientOnly bool) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	q := r.db.WithContext(ctx).Where("event_id = ?", eventID)
	if clientOnly {
		q = q.Where("client_visible = ?", true)
	}
	if err := q.Order("created_at ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
