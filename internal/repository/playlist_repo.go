package repository

import (
	"context"

	"github.com/gigwise/eventops/internal/models"
	"gorm.io/gorm"
)

type PlaylistRepository interface {
	Add(ctx context.Context, entry *models.PlaylistEntry) error
	ListByEvent(ctx context.Context, eventID uint) ([]models.PlaylistEntry, error)
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
	Remove(ctx context.Context, entryID uint) error
}

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Add(ctx context.Context, entry *models.PlaylistEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *playlistRepository) ListByEvent(ctx context.Context, eventID uint) ([]models.PlaylistEntry, error) {
	var entries []models.PlaylistEntry
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("category ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *playlistRepository) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PlaylistEntry{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *playlistRepository) Remove(ctx context.Context, entryID uint) error {
	res := r.db.WithContext(ctx).Delete(&models.PlaylistEntry{}, entryID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
