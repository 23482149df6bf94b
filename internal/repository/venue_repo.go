package repository

import (
	"context"

	"github.com/gigwise/eventops/internal/models"
	"gorm.io/gorm"
)

type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	FindByID(ctx context.Context, id uint) (*models.Venue, error)
	ListAll(ctx context.Context) ([]models.Venue, error)
	Update(ctx context.Context, venue *models.Venue) error
	Delete(ctx context.Context, id uint) error
}

type venueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) Create(ctx context.Context, venue *models.Venue) error {
	return r.db.WithContext(ctx).Create(venue).Error
}

func (r *venueRepository) FindByID(ctx context.Context, id uint) (*models.Venue, error) {
	var venue models.Venue
	if err := r.db.WithContext(ctx).First(&venue, id).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) ListAll(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&venues).Error; err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *venueRepository) Update(ctx context.Context, venue *models.Venue) error {
	return r.db.WithContext(ctx).Save(venue).Error
}

func (r *venueRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Venue{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
