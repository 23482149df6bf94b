package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gigwise/eventops/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository is the options store. Values are JSON so callers keep
// their own types; a missing key is reported as found=false, never an error.
type SettingRepository interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(ctx context.Context, key string, out any) (bool, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(setting.Value), out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *settingRepository) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&models.Setting{Key: key, Value: string(raw)}).Error
}

func (r *settingRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&models.Setting{}, "key = ?", key).Error
}
