package database

import (
	"log"

	"github.com/gigwise/eventops/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Venue{},
		&models.Event{},
		&models.EventEmployee{},
		&models.Transaction{},
		&models.PlaylistEntry{},
		&models.Task{},
		&models.TaskLog{},
		&models.JournalEntry{},
		&models.Setting{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial index: task query builders only ever scan events that can still
	// change state, so skip the completed/failed backlog entirely.
	db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_events_open
		ON events (status, event_date)
		WHERE status NOT IN ('completed', 'cancelled', 'rejected', 'failed')
	`)

	return db
}
