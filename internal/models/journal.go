package models

import "time"

// JournalEntry is an append-only audit note attached to an event. Almost
// every mutating operation writes one.
type JournalEntry struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	EventID uint   `gorm:"not null;index" json:"event_id"`
	ActorID uint   `json:"actor_id"`
	Entry   string `gorm:"not null" json:"entry"`
	// ClientVisible controls whether the entry shows on the client portal.
	ClientVisible bool      `gorm:"not null;default:false" json:"client_visible"`
	CreatedAt     time.Time `json:"created_at"`
}

// Setting is one configuration key with a JSON-encoded value. The settings
// that used to live in a single options blob are split into addressable rows.
type Setting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
