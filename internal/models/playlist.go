package models

import "time"

// PlaylistEntry is a song request attached to an event. Guests may submit
// entries through an unauthenticated endpoint; those are flagged so the
// employee can review them.
type PlaylistEntry struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	EventID  uint   `gorm:"not null;index" json:"event_id"`
	Song     string `gorm:"not null" json:"song"`
	Artist   string `json:"artist,omitempty"`
	Category string `gorm:"default:'General'" json:"category"`

	AddedBy string `json:"added_by,omitempty"`
	Guest   bool   `json:"guest"`

	CreatedAt time.Time `json:"created_at"`
}
