package models

import "time"

// Venue is a performance location. Detail flags are the operational notes a
// mobile entertainer cares about before arriving on site.
type Venue struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Address1 string `json:"address1,omitempty"`
	Address2 string `json:"address2,omitempty"`
	Town     string `json:"town,omitempty"`
	County   string `json:"county,omitempty"`
	Postcode string `json:"postcode,omitempty"`

	ContactName  string `json:"contact_name,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`

	LowCeiling       bool `json:"low_ceiling"`
	PATRequired      bool `json:"pat_required"`
	StairsToVenue    bool `json:"stairs_to_venue"`
	LimitedParking   bool `json:"limited_parking"`
	SoundLimiter     bool `json:"sound_limiter"`
	InsuranceNeeded  bool `json:"insurance_needed"`

	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
