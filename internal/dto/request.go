package dto

import (
	"encoding/json"
	"time"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=8"`
	Type      string   `json:"type" validate:"required,oneof=client employee"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Role      string   `json:"role,omitempty"`
	Levels    []string `json:"levels,omitempty"`
}

type CreateEnquiryRequest struct {
	Name      string    `json:"name" validate:"required"`
	ClientID  uint      `json:"client_id" validate:"required"`
	EventDate time.Time `json:"event_date" validate:"required"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	VenueID   *uint     `json:"venue_id,omitempty"`
	Package   string    `json:"package,omitempty"`
	Addons    string    `json:"addons,omitempty"`
	Cost      float64   `json:"cost" validate:"gte=0"`
	Deposit   float64   `json:"deposit" validate:"gte=0,ltefield=Cost"`
	Notes     string    `json:"notes,omitempty"`
}

type UpdateEventRequest struct {
	Name      string    `json:"name" validate:"required"`
	EventDate time.Time `json:"event_date" validate:"required"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	VenueID   *uint     `json:"venue_id,omitempty"`
	Package   string    `json:"package,omitempty"`
	Addons    string    `json:"addons,omitempty"`
	Cost      float64   `json:"cost" validate:"gte=0"`
	Deposit   float64   `json:"deposit" validate:"gte=0,ltefield=Cost"`
	Notes     string    `json:"notes,omitempty"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note,omitempty"`
}

type AssignEmployeeRequest struct {
	EmployeeID uint    `json:"employee_id" validate:"required"`
	Role       string  `json:"role" validate:"required"`
	Wage       float64 `json:"wage" validate:"gte=0"`
}

type CreateTransactionRequest struct {
	EventID   *uint   `json:"event_id,omitempty"`
	Direction string  `json:"direction" validate:"required,oneof=income expenditure"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Party     string  `json:"party,omitempty"`
	Source    string  `json:"source,omitempty"`
	Detail    string  `json:"detail,omitempty"`
}

type CreateVenueRequest struct {
	Name     string `json:"name" validate:"required"`
	Address1 string `json:"address1,omitempty"`
	Address2 string `json:"address2,omitempty"`
	Town     string `json:"town,omitempty"`
	County   string `json:"county,omitempty"`
	Postcode string `json:"postcode,omitempty"`

	ContactName  string `json:"contact_name,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	ContactEmail string `json:"contact_email,omitempty" validate:"omitempty,email"`

	LowCeiling      bool `json:"low_ceiling"`
	PATRequired     bool `json:"pat_required"`
	StairsToVenue   bool `json:"stairs_to_venue"`
	LimitedParking  bool `json:"limited_parking"`
	SoundLimiter    bool `json:"sound_limiter"`
	InsuranceNeeded bool `json:"insurance_needed"`

	Notes string `json:"notes,omitempty"`
}

type AddPlaylistEntryRequest struct {
	Song     string `json:"song" validate:"required"`
	Artist   string `json:"artist,omitempty"`
	Category string `json:"category,omitempty"`
	AddedBy  string `json:"added_by,omitempty"`
}

type SetTaskActiveRequest struct {
	Active bool `json:"active"`
}

type SetSettingRequest struct {
	Value json.RawMessage `json:"value" validate:"required"`
}
