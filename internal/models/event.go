package models

import "time"

type EventStatus string

const (
	StatusUnattended       EventStatus = "unattended"
	StatusEnquiry          EventStatus = "enquiry"
	StatusAwaitingContract EventStatus = "awaiting-contract"
	StatusApproved         EventStatus = "approved"
	StatusCompleted        EventStatus = "completed"
	StatusCancelled        EventStatus = "cancelled"
	StatusRejected         EventStatus = "rejected"
	StatusFailed           EventStatus = "failed"
)

type PaymentStatus string

const (
	PaymentDue  PaymentStatus = "Due"
	PaymentPaid PaymentStatus = "Paid"
)

// Event is the central booking/engagement record. Status transitions are not
// gated by a state machine; any caller may set any status, matching the
// product's behaviour where admins can force a record into any state.
type Event struct {
	ID     uint        `gorm:"primaryKey" json:"id"`
	Name   string      `gorm:"not null" json:"name"`
	Status EventStatus `gorm:"type:varchar(20);not null;default:'unattended';index" json:"status"`

	ClientID          uint  `gorm:"not null;index" json:"client_id"`
	PrimaryEmployeeID uint  `gorm:"index" json:"primary_employee_id"`
	VenueID           *uint `json:"venue_id,omitempty"`

	EventDate time.Time `gorm:"not null;index" json:"event_date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Package string `json:"package,omitempty"`
	Addons  string `json:"addons,omitempty"`

	Cost          float64       `json:"cost"`
	Deposit       float64       `json:"deposit"`
	DepositStatus PaymentStatus `gorm:"type:varchar(10);default:'Due'" json:"deposit_status"`
	BalanceStatus PaymentStatus `gorm:"type:varchar(10);default:'Due'" json:"balance_status"`

	// ApprovedAt is set once when the event first enters the approved status.
	ApprovedAt *time.Time `json:"approved_at,omitempty"`

	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Employees []EventEmployee `gorm:"foreignKey:EventID" json:"employees,omitempty"`
}

// EventEmployee assigns a secondary employee to an event with a role and a
// wage. WageTxnID links to the expenditure transaction created when the wage
// is paid out.
type EventEmployee struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	EventID       uint          `gorm:"not null;index:idx_event_employee,unique" json:"event_id"`
	EmployeeID    uint          `gorm:"not null;index:idx_event_employee,unique" json:"employee_id"`
	Role          string        `json:"role"`
	Wage          float64       `json:"wage"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(10);default:'Due'" json:"payment_status"`
	WageTxnID     *uint         `json:"wage_txn_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Finish returns the moment the engagement ends on the day it is booked for.
func (e *Event) Finish() time.Time {
	d := e.EventDate
	t := e.EndTime
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, d.Location())
}
