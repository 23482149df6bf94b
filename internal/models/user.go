package models

import "time"

type UserType string

const (
	UserClient   UserType = "client"
	UserEmployee UserType = "employee"
)

// User covers both clients and employees. Employees carry a role name and a
// resolved set of capability flags; clients carry neither.
type User struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Type         UserType `gorm:"type:varchar(10);not null;index" json:"type"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Phone        string   `json:"phone,omitempty"`

	Role         string        `json:"role,omitempty"`
	Capabilities CapabilitySet `gorm:"serializer:json" json:"capabilities,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CapabilitySet is the granular permission flags attached to an employee.
type CapabilitySet map[string]bool

func (u *User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u *User) HasCap(name string) bool {
	if u == nil || u.Capabilities == nil {
		return false
	}
	return u.Capabilities[name]
}
