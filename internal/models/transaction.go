package models

import "time"

type TxnStatus string

const (
	TxnPending   TxnStatus = "Pending"
	TxnCompleted TxnStatus = "Completed"
	TxnCancelled TxnStatus = "Cancelled"
)

type TxnDirection string

const (
	TxnIncome      TxnDirection = "income"
	TxnExpenditure TxnDirection = "expenditure"
)

// Transaction records a single payment in or out. Employee wage payouts are
// expenditure transactions linked to their event via EventID.
type Transaction struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	EventID   *uint        `gorm:"index" json:"event_id,omitempty"`
	Status    TxnStatus    `gorm:"type:varchar(10);not null;default:'Pending'" json:"status"`
	Direction TxnDirection `gorm:"type:varchar(12);not null" json:"direction"`
	Amount    float64      `gorm:"not null" json:"amount"`

	// Payer for income, payee for expenditure; display data only.
	Party  string `json:"party,omitempty"`
	Source string `json:"source,omitempty"`
	Detail string `json:"detail,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
