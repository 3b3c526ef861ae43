package models

import "time"

// Frequency distinguishes recurring from one-off expenses.
// It is reporting metadata only and has no effect on budget aggregation.
type Frequency string

const (
	FrequencyMonthly Frequency = "Monthly"
	FrequencyDaily   Frequency = "Daily"
)

// Valid reports whether f is a known frequency class.
func (f Frequency) Valid() bool {
	return f == FrequencyMonthly || f == FrequencyDaily
}

// Expense represents a single ledger entry. The ledger is the source of
// truth; budget Spent/ItemCount are derived from it. Amount is in cents.
// OccurredAt is a calendar date, normalized to midnight UTC before persisting.
type Expense struct {
	Base
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Category   Category  `gorm:"not null;index" json:"category"`
	Frequency  Frequency `gorm:"not null" json:"frequency"`
	Amount     int64     `gorm:"type:bigint;not null" json:"amount"`
	OccurredAt time.Time `gorm:"not null;index" json:"occurred_at"`
	Note       string    `json:"note"`
}
