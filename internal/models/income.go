package models

// Income represents an income entry. Income has no budget coupling; it only
// feeds the dashboard summary. Amount is in cents.
type Income struct {
	Base
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	Source    string `gorm:"not null" json:"source"`
	Amount    int64  `gorm:"type:bigint;not null" json:"amount"`
	Reference string `json:"reference"`
}
