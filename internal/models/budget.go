package models

// Budget is the per-category rollup of the expense ledger. Spent and
// ItemCount are derived values: they equal the sum and count of live
// expenses matching (UserID, Category), and are mutated only by maintainer
// deltas or by reconciliation. At most one live budget exists per
// (UserID, Category) pair. Amounts are in cents.
type Budget struct {
	Base
	UserID      uint     `gorm:"not null;index" json:"user_id"`
	Category    Category `gorm:"not null;index" json:"category"`
	LimitAmount int64    `gorm:"type:bigint;not null" json:"limit_amount"`
	Spent       int64    `gorm:"type:bigint;not null;default:0" json:"spent"`
	ItemCount   int64    `gorm:"type:bigint;not null;default:0" json:"item_count"`
	Icon        string   `gorm:"default:'💰'" json:"icon"`
}
