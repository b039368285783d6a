package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	EntryKindDeposit = "deposit"
	EntryKindPlay    = "play"
)

// BalanceEntry is one signed row of the append-only ledger. Deposits are
// positive, plays negative; a user's balance is the sum of their entries.
// Rows are never updated or deleted.
type BalanceEntry struct {
	gorm.Model

	UserID uint            `gorm:"index;not null" json:"user_id"`
	Amount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Kind   string          `gorm:"size:16;not null;index" json:"kind"`

	// Source reference. The unique indexes make a second credit for the
	// same deposit, or a second debit for the same play, a constraint
	// violation rather than a silent double booking.
	DepositID *uint `gorm:"uniqueIndex" json:"deposit_id,omitempty"`
	PlayID    *uint `gorm:"uniqueIndex" json:"play_id,omitempty"`
}
