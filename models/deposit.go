package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DepositPending  = "pending"
	DepositApproved = "approved"
	DepositDeclined = "declined"
)

type Deposit struct {
	gorm.Model

	UserID     uint            `gorm:"index;not null" json:"user_id"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentRef string          `gorm:"size:64;index" json:"payment_ref"`
	ReceiptRef string          `gorm:"size:128" json:"receipt_ref"`
	Status     string          `gorm:"size:16;index;default:pending" json:"status"`

	ApprovedBy *uint      `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}
