package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dodeduer/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DepositService handles pending deposit requests and their reconciliation
// against the ledger on admin approval.
type DepositService struct {
	db *gorm.DB
}

func NewDepositService(db *gorm.DB) *DepositService {
	return &DepositService{db: db}
}

// CreateDeposit registers a pending deposit. The ledger is untouched until
// an administrator approves it.
func (s *DepositService) CreateDeposit(userID uint, amount decimal.Decimal, paymentRef, receiptRef string) (*models.Deposit, error) {
	if amount.Sign() <= 0 {
		return nil, validationf("deposit amount must be positive")
	}
	paymentRef = strings.TrimSpace(paymentRef)
	receiptRef = strings.TrimSpace(receiptRef)
	if paymentRef == "" && receiptRef == "" {
		return nil, validationf("payment reference or receipt required")
	}

	deposit := models.Deposit{
		UserID:     userID,
		Amount:     amount,
		PaymentRef: paymentRef,
		ReceiptRef: receiptRef,
		Status:     models.DepositPending,
	}
	if err := s.db.Create(&deposit).Error; err != nil {
		return nil, fmt.Errorf("create deposit: %w", err)
	}
	return &deposit, nil
}

// Deposits lists one user's deposits, newest first.
func (s *DepositService) Deposits(userID uint, page, pageSize int) ([]models.Deposit, int64, error) {
	return s.listDeposits(s.db.Where("user_id = ?", userID), page, pageSize)
}

// AllDeposits lists every deposit for the admin view, optionally filtered by
// status and a payment-reference search.
func (s *DepositService) AllDeposits(status, search string, page, pageSize int) ([]models.Deposit, int64, error) {
	query := s.db.Model(&models.Deposit{})
	if status != "" {
		if !validDepositStatus(status) {
			return nil, 0, validationf("unknown deposit status %q", status)
		}
		query = query.Where("status = ?", status)
	}
	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("lower(payment_ref) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	return s.listDeposits(query, page, pageSize)
}

func (s *DepositService) listDeposits(query *gorm.DB, page, pageSize int) ([]models.Deposit, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	var total int64
	if err := query.Model(&models.Deposit{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count deposits: %w", err)
	}

	var deposits []models.Deposit
	err := query.Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&deposits).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list deposits: %w", err)
	}
	return deposits, total, nil
}

// SetDepositStatus moves a pending deposit to approved or declined. Approval
// credits the ledger exactly once, in the same transaction as the status
// flip; the pending-only guard makes re-approval a conflict instead of a
// double credit.
func (s *DepositService) SetDepositStatus(depositID, adminID uint, status string) (*models.Deposit, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !validDepositStatus(status) {
		return nil, validationf("unknown deposit status %q", status)
	}
	if status == models.DepositPending {
		return nil, validationf("deposit cannot be moved back to pending")
	}

	var deposit models.Deposit
	err := runSerializable(s.db, func(tx *gorm.DB) error {
		err := lockForUpdate(tx).First(&deposit, depositID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("deposit %d not found", depositID)
		}
		if err != nil {
			return fmt.Errorf("load deposit %d: %w", depositID, err)
		}
		if deposit.Status != models.DepositPending {
			return conflictf("deposit %d already %s", depositID, deposit.Status)
		}

		updates := map[string]any{"status": status}
		if status == models.DepositApproved {
			now := time.Now()
			updates["approved_by"] = adminID
			updates["approved_at"] = &now
		}
		if err := tx.Model(&deposit).Updates(updates).Error; err != nil {
			return fmt.Errorf("update deposit %d: %w", depositID, err)
		}

		if status == models.DepositApproved {
			return recordDeposit(tx, deposit.UserID, deposit.ID, deposit.Amount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.First(&deposit, depositID).Error; err != nil {
		return nil, fmt.Errorf("reload deposit %d: %w", depositID, err)
	}
	return &deposit, nil
}

func validDepositStatus(status string) bool {
	switch status {
	case models.DepositPending, models.DepositApproved, models.DepositDeclined:
		return true
	}
	return false
}
