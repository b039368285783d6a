package services

import (
	"fmt"

	"dodeduer/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BalanceService owns the append-only ledger. The current balance is always
// recomputed as the sum of a user's entries; there is no stored counter to
// get out of sync.
type BalanceService struct {
	db *gorm.DB
}

func NewBalanceService(db *gorm.DB) *BalanceService {
	return &BalanceService{db: db}
}

// Balance returns the user's spendable balance.
func (s *BalanceService) Balance(userID uint) (decimal.Decimal, error) {
	return balanceOf(s.db, userID)
}

// Entries lists the user's ledger rows, newest first.
func (s *BalanceService) Entries(userID uint, page, pageSize int) ([]models.BalanceEntry, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	var total int64
	if err := s.db.Model(&models.BalanceEntry{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count ledger entries: %w", err)
	}

	var entries []models.BalanceEntry
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list ledger entries: %w", err)
	}
	return entries, total, nil
}

// balanceOf sums the ledger on the given handle so transactional callers
// see their own staged writes.
func balanceOf(tx *gorm.DB, userID uint) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := tx.Model(&models.BalanceEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum ledger entries for user %d: %w", userID, err)
	}
	return sum, nil
}

// recordDeposit stages one positive ledger entry for an approved deposit.
// The unique index on deposit_id rejects a second credit for the same
// deposit at the database level.
func recordDeposit(tx *gorm.DB, userID, depositID uint, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return validationf("deposit amount must be positive")
	}
	entry := models.BalanceEntry{
		UserID:    userID,
		Amount:    amount,
		Kind:      models.EntryKindDeposit,
		DepositID: &depositID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("record deposit entry: %w", err)
	}
	return nil
}

// recordPlay stages one negative ledger entry for a play, storing -price.
func recordPlay(tx *gorm.DB, userID, playID uint, price decimal.Decimal) error {
	if price.Sign() <= 0 {
		return validationf("play price must be positive")
	}
	entry := models.BalanceEntry{
		UserID: userID,
		Amount: price.Neg(),
		Kind:   models.EntryKindPlay,
		PlayID: &playID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("record play entry: %w", err)
	}
	return nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
