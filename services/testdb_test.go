package services

import (
	"testing"

	"dodeduer/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	// One in-memory sqlite database per connection; pin the pool to a
	// single connection so every session sees the same data.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.BalanceEntry{},
		&models.Deposit{},
		&models.Game{},
		&models.Board{},
		&models.Play{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x", IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return &user
}

// fundUser credits the user through the normal deposit flow so tests start
// from a realistic ledger.
func fundUser(t *testing.T, db *gorm.DB, userID uint, amount int64) {
	t.Helper()
	deposits := NewDepositService(db)
	dep, err := deposits.CreateDeposit(userID, decimal.NewFromInt(amount), "ref-fund", "")
	if err != nil {
		t.Fatalf("create funding deposit: %v", err)
	}
	if _, err := deposits.SetDepositStatus(dep.ID, 999, models.DepositApproved); err != nil {
		t.Fatalf("approve funding deposit: %v", err)
	}
}

func createOpenGame(t *testing.T, db *gorm.DB, week int) *models.Game {
	t.Helper()
	game, err := NewGameService(db).CreateGame(week)
	if err != nil {
		t.Fatalf("create game for week %d: %v", week, err)
	}
	return game
}

func wantKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected service error of kind %d, got nil", kind)
	}
	svcErr, ok := AsServiceError(err)
	if !ok {
		t.Fatalf("expected service error, got %v", err)
	}
	if svcErr.Kind != kind {
		t.Fatalf("expected error kind %d, got %d (%s)", kind, svcErr.Kind, svcErr.Message)
	}
	return svcErr
}
