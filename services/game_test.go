package services

import (
	"sync"
	"testing"

	"dodeduer/models"

	"github.com/shopspring/decimal"
)

func TestCreateGameDuplicateWeek(t *testing.T) {
	db := newTestDB(t)
	games := NewGameService(db)

	game := createOpenGame(t, db, 5)
	if !game.IsActive || game.Closed() {
		t.Fatalf("new game should be active and open, got %+v", game)
	}

	// The open game blocks a new one regardless of week.
	_, err := games.CreateGame(6)
	wantKind(t, err, KindConflict)

	// After the draw, the same week is still taken.
	if _, err := games.CloseGame(game.ID, []int{1, 7, 12}); err != nil {
		t.Fatalf("close game: %v", err)
	}
	_, err = games.CreateGame(5)
	wantKind(t, err, KindConflict)
}

func TestCreateGameDeactivatesPrevious(t *testing.T) {
	db := newTestDB(t)
	games := NewGameService(db)

	first := createOpenGame(t, db, 10)
	if _, err := games.CloseGame(first.ID, []int{1, 7, 12}); err != nil {
		t.Fatalf("close game: %v", err)
	}

	// A drawn game stays current until the next one is created.
	current, err := games.CurrentGame()
	if err != nil {
		t.Fatalf("current game: %v", err)
	}
	if current.ID != first.ID || !current.Closed() {
		t.Fatalf("expected drawn game %d as current, got %+v", first.ID, current)
	}

	second := createOpenGame(t, db, 11)
	current, err = games.CurrentGame()
	if err != nil {
		t.Fatalf("current game after rollover: %v", err)
	}
	if current.ID != second.ID {
		t.Fatalf("current game = %d, want %d", current.ID, second.ID)
	}

	var old models.Game
	if err := db.First(&old, first.ID).Error; err != nil {
		t.Fatalf("reload first game: %v", err)
	}
	if old.IsActive {
		t.Fatal("previous game should be deactivated")
	}
}

func TestCurrentGameNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := NewGameService(db).CurrentGame()
	wantKind(t, err, KindNotFound)
}

func TestCloseGameValidation(t *testing.T) {
	db := newTestDB(t)
	games := NewGameService(db)
	game := createOpenGame(t, db, 3)

	for _, nums := range [][]int{nil, {1}, {1, 2}, {1, 2, 3, 4}, {1, 1, 2}, {0, 1, 2}, {1, 2, 17}} {
		_, err := games.CloseGame(game.ID, nums)
		wantKind(t, err, KindValidation)
	}

	if _, err := games.CloseGame(game.ID, []int{1, 7, 12}); err != nil {
		t.Fatalf("close game: %v", err)
	}

	// A second draw on the same game is a conflict.
	_, err := games.CloseGame(game.ID, []int{2, 8, 13})
	wantKind(t, err, KindConflict)

	var reloaded models.Game
	if err := db.First(&reloaded, game.ID).Error; err != nil {
		t.Fatalf("reload game: %v", err)
	}
	if len(reloaded.WinningNumbers) != 3 || reloaded.WinningNumbers[0] != 1 ||
		reloaded.WinningNumbers[1] != 7 || reloaded.WinningNumbers[2] != 12 {
		t.Fatalf("winning numbers = %v, want [1 7 12]", reloaded.WinningNumbers)
	}
}

// Mirrors the full user journey: deposit approval funds the ledger, a cheap
// play succeeds, an unaffordable one fails without partial debits.
func TestPlayGameEndToEnd(t *testing.T) {
	db := newTestDB(t)
	usr := createTestUser(t, db, "player@example.com")
	games := NewGameService(db)
	balances := NewBalanceService(db)
	game := createOpenGame(t, db, 20)

	fundUser(t, db, usr.ID, 100)

	result, err := games.PlayGame(usr.ID, game.ID, []int{1, 2, 3, 4, 5}, 1)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !result.TotalPrice.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("total price = %s, want 20", result.TotalPrice)
	}
	if !result.Balance.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("balance after play = %s, want 80", result.Balance)
	}
	if len(result.Plays) != 1 {
		t.Fatalf("plays = %d, want 1", len(result.Plays))
	}

	// Five boards need 100, only 80 left: no partial purchase.
	_, err = games.PlayGame(usr.ID, game.ID, []int{1, 2, 3, 4, 5}, 5)
	wantKind(t, err, KindConflict)

	balance, err := balances.Balance(usr.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("balance after failed play = %s, want 80", balance)
	}

	var playCount int64
	if err := db.Model(&models.Play{}).Where("user_id = ?", usr.ID).Count(&playCount).Error; err != nil {
		t.Fatalf("count plays: %v", err)
	}
	if playCount != 1 {
		t.Fatalf("plays persisted = %d, want 1", playCount)
	}
}

func TestPlayGameValidation(t *testing.T) {
	db := newTestDB(t)
	usr := createTestUser(t, db, "valid@example.com")
	games := NewGameService(db)
	game := createOpenGame(t, db, 21)
	fundUser(t, db, usr.ID, 1000)

	_, err := games.PlayGame(usr.ID, game.ID, []int{1, 2, 3, 4}, 1)
	wantKind(t, err, KindValidation)

	_, err = games.PlayGame(usr.ID, game.ID, []int{1, 2, 3, 4, 5}, 0)
	wantKind(t, err, KindValidation)

	_, err = games.PlayGame(usr.ID, game.ID+100, []int{1, 2, 3, 4, 5}, 1)
	wantKind(t, err, KindNotFound)

	_, err = games.PlayGame(usr.ID+100, game.ID, []int{1, 2, 3, 4, 5}, 1)
	wantKind(t, err, KindNotFound)

	if _, err := games.CloseGame(game.ID, []int{1, 7, 12}); err != nil {
		t.Fatalf("close game: %v", err)
	}
	_, err = games.PlayGame(usr.ID, game.ID, []int{1, 2, 3, 4, 5}, 1)
	wantKind(t, err, KindConflict)
}

// N concurrent plays race against a balance that only covers some of them.
// The ledger must never go negative, whatever interleaving occurs.
func TestPlayGameConcurrentNeverOverdraws(t *testing.T) {
	db := newTestDB(t)
	usr := createTestUser(t, db, "racer@example.com")
	games := NewGameService(db)
	game := createOpenGame(t, db, 22)

	// 50 covers two plays at 20; ten goroutines all try one.
	fundUser(t, db, usr.ID, 50)

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = games.PlayGame(usr.ID, game.ID, []int{1, 2, 3, 4, 5}, 1)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		wantKind(t, err, KindConflict)
	}
	if succeeded != 2 {
		t.Fatalf("successful plays = %d, want 2", succeeded)
	}

	balance, err := NewBalanceService(db).Balance(usr.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance.IsNegative() {
		t.Fatalf("balance went negative: %s", balance)
	}
	if !balance.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("balance = %s, want 10", balance)
	}
}

func TestWinners(t *testing.T) {
	db := newTestDB(t)
	winner := createTestUser(t, db, "winner@example.com")
	loser := createTestUser(t, db, "loser@example.com")
	games := NewGameService(db)
	game := createOpenGame(t, db, 23)
	fundUser(t, db, winner.ID, 100)
	fundUser(t, db, loser.ID, 100)

	if _, err := games.PlayGame(winner.ID, game.ID, []int{1, 7, 12, 14, 16}, 1); err != nil {
		t.Fatalf("winning play: %v", err)
	}
	if _, err := games.PlayGame(loser.ID, game.ID, []int{1, 7, 13, 14, 16}, 1); err != nil {
		t.Fatalf("losing play: %v", err)
	}

	// Winners are only known after the draw.
	_, err := games.Winners(game.ID)
	wantKind(t, err, KindConflict)

	if _, err := games.CloseGame(game.ID, []int{1, 7, 12}); err != nil {
		t.Fatalf("close game: %v", err)
	}

	winners, err := games.Winners(game.ID)
	if err != nil {
		t.Fatalf("winners: %v", err)
	}
	if len(winners) != 1 {
		t.Fatalf("winners = %d, want 1", len(winners))
	}
	if winners[0].UserID != winner.ID {
		t.Fatalf("winning play belongs to user %d, want %d", winners[0].UserID, winner.ID)
	}
}
