package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"dodeduer/models"
	"dodeduer/pricing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GameService manages the weekly game lifecycle and the serializable debit
// path that turns a number selection into plays plus ledger entries.
type GameService struct {
	db *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{db: db}
}

// PlayResult is the outcome of a successful play: the created plays and the
// balance after the debits.
type PlayResult struct {
	Plays      []models.Play   `json:"plays"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Balance    decimal.Decimal `json:"balance"`
}

// CurrentGame returns the single active game, open or freshly drawn.
func (s *GameService) CurrentGame() (*models.Game, error) {
	var game models.Game
	err := s.db.Where("is_active = ?", true).Order("id DESC").First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("no active game")
	}
	if err != nil {
		return nil, fmt.Errorf("load active game: %w", err)
	}
	return &game, nil
}

func (s *GameService) GameByID(id uint) (*models.Game, error) {
	var game models.Game
	err := s.db.First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("game %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load game %d: %w", id, err)
	}
	return &game, nil
}

// CreateGame opens the game for the given week of the current year. The
// previous game must already be drawn; it is deactivated here, so at most
// one game is active at a time. Active boards with remaining repeats are
// then played into the new game.
func (s *GameService) CreateGame(week int) (*models.Game, error) {
	if week < 1 || week > 53 {
		return nil, validationf("week %d out of range [1, 53]", week)
	}
	year := time.Now().Year()

	var game models.Game
	err := runSerializable(s.db, func(tx *gorm.DB) error {
		var current models.Game
		err := lockForUpdate(tx).Where("is_active = ?", true).First(&current).Error
		switch {
		case err == nil:
			if !current.Closed() {
				return conflictf("game for week %d is still open", current.Week)
			}
			if err := tx.Model(&current).Update("is_active", false).Error; err != nil {
				return fmt.Errorf("deactivate game %d: %w", current.ID, err)
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("load active game: %w", err)
		}

		var count int64
		if err := tx.Model(&models.Game{}).Where("week = ? AND year = ?", week, year).Count(&count).Error; err != nil {
			return fmt.Errorf("check game for week %d/%d: %w", week, year, err)
		}
		if count > 0 {
			return conflictf("game for week %d/%d already exists", week, year)
		}

		game = models.Game{Week: week, Year: year, IsActive: true}
		if err := tx.Create(&game).Error; err != nil {
			return fmt.Errorf("create game: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.autoplayBoards(&game)
	return &game, nil
}

// CloseGame records the drawn winning numbers on the open game. The game
// stays active (visible as current) until the next week's game is created.
func (s *GameService) CloseGame(gameID uint, winningNumbers []int) (*models.Game, error) {
	if err := ValidateWinningNumbers(winningNumbers); err != nil {
		return nil, err
	}

	var game models.Game
	err := runSerializable(s.db, func(tx *gorm.DB) error {
		err := lockForUpdate(tx).First(&game, gameID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("game %d not found", gameID)
		}
		if err != nil {
			return fmt.Errorf("load game %d: %w", gameID, err)
		}
		if !game.IsActive {
			return conflictf("game %d is no longer active", gameID)
		}
		if game.Closed() {
			return conflictf("game %d already has winning numbers", gameID)
		}
		game.WinningNumbers = winningNumbers
		if err := tx.Model(&game).Update("winning_numbers", game.WinningNumbers).Error; err != nil {
			return fmt.Errorf("set winning numbers on game %d: %w", gameID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// PlayGame enters the selection into the game boardCount times, debiting the
// ledger once per play. The sufficiency check and the debits run as one
// serializable transaction, so concurrent plays against the same balance
// cannot both pass the check.
func (s *GameService) PlayGame(userID, gameID uint, numbers []int, boardCount int) (*PlayResult, error) {
	if boardCount < 1 {
		return nil, validationf("board count must be at least 1")
	}
	if err := ValidateBoardNumbers(numbers); err != nil {
		return nil, err
	}

	var result *PlayResult
	err := runSerializable(s.db, func(tx *gorm.DB) error {
		var err error
		result, err = playIntoGame(tx, userID, gameID, numbers, boardCount, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// playIntoGame is the shared debit path for direct plays, board creation and
// board autoplay. Callers own the transaction; numbers must already be
// validated.
func playIntoGame(tx *gorm.DB, userID, gameID uint, numbers []int, boardCount int, boardID *uint) (*PlayResult, error) {
	price, err := pricing.Price(len(numbers))
	if err != nil {
		return nil, validationf("%v", err)
	}
	totalPrice := price.Mul(decimal.NewFromInt(int64(boardCount)))

	var user models.User
	err = lockForUpdate(tx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("user %d not found", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}
	if !user.IsActive {
		return nil, forbiddenf("user is deactivated")
	}

	var game models.Game
	err = tx.First(&game, gameID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("game %d not found", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("load game %d: %w", gameID, err)
	}
	if !game.IsActive || game.Closed() {
		return nil, conflictf("game %d is not open for plays", gameID)
	}

	balance, err := balanceOf(tx, userID)
	if err != nil {
		return nil, err
	}
	if balance.LessThan(totalPrice) {
		return nil, conflictf("insufficient balance: have %s, need %s", balance, totalPrice)
	}

	plays := make([]models.Play, 0, boardCount)
	for i := 0; i < boardCount; i++ {
		play := models.Play{
			UserID:  userID,
			GameID:  gameID,
			BoardID: boardID,
			Numbers: numbers,
		}
		if err := tx.Create(&play).Error; err != nil {
			return nil, fmt.Errorf("create play: %w", err)
		}
		if err := recordPlay(tx, userID, play.ID, price); err != nil {
			return nil, err
		}
		plays = append(plays, play)
	}

	newBalance, err := balanceOf(tx, userID)
	if err != nil {
		return nil, err
	}
	return &PlayResult{Plays: plays, TotalPrice: totalPrice, Balance: newBalance}, nil
}

// Winners returns the plays of a drawn game holding all three winning
// numbers.
func (s *GameService) Winners(gameID uint) ([]models.Play, error) {
	game, err := s.GameByID(gameID)
	if err != nil {
		return nil, err
	}
	if !game.Closed() {
		return nil, conflictf("game %d has no winning numbers yet", gameID)
	}

	var plays []models.Play
	if err := s.db.Where("game_id = ?", gameID).Find(&plays).Error; err != nil {
		return nil, fmt.Errorf("list plays for game %d: %w", gameID, err)
	}

	winners := make([]models.Play, 0)
	for _, play := range plays {
		if containsAll(play.Numbers, game.WinningNumbers) {
			winners = append(winners, play)
		}
	}
	return winners, nil
}

// autoplayBoards replays every active board with remaining repeats into the
// new game. Each board gets its own transaction: an underfunded board is
// stopped, not overdrawn, and one failing board never blocks the rest or
// the game creation itself.
func (s *GameService) autoplayBoards(game *models.Game) {
	var boards []models.Board
	err := s.db.Where("is_active = ? AND played_count < repeat_count", true).Find(&boards).Error
	if err != nil {
		log.Printf("❌ autoplay: list boards for game %d: %v", game.ID, err)
		return
	}

	for _, board := range boards {
		board := board
		err := runSerializable(s.db, func(tx *gorm.DB) error {
			_, err := playIntoGame(tx, board.UserID, game.ID, board.Numbers, 1, &board.ID)
			if err != nil {
				return err
			}
			return tx.Model(&board).Update("played_count", gorm.Expr("played_count + 1")).Error
		})
		if err != nil {
			if svcErr, ok := AsServiceError(err); ok && svcErr.Kind == KindConflict {
				now := time.Now()
				stopErr := s.db.Model(&board).Updates(map[string]any{
					"is_active":  false,
					"stopped_at": &now,
				}).Error
				if stopErr != nil {
					log.Printf("❌ autoplay: stop board %d: %v", board.ID, stopErr)
				} else {
					log.Printf("⚠️  autoplay: board %d stopped: %s", board.ID, svcErr.Message)
				}
				continue
			}
			log.Printf("❌ autoplay: board %d into game %d: %v", board.ID, game.ID, err)
			continue
		}

		if board.PlayedCount+1 >= board.RepeatCount {
			if err := s.db.Model(&board).Update("is_active", false).Error; err != nil {
				log.Printf("❌ autoplay: complete board %d: %v", board.ID, err)
			}
		}
	}
}
