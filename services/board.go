package services

import (
	"errors"
	"fmt"
	"time"

	"dodeduer/models"

	"gorm.io/gorm"
)

const maxRepeatCount = 52

// BoardService manages saved boards and their repeat plans.
type BoardService struct {
	db *gorm.DB
}

func NewBoardService(db *gorm.DB) *BoardService {
	return &BoardService{db: db}
}

// CreateBoard saves the selection and immediately plays it into the current
// open game; board row, play and debit commit or roll back together.
func (s *BoardService) CreateBoard(userID uint, numbers []int, repeatCount int) (*models.Board, error) {
	if err := ValidateBoardNumbers(numbers); err != nil {
		return nil, err
	}
	if repeatCount < 1 || repeatCount > maxRepeatCount {
		return nil, validationf("repeat count %d out of range [1, %d]", repeatCount, maxRepeatCount)
	}

	var board models.Board
	err := runSerializable(s.db, func(tx *gorm.DB) error {
		var game models.Game
		err := tx.Where("is_active = ?", true).Order("id DESC").First(&game).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("no active game")
		}
		if err != nil {
			return fmt.Errorf("load active game: %w", err)
		}

		board = models.Board{
			UserID:      userID,
			Numbers:     numbers,
			RepeatCount: repeatCount,
			PlayedCount: 1,
			IsActive:    repeatCount > 1,
		}
		if err := tx.Create(&board).Error; err != nil {
			return fmt.Errorf("create board: %w", err)
		}

		_, err = playIntoGame(tx, userID, game.ID, numbers, 1, &board.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// Boards lists a user's boards, newest first.
func (s *BoardService) Boards(userID uint) ([]models.Board, error) {
	var boards []models.Board
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&boards).Error
	if err != nil {
		return nil, fmt.Errorf("list boards for user %d: %w", userID, err)
	}
	return boards, nil
}

// StopBoard ends a board's repeat plan. Stopping an already stopped board is
// a no-op.
func (s *BoardService) StopBoard(userID, boardID uint) (*models.Board, error) {
	var board models.Board
	err := s.db.First(&board, boardID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("board %d not found", boardID)
	}
	if err != nil {
		return nil, fmt.Errorf("load board %d: %w", boardID, err)
	}
	if board.UserID != userID {
		return nil, forbiddenf("board %d belongs to another user", boardID)
	}
	if !board.IsActive {
		return &board, nil
	}

	now := time.Now()
	updates := map[string]any{"is_active": false, "stopped_at": &now}
	if err := s.db.Model(&board).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("stop board %d: %w", boardID, err)
	}
	return &board, nil
}
