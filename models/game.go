package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Game is the weekly draw. At most one row has IsActive = true: the game
// currently accepting plays (open) or just drawn (closed, winning numbers
// set) until the next week's game replaces it.
type Game struct {
	gorm.Model

	Week     int  `gorm:"uniqueIndex:idx_games_week_year;not null" json:"week"`
	Year     int  `gorm:"uniqueIndex:idx_games_week_year;not null" json:"year"`
	IsActive bool `gorm:"index;default:true" json:"is_active"`

	WinningNumbers datatypes.JSONSlice[int] `gorm:"type:jsonb" json:"winning_numbers"`
}

func (g *Game) Closed() bool {
	return len(g.WinningNumbers) > 0
}

// Play is one entry of a number selection into a specific game. Numbers are
// copied from the board at play time. Each play has exactly one debit
// BalanceEntry.
type Play struct {
	gorm.Model

	UserID  uint                     `gorm:"index;not null" json:"user_id"`
	GameID  uint                     `gorm:"index;not null" json:"game_id"`
	BoardID *uint                    `gorm:"index" json:"board_id,omitempty"`
	Numbers datatypes.JSONSlice[int] `gorm:"type:jsonb" json:"numbers"`
}
