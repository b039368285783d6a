package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Board is a user's saved number selection with a repeat plan: it is played
// into new games automatically until PlayedCount reaches RepeatCount, the
// owner stops it, or its owner runs out of balance.
type Board struct {
	gorm.Model

	UserID      uint                     `gorm:"index;not null" json:"user_id"`
	Numbers     datatypes.JSONSlice[int] `gorm:"type:jsonb" json:"numbers"`
	RepeatCount int                      `gorm:"not null" json:"repeat_count"`
	PlayedCount int                      `gorm:"default:0" json:"played_count"`
	// No column default: the zero value is meaningful (a single-play
	// board is born inactive) and must reach the insert.
	IsActive  bool       `gorm:"index" json:"is_active"`
	StoppedAt *time.Time `json:"stopped_at,omitempty"`
}
