package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Email        string `gorm:"uniqueIndex;size:128" json:"email"`
	PasswordHash string `gorm:"size:128" json:"-"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
}

type Session struct {
	gorm.Model
	Token     string    `gorm:"size:36;uniqueIndex;not null" json:"token"`
	UserID    uint      `gorm:"index" json:"user_id"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) (err error) {
	s.Token = strings.ToLower(uuid.New().String())
	return nil
}
