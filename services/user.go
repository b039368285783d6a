package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dodeduer/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionLifetime = 7 * 24 * time.Hour

// UserService handles registration, login and session lookup.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Register(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, validationf("a valid email is required")
	}
	if len(password) < 8 {
		return nil, validationf("password must be at least 8 characters")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, conflictf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Email: email, PasswordHash: string(hash), IsActive: true}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Login verifies the credentials and issues a session token.
func (s *UserService) Login(email, password string) (*models.User, *models.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.db.Where("email = ? AND is_active = ?", email, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, unauthorizedf("invalid credentials")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, unauthorizedf("invalid credentials")
	}

	session := models.Session{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(sessionLifetime),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}
	return &user, &session, nil
}

// UserByToken resolves a session token to its user.
func (s *UserService) UserByToken(token string) (*models.User, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil, unauthorizedf("session token required")
	}

	var session models.Session
	err := s.db.Where("token = ?", token).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, unauthorizedf("invalid session")
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, unauthorizedf("session expired")
	}

	var user models.User
	err = s.db.Where("id = ? AND is_active = ?", session.UserID, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, unauthorizedf("invalid session")
	}
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}
	return &user, nil
}
