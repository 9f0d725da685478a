package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/shoppy-store/shoppy-api/models"
)

// AuthService manages account registration and credential checks
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates an auth service over the given database
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Register creates an account with a bcrypt password hash. The email must be
// unique.
func (s *AuthService) Register(email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		// Check for duplicate email (works with both PostgreSQL and SQLite)
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique") {
			return nil, &ConflictError{
				Code:    "EMAIL_EXISTS",
				Message: "You've already signed up with that email, log in instead!",
			}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Login validates credentials and returns the account. Unknown emails and
// wrong passwords both come back as AuthError.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &AuthError{
			Code:    "INVALID_CREDENTIALS",
			Message: "That email does not exist, please try again.",
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, &AuthError{
			Code:    "INVALID_CREDENTIALS",
			Message: "Password incorrect, please try again.",
		}
	}

	return &user, nil
}

// GetUser loads an account by id
func (s *AuthService) GetUser(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Code: "USER_NOT_FOUND", Message: "User not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}
