package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

var compareHash = bcrypt.CompareHashAndPassword

// dummyHash stands in for the stored hash when the username is unknown.
var dummyHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("northwind-missing-user"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
})

type AuthService struct {
	db     *gorm.DB
	tokens *TokenService
}

func NewAuthService(db *gorm.DB, tokens *TokenService) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

// Authenticate returns a LoggedUser with a fresh token when exactly one user
// matches username and the password verifies against its bcrypt hash.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*dto.LoggedUser, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = compareHash(dummyHash(), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := compareHash([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(&user)
	if err != nil {
		return nil, err
	}

	return &dto.LoggedUser{
		UserID:      user.UserID,
		Firstname:   user.Firstname,
		Lastname:    user.Lastname,
		Username:    user.Username,
		AccessLevel: user.AccessLevel,
		Token:       token,
	}, nil
}

// SeedUser creates user with a bcrypt hash of password unless the username is taken.
func (s *AuthService) SeedUser(ctx context.Context, user models.User, password string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hash)

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	slog.Info("seeded user", "username", user.Username)
	return nil
}
