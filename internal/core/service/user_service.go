package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gatherly/event-registration/internal/core/domain"
	"github.com/gatherly/event-registration/internal/core/ports"
)

// UserService implements account creation, login, and password changes.
type UserService struct {
	repo      ports.UserRepository
	creds     *Credentials
	jwtSecret string
	tokenTTL  time.Duration
}

func NewUserService(repo ports.UserRepository, creds *Credentials, jwtSecret string, tokenTTL time.Duration) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &UserService{repo: repo, creds: creds, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *UserService) CreateUser(ctx context.Context, username, password, role string, defaultPasswordChanged bool) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.creds.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:               username,
		PasswordHash:           hash,
		Role:                   role,
		DefaultPasswordChanged: defaultPasswordChanged,
	}
	return s.repo.Create(ctx, user)
}

// Login verifies the credentials and issues a signed token. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.creds.Verify(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	sanitized := user.Sanitized()
	return token, &sanitized, nil
}

func (s *UserService) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) (*domain.User, error) {
	if newPassword == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !s.creds.Verify(currentPassword, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := s.creds.Hash(newPassword)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdatePassword(ctx, user.ID, hash)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":                      user.ID,
		"username":                 user.Username,
		"role":                     user.Role,
		"default_password_changed": user.DefaultPasswordChanged,
		"exp":                      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
