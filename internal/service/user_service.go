package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cardbook-api/internal/config"
	"github.com/cardbook-api/internal/models"
	"github.com/cardbook-api/internal/repository"
	"github.com/cardbook-api/internal/validation"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// userService is the concrete implementation of UserService
type userService struct {
	users repository.UserRepository
	cfg   *config.Config
	log   zerolog.Logger
}

func newUserService(users repository.UserRepository, cfg *config.Config, log zerolog.Logger) *userService {
	return &userService{
		users: users,
		cfg:   cfg,
		log:   log.With().Str("service", "user").Logger(),
	}
}

// Register creates a new account. The email must not be taken; the
// password is stored only as a bcrypt hash.
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if err := validation.ValidateRegister(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: email is already registered", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("User registered")
	return user, nil
}

// Login verifies credentials and issues a signed token. A missing account
// and a wrong password are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to record login time")
	}
	user.LastLogin = &now

	token, err := s.issueToken(user, now)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *userService) issueToken(user *models.User, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Auth.TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.JWTSecret))
}
