package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

// AuthService implements registration, login and token verification.
type AuthService struct {
	repo   ports.UserRepository
	tokens *TokenManager
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *TokenManager, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account and returns a ready-to-use token for it.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return "", nil, fmt.Errorf("register: %w", domain.ErrValidation)
	}
	if !in.Role.Valid() {
		return "", nil, domain.ErrInvalidRole
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("register: hash password: %w", err)
	}

	loc := domain.DefaultLocation
	if in.Location != nil {
		loc = *in.Location
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         in.Role,
		Location:     loc,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("register: issue token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return token, user, nil
}

// Login checks credentials. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) VerifyToken(token string) (*ports.TokenClaims, error) {
	return s.tokens.VerifyToken(token)
}
