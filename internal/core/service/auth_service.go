package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
)

const minPasswordLen = 6

// AuthService implements registration, login and logout.
type AuthService struct {
	repo      ports.UserRepository
	tokens    ports.TokenStore
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, tokens: tokens, jwtSecret: jwtSecret, tokenTTL: tokenTTL, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < minPasswordLen {
		return nil, domain.ErrInvalidInput
	}
	if in.Role != "" {
		role, ok := domain.ParseRole(in.Role)
		if !ok || role != domain.RoleLowest {
			return nil, fmt.Errorf("register: %w: role %q cannot be self-assigned", domain.ErrInvalidInput, in.Role)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         domain.RoleLowest,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SeedAdmin makes sure an admin account exists for email. An existing user
// is promoted and keeps its password; otherwise a new admin is created. The
// boolean reports whether an account was created.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) (*domain.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, false, domain.ErrInvalidInput
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		user, err := s.repo.UpdateRole(ctx, existing.ID, domain.RoleAdmin)
		if err != nil {
			return nil, false, fmt.Errorf("seed admin: promote: %w", err)
		}
		return user, false, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, false, fmt.Errorf("seed admin: lookup: %w", err)
	}

	if len(password) < minPasswordLen {
		return nil, false, fmt.Errorf("seed admin: %w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}
	now := s.now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    "Admin",
		Role:         domain.RoleAdmin,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("seed admin: create: %w", err)
	}
	return user, true, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	exp := s.now().Add(s.tokenTTL)
	token, err := s.generateToken(user, exp)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

// Logout revokes the token id until the token would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return domain.ErrInvalidInput
	}
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.tokens.Revoke(ctx, jti, ttl); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Claims carry identity only. The role is resolved per request.
func (s *AuthService) generateToken(user *domain.User, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"jti":   uuid.NewString(),
		"exp":   exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// AuthErrorMessage renders an auth failure for display.
func AuthErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrUserNotFound):
		return "No user found with this email."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Incorrect password."
	}
	return "Authentication failed. Please try again."
}
