package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
)

// AdminService manages user roles and ticket categories.
type AdminService struct {
	users      ports.UserRepository
	categories ports.CategoryRepository
	logger     zerolog.Logger
}

func NewAdminService(users ports.UserRepository, categories ports.CategoryRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, categories: categories, logger: logger}
}

func (s *AdminService) ListUsers(ctx context.Context, sess domain.Session) ([]*domain.User, error) {
	if sess.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.users.List(ctx)
}

// ChangeRole rewrites a user's role document. Legacy aliases are accepted and
// stored in canonical form.
func (s *AdminService) ChangeRole(ctx context.Context, sess domain.Session, userID, role string) (*domain.User, error) {
	if sess.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	parsed, ok := domain.ParseRole(role)
	if !ok {
		return nil, fmt.Errorf("change role: %w: unknown role %q", domain.ErrInvalidInput, role)
	}
	user, err := s.users.UpdateRole(ctx, userID, parsed)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Str("role", string(parsed)).Str("by", sess.Email).Msg("role changed")
	return user, nil
}

func (s *AdminService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *AdminService) AddCategory(ctx context.Context, sess domain.Session, name string) (*domain.Category, error) {
	if sess.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("add category: %w: name is required", domain.ErrInvalidInput)
	}
	c := &domain.Category{ID: uuid.NewString(), Name: name}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *AdminService) DeleteCategory(ctx context.Context, sess domain.Session, id string) error {
	if sess.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.categories.Delete(ctx, id)
}
