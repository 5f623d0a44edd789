package ports

import (
	"context"
	"time"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
)

// UserRepository defines persistence for user accounts and their role documents.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns the stored user. Role carries the raw stored string and
	// may be a legacy alias or garbage; callers parse it with domain.ParseRole.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create inserts a user. Returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	TopByReputation(ctx context.Context, limit int) ([]*domain.User, error)
}

// CategoryRepository stores the admin-managed ticket categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	// Create returns domain.ErrCategoryExists for a duplicate name.
	Create(ctx context.Context, c *domain.Category) error
	// Delete returns domain.ErrCategoryNotFound when nothing was removed.
	Delete(ctx context.Context, id string) error
}

// TokenStore keeps revoked token ids until the tokens expire.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
