package ports

import (
	"context"
	"time"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
)

// RegisterInput carries the self-registration form.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	// Role is optional; only the lowest tier may be self-assigned.
	Role string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

// SessionResolver turns an authenticated identity into a Session. It never
// fails: when the role cannot be read the lowest tier is assumed.
type SessionResolver interface {
	Resolve(ctx context.Context, userID, email string) domain.Session
}
