package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
	"github.com/ShardulMane20/Quick-Desk/internal/pkg/metrics"
)

// SessionResolver reads the caller's role document on every request.
type SessionResolver struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewSessionResolver(users ports.UserRepository, log zerolog.Logger) *SessionResolver {
	return &SessionResolver{users: users, log: log}
}

// Resolve never fails. A missing, unreadable or unparseable role document
// yields domain.RoleLowest with RoleFallback set.
func (r *SessionResolver) Resolve(ctx context.Context, userID, email string) domain.Session {
	s := domain.Session{UserID: userID, Email: email}

	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		reason := "lookup_error"
		if errors.Is(err, domain.ErrUserNotFound) {
			reason = "not_found"
		}
		return r.fallback(s, reason, err)
	}

	role, ok := domain.ParseRole(string(user.Role))
	if !ok {
		return r.fallback(s, "unknown_role", nil)
	}
	s.Role = role
	if s.Email == "" {
		s.Email = user.Email
	}
	return s
}

func (r *SessionResolver) fallback(s domain.Session, reason string, err error) domain.Session {
	s.Role = domain.RoleLowest
	s.RoleFallback = true
	metrics.SessionRoleFallbackTotal.WithLabelValues(reason).Inc()
	r.log.Warn().Err(err).
		Str("user_id", s.UserID).
		Str("reason", reason).
		Msg("role lookup failed, using lowest role")
	return s
}
