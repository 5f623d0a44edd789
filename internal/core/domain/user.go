package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the access tier of a user.
type Role string

const (
	RoleEndUser      Role = "end_user"
	RoleSupportAgent Role = "support_agent"
	RoleAdmin        Role = "admin"

	// RoleLowest is the tier assigned whenever a role cannot be determined.
	RoleLowest = RoleEndUser
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenRevoked = errors.New("token revoked")

// ParseRole maps a stored or submitted role string to a Role. The legacy
// short forms "user" and "agent" are accepted.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "end_user", "user":
		return RoleEndUser, true
	case "support_agent", "agent":
		return RoleSupportAgent, true
	case "admin":
		return RoleAdmin, true
	}
	return "", false
}

// IsStaff reports whether the role may triage tickets it does not own.
func (r Role) IsStaff() bool {
	return r == RoleSupportAgent || r == RoleAdmin
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         Role      `json:"role"`
	Reputation   int       `json:"reputation"`
	AnswersCount int       `json:"answersCount"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Session is the identity and role resolved for one authenticated request.
type Session struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	// RoleFallback is set when the role document was missing or unreadable
	// and RoleLowest was assumed.
	RoleFallback bool `json:"roleFallback"`
}

// Owns reports whether the session owns the ticket.
func (s Session) Owns(t *Ticket) bool {
	if t.UserID != "" {
		return t.UserID == s.UserID
	}
	return t.UserEmail != "" && strings.EqualFold(t.UserEmail, s.Email)
}
