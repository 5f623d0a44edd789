package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
)

func newAuthSvc() (*AuthService, *stubUserRepo, *stubTokenStore) {
	repo := newStubUserRepo()
	tokens := &stubTokenStore{}
	return NewAuthService(repo, tokens, "secret", time.Hour), repo, tokens
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, _ := newAuthSvc()

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: " Alice@Example.com ", Password: "pass123", FirstName: "Alice",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleEndUser {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newAuthSvc()
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Email: "", Password: "pass123"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing email, got %v", err)
	}
	if _, err := svc.Register(ctx, ports.RegisterInput{Email: "bob@example.com", Password: "123"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestAuthService_Register_RejectsElevatedRole(t *testing.T) {
	svc, _, _ := newAuthSvc()
	ctx := context.Background()

	for _, role := range []string{"admin", "agent", "support_agent", "wizard"} {
		if _, err := svc.Register(ctx, ports.RegisterInput{Email: role + "@example.com", Password: "pass123", Role: role}); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("role %q: expected ErrInvalidInput, got %v", role, err)
		}
	}
	if _, err := svc.Register(ctx, ports.RegisterInput{Email: "u@example.com", Password: "pass123", Role: "user"}); err != nil {
		t.Fatalf("legacy end-user alias should be accepted: %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _ := newAuthSvc()
	ctx := context.Background()

	_, _ = svc.Register(ctx, ports.RegisterInput{Email: "bob@example.com", Password: "pass123"})
	if _, err := svc.Register(ctx, ports.RegisterInput{Email: "bob@example.com", Password: "pass456"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _ := newAuthSvc()
	ctx := context.Background()

	registered, err := svc.Register(ctx, ports.RegisterInput{Email: "carol@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(ctx, "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if res.User.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", res.User)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(res.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != registered.ID || claims["email"] != "carol@example.com" {
		t.Fatalf("unexpected claims: %v", claims)
	}
	if _, ok := claims["role"]; ok {
		t.Fatalf("role must not be embedded in the token")
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatalf("expected jti claim")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _, _ := newAuthSvc()
	ctx := context.Background()

	_, _ = svc.Register(ctx, ports.RegisterInput{Email: "dave@example.com", Password: "goodpass"})
	_, err := svc.Login(ctx, "dave@example.com", "badpass")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if msg := AuthErrorMessage(err); msg != "Incorrect password." {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc, _, _ := newAuthSvc()

	_, err := svc.Login(context.Background(), "ghost@example.com", "pass")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if msg := AuthErrorMessage(err); msg != "No user found with this email." {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthErrorMessage_Generic(t *testing.T) {
	if msg := AuthErrorMessage(errors.New("network down")); msg != "Authentication failed. Please try again." {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, tokens := newAuthSvc()
	ctx := context.Background()

	if err := svc.Logout(ctx, "jti-1", time.Now().Add(30*time.Minute)); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	ttl, ok := tokens.revoked["jti-1"]
	if !ok || ttl <= 0 || ttl > 30*time.Minute {
		t.Fatalf("expected revocation with remaining lifetime, got %v (%v)", ttl, ok)
	}

	if err := svc.Logout(ctx, "jti-2", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("expired token logout should be a no-op, got %v", err)
	}
	if _, ok := tokens.revoked["jti-2"]; ok {
		t.Fatalf("expired token should not be stored")
	}

	if err := svc.Logout(ctx, "", time.Now().Add(time.Minute)); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty jti, got %v", err)
	}
}

func TestAuthService_SeedAdmin(t *testing.T) {
	svc, repo, _ := newAuthSvc()
	ctx := context.Background()

	user, created, err := svc.SeedAdmin(ctx, "Root@Example.com", "rootpass")
	if err != nil {
		t.Fatalf("SeedAdmin returned error: %v", err)
	}
	if !created || user.Role != domain.RoleAdmin || user.Email != "root@example.com" {
		t.Fatalf("unexpected seed result: created=%v user=%+v", created, user)
	}

	// An existing end user is promoted and keeps the old password.
	bob, err := svc.Register(ctx, ports.RegisterInput{Email: "bob@example.com", Password: "bobpass"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	promoted, created, err := svc.SeedAdmin(ctx, "bob@example.com", "ignored")
	if err != nil {
		t.Fatalf("SeedAdmin returned error: %v", err)
	}
	if created || promoted.ID != bob.ID || promoted.Role != domain.RoleAdmin {
		t.Fatalf("expected promotion of bob, got created=%v user=%+v", created, promoted)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.users[bob.ID].PasswordHash), []byte("bobpass")); err != nil {
		t.Fatalf("promotion must keep the password: %v", err)
	}
}

func TestAuthService_SeedAdmin_ShortPassword(t *testing.T) {
	svc, _, _ := newAuthSvc()

	if _, _, err := svc.SeedAdmin(context.Background(), "root@example.com", "123"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
