package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

func newTestAuthService(f *fixture) *AuthService {
	return NewAuthService(f.users, NewTokenManager("secret", time.Hour), discardLogger)
}

func registerInput(email string, role domain.Role) ports.RegisterInput {
	return ports.RegisterInput{
		Email:    email,
		Password: "pass1234",
		FullName: "Budi Santoso",
		Phone:    "+628123",
		Role:     role,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	f := newFixture()
	svc := newTestAuthService(f)

	token, user, err := svc.Register(context.Background(), registerInput("  Budi@Example.com ", domain.RoleSeeker))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected token")
	}
	if user.Email != "budi@example.com" {
		t.Errorf("email not normalised: %q", user.Email)
	}
	if user.Location != domain.DefaultLocation {
		t.Errorf("expected default location, got %+v", user.Location)
	}
	if user.Rating != 0 || user.TotalRatings != 0 || user.WalletBalance != 0 || user.IsVerified {
		t.Errorf("expected zeroed counters, got %+v", user)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != domain.RoleSeeker {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestAuthService_Register_KeepsLocation(t *testing.T) {
	f := newFixture()
	in := registerInput("a@example.com", domain.RoleProvider)
	in.Location = &domain.Location{Lat: -7.25, Lng: 112.75}

	_, user, err := newTestAuthService(f).Register(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Location != *in.Location {
		t.Fatalf("location not kept: %+v", user.Location)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	f := newFixture()
	svc := newTestAuthService(f)

	if _, _, err := svc.Register(context.Background(), registerInput("a@example.com", domain.RoleSeeker)); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, err := svc.Register(context.Background(), registerInput("A@example.com", domain.RoleProvider))
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if len(f.store.users) != 1 {
		t.Fatalf("expected 1 stored user, got %d", len(f.store.users))
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	f := newFixture()
	_, _, err := newTestAuthService(f).Register(context.Background(), registerInput("a@example.com", "admin"))
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture()
	svc := newTestAuthService(f)
	_, registered, err := svc.Register(context.Background(), registerInput("a@example.com", domain.RoleSeeker))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "A@EXAMPLE.COM", "pass1234")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" || user.ID != registered.ID {
		t.Fatalf("unexpected login result: token=%q user=%+v", token, user)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	f := newFixture()
	svc := newTestAuthService(f)
	if _, _, err := svc.Register(context.Background(), registerInput("a@example.com", domain.RoleSeeker)); err != nil {
		t.Fatalf("register: %v", err)
	}

	cases := []struct{ email, password string }{
		{"a@example.com", "wrong"},
		{"nobody@example.com", "pass1234"},
		{"", ""},
	}
	for _, tc := range cases {
		_, _, err := svc.Login(context.Background(), tc.email, tc.password)
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("Login(%q): expected ErrInvalidCredentials, got %v", tc.email, err)
		}
	}
}
