package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
			if in.Email != "siti@example.com" || in.Role != domain.RoleSeeker || in.FullName != "Siti" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Location != nil {
				t.Fatalf("expected nil location when omitted, got %+v", in.Location)
			}
			return "token123", &domain.User{ID: "u-1", Email: in.Email, FullName: in.FullName, Role: in.Role}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/auth/register",
		`{"email":"siti@example.com","password":"secret1","full_name":"Siti","phone":"0812","role":"pencari_jasa"}`, "", "")

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" || resp["message"] != "User registered successfully" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["id"] != "u-1" || user["role"] != "pencari_jasa" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}
}

func TestAuthHandler_Register_PassesLocation(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
			if in.Location == nil || in.Location.Lat != -6.9 || in.Location.Lng != 107.6 {
				t.Fatalf("unexpected location: %+v", in.Location)
			}
			return "t", &domain.User{ID: "u-1", Role: in.Role}, nil
		},
	}

	c, _ := newContext(http.MethodPost, "/api/auth/register",
		`{"email":"a@example.com","password":"secret1","full_name":"A","phone":"1","role":"penyedia_jasa","location":{"lat":-6.9,"lng":107.6}}`, "", "")

	if err := NewAuthHandler(stub).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuthHandler_Register_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", "not-json"},
		{"missing email", `{"password":"secret1","full_name":"A","phone":"1","role":"pencari_jasa"}`},
		{"bad email", `{"email":"nope","password":"secret1","full_name":"A","phone":"1","role":"pencari_jasa"}`},
		{"short password", `{"email":"a@example.com","password":"123","full_name":"A","phone":"1","role":"pencari_jasa"}`},
		{"unknown role", `{"email":"a@example.com","password":"secret1","full_name":"A","phone":"1","role":"admin"}`},
		{"bad latitude", `{"email":"a@example.com","password":"secret1","full_name":"A","phone":"1","role":"pencari_jasa","location":{"lat":123,"lng":0}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAuthService{
				registerFn: func(context.Context, ports.RegisterInput) (string, *domain.User, error) {
					t.Fatalf("should not be called")
					return "", nil, nil
				},
			}
			c, _ := newContext(http.MethodPost, "/api/auth/register", tc.body, "", "")

			err := NewAuthHandler(stub).Register(c)
			if httpStatus(err) != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
		})
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (string, *domain.User, error) {
			return "", nil, domain.ErrDuplicateEmail
		},
	}
	c, _ := newContext(http.MethodPost, "/api/auth/register",
		`{"email":"a@example.com","password":"secret1","full_name":"A","phone":"1","role":"pencari_jasa"}`, "", "")

	err := NewAuthHandler(stub).Register(c)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "siti@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "u-1", Role: domain.RoleSeeker, WalletBalance: 5000}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":"siti@example.com","password":"secret1"}`, "", "")

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "token123" || resp.Message != "Login successful" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.User == nil || resp.User.WalletBalance != 5000 {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	c, _ := newContext(http.MethodPost, "/api/auth/login", `{"email":"siti@example.com","password":"bad"}`, "", "")

	err := NewAuthHandler(stub).Login(c)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized kind, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	c, _ := newContext(http.MethodPost, "/api/auth/login", `{"email":"siti@example.com"}`, "", "")

	err := NewAuthHandler(stub).Login(c)
	if httpStatus(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
