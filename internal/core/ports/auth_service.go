package ports

import (
	"context"

	"github.com/woiya/marketplace/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Role     domain.Role
	Location *domain.Location // nil = domain.DefaultLocation
}

// TokenClaims is the identity embedded in an access token.
type TokenClaims struct {
	UserID string
	Role   domain.Role
}

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	VerifyToken(token string) (*TokenClaims, error)
}

type AuthService interface {
	TokenVerifier
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
