package ports

import (
	"context"

	"github.com/woiya/marketplace/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts a new user. A duplicate email yields domain.ErrDuplicateEmail.
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids, keyed by id.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	// CreditWallet atomically increments the user's wallet balance.
	CreditWallet(ctx context.Context, id string, amount int64) error
	UpdateRating(ctx context.Context, id string, rating float64, total int) error
}
