package ports

import (
	"context"

	"github.com/woiya/marketplace/internal/core/domain"
)

// RecentTransactionsLimit caps the payments listed in a wallet summary.
const RecentTransactionsLimit = 20

// WalletSummary is the caller's balance plus recent payment activity.
type WalletSummary struct {
	Balance            int64
	RecentTransactions []*domain.Payment
}

// DashboardStats holds role-specific counters. Seeker fields are zero for
// providers and vice versa.
type DashboardStats struct {
	Role          domain.Role
	WalletBalance int64

	TotalJobs     int64
	ActiveJobs    int64
	CompletedJobs int64

	TotalBids     int64
	SelectedBids  int64
	TotalEarnings int64
	Rating        float64
}

// AccountService serves read-only views over a user's account.
type AccountService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	Wallet(ctx context.Context, userID string) (*WalletSummary, error)
	Dashboard(ctx context.Context, userID string) (*DashboardStats, error)
}
