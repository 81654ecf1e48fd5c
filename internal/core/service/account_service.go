package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

type AccountService struct {
	users    ports.UserRepository
	jobs     ports.JobRepository
	bids     ports.BidRepository
	payments ports.PaymentRepository
}

func NewAccountService(users ports.UserRepository, jobs ports.JobRepository, bids ports.BidRepository, payments ports.PaymentRepository) *AccountService {
	return &AccountService{users: users, jobs: jobs, bids: bids, payments: payments}
}

// loadCaller fetches the authenticated user. A missing user means the token
// outlived its account, which is an authentication failure rather than a 404.
func loadCaller(ctx context.Context, users ports.UserRepository, id string) (*domain.User, error) {
	user, err := users.FindByID(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrCallerGone
	}
	return user, err
}

func (s *AccountService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := loadCaller(ctx, s.users, userID)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return user, nil
}

func (s *AccountService) Wallet(ctx context.Context, userID string) (*ports.WalletSummary, error) {
	user, err := loadCaller(ctx, s.users, userID)
	if err != nil {
		return nil, fmt.Errorf("wallet: %w", err)
	}
	recent, err := s.payments.ListByParticipant(ctx, userID, ports.RecentTransactionsLimit)
	if err != nil {
		return nil, fmt.Errorf("wallet: %w", err)
	}
	return &ports.WalletSummary{Balance: user.WalletBalance, RecentTransactions: recent}, nil
}

// Dashboard returns seeker job counters or provider bid/earning counters.
func (s *AccountService) Dashboard(ctx context.Context, userID string) (*ports.DashboardStats, error) {
	user, err := loadCaller(ctx, s.users, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	stats := &ports.DashboardStats{Role: user.Role, WalletBalance: user.WalletBalance}

	if user.Role == domain.RoleSeeker {
		if stats.TotalJobs, err = s.jobs.Count(ctx, ports.JobFilter{CreatorID: user.ID}); err != nil {
			return nil, fmt.Errorf("dashboard: %w", err)
		}
		if stats.ActiveJobs, err = s.jobs.Count(ctx, ports.JobFilter{CreatorID: user.ID, Status: domain.JobOpen}); err != nil {
			return nil, fmt.Errorf("dashboard: %w", err)
		}
		if stats.CompletedJobs, err = s.jobs.Count(ctx, ports.JobFilter{CreatorID: user.ID, Status: domain.JobCompleted}); err != nil {
			return nil, fmt.Errorf("dashboard: %w", err)
		}
		return stats, nil
	}

	if stats.TotalBids, err = s.bids.CountByBidder(ctx, user.ID, false); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if stats.SelectedBids, err = s.bids.CountByBidder(ctx, user.ID, true); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if stats.TotalEarnings, err = s.payments.SumReleasedTo(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	stats.Rating = user.Rating
	return stats, nil
}
