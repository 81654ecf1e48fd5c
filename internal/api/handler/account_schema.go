package handler

import "github.com/woiya/marketplace/internal/core/domain"

type walletResponse struct {
	Balance            int64             `json:"balance"`
	RecentTransactions []*domain.Payment `json:"recent_transactions"`
}

type seekerStatsResponse struct {
	Role          domain.Role `json:"role"`
	TotalJobs     int64       `json:"total_jobs"`
	ActiveJobs    int64       `json:"active_jobs"`
	CompletedJobs int64       `json:"completed_jobs"`
	WalletBalance int64       `json:"wallet_balance"`
}

type providerStatsResponse struct {
	Role          domain.Role `json:"role"`
	TotalBids     int64       `json:"total_bids"`
	SelectedBids  int64       `json:"selected_bids"`
	TotalEarnings int64       `json:"total_earnings"`
	WalletBalance int64       `json:"wallet_balance"`
	Rating        float64     `json:"rating"`
}
