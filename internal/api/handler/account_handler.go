package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

// AccountHandler serves the caller's own profile, wallet and dashboard.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Profile handles GET /api/user/profile.
//
// @Summary      Current user's profile
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /user/profile [get]
func (h *AccountHandler) Profile(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	user, err := h.service.Profile(c.Request().Context(), caller.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Wallet handles GET /api/wallet.
//
// @Summary      Wallet balance and recent payments
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  walletResponse
// @Failure      401  {object}  map[string]string
// @Router       /wallet [get]
func (h *AccountHandler) Wallet(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Wallet(c.Request().Context(), caller.UserID)
	if err != nil {
		return err
	}

	txs := summary.RecentTransactions
	if txs == nil {
		txs = []*domain.Payment{}
	}
	return c.JSON(http.StatusOK, walletResponse{Balance: summary.Balance, RecentTransactions: txs})
}

// Dashboard handles GET /api/dashboard/stats. The payload shape depends on the caller's role.
//
// @Summary      Role-specific dashboard counters
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  seekerStatsResponse
// @Success      200  {object}  providerStatsResponse
// @Failure      401  {object}  map[string]string
// @Router       /dashboard/stats [get]
func (h *AccountHandler) Dashboard(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Dashboard(c.Request().Context(), caller.UserID)
	if err != nil {
		return err
	}

	if stats.Role == domain.RoleSeeker {
		return c.JSON(http.StatusOK, seekerStatsResponse{
			Role:          stats.Role,
			TotalJobs:     stats.TotalJobs,
			ActiveJobs:    stats.ActiveJobs,
			CompletedJobs: stats.CompletedJobs,
			WalletBalance: stats.WalletBalance,
		})
	}
	return c.JSON(http.StatusOK, providerStatsResponse{
		Role:          stats.Role,
		TotalBids:     stats.TotalBids,
		SelectedBids:  stats.SelectedBids,
		TotalEarnings: stats.TotalEarnings,
		WalletBalance: stats.WalletBalance,
		Rating:        stats.Rating,
	})
}
