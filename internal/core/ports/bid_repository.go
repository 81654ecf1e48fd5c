package ports

import (
	"context"

	"github.com/woiya/marketplace/internal/core/domain"
)

// BidRepository defines persistence operations for bids.
type BidRepository interface {
	// Create inserts a bid. A second bid by the same bidder on the same job
	// yields domain.ErrDuplicateBid.
	Create(ctx context.Context, bid *domain.Bid) error
	FindByID(ctx context.Context, id string) (*domain.Bid, error)
	// FindByJobAndBidder returns domain.ErrBidNotFound when the bidder has not bid on the job.
	FindByJobAndBidder(ctx context.Context, jobID, bidderID string) (*domain.Bid, error)
	// ListByJob returns the job's bids, newest first.
	ListByJob(ctx context.Context, jobID string) ([]*domain.Bid, error)
	// MarkSelected flags bidID as the job's only selected bid.
	MarkSelected(ctx context.Context, jobID, bidID string) error
	CountByBidder(ctx context.Context, bidderID string, selectedOnly bool) (int64, error)
}
