package ports

import (
	"context"

	"github.com/woiya/marketplace/internal/core/domain"
)

// RatingStats is the aggregate of all scores a user has received.
type RatingStats struct {
	Sum   int64
	Count int
}

// RatingRepository defines persistence operations for ratings.
type RatingRepository interface {
	// Create inserts a rating. A duplicate (rater, target, job) yields domain.ErrAlreadyRated.
	Create(ctx context.Context, rating *domain.Rating) error
	Exists(ctx context.Context, raterID, targetID, jobID string) (bool, error)
	StatsFor(ctx context.Context, targetID string) (RatingStats, error)
}
