package ports

import (
	"context"

	"github.com/woiya/marketplace/internal/core/domain"
)

type SubmitRatingInput struct {
	RaterID      string
	TargetUserID string
	JobID        string
	Score        int
	Comment      string
}

type RatingService interface {
	Submit(ctx context.Context, input SubmitRatingInput) (*domain.Rating, error)
}
