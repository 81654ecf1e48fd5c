package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

type RatingService struct {
	ratings ports.RatingRepository
	users   ports.UserRepository
	jobs    ports.JobRepository
	log     zerolog.Logger
}

func NewRatingService(ratings ports.RatingRepository, users ports.UserRepository, jobs ports.JobRepository, log zerolog.Logger) *RatingService {
	return &RatingService{ratings: ratings, users: users, jobs: jobs, log: log}
}

// Submit stores a rating and refreshes the target's aggregate. Raters are not
// required to be parties to the job, nor the job to be completed.
func (s *RatingService) Submit(ctx context.Context, in ports.SubmitRatingInput) (*domain.Rating, error) {
	if in.Score < domain.MinScore || in.Score > domain.MaxScore {
		return nil, domain.ErrInvalidScore
	}
	if in.RaterID == in.TargetUserID {
		return nil, domain.ErrSelfRating
	}

	if _, err := s.jobs.FindByID(ctx, in.JobID); err != nil {
		return nil, fmt.Errorf("submit rating: %w", err)
	}
	if _, err := s.users.FindByID(ctx, in.TargetUserID); err != nil {
		return nil, fmt.Errorf("submit rating: %w", err)
	}

	exists, err := s.ratings.Exists(ctx, in.RaterID, in.TargetUserID, in.JobID)
	if err != nil {
		return nil, fmt.Errorf("submit rating: %w", err)
	}
	if exists {
		return nil, domain.ErrAlreadyRated
	}

	rating := &domain.Rating{
		ID:           uuid.NewString(),
		RaterID:      in.RaterID,
		TargetUserID: in.TargetUserID,
		JobID:        in.JobID,
		Score:        in.Score,
		Comment:      strings.TrimSpace(in.Comment),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.ratings.Create(ctx, rating); err != nil {
		return nil, fmt.Errorf("submit rating: %w", err)
	}

	stats, err := s.ratings.StatsFor(ctx, in.TargetUserID)
	if err != nil {
		return nil, fmt.Errorf("submit rating: aggregate: %w", err)
	}
	mean := domain.MeanRating(stats.Sum, stats.Count)
	if err := s.users.UpdateRating(ctx, in.TargetUserID, mean, stats.Count); err != nil {
		return nil, fmt.Errorf("submit rating: update user: %w", err)
	}

	s.log.Info().
		Str("target_user_id", in.TargetUserID).
		Float64("rating", mean).
		Int("total_ratings", stats.Count).
		Msg("rating submitted")
	return rating, nil
}
