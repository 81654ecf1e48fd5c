package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type JobService struct {
	jobs   ports.JobRepository
	bids   ports.BidRepository
	users  ports.UserRepository
	tx     ports.Transactor
	logger zerolog.Logger
}

func NewJobService(
	jobs ports.JobRepository,
	bids ports.BidRepository,
	users ports.UserRepository,
	tx ports.Transactor,
	logger zerolog.Logger,
) *JobService {
	return &JobService{jobs: jobs, bids: bids, users: users, tx: tx, logger: logger}
}

// CreateJob posts a new open job on behalf of a seeker.
func (s *JobService) CreateJob(ctx context.Context, in ports.CreateJobInput) (*domain.Job, error) {
	if in.Caller.Role != domain.RoleSeeker {
		return nil, domain.ErrSeekerOnly
	}
	if !in.Category.Valid() {
		return nil, domain.ErrInvalidCategory
	}
	if in.BudgetMin < 0 || in.BudgetMax < 0 || in.BudgetMin > in.BudgetMax {
		return nil, domain.ErrInvalidBudget
	}

	creator, err := loadCaller(ctx, s.users, in.Caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	requirements := in.Requirements
	if requirements == nil {
		requirements = []string{}
	}

	job := &domain.Job{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Category:     in.Category,
		BudgetMin:    in.BudgetMin,
		BudgetMax:    in.BudgetMax,
		Location:     in.Location,
		Address:      in.Address,
		Deadline:     in.Deadline.UTC(),
		Requirements: requirements,
		Status:       domain.JobOpen,
		CreatorID:    creator.ID,
		CreatorName:  creator.FullName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		s.logger.Error().Err(err).Msg("failed to create job")
		return nil, err
	}

	s.logger.Info().Str("job_id", job.ID).Str("creator_id", job.CreatorID).Str("category", string(job.Category)).Msg("job created")
	return job, nil
}

// ListJobs applies the role visibility rule: seekers see their own jobs in any
// status, providers only ever see open jobs.
func (s *JobService) ListJobs(ctx context.Context, in ports.ListJobsInput) ([]*domain.Job, error) {
	if in.Limit < 0 || in.Skip < 0 {
		return nil, domain.ErrInvalidPagination
	}
	if in.Category != "" && !in.Category.Valid() {
		return nil, domain.ErrInvalidCategory
	}
	if in.Status != "" && !in.Status.Valid() {
		return nil, domain.ErrInvalidJobStatus
	}

	limit := in.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	filter := ports.JobFilter{
		Category: in.Category,
		Status:   in.Status,
		Limit:    limit,
		Skip:     in.Skip,
	}
	switch in.Caller.Role {
	case domain.RoleSeeker:
		filter.CreatorID = in.Caller.UserID
	case domain.RoleProvider:
		filter.Status = domain.JobOpen
	default:
		return nil, domain.ErrForbidden
	}

	jobs, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// GetJob returns the job with its bids. Bidder name and rating are joined at
// read time so they reflect the bidder's current profile.
func (s *JobService) GetJob(ctx context.Context, jobID string) (*ports.JobDetail, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}

	bids, err := s.bids.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job: list bids: %w", err)
	}

	if len(bids) > 0 {
		ids := make([]string, 0, len(bids))
		for _, b := range bids {
			ids = append(ids, b.BidderID)
		}
		bidders, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("get job: load bidders: %w", err)
		}
		for _, b := range bids {
			if u, ok := bidders[b.BidderID]; ok {
				b.BidderName = u.FullName
				b.BidderRating = u.Rating
			}
		}
	}

	return &ports.JobDetail{Job: job, Bids: bids}, nil
}

// PlaceBid records a provider's offer on an open job and bumps the job's bid counter.
func (s *JobService) PlaceBid(ctx context.Context, in ports.PlaceBidInput) (*domain.Bid, error) {
	if in.Caller.Role != domain.RoleProvider {
		return nil, domain.ErrProviderOnly
	}
	if in.Amount <= 0 {
		return nil, domain.ErrInvalidBidAmount
	}

	job, err := s.jobs.FindByID(ctx, in.JobID)
	if err != nil {
		return nil, fmt.Errorf("place bid: %w", err)
	}
	if job.Status != domain.JobOpen {
		return nil, domain.ErrJobNotOpen
	}

	// Fast path only; the unique (job_id, bidder_id) index is authoritative.
	if _, err := s.bids.FindByJobAndBidder(ctx, in.JobID, in.Caller.UserID); err == nil {
		return nil, domain.ErrDuplicateBid
	} else if !errors.Is(err, domain.ErrBidNotFound) {
		return nil, fmt.Errorf("place bid: %w", err)
	}

	bidder, err := loadCaller(ctx, s.users, in.Caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("place bid: %w", err)
	}

	bid := &domain.Bid{
		ID:             uuid.NewString(),
		JobID:          job.ID,
		BidderID:       bidder.ID,
		BidderName:     bidder.FullName,
		Amount:         in.Amount,
		Message:        in.Message,
		CompletionTime: in.CompletionTime,
		CreatedAt:      time.Now().UTC(),
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.bids.Create(ctx, bid); err != nil {
			return err
		}
		return s.jobs.IncrementBids(ctx, job.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("place bid: %w", err)
	}

	s.logger.Info().Str("job_id", job.ID).Str("bid_id", bid.ID).Int64("amount", bid.Amount).Msg("bid placed")
	return bid, nil
}

// SelectBid lets the job's creator pick a bid. Re-selecting while the job is
// in progress is allowed; completed or cancelled jobs are rejected.
func (s *JobService) SelectBid(ctx context.Context, jobID, bidID, callerID string) error {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("select bid: %w", err)
	}
	if job.CreatorID != callerID {
		return domain.ErrNotJobCreator
	}

	bid, err := s.bids.FindByID(ctx, bidID)
	if err != nil {
		return fmt.Errorf("select bid: %w", err)
	}
	if bid.JobID != job.ID {
		return domain.ErrBidNotFound
	}

	if !job.Status.CanTransitionTo(domain.JobInProgress) {
		return domain.ErrJobNotSelectable
	}

	now := time.Now().UTC()
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.jobs.MarkInProgress(ctx, job.ID, bid.ID, now); err != nil {
			return err
		}
		return s.bids.MarkSelected(ctx, job.ID, bid.ID)
	})
	if err != nil {
		return fmt.Errorf("select bid: %w", err)
	}

	s.logger.Info().Str("job_id", job.ID).Str("bid_id", bid.ID).Msg("bid selected")
	return nil
}
