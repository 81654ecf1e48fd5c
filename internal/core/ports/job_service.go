package ports

import (
	"context"
	"time"

	"github.com/woiya/marketplace/internal/core/domain"
)

// Caller identifies the authenticated user issuing a request.
type Caller struct {
	UserID string
	Role   domain.Role
}

// CreateJobInput carries all data needed to post a job.
type CreateJobInput struct {
	Caller       Caller
	Title        string
	Description  string
	Category     domain.JobCategory
	BudgetMin    int64
	BudgetMax    int64
	Location     domain.Location
	Address      string
	Deadline     time.Time
	Requirements []string
}

// ListJobsInput carries the list endpoint's query. Status is ignored for providers.
type ListJobsInput struct {
	Caller   Caller
	Category domain.JobCategory
	Status   domain.JobStatus
	Limit    int
	Skip     int
}

// PlaceBidInput carries a provider's offer.
type PlaceBidInput struct {
	Caller         Caller
	JobID          string
	Amount         int64
	Message        string
	CompletionTime string
}

// JobDetail is a job with its bids, each enriched with the bidder's current name and rating.
type JobDetail struct {
	Job  *domain.Job
	Bids []*domain.Bid
}

// JobService defines use-case operations for jobs and bids.
type JobService interface {
	CreateJob(ctx context.Context, input CreateJobInput) (*domain.Job, error)
	ListJobs(ctx context.Context, input ListJobsInput) ([]*domain.Job, error)
	GetJob(ctx context.Context, jobID string) (*JobDetail, error)
	PlaceBid(ctx context.Context, input PlaceBidInput) (*domain.Bid, error)
	SelectBid(ctx context.Context, jobID, bidID, callerID string) error
}
