package ports

import (
	"context"
	"time"

	"github.com/woiya/marketplace/internal/core/domain"
)

// JobFilter carries the query parameters for listing or counting jobs.
// Zero values mean "no filter".
type JobFilter struct {
	CreatorID string
	Category  domain.JobCategory
	Status    domain.JobStatus
	Limit     int
	Skip      int
}

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// List returns jobs matching filter, newest first.
	List(ctx context.Context, filter JobFilter) ([]*domain.Job, error)
	// Count ignores Limit and Skip.
	Count(ctx context.Context, filter JobFilter) (int64, error)
	// IncrementBids yields domain.ErrJobNotOpen unless the job is still open.
	IncrementBids(ctx context.Context, id string) error
	// MarkInProgress records the selected bid and moves the job to in_progress.
	MarkInProgress(ctx context.Context, id, bidID string, at time.Time) error
	MarkCompleted(ctx context.Context, id string, at time.Time) error
}
