package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

// jobFilter translates a JobFilter into a query document. Empty fields are omitted.
func jobFilter(f ports.JobFilter) bson.M {
	filter := bson.M{}
	if f.CreatorID != "" {
		filter["creator_id"] = f.CreatorID
	}
	if f.Category != "" {
		filter["category"] = string(f.Category)
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	return filter
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var job domain.Job
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&job); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return &job, nil
}

// List returns jobs newest first.
func (r *JobRepository) List(ctx context.Context, f ports.JobFilter) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(f.Skip))
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cur, err := r.col.Find(ctx, jobFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	jobs := []*domain.Job{}
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) Count(ctx context.Context, f ports.JobFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, jobFilter(f))
	if err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

// IncrementBids only matches open jobs, so a bid racing a selection aborts
// its transaction instead of landing on a closed job.
func (r *JobRepository) IncrementBids(ctx context.Context, id string) error {
	filter := bson.M{"_id": id, "status": string(domain.JobOpen)}
	return r.update(ctx, filter, bson.M{"$inc": bson.M{"bids_count": 1}}, domain.ErrJobNotOpen)
}

// MarkInProgress only matches jobs that still accept a selection, so a job
// completed concurrently is not reopened.
func (r *JobRepository) MarkInProgress(ctx context.Context, id, bidID string, at time.Time) error {
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": bson.A{string(domain.JobOpen), string(domain.JobInProgress)}},
	}
	update := bson.M{"$set": bson.M{
		"status":          string(domain.JobInProgress),
		"selected_bid_id": bidID,
		"selected_at":     at.UTC(),
	}}
	return r.update(ctx, filter, update, domain.ErrJobNotSelectable)
}

func (r *JobRepository) MarkCompleted(ctx context.Context, id string, at time.Time) error {
	update := bson.M{"$set": bson.M{
		"status":       string(domain.JobCompleted),
		"completed_at": at.UTC(),
	}}
	return r.update(ctx, bson.M{"_id": id}, update, domain.ErrJobNotFound)
}

func (r *JobRepository) update(ctx context.Context, filter, update bson.M, notMatched error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if res.MatchedCount == 0 {
		return notMatched
	}
	return nil
}
