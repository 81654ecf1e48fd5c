package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

type RatingRepository struct {
	col *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{col: db.Collection(collectionRatings)}
}

func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, rating); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyRated
		}
		return fmt.Errorf("insert rating: %w", err)
	}
	return nil
}

func (r *RatingRepository) Exists(ctx context.Context, raterID, targetID, jobID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"rater_id": raterID, "target_user_id": targetID, "job_id": jobID}
	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("count ratings: %w", err)
	}
	return n > 0, nil
}

// StatsFor recomputes the aggregate from every stored rating rather than
// trusting the cached figure on the user document.
func (r *RatingRepository) StatsFor(ctx context.Context, targetID string) (ports.RatingStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"target_user_id": targetID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"sum":   bson.M{"$sum": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return ports.RatingStats{}, fmt.Errorf("aggregate ratings: %w", err)
	}
	var rows []struct {
		Sum   int64 `bson:"sum"`
		Count int   `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return ports.RatingStats{}, fmt.Errorf("decode ratings: %w", err)
	}
	if len(rows) == 0 {
		return ports.RatingStats{}, nil
	}
	return ports.RatingStats{Sum: rows[0].Sum, Count: rows[0].Count}, nil
}
