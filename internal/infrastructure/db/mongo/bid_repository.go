package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/woiya/marketplace/internal/core/domain"
)

type BidRepository struct {
	col *mongo.Collection
}

func NewBidRepository(db *mongo.Database) *BidRepository {
	return &BidRepository{col: db.Collection(collectionBids)}
}

// Create relies on the unique (job_id, bidder_id) index to reject a second bid.
func (r *BidRepository) Create(ctx context.Context, bid *domain.Bid) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, bid); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateBid
		}
		return fmt.Errorf("insert bid: %w", err)
	}
	return nil
}

func (r *BidRepository) FindByID(ctx context.Context, id string) (*domain.Bid, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *BidRepository) FindByJobAndBidder(ctx context.Context, jobID, bidderID string) (*domain.Bid, error) {
	return r.findOne(ctx, bson.M{"job_id": jobID, "bidder_id": bidderID})
}

func (r *BidRepository) findOne(ctx context.Context, filter bson.M) (*domain.Bid, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var bid domain.Bid
	if err := r.col.FindOne(ctx, filter).Decode(&bid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBidNotFound
		}
		return nil, fmt.Errorf("find bid: %w", err)
	}
	return &bid, nil
}

func (r *BidRepository) ListByJob(ctx context.Context, jobID string) ([]*domain.Bid, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"job_id": jobID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	bids := []*domain.Bid{}
	if err := cur.All(ctx, &bids); err != nil {
		return nil, fmt.Errorf("decode bids: %w", err)
	}
	return bids, nil
}

// MarkSelected clears every other bid of the job before flagging bidID. Run it
// inside a transaction so readers never see zero or two selected bids.
func (r *BidRepository) MarkSelected(ctx context.Context, jobID, bidID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	others := bson.M{"job_id": jobID, "_id": bson.M{"$ne": bidID}}
	if _, err := r.col.UpdateMany(ctx, others, bson.M{"$set": bson.M{"is_selected": false}}); err != nil {
		return fmt.Errorf("clear selection: %w", err)
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": bidID, "job_id": jobID}, bson.M{"$set": bson.M{"is_selected": true}})
	if err != nil {
		return fmt.Errorf("select bid: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBidNotFound
	}
	return nil
}

func (r *BidRepository) CountByBidder(ctx context.Context, bidderID string, selectedOnly bool) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"bidder_id": bidderID}
	if selectedOnly {
		filter["is_selected"] = true
	}
	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count bids: %w", err)
	}
	return n, nil
}
