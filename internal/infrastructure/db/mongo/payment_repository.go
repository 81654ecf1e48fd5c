package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(collectionPayments)}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Payment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return &p, nil
}

// transitionUpdate builds the compare-and-set for t: the filter pins the
// current status and the update stamps the timestamp belonging to t.To.
func transitionUpdate(t ports.PaymentTransition) (filter, update bson.M) {
	filter = bson.M{"_id": t.PaymentID, "status": string(t.From)}
	set := bson.M{"status": string(t.To)}
	at := t.At.UTC()
	switch t.To {
	case domain.PaymentPaid, domain.PaymentHeldInEscrow:
		set["paid_at"] = at
	case domain.PaymentReleased:
		set["released_at"] = at
	case domain.PaymentRefunded:
		set["refunded_at"] = at
		if t.RefundID != "" {
			set["refund_id"] = t.RefundID
		}
	}
	return filter, bson.M{"$set": set}
}

func (r *PaymentRepository) Transition(ctx context.Context, t ports.PaymentTransition) error {
	if !t.From.CanTransitionTo(t.To) {
		return domain.ErrInvalidTransition
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, update := transitionUpdate(t)
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("transition payment: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": t.PaymentID})
	if err != nil {
		return fmt.Errorf("transition payment: %w", err)
	}
	if n == 0 {
		return domain.ErrPaymentNotFound
	}
	return domain.ErrInvalidTransition
}

func (r *PaymentRepository) ListByParticipant(ctx context.Context, userID string, limit int) ([]*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"payer_id": userID},
		bson.M{"receiver_id": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	payments := []*domain.Payment{}
	if err := cur.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return payments, nil
}

func (r *PaymentRepository) SumReleasedTo(ctx context.Context, receiverID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"receiver_id": receiverID, "status": string(domain.PaymentReleased)}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum earnings: %w", err)
	}
	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode earnings: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
