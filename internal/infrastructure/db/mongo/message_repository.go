package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/woiya/marketplace/internal/core/domain"
)

type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection(collectionMessages)}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func conversationFilter(a, b string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"sender_id": a, "recipient_id": b},
		bson.M{"sender_id": b, "recipient_id": a},
	}}
}

func (r *MessageRepository) Conversation(ctx context.Context, a, b string) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, conversationFilter(a, b), opts)
	if err != nil {
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	msgs := []*domain.Message{}
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("decode conversation: %w", err)
	}
	return msgs, nil
}
