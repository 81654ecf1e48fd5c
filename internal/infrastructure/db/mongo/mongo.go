package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultTimeout = 10 * time.Second

// Collection names.
const (
	collectionUsers    = "users"
	collectionJobs     = "jobs"
	collectionBids     = "bids"
	collectionPayments = "payments"
	collectionMessages = "messages"
	collectionRatings  = "ratings"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// Transactor runs units of work inside a MongoDB multi-document transaction.
// Transactions need a replica set or sharded cluster.
type Transactor struct {
	client *mongo.Client
}

func NewTransactor(client *mongo.Client) *Transactor {
	return &Transactor{client: client}
}

// WithinTransaction commits fn's writes together. The driver retries fn on
// transient transaction errors, so fn must be safe to run more than once.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// indexes back the duplicate email, bid and rating rules.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for coll, indexes := range indexModels() {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

func indexModels() map[string][]mongo.IndexModel {
	unique := options.Index().SetUnique(true)
	return map[string][]mongo.IndexModel{
		collectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		collectionJobs: {
			{Keys: bson.D{{Key: "creator_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "category", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		collectionBids: {
			{Keys: bson.D{{Key: "job_id", Value: 1}, {Key: "bidder_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "bidder_id", Value: 1}}},
		},
		collectionPayments: {
			{Keys: bson.D{{Key: "payer_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "status", Value: 1}}},
		},
		collectionMessages: {
			{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "recipient_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		collectionRatings: {
			{Keys: bson.D{{Key: "rater_id", Value: 1}, {Key: "target_user_id", Value: 1}, {Key: "job_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "target_user_id", Value: 1}}},
		},
	}
}
