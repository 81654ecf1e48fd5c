package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/woiya/marketplace/internal/core/domain"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// userDocument is the stored shape of a user. The domain type keeps the
// password hash out of JSON, so persistence gets its own struct.
type userDocument struct {
	ID            string          `bson:"_id"`
	Email         string          `bson:"email"`
	PasswordHash  string          `bson:"password_hash"`
	FullName      string          `bson:"full_name"`
	Phone         string          `bson:"phone"`
	Role          string          `bson:"role"`
	Location      domain.Location `bson:"location"`
	Rating        float64         `bson:"rating"`
	TotalRatings  int             `bson:"total_ratings"`
	WalletBalance int64           `bson:"wallet_balance"`
	IsVerified    bool            `bson:"is_verified"`
	CreatedAt     time.Time       `bson:"created_at"`
}

func toUserDocument(u *domain.User) userDocument {
	return userDocument{
		ID:            u.ID,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		FullName:      u.FullName,
		Phone:         u.Phone,
		Role:          string(u.Role),
		Location:      u.Location,
		Rating:        u.Rating,
		TotalRatings:  u.TotalRatings,
		WalletBalance: u.WalletBalance,
		IsVerified:    u.IsVerified,
		CreatedAt:     u.CreatedAt.UTC(),
	}
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:            d.ID,
		Email:         d.Email,
		PasswordHash:  d.PasswordHash,
		FullName:      d.FullName,
		Phone:         d.Phone,
		Role:          domain.Role(d.Role),
		Location:      d.Location,
		Rating:        d.Rating,
		TotalRatings:  d.TotalRatings,
		WalletBalance: d.WalletBalance,
		IsVerified:    d.IsVerified,
		CreatedAt:     d.CreatedAt.UTC(),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toUserDocument(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	out := make(map[string]*domain.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	for _, d := range docs {
		out[d.ID] = d.toDomain()
	}
	return out, nil
}

// CreditWallet uses $inc so concurrent credits never lose an update.
func (r *UserRepository) CreditWallet(ctx context.Context, id string, amount int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"wallet_balance": amount}})
	if err != nil {
		return fmt.Errorf("credit wallet: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateRating(ctx context.Context, id string, rating float64, total int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"rating": rating, "total_ratings": total}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
