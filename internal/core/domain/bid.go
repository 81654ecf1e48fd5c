package domain

import "time"

// Bid is a provider's offer on a job. BidderRating is filled at read time and
// never persisted.
type Bid struct {
	ID             string    `json:"id" bson:"_id"`
	JobID          string    `json:"job_id" bson:"job_id"`
	BidderID       string    `json:"bidder_id" bson:"bidder_id"`
	BidderName     string    `json:"bidder_name" bson:"bidder_name"`
	BidderRating   float64   `json:"bidder_rating" bson:"-"`
	Amount         int64     `json:"amount" bson:"amount"`
	Message        string    `json:"message" bson:"message"`
	CompletionTime string    `json:"completion_time" bson:"completion_time"`
	IsSelected     bool      `json:"is_selected" bson:"is_selected"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
