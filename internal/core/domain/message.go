package domain

import "time"

// Message is a direct message between two users, optionally about a job.
// IsRead is stored but nothing flips it yet.
type Message struct {
	ID          string    `json:"id" bson:"_id"`
	SenderID    string    `json:"sender_id" bson:"sender_id"`
	SenderName  string    `json:"sender_name" bson:"sender_name"`
	RecipientID string    `json:"recipient_id" bson:"recipient_id"`
	Content     string    `json:"content" bson:"content"`
	JobID       *string   `json:"job_id" bson:"job_id"`
	IsRead      bool      `json:"is_read" bson:"is_read"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// MaxMessageLength bounds message content, in bytes.
const MaxMessageLength = 2000
