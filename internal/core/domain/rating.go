package domain

import "time"

const (
	MinScore = 1
	MaxScore = 5
)

// Rating is one user's score of another for a job. Unique per (rater, target, job).
type Rating struct {
	ID           string    `json:"id" bson:"_id"`
	RaterID      string    `json:"rater_id" bson:"rater_id"`
	TargetUserID string    `json:"target_user_id" bson:"target_user_id"`
	JobID        string    `json:"job_id" bson:"job_id"`
	Score        int       `json:"rating" bson:"rating"`
	Comment      string    `json:"comment" bson:"comment"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
