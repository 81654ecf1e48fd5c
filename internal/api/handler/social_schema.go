package handler

import "github.com/woiya/marketplace/internal/core/domain"

type sendMessageRequest struct {
	RecipientID string  `json:"recipient_id" validate:"required"`
	Content     string  `json:"content"      validate:"required"`
	JobID       *string `json:"job_id"`
}

type sendMessageResponse struct {
	Message   string `json:"message"`
	MessageID string `json:"message_id"`
}

type conversationResponse struct {
	Messages []*domain.Message `json:"messages"`
}

type submitRatingRequest struct {
	TargetUserID string `json:"target_user_id" validate:"required"`
	JobID        string `json:"job_id"         validate:"required"`
	Rating       int    `json:"rating"         validate:"required,gte=1,lte=5"`
	Comment      string `json:"comment"        validate:"max=1000"`
}

type submitRatingResponse struct {
	Message  string `json:"message"`
	RatingID string `json:"rating_id"`
}
