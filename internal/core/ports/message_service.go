package ports

import (
	"context"

	"github.com/woiya/marketplace/internal/core/domain"
)

type SendMessageInput struct {
	SenderID    string
	RecipientID string
	Content     string
	JobID       *string
}

type MessageService interface {
	Send(ctx context.Context, input SendMessageInput) (*domain.Message, error)
	Conversation(ctx context.Context, callerID, otherUserID string) ([]*domain.Message, error)
}
