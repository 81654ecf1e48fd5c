package ports

import (
	"context"

	"github.com/woiya/marketplace/internal/core/domain"
)

// MessageRepository defines persistence operations for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	// Conversation returns messages exchanged between a and b in either
	// direction, oldest first.
	Conversation(ctx context.Context, a, b string) ([]*domain.Message, error)
}
