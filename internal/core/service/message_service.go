package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

type MessageService struct {
	messages ports.MessageRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewMessageService(messages ports.MessageRepository, users ports.UserRepository, log zerolog.Logger) *MessageService {
	return &MessageService{messages: messages, users: users, log: log}
}

// Send appends a message from sender to recipient.
func (s *MessageService) Send(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, domain.ErrEmptyMessage
	}
	if len(content) > domain.MaxMessageLength {
		return nil, domain.ErrMessageLong
	}
	if in.SenderID == in.RecipientID {
		return nil, domain.ErrSelfMessage
	}

	sender, err := loadCaller(ctx, s.users, in.SenderID)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	if _, err := s.users.FindByID(ctx, in.RecipientID); err != nil {
		return nil, fmt.Errorf("send message: recipient: %w", err)
	}

	var jobID *string
	if in.JobID != nil && *in.JobID != "" {
		id := *in.JobID
		jobID = &id
	}

	msg := &domain.Message{
		ID:          uuid.NewString(),
		SenderID:    sender.ID,
		SenderName:  sender.FullName,
		RecipientID: in.RecipientID,
		Content:     content,
		JobID:       jobID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	s.log.Debug().Str("message_id", msg.ID).Str("sender_id", msg.SenderID).Str("recipient_id", msg.RecipientID).Msg("message sent")
	return msg, nil
}

// Conversation returns both directions of the caller's exchange with other, oldest first.
func (s *MessageService) Conversation(ctx context.Context, callerID, otherUserID string) ([]*domain.Message, error) {
	msgs, err := s.messages.Conversation(ctx, callerID, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("conversation: %w", err)
	}
	return msgs, nil
}
