package ports

import (
	"context"
	"time"

	"github.com/woiya/marketplace/internal/core/domain"
)

// PaymentTransition describes a conditional status change: it only applies
// while the stored status still equals From.
type PaymentTransition struct {
	PaymentID string
	From      domain.PaymentStatus
	To        domain.PaymentStatus
	At        time.Time
	RefundID  string // only for To == refunded
}

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	// Transition applies t atomically. If the stored status is no longer t.From
	// it returns domain.ErrInvalidTransition and changes nothing.
	Transition(ctx context.Context, t PaymentTransition) error
	// ListByParticipant returns payments where the user is payer or receiver, newest first.
	ListByParticipant(ctx context.Context, userID string, limit int) ([]*domain.Payment, error)
	// SumReleasedTo totals the amounts of released payments received by the user.
	SumReleasedTo(ctx context.Context, receiverID string) (int64, error)
}
