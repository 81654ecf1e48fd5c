package ports

import (
	"context"

	"github.com/woiya/marketplace/internal/core/domain"
)

// CreatePaymentInput carries the data needed to start an escrow payment.
type CreatePaymentInput struct {
	JobID   string
	BidID   string
	PayerID string
	Method  domain.PaymentMethod
	Amount  int64
}

// PaymentService drives the escrow lifecycle.
type PaymentService interface {
	CreatePayment(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error)
	// ConfirmPayment reports moved=false when the payment was already in escrow.
	ConfirmPayment(ctx context.Context, paymentID string) (p *domain.Payment, moved bool, err error)
	ReleasePayment(ctx context.Context, paymentID, callerID string) (*domain.Payment, error)
	RefundPayment(ctx context.Context, paymentID, callerID string) (*domain.Payment, error)
}
