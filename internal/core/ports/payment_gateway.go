package ports

import (
	"context"

	"github.com/woiya/marketplace/internal/core/domain"
)

// GatewayPayment is what a gateway returns when a payment is initiated.
type GatewayPayment struct {
	CorrelationID string
	RedirectURL   string
}

// SettlementStatus is the gateway's view of a payment.
type SettlementStatus string

const (
	SettlementSettled SettlementStatus = "settled"
	SettlementPending SettlementStatus = "pending"
)

// PaymentGateway is the external collaborator that moves money. Production
// gateways are swapped in behind these three operations.
type PaymentGateway interface {
	Initiate(ctx context.Context, method domain.PaymentMethod, amount int64, orderID string) (*GatewayPayment, error)
	CheckStatus(ctx context.Context, correlationID string) (SettlementStatus, error)
	Refund(ctx context.Context, correlationID string, amount int64) (refundID string, err error)
}
