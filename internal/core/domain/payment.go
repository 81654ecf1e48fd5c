package domain

import "time"

// PaymentMethod is the closed set of supported wallets/channels.
type PaymentMethod string

const (
	MethodGoPay          PaymentMethod = "gopay"
	MethodOVO            PaymentMethod = "ovo"
	MethodVirtualAccount PaymentMethod = "virtual_account"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodGoPay, MethodOVO, MethodVirtualAccount:
		return true
	}
	return false
}

// PaymentStatus represents the escrow lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentPending      PaymentStatus = "pending"
	PaymentPaid         PaymentStatus = "paid"
	PaymentHeldInEscrow PaymentStatus = "held_in_escrow"
	PaymentReleased     PaymentStatus = "released"
	PaymentRefunded     PaymentStatus = "refunded"
)

// paymentTransitions is the escrow state machine. Released and Refunded are terminal.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:      {PaymentPaid, PaymentHeldInEscrow},
	PaymentPaid:         {PaymentHeldInEscrow},
	PaymentHeldInEscrow: {PaymentReleased, PaymentRefunded},
}

// CanTransitionTo reports whether a payment may move from s to next.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s PaymentStatus) Terminal() bool {
	return len(paymentTransitions[s]) == 0
}

// EscrowHold is how long a confirmed payment is held before it is expected to be released.
const EscrowHold = 7 * 24 * time.Hour

// Payment is a mock escrow payment from a job's creator to the selected bidder.
type Payment struct {
	ID               string        `json:"id" bson:"_id"`
	JobID            string        `json:"job_id" bson:"job_id"`
	BidID            string        `json:"bid_id" bson:"bid_id"`
	PayerID          string        `json:"payer_id" bson:"payer_id"`
	ReceiverID       string        `json:"receiver_id" bson:"receiver_id"`
	Amount           int64         `json:"amount" bson:"amount"`
	Method           PaymentMethod `json:"payment_method" bson:"payment_method"`
	Status           PaymentStatus `json:"status" bson:"status"`
	GatewayPaymentID string        `json:"gateway_payment_id" bson:"gateway_payment_id"`
	GatewayURL       string        `json:"gateway_url" bson:"gateway_url"`
	RefundID         string        `json:"refund_id,omitempty" bson:"refund_id,omitempty"`
	EscrowHoldUntil  time.Time     `json:"escrow_hold_until" bson:"escrow_hold_until"`
	CreatedAt        time.Time     `json:"created_at" bson:"created_at"`
	PaidAt           *time.Time    `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	ReleasedAt       *time.Time    `json:"released_at,omitempty" bson:"released_at,omitempty"`
	RefundedAt       *time.Time    `json:"refunded_at,omitempty" bson:"refunded_at,omitempty"`
}
