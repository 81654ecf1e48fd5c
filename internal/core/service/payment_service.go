package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

// paymentLockTTL bounds how long a crashed holder can block a payment. It must
// exceed the slowest gateway call made under the lock.
const paymentLockTTL = 30 * time.Second

// PaymentService implements the escrow lifecycle:
//
//	pending -> held_in_escrow -> released
//	                          -> refunded
type PaymentService struct {
	payments   ports.PaymentRepository
	jobs       ports.JobRepository
	bids       ports.BidRepository
	users      ports.UserRepository
	gateway    ports.PaymentGateway
	tx         ports.Transactor
	locker     ports.Locker
	escrowHold time.Duration
	log        zerolog.Logger
}

// PaymentDeps groups the collaborators of PaymentService.
type PaymentDeps struct {
	Payments ports.PaymentRepository
	Jobs     ports.JobRepository
	Bids     ports.BidRepository
	Users    ports.UserRepository
	Gateway  ports.PaymentGateway
	Tx       ports.Transactor
	Locker   ports.Locker
}

func NewPaymentService(deps PaymentDeps, escrowHold time.Duration, log zerolog.Logger) *PaymentService {
	if escrowHold <= 0 {
		escrowHold = domain.EscrowHold
	}
	return &PaymentService{
		payments:   deps.Payments,
		jobs:       deps.Jobs,
		bids:       deps.Bids,
		users:      deps.Users,
		gateway:    deps.Gateway,
		tx:         deps.Tx,
		locker:     deps.Locker,
		escrowHold: escrowHold,
		log:        log,
	}
}

// CreatePayment initiates a gateway payment for a job's bid and stores it as pending.
func (s *PaymentService) CreatePayment(ctx context.Context, in ports.CreatePaymentInput) (*domain.Payment, error) {
	if !in.Method.Valid() {
		return nil, domain.ErrInvalidPaymentMethod
	}
	if in.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	job, err := s.jobs.FindByID(ctx, in.JobID)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	bid, err := s.bids.FindByID(ctx, in.BidID)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	if bid.JobID != job.ID {
		return nil, domain.ErrBidNotFound
	}
	if job.CreatorID != in.PayerID {
		return nil, domain.ErrNotPaymentCreator
	}

	gp, err := s.gateway.Initiate(ctx, in.Method, in.Amount, "job_"+job.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("job_id", job.ID).Msg("gateway initiate failed")
		return nil, domain.ErrPaymentCreationFailed
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:               uuid.NewString(),
		JobID:            job.ID,
		BidID:            bid.ID,
		PayerID:          in.PayerID,
		ReceiverID:       bid.BidderID,
		Amount:           in.Amount,
		Method:           in.Method,
		Status:           domain.PaymentPending,
		GatewayPaymentID: gp.CorrelationID,
		GatewayURL:       gp.RedirectURL,
		EscrowHoldUntil:  now.Add(s.escrowHold),
		CreatedAt:        now,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.log.Info().
		Str("payment_id", payment.ID).
		Str("job_id", job.ID).
		Str("method", string(payment.Method)).
		Int64("amount", payment.Amount).
		Msg("payment created")
	return payment, nil
}

// ConfirmPayment asks the gateway whether the payment settled and, if so,
// moves it into escrow. Confirming a payment already in escrow is a no-op and
// reports moved=false.
func (s *PaymentService) ConfirmPayment(ctx context.Context, paymentID string) (*domain.Payment, bool, error) {
	unlock, err := s.locker.Lock(ctx, paymentLockKey(paymentID), paymentLockTTL)
	if err != nil {
		return nil, false, fmt.Errorf("confirm payment: %w", err)
	}
	defer unlock()

	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, false, fmt.Errorf("confirm payment: %w", err)
	}
	if payment.Status == domain.PaymentHeldInEscrow {
		return payment, false, nil
	}
	if !payment.Status.CanTransitionTo(domain.PaymentHeldInEscrow) {
		return nil, false, domain.ErrInvalidTransition
	}

	status, err := s.gateway.CheckStatus(ctx, payment.GatewayPaymentID)
	if err != nil {
		s.log.Warn().Err(err).Str("payment_id", payment.ID).Msg("gateway status check failed")
		return nil, false, domain.ErrGatewayUnavailable
	}
	if status != ports.SettlementSettled {
		return nil, false, domain.ErrPaymentNotConfirmed
	}

	now := time.Now().UTC()
	err = s.payments.Transition(ctx, ports.PaymentTransition{
		PaymentID: payment.ID,
		From:      payment.Status,
		To:        domain.PaymentHeldInEscrow,
		At:        now,
	})
	if err != nil {
		return nil, false, fmt.Errorf("confirm payment: %w", err)
	}

	payment.Status = domain.PaymentHeldInEscrow
	payment.PaidAt = &now
	s.log.Info().Str("payment_id", payment.ID).Msg("payment held in escrow")
	return payment, true, nil
}

// ReleasePayment pays the receiver out of escrow. The payment status, the
// receiver's wallet and the job status change in a single transaction.
func (s *PaymentService) ReleasePayment(ctx context.Context, paymentID, callerID string) (*domain.Payment, error) {
	unlock, err := s.locker.Lock(ctx, paymentLockKey(paymentID), paymentLockTTL)
	if err != nil {
		return nil, fmt.Errorf("release payment: %w", err)
	}
	defer unlock()

	payment, err := s.loadEscrowed(ctx, paymentID, callerID)
	if err != nil {
		return nil, fmt.Errorf("release payment: %w", err)
	}

	now := time.Now().UTC()
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		err := s.payments.Transition(ctx, ports.PaymentTransition{
			PaymentID: payment.ID,
			From:      domain.PaymentHeldInEscrow,
			To:        domain.PaymentReleased,
			At:        now,
		})
		if errors.Is(err, domain.ErrInvalidTransition) {
			return domain.ErrNotInEscrow
		}
		if err != nil {
			return err
		}
		if err := s.users.CreditWallet(ctx, payment.ReceiverID, payment.Amount); err != nil {
			return err
		}
		return s.jobs.MarkCompleted(ctx, payment.JobID, now)
	})
	if err != nil {
		return nil, fmt.Errorf("release payment: %w", err)
	}

	payment.Status = domain.PaymentReleased
	payment.ReleasedAt = &now
	s.log.Info().
		Str("payment_id", payment.ID).
		Str("receiver_id", payment.ReceiverID).
		Int64("amount", payment.Amount).
		Msg("payment released")
	return payment, nil
}

// RefundPayment returns escrowed funds to the payer through the gateway.
func (s *PaymentService) RefundPayment(ctx context.Context, paymentID, callerID string) (*domain.Payment, error) {
	unlock, err := s.locker.Lock(ctx, paymentLockKey(paymentID), paymentLockTTL)
	if err != nil {
		return nil, fmt.Errorf("refund payment: %w", err)
	}
	defer unlock()

	payment, err := s.loadEscrowed(ctx, paymentID, callerID)
	if err != nil {
		return nil, fmt.Errorf("refund payment: %w", err)
	}

	refundID, err := s.gateway.Refund(ctx, payment.GatewayPaymentID, payment.Amount)
	if err != nil {
		s.log.Warn().Err(err).Str("payment_id", payment.ID).Msg("gateway refund failed")
		return nil, domain.ErrGatewayUnavailable
	}

	now := time.Now().UTC()
	err = s.payments.Transition(ctx, ports.PaymentTransition{
		PaymentID: payment.ID,
		From:      domain.PaymentHeldInEscrow,
		To:        domain.PaymentRefunded,
		At:        now,
		RefundID:  refundID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			// The gateway already refunded; the stored state moved under us.
			s.log.Error().Str("payment_id", payment.ID).Str("refund_id", refundID).Msg("refund issued but payment left escrow concurrently")
			return nil, domain.ErrNotInEscrow
		}
		return nil, fmt.Errorf("refund payment: %w", err)
	}

	payment.Status = domain.PaymentRefunded
	payment.RefundID = refundID
	payment.RefundedAt = &now
	s.log.Info().Str("payment_id", payment.ID).Str("refund_id", refundID).Msg("payment refunded")
	return payment, nil
}

// loadEscrowed fetches a payment the caller paid for and checks it is held in escrow.
func (s *PaymentService) loadEscrowed(ctx context.Context, paymentID, callerID string) (*domain.Payment, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.PayerID != callerID {
		return nil, domain.ErrNotPayer
	}
	if payment.Status != domain.PaymentHeldInEscrow {
		return nil, domain.ErrNotInEscrow
	}
	return payment, nil
}

func paymentLockKey(paymentID string) string {
	return "payment:" + paymentID
}
