package gateway

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

// Delays is the simulated latency of each gateway call.
type Delays struct {
	Initiate time.Duration
	Status   time.Duration
	Refund   time.Duration
}

// DefaultDelays match the latency of the e-wallet sandboxes the mock stands in for.
var DefaultDelays = Delays{
	Initiate: time.Second,
	Status:   500 * time.Millisecond,
	Refund:   time.Second,
}

// ObserveFunc receives the duration of every gateway call, keyed by operation.
type ObserveFunc func(op string, elapsed time.Duration)

// MockGateway simulates GoPay, OVO and virtual-account providers. Every call
// succeeds after its delay unless ctx is cancelled first.
type MockGateway struct {
	delays  Delays
	observe ObserveFunc
	log     zerolog.Logger
}

var _ ports.PaymentGateway = (*MockGateway)(nil)

func NewMockGateway(delays Delays, observe ObserveFunc, log zerolog.Logger) *MockGateway {
	if observe == nil {
		observe = func(string, time.Duration) {}
	}
	return &MockGateway{delays: delays, observe: observe, log: log}
}

func (g *MockGateway) Initiate(ctx context.Context, method domain.PaymentMethod, amount int64, orderID string) (*ports.GatewayPayment, error) {
	if err := g.wait(ctx, "initiate", g.delays.Initiate); err != nil {
		return nil, err
	}
	if !method.Valid() {
		return nil, fmt.Errorf("gateway: unsupported method %q", method)
	}

	p := &ports.GatewayPayment{
		CorrelationID: newID("pay_"),
		RedirectURL:   fmt.Sprintf("https://mock-%s.com/pay/%s", method, orderID),
	}
	g.log.Debug().
		Str("correlation_id", p.CorrelationID).
		Str("method", string(method)).
		Int64("amount", amount).
		Msg("mock payment initiated")
	return p, nil
}

// CheckStatus reports every payment as settled.
func (g *MockGateway) CheckStatus(ctx context.Context, correlationID string) (ports.SettlementStatus, error) {
	if err := g.wait(ctx, "status", g.delays.Status); err != nil {
		return "", err
	}
	return ports.SettlementSettled, nil
}

func (g *MockGateway) Refund(ctx context.Context, correlationID string, amount int64) (string, error) {
	if err := g.wait(ctx, "refund", g.delays.Refund); err != nil {
		return "", err
	}
	refundID := newID("ref_")
	g.log.Debug().Str("correlation_id", correlationID).Str("refund_id", refundID).Int64("amount", amount).Msg("mock refund issued")
	return refundID, nil
}

// wait blocks for d or until ctx is done, whichever comes first.
func (g *MockGateway) wait(ctx context.Context, op string, d time.Duration) error {
	start := time.Now()
	defer func() { g.observe(op, time.Since(start)) }()

	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("gateway %s: %w", op, ctx.Err())
	case <-timer.C:
		return nil
	}
}

// newID returns prefix followed by 12 hex characters.
func newID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
