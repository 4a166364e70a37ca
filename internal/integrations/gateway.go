package integrations

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/net2mulu/signature-gym/internal/domain/payment"
)

const (
	paymentSucceeded = "Payment processed successfully"
	paymentFailed    = "Payment processing failed. Please try again."
	refundSucceeded  = "Refund processed successfully"
	refundFailed     = "Refund processing failed. Please try again."

	base36 = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// MockGateway simulates a payment processor with fixed latency and random declines
type MockGateway struct {
	processDelay time.Duration
	refundDelay  time.Duration
	successRate  float64
	refundRate   float64

	mu  sync.Mutex
	rnd *rand.Rand
}

// MockOption configures a MockGateway
type MockOption func(*MockGateway)

// WithDelays overrides the simulated latency
func WithDelays(process, refund time.Duration) MockOption {
	return func(g *MockGateway) {
		g.processDelay = process
		g.refundDelay = refund
	}
}

// WithSuccessRates overrides the probability of a charge and a refund succeeding
func WithSuccessRates(process, refund float64) MockOption {
	return func(g *MockGateway) {
		g.successRate = process
		g.refundRate = refund
	}
}

// WithRand sets the random source used for outcomes and IDs
func WithRand(r *rand.Rand) MockOption {
	return func(g *MockGateway) {
		g.rnd = r
	}
}

// NewMockGateway creates a gateway that succeeds 90% of charges and 95% of refunds
func NewMockGateway(opts ...MockOption) *MockGateway {
	g := &MockGateway{
		processDelay: 1500 * time.Millisecond,
		refundDelay:  time.Second,
		successRate:  0.9,
		refundRate:   0.95,
		rnd:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Process simulates a charge
func (g *MockGateway) Process(ctx context.Context, charge payment.Charge) (*payment.Result, error) {
	if err := wait(ctx, g.processDelay); err != nil {
		return nil, err
	}

	ok, id := g.roll(g.successRate, "txn_")
	if !ok {
		return &payment.Result{
			Success: false,
			Status:  payment.StatusFailed,
			Message: paymentFailed,
		}, nil
	}

	return &payment.Result{
		Success:       true,
		Status:        payment.StatusCompleted,
		TransactionID: id,
		Message:       paymentSucceeded,
	}, nil
}

// Refund simulates returning a charge
func (g *MockGateway) Refund(ctx context.Context, transactionID string, amount int64) (*payment.RefundResult, error) {
	if err := wait(ctx, g.refundDelay); err != nil {
		return nil, err
	}

	ok, id := g.roll(g.refundRate, "ref_")
	if !ok {
		return &payment.RefundResult{
			Success: false,
			Message: refundFailed,
		}, nil
	}

	return &payment.RefundResult{
		Success:  true,
		Status:   payment.StatusRefunded,
		RefundID: id,
		Message:  refundSucceeded,
	}, nil
}

func (g *MockGateway) roll(rate float64, prefix string) (bool, string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.rnd.Float64() >= rate {
		return false, ""
	}

	b := make([]byte, 8)
	for i := range b {
		b[i] = base36[g.rnd.Intn(len(base36))]
	}
	return true, prefix + string(b)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
