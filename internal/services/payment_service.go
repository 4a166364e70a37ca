package services

import (
	"context"

	"github.com/net2mulu/signature-gym/internal/domain/payment"
	"github.com/net2mulu/signature-gym/internal/domain/subscription"
	"github.com/net2mulu/signature-gym/internal/events"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/metrics"
)

// PaymentService implements payment.Service
type PaymentService struct {
	repo          payment.Repository
	gateway       payment.Gateway
	subscriptions subscription.Service
	receipts      *ReceiptIssuer
	publisher     events.Publisher
	logger        *logger.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	repo payment.Repository,
	gateway payment.Gateway,
	subscriptions subscription.Service,
	issuer *ReceiptIssuer,
	publisher events.Publisher,
	log *logger.Logger,
) payment.Service {
	return &PaymentService{
		repo:          repo,
		gateway:       gateway,
		subscriptions: subscriptions,
		receipts:      issuer,
		publisher:     publisher,
		logger:        log,
	}
}

// Methods returns the accepted payment methods
func (s *PaymentService) Methods() []payment.Method {
	return payment.Methods()
}

// List returns a user's payments
func (s *PaymentService) List(ctx context.Context, userID int64, limit, offset int) ([]*payment.Payment, int64, error) {
	items, total, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []*payment.Payment{}
	}
	return items, total, nil
}

// Get returns a payment owned by userID
func (s *PaymentService) Get(ctx context.Context, userID int64, id string) (*payment.Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, errors.NotFound("Payment")
	}
	return p, nil
}

// Refund refunds a completed payment and cancels its subscription
func (s *PaymentService) Refund(ctx context.Context, userID int64, id string) (*payment.Payment, error) {
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if p.Status != payment.StatusCompleted {
		return nil, errors.InvalidState("Only completed payments can be refunded")
	}

	// Only one caller wins the claim, so the gateway sees a single refund per payment.
	if err := s.repo.TransitionStatus(ctx, p.ID, payment.StatusCompleted, payment.StatusRefunding); err != nil {
		if appErr, ok := errors.As(err); ok && appErr.Code == errors.ErrCodeInvalidState {
			return nil, errors.InvalidState("Only completed payments can be refunded")
		}
		return nil, err
	}

	result, err := s.gateway.Refund(ctx, p.TransactionID, p.Amount)

	// The claim must be settled even if the caller has gone away.
	ctx = context.WithoutCancel(ctx)

	if err != nil {
		metrics.RecordRefund("error")
		s.logger.ErrorWithErr(err, "Refund gateway call failed")
		s.release(ctx, p)
		return nil, errors.GatewayError(err)
	}
	if !result.Success {
		metrics.RecordRefund("failed")
		s.logger.With("payment_id", p.ID).Warn("Refund declined")
		s.release(ctx, p)
		return nil, errors.PaymentDeclined(result.Message)
	}

	p.Status = payment.StatusRefunded
	p.RefundID = result.RefundID
	p.Message = result.Message

	if p.SubscriptionID != "" {
		_, err := s.subscriptions.Cancel(ctx, userID, p.SubscriptionID)
		if appErr, ok := errors.As(err); err != nil && !(ok && appErr.Code == errors.ErrCodeInvalidState) {
			s.logger.WithError(err).With("subscription_id", p.SubscriptionID).Error("Failed to cancel refunded subscription")
		}
	}

	if _, err := s.receipts.Issue(ctx, p); err != nil {
		s.logger.WithError(err).With("payment_id", p.ID).Warn("Failed to reissue receipt")
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.ErrorWithErr(err, "Failed to record refund")
		return nil, err
	}

	metrics.RecordRefund("refunded")
	publishPayment(ctx, s.publisher, s.logger, events.PaymentRefunded, p)

	s.logger.WithFields(map[string]interface{}{
		"user_id":    userID,
		"payment_id": p.ID,
		"refund_id":  p.RefundID,
	}).Info("Payment refunded")

	return p, nil
}

// release returns a claimed payment to COMPLETED after a refund attempt fails
func (s *PaymentService) release(ctx context.Context, p *payment.Payment) {
	if err := s.repo.TransitionStatus(ctx, p.ID, payment.StatusRefunding, payment.StatusCompleted); err != nil {
		s.logger.WithError(err).With("payment_id", p.ID).Error("Failed to release refund claim")
	}
}

// Receipt returns the PDF receipt of a completed payment
func (s *PaymentService) Receipt(ctx context.Context, userID int64, id string) ([]byte, error) {
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if p.Status != payment.StatusCompleted && p.Status != payment.StatusRefunded {
		return nil, errors.InvalidState("Receipts are only available for completed payments")
	}

	data, issued, err := s.receipts.Load(ctx, p)
	if err != nil {
		return nil, err
	}
	if issued {
		if err := s.repo.Update(ctx, p); err != nil {
			s.logger.WithError(err).With("payment_id", p.ID).Warn("Failed to record receipt key")
		}
	}
	return data, nil
}

func publishPayment(ctx context.Context, pub events.Publisher, log *logger.Logger, eventType string, p *payment.Payment) {
	err := pub.Publish(ctx, events.StreamPayments, eventType, events.PaymentEvent{
		PaymentID:     p.ID,
		UserID:        p.UserID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Method:        p.Method,
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
	})
	if err != nil {
		log.WithError(err).With("event", eventType).Warn("Failed to publish payment event")
	}
}
