package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/net2mulu/signature-gym/internal/domain/checkout"
	"github.com/net2mulu/signature-gym/internal/domain/membership"
	"github.com/net2mulu/signature-gym/internal/domain/payment"
	"github.com/net2mulu/signature-gym/internal/domain/pricing"
	"github.com/net2mulu/signature-gym/internal/domain/subscription"
	"github.com/net2mulu/signature-gym/internal/domain/user"
	"github.com/net2mulu/signature-gym/internal/events"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/metrics"
	"github.com/net2mulu/signature-gym/internal/pkg/validator"
)

// CheckoutService implements checkout.Service
type CheckoutService struct {
	users         user.Repository
	memberships   membership.Service
	payments      payment.Repository
	subscriptions subscription.Service
	gateway       payment.Gateway
	calculator    *pricing.Calculator
	receipts      *ReceiptIssuer
	publisher     events.Publisher
	validator     *validator.Validator
	logger        *logger.Logger
	now           func() time.Time
}

// CheckoutDeps groups the collaborators of the checkout flow
type CheckoutDeps struct {
	Users         user.Repository
	Memberships   membership.Service
	Payments      payment.Repository
	Subscriptions subscription.Service
	Gateway       payment.Gateway
	Calculator    *pricing.Calculator
	Receipts      *ReceiptIssuer
	Publisher     events.Publisher
	Logger        *logger.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(deps CheckoutDeps) checkout.Service {
	return &CheckoutService{
		users:         deps.Users,
		memberships:   deps.Memberships,
		payments:      deps.Payments,
		subscriptions: deps.Subscriptions,
		gateway:       deps.Gateway,
		calculator:    deps.Calculator,
		receipts:      deps.Receipts,
		publisher:     deps.Publisher,
		validator:     validator.New(),
		logger:        deps.Logger,
		now:           time.Now,
	}
}

// plan is a resolved purchase before payment
type plan struct {
	membership  *membership.Membership
	price       int64
	months      int
	guestPasses int
	pauseMonths int
}

// Checkout charges the member and issues a subscription
func (s *CheckoutService) Checkout(ctx context.Context, userID int64, req checkout.Request) (*checkout.Result, error) {
	return s.purchase(ctx, userID, req, nil)
}

// Upgrade replaces an open subscription, crediting its unused value
func (s *CheckoutService) Upgrade(ctx context.Context, userID int64, subscriptionID string, req checkout.Request) (*checkout.Result, error) {
	current, err := s.subscriptions.Get(ctx, userID, subscriptionID)
	if err != nil {
		return nil, err
	}
	if !current.IsOpen() {
		return nil, errors.InvalidState("Only active or paused subscriptions can be upgraded")
	}
	return s.purchase(ctx, userID, req, current)
}

func (s *CheckoutService) purchase(ctx context.Context, userID int64, req checkout.Request, replacing *subscription.Subscription) (*checkout.Result, error) {
	started := time.Now()

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	p, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	if replacing != nil && replacing.MembershipID == p.membership.ID {
		return nil, errors.BadRequest("Choose a different membership to upgrade to")
	}

	if err := s.validatePayment(req); err != nil {
		return nil, err
	}

	var discount int64
	if req.UseReferral {
		if u.ReferralCredits < 1 {
			return nil, errors.BadRequest("No referral credits available")
		}
		discount = s.calculator.Discount(p.price)
	}

	var credit int64
	if replacing != nil {
		credit = s.upgradeCredit(ctx, replacing)
	}

	amount := p.price - discount - credit
	if amount < 0 {
		credit += amount
		amount = 0
	}

	pay := &payment.Payment{
		ID:           uuid.New().String(),
		UserID:       userID,
		MembershipID: p.membership.ID,
		Amount:       amount,
		Discount:     discount,
		Credit:       credit,
		Currency:     s.calculator.Currency(),
		Method:       req.Method,
		Status:       payment.StatusPending,
	}
	switch req.Method {
	case payment.MethodCard:
		pay.CardLast4 = req.Card.Last4()
	case payment.MethodMobile:
		pay.Provider = req.Mobile.Provider
	}

	// the referrer is credited once, on the first completed purchase
	firstPurchase, err := s.payments.CountCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.payments.Create(ctx, pay); err != nil {
		return nil, err
	}

	log := s.logger.WithFields(map[string]interface{}{
		"user_id":       userID,
		"payment_id":    pay.ID,
		"membership_id": p.membership.ID,
		"amount":        amount,
		"method":        req.Method,
	})

	if req.UseReferral {
		if err := s.users.AdjustReferralCredits(ctx, userID, -1); err != nil {
			s.fail(context.WithoutCancel(ctx), pay, "Referral credit unavailable")
			return nil, err
		}
	}

	result, err := s.charge(ctx, pay, req)

	// Once the gateway has answered, the outcome must be recorded even if
	// the caller has gone away.
	ctx = context.WithoutCancel(ctx)

	if err != nil || !result.Success {
		if req.UseReferral {
			s.restoreReferral(ctx, userID, log)
		}
		if err != nil {
			s.fail(ctx, pay, "Payment gateway unavailable")
			metrics.RecordCheckout("error", time.Since(started))
			log.WithError(err).Error("Payment gateway call failed")
			return nil, errors.GatewayError(err)
		}
		s.fail(ctx, pay, result.Message)
		metrics.RecordCheckout("declined", time.Since(started))
		log.Warn("Payment declined")
		return nil, errors.PaymentDeclined(result.Message).WithDetails(map[string]interface{}{
			"paymentId": pay.ID,
		})
	}

	pay.TransactionID = result.TransactionID
	pay.Message = result.Message

	sub, err := s.subscriptions.Create(ctx, subscription.CreateInput{
		UserID:       userID,
		MembershipID: p.membership.ID,
		Months:       p.months,
		GuestPasses:  p.guestPasses,
		PauseMonths:  p.pauseMonths,
		PaymentID:    pay.ID,
		Start:        s.now(),
	})
	if err != nil {
		log.WithError(err).Error("Payment captured but subscription could not be created")
		s.reverse(ctx, pay, req.UseReferral, log)
		metrics.RecordCheckout("error", time.Since(started))
		return nil, err
	}

	pay.Status = payment.StatusCompleted
	pay.SubscriptionID = sub.ID

	if _, err := s.receipts.Issue(ctx, pay); err != nil {
		log.WithError(err).Warn("Failed to issue receipt")
	}
	if err := s.payments.Update(ctx, pay); err != nil {
		log.WithError(err).Error("Failed to record completed payment")
		return nil, err
	}

	metrics.RecordPayment(pay.Method, string(pay.Status), pay.Currency, pay.Amount)
	metrics.RecordCheckout("completed", time.Since(started))
	publishPayment(ctx, s.publisher, s.logger, events.PaymentCompleted, pay)

	if firstPurchase == 0 && u.ReferredBy != nil {
		if err := s.users.AdjustReferralCredits(ctx, *u.ReferredBy, 1); err != nil {
			log.WithError(err).Warn("Failed to credit referrer")
		} else {
			log.With("referrer_id", *u.ReferredBy).Info("Referral credit awarded")
		}
	}

	out := &checkout.Result{
		Payment:      pay,
		Subscription: sub,
		Membership:   p.membership,
	}

	if replacing != nil {
		// the new subscription is paid for; a stale old one is left for reconciliation
		replaced, err := s.subscriptions.Cancel(ctx, userID, replacing.ID)
		if err != nil {
			log.WithError(err).With("replaced_id", replacing.ID).Error("Failed to cancel upgraded subscription")
		} else {
			out.Replaced = replaced
		}
		s.publishUpgrade(ctx, sub)
	}

	log.With("subscription_id", sub.ID).Info("Checkout completed")
	return out, nil
}

// resolve finds the membership and its price for a request
func (s *CheckoutService) resolve(ctx context.Context, req checkout.Request) (*plan, error) {
	id := req.MembershipID
	if req.Selection != nil {
		if err := req.Selection.Validate(); err != nil {
			return nil, err
		}
		id = pricing.FlexPlanID(*req.Selection)
	}
	if id == "" {
		return nil, errors.BadRequest("membershipId or a pricing selection is required")
	}

	m, err := s.memberships.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.Active {
		return nil, errors.BadRequest("This membership is no longer available")
	}

	p := &plan{
		membership:  m,
		price:       m.Price,
		months:      m.Duration,
		guestPasses: m.GuestPasses,
		pauseMonths: m.PauseMonths,
	}

	if sel, ok := pricing.ParseFlexPlanID(m.ID); ok {
		q, err := s.calculator.Quote(pricing.QuoteRequest{Selection: sel})
		if err != nil {
			return nil, err
		}
		p.price = q.Price
		p.months = q.DurationMonths
		p.guestPasses = q.GuestPasses
		p.pauseMonths = q.PauseMonths
	}

	return p, nil
}

func (s *CheckoutService) validatePayment(req checkout.Request) error {
	var errs []validator.ValidationError
	switch req.Method {
	case payment.MethodCard:
		if req.Card == nil {
			return errors.BadRequest("Card details are required")
		}
		errs = s.validator.Validate(req.Card)
	case payment.MethodMobile:
		if req.Mobile == nil {
			return errors.BadRequest("Mobile money details are required")
		}
		errs = s.validator.Validate(req.Mobile)
	default:
		return errors.BadRequest("Unsupported payment method: " + req.Method)
	}

	if len(errs) > 0 {
		return errors.ValidationError("Invalid payment details", errs)
	}
	return nil
}

func (s *CheckoutService) upgradeCredit(ctx context.Context, sub *subscription.Subscription) int64 {
	if sub.PaymentID == "" {
		return 0
	}
	prev, err := s.payments.GetByID(ctx, sub.PaymentID)
	if err != nil || prev.Status != payment.StatusCompleted {
		return 0
	}
	return pricing.Prorate(prev.Amount+prev.Credit, sub.StartDate, sub.EndDate, s.now())
}

func (s *CheckoutService) charge(ctx context.Context, pay *payment.Payment, req checkout.Request) (*payment.Result, error) {
	if pay.Amount == 0 {
		return &payment.Result{
			Success: true,
			Status:  payment.StatusCompleted,
			Message: "No payment required",
		}, nil
	}
	return s.gateway.Process(ctx, payment.Charge{
		Amount:   pay.Amount,
		Currency: pay.Currency,
		Method:   req.Method,
		Card:     req.Card,
		Mobile:   req.Mobile,
	})
}

// reverse refunds a captured charge whose subscription could not be created.
// A charge the gateway will not refund stays COMPLETED with its transaction
// recorded so it can be reconciled.
func (s *CheckoutService) reverse(ctx context.Context, pay *payment.Payment, usedReferral bool, log *logger.Logger) {
	reversed := true
	if pay.Amount > 0 && pay.TransactionID != "" {
		result, err := s.gateway.Refund(ctx, pay.TransactionID, pay.Amount)
		switch {
		case err != nil:
			metrics.RecordRefund("error")
			log.WithError(err).Error("Failed to refund charge without subscription")
			reversed = false
		case !result.Success:
			metrics.RecordRefund("failed")
			log.With("message", result.Message).Error("Refund of charge without subscription declined")
			reversed = false
		default:
			metrics.RecordRefund("refunded")
			pay.RefundID = result.RefundID
		}
	}

	eventType := events.PaymentRefunded
	switch {
	case !reversed:
		pay.Status = payment.StatusCompleted
		pay.Message = "Payment captured but membership could not be activated"
		eventType = events.PaymentCompleted
	case pay.RefundID != "":
		pay.Status = payment.StatusRefunded
		pay.Message = "Payment refunded: membership could not be activated"
	default:
		pay.Status = payment.StatusFailed
		pay.Message = "Membership could not be activated"
		eventType = events.PaymentFailed
	}

	if reversed && usedReferral {
		s.restoreReferral(ctx, pay.UserID, log)
	}

	if err := s.payments.Update(ctx, pay); err != nil {
		log.WithError(err).With("status", pay.Status).Error("Failed to record reversed payment")
	}
	metrics.RecordPayment(pay.Method, string(pay.Status), pay.Currency, pay.Amount)
	publishPayment(ctx, s.publisher, s.logger, eventType, pay)
}

func (s *CheckoutService) restoreReferral(ctx context.Context, userID int64, log *logger.Logger) {
	if err := s.users.AdjustReferralCredits(ctx, userID, 1); err != nil {
		log.WithError(err).Warn("Failed to restore referral credit")
	}
}

func (s *CheckoutService) fail(ctx context.Context, pay *payment.Payment, message string) {
	pay.Status = payment.StatusFailed
	pay.Message = message
	if err := s.payments.Update(ctx, pay); err != nil {
		s.logger.WithError(err).With("payment_id", pay.ID).Warn("Failed to record failed payment")
	}
	metrics.RecordPayment(pay.Method, string(pay.Status), pay.Currency, pay.Amount)
	publishPayment(ctx, s.publisher, s.logger, events.PaymentFailed, pay)
}

func (s *CheckoutService) publishUpgrade(ctx context.Context, sub *subscription.Subscription) {
	err := s.publisher.Publish(ctx, events.StreamSubscriptions, events.SubscriptionUpgraded, events.SubscriptionEvent{
		SubscriptionID: sub.ID,
		UserID:         sub.UserID,
		MembershipID:   sub.MembershipID,
		Status:         string(sub.Status),
		EndDate:        sub.EndDate,
	})
	if err != nil {
		s.logger.WithError(err).Warn("Failed to publish upgrade event")
	}
}
