package events

import (
	"context"
	"time"
)

// Streams
const (
	StreamSubscriptions = "subscription.events"
	StreamPayments      = "payment.events"
)

// Event types
const (
	SubscriptionCreated   = "subscription.created"
	SubscriptionPaused    = "subscription.paused"
	SubscriptionResumed   = "subscription.resumed"
	SubscriptionCancelled = "subscription.cancelled"
	SubscriptionExpired   = "subscription.expired"
	SubscriptionUpgraded  = "subscription.upgraded"
	RenewalReminder       = "subscription.renewal_reminder"
	GuestPassUsed         = "subscription.guest_pass_used"

	PaymentCompleted = "payment.completed"
	PaymentFailed    = "payment.failed"
	PaymentRefunded  = "payment.refunded"
)

type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// SubscriptionEvent is the payload of subscription stream events
type SubscriptionEvent struct {
	SubscriptionID string    `json:"subscriptionId"`
	UserID         int64     `json:"userId"`
	MembershipID   string    `json:"membershipId"`
	Status         string    `json:"status"`
	EndDate        time.Time `json:"endDate"`
}

// PaymentEvent is the payload of payment stream events
type PaymentEvent struct {
	PaymentID     string `json:"paymentId"`
	UserID        int64  `json:"userId"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Method        string `json:"method"`
	Status        string `json:"status"`
	TransactionID string `json:"transactionId,omitempty"`
}

// Publisher emits domain events
type Publisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}
