package subscription

import (
	"context"
	"time"
)

// CreateInput describes a subscription issued after a completed payment
type CreateInput struct {
	UserID       int64
	MembershipID string
	Months       int
	GuestPasses  int
	PauseMonths  int
	PaymentID    string
	Start        time.Time
}

// Service defines the interface for subscription business logic
type Service interface {
	// Create issues a new active subscription
	Create(ctx context.Context, in CreateInput) (*Subscription, error)

	// ListForUser returns a user's subscriptions
	ListForUser(ctx context.Context, userID int64) ([]*Subscription, error)

	// Get returns a subscription owned by userID
	Get(ctx context.Context, userID int64, id string) (*Subscription, error)

	// Pause pauses an active subscription
	Pause(ctx context.Context, userID int64, id string) (*Subscription, error)

	// Resume resumes a paused subscription and extends its end date
	Resume(ctx context.Context, userID int64, id string) (*Subscription, error)

	// Cancel cancels an open subscription
	Cancel(ctx context.Context, userID int64, id string) (*Subscription, error)

	// UseGuestPass consumes one guest pass
	UseGuestPass(ctx context.Context, userID int64, id string) (*Subscription, error)

	// Dashboard builds the member overview
	Dashboard(ctx context.Context, userID int64) (*Dashboard, error)

	// RunLifecycle expires, auto-resumes and sends renewal reminders
	RunLifecycle(ctx context.Context, now time.Time) (*LifecycleReport, error)
}
