package subscription

import (
	"context"
	"time"
)

// Repository defines the interface for subscription data access
type Repository interface {
	// Create creates a new subscription
	Create(ctx context.Context, sub *Subscription) error

	// GetByID retrieves a subscription by ID
	GetByID(ctx context.Context, id string) (*Subscription, error)

	// ListByUser retrieves a user's subscriptions, newest first
	ListByUser(ctx context.Context, userID int64) ([]*Subscription, error)

	// Update updates a subscription
	Update(ctx context.Context, sub *Subscription) error

	// ListDueForExpiry returns active subscriptions whose end date has passed
	ListDueForExpiry(ctx context.Context, now time.Time) ([]*Subscription, error)

	// ListPaused returns every paused subscription
	ListPaused(ctx context.Context) ([]*Subscription, error)

	// ListEndingBetween returns active subscriptions ending in [from, to) not yet reminded
	ListEndingBetween(ctx context.Context, from, to time.Time) ([]*Subscription, error)

	// CountByStatus counts subscriptions per status
	CountByStatus(ctx context.Context) (map[Status]int, error)
}
