package payment

import "context"

// Repository defines the interface for payment data access
type Repository interface {
	// Create records a payment attempt
	Create(ctx context.Context, p *Payment) error

	// GetByID retrieves a payment by ID
	GetByID(ctx context.Context, id string) (*Payment, error)

	// ListByUser retrieves a user's payments, newest first
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*Payment, int64, error)

	// Update updates a payment
	Update(ctx context.Context, p *Payment) error

	// TransitionStatus moves a payment from one status to another, failing
	// with an invalid state error when the payment is no longer in from
	TransitionStatus(ctx context.Context, id string, from, to Status) error

	// CountCompletedByUser counts a user's completed payments
	CountCompletedByUser(ctx context.Context, userID int64) (int, error)
}
