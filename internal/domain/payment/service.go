package payment

import "context"

// Service defines the interface for payment business logic
type Service interface {
	// Methods returns the accepted payment methods
	Methods() []Method

	// List returns a user's payments
	List(ctx context.Context, userID int64, limit, offset int) ([]*Payment, int64, error)

	// Get returns a payment owned by userID
	Get(ctx context.Context, userID int64, id string) (*Payment, error)

	// Refund refunds a completed payment and cancels its subscription
	Refund(ctx context.Context, userID int64, id string) (*Payment, error)

	// Receipt returns the PDF receipt of a completed payment
	Receipt(ctx context.Context, userID int64, id string) ([]byte, error)
}
