package membership

import "context"

// Service defines the interface for membership business logic
type Service interface {
	// EnsureCatalog seeds the purchasable plans
	EnsureCatalog(ctx context.Context) error

	// List returns memberships matching the filter
	List(ctx context.Context, filter Filter) ([]*Membership, error)

	// Get returns one membership; unknown IDs carry suggestions in the error details
	Get(ctx context.Context, id string) (*Membership, error)
}
