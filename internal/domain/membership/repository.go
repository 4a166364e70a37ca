package membership

import "context"

// Repository defines the interface for membership data access
type Repository interface {
	// Upsert inserts or replaces a membership
	Upsert(ctx context.Context, m *Membership) error

	// GetByID retrieves a membership by ID
	GetByID(ctx context.Context, id string) (*Membership, error)

	// List retrieves memberships matching the filter
	List(ctx context.Context, filter Filter) ([]*Membership, error)

	// ListIDs returns every membership ID
	ListIDs(ctx context.Context) ([]string, error)
}
