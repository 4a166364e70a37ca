package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/net2mulu/signature-gym/internal/domain/membership"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
)

const membershipColumns = `id, name, description, price, currency, duration, features, type, access_hours,
	best_value, upfront_deposit, class_pricing, guest_passes, pause_months, active, created_at, updated_at`

// MembershipRepository implements membership.Repository
type MembershipRepository struct {
	db *DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *DB) membership.Repository {
	return &MembershipRepository{db: db}
}

func scanMembership(row rowScanner) (*membership.Membership, error) {
	var m membership.Membership
	var features, classPricing string
	var createdAt, updatedAt int64

	err := row.Scan(
		&m.ID, &m.Name, &m.Description, &m.Price, &m.Currency, &m.Duration, &features, &m.Type, &m.AccessHours,
		&m.BestValue, &m.UpfrontDeposit, &classPricing, &m.GuestPasses, &m.PauseMonths, &m.Active, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(features), &m.Features); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(classPricing), &m.ClassPricing); err != nil {
		return nil, err
	}
	m.CreatedAt = time.Unix(createdAt, 0)
	m.UpdatedAt = time.Unix(updatedAt, 0)
	return &m, nil
}

// Upsert inserts or replaces a membership
func (r *MembershipRepository) Upsert(ctx context.Context, m *membership.Membership) error {
	features, err := json.Marshal(nonNil(m.Features))
	if err != nil {
		return errors.Internal("Failed to encode membership features", err)
	}
	classPricing, err := json.Marshal(nonNilPrices(m.ClassPricing))
	if err != nil {
		return errors.Internal("Failed to encode class pricing", err)
	}

	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	query := `
		INSERT INTO memberships (` + membershipColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			price = excluded.price,
			currency = excluded.currency,
			duration = excluded.duration,
			features = excluded.features,
			type = excluded.type,
			access_hours = excluded.access_hours,
			best_value = excluded.best_value,
			upfront_deposit = excluded.upfront_deposit,
			class_pricing = excluded.class_pricing,
			guest_passes = excluded.guest_passes,
			pause_months = excluded.pause_months,
			active = excluded.active,
			updated_at = excluded.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		m.ID, m.Name, m.Description, m.Price, m.Currency, m.Duration, string(features), m.Type, m.AccessHours,
		m.BestValue, m.UpfrontDeposit, string(classPricing), m.GuestPasses, m.PauseMonths, m.Active,
		m.CreatedAt.Unix(), m.UpdatedAt.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to save membership", err)
	}
	return nil
}

// GetByID retrieves a membership by ID
func (r *MembershipRepository) GetByID(ctx context.Context, id string) (*membership.Membership, error) {
	m, err := scanMembership(r.db.QueryRowContext(ctx,
		"SELECT "+membershipColumns+" FROM memberships WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Membership")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get membership", err)
	}
	return m, nil
}

// List retrieves memberships matching the filter
func (r *MembershipRepository) List(ctx context.Context, filter membership.Filter) ([]*membership.Membership, error) {
	query := "SELECT " + membershipColumns + " FROM memberships WHERE 1=1"
	var args []any

	if filter.Type != "" {
		query += " AND type = ?"
		args = append(args, filter.Type)
	}
	if filter.ActiveOnly {
		query += " AND active = ?"
		args = append(args, true)
	}
	query += " ORDER BY type, duration, price"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list memberships", err)
	}
	defer rows.Close()

	var out []*membership.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan membership", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate memberships", err)
	}
	return out, nil
}

// ListIDs returns every membership ID
func (r *MembershipRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id FROM memberships ORDER BY id")
	if err != nil {
		return nil, errors.DatabaseError("Failed to list membership ids", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.DatabaseError("Failed to scan membership id", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilPrices(p []membership.ClassPrice) []membership.ClassPrice {
	if p == nil {
		return []membership.ClassPrice{}
	}
	return p
}
