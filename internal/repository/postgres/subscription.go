package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/net2mulu/signature-gym/internal/domain/subscription"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
)

const subscriptionColumns = `id, user_id, membership_id, status, start_date, end_date, guest_passes,
	pause_months_allowed, paused_at, paused_days, payment_id, renewal_notified_at, created_at, updated_at`

// SubscriptionRepository implements subscription.Repository
type SubscriptionRepository struct {
	db *DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *DB) subscription.Repository {
	return &SubscriptionRepository{db: db}
}

func scanSubscription(row rowScanner) (*subscription.Subscription, error) {
	var s subscription.Subscription
	var status string
	var startDate, endDate, createdAt, updatedAt int64
	var pausedAt, notifiedAt sql.NullInt64

	err := row.Scan(
		&s.ID, &s.UserID, &s.MembershipID, &status, &startDate, &endDate, &s.GuestPasses,
		&s.PauseMonthsAllowed, &pausedAt, &s.PausedDays, &s.PaymentID, &notifiedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Status = subscription.Status(status)
	s.StartDate = time.Unix(startDate, 0)
	s.EndDate = time.Unix(endDate, 0)
	s.PausedAt = fromNullUnix(pausedAt)
	s.RenewalNotifiedAt = fromNullUnix(notifiedAt)
	s.CreatedAt = time.Unix(createdAt, 0)
	s.UpdatedAt = time.Unix(updatedAt, 0)
	return &s, nil
}

func (r *SubscriptionRepository) list(ctx context.Context, where string, args ...any) ([]*subscription.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+subscriptionColumns+" FROM subscriptions WHERE "+where, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list subscriptions", err)
	}
	defer rows.Close()

	var out []*subscription.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan subscription", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate subscriptions", err)
	}
	return out, nil
}

// Create creates a new subscription
func (r *SubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `
		INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.UserID, s.MembershipID, string(s.Status), s.StartDate.Unix(), s.EndDate.Unix(), s.GuestPasses,
		s.PauseMonthsAllowed, nullUnix(s.PausedAt), s.PausedDays, s.PaymentID, nullUnix(s.RenewalNotifiedAt),
		now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create subscription", err)
	}
	return nil
}

// GetByID retrieves a subscription by ID
func (r *SubscriptionRepository) GetByID(ctx context.Context, id string) (*subscription.Subscription, error) {
	s, err := scanSubscription(r.db.QueryRowContext(ctx,
		"SELECT "+subscriptionColumns+" FROM subscriptions WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Subscription")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get subscription", err)
	}
	return s, nil
}

// ListByUser retrieves a user's subscriptions, newest first
func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]*subscription.Subscription, error) {
	return r.list(ctx, "user_id = ? ORDER BY created_at DESC, id", userID)
}

// Update updates a subscription
func (r *SubscriptionRepository) Update(ctx context.Context, s *subscription.Subscription) error {
	s.UpdatedAt = time.Now()

	query := `
		UPDATE subscriptions
		SET status = ?, start_date = ?, end_date = ?, guest_passes = ?, pause_months_allowed = ?,
			paused_at = ?, paused_days = ?, payment_id = ?, renewal_notified_at = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		string(s.Status), s.StartDate.Unix(), s.EndDate.Unix(), s.GuestPasses, s.PauseMonthsAllowed,
		nullUnix(s.PausedAt), s.PausedDays, s.PaymentID, nullUnix(s.RenewalNotifiedAt), s.UpdatedAt.Unix(), s.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update subscription", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Subscription")
	}
	return nil
}

// ListDueForExpiry returns active subscriptions whose end date is before now
func (r *SubscriptionRepository) ListDueForExpiry(ctx context.Context, now time.Time) ([]*subscription.Subscription, error) {
	return r.list(ctx, "status = ? AND end_date <= ?", string(subscription.StatusActive), now.Unix())
}

// ListPaused returns every paused subscription
func (r *SubscriptionRepository) ListPaused(ctx context.Context) ([]*subscription.Subscription, error) {
	return r.list(ctx, "status = ?", string(subscription.StatusPaused))
}

// ListEndingBetween returns active subscriptions ending in [from, to) not yet reminded
func (r *SubscriptionRepository) ListEndingBetween(ctx context.Context, from, to time.Time) ([]*subscription.Subscription, error) {
	return r.list(ctx,
		"status = ? AND end_date >= ? AND end_date < ? AND renewal_notified_at IS NULL",
		string(subscription.StatusActive), from.Unix(), to.Unix())
}

// CountByStatus counts subscriptions per status
func (r *SubscriptionRepository) CountByStatus(ctx context.Context) (map[subscription.Status]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM subscriptions GROUP BY status")
	if err != nil {
		return nil, errors.DatabaseError("Failed to count subscriptions", err)
	}
	defer rows.Close()

	counts := make(map[subscription.Status]int, len(subscription.Statuses))
	for _, st := range subscription.Statuses {
		counts[st] = 0
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, errors.DatabaseError("Failed to scan subscription count", err)
		}
		counts[subscription.Status(status)] = n
	}
	return counts, rows.Err()
}
