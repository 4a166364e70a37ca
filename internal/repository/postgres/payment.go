package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/net2mulu/signature-gym/internal/domain/payment"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
)

const paymentColumns = `id, user_id, membership_id, subscription_id, amount, discount, credit, currency, method,
	provider, card_last4, status, transaction_id, refund_id, message, receipt_key, created_at, updated_at`

// PaymentRepository implements payment.Repository
type PaymentRepository struct {
	db *DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *DB) payment.Repository {
	return &PaymentRepository{db: db}
}

func scanPayment(row rowScanner) (*payment.Payment, error) {
	var p payment.Payment
	var status string
	var createdAt, updatedAt int64

	err := row.Scan(
		&p.ID, &p.UserID, &p.MembershipID, &p.SubscriptionID, &p.Amount, &p.Discount, &p.Credit, &p.Currency, &p.Method,
		&p.Provider, &p.CardLast4, &status, &p.TransactionID, &p.RefundID, &p.Message, &p.ReceiptKey, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Status = payment.Status(status)
	p.CreatedAt = time.Unix(createdAt, 0)
	p.UpdatedAt = time.Unix(updatedAt, 0)
	return &p, nil
}

// Create records a payment attempt
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.MembershipID, p.SubscriptionID, p.Amount, p.Discount, p.Credit, p.Currency, p.Method,
		p.Provider, p.CardLast4, string(p.Status), p.TransactionID, p.RefundID, p.Message, p.ReceiptKey,
		now.Unix(), now.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to record payment", err)
	}
	return nil
}

// GetByID retrieves a payment by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*payment.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Payment")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get payment", err)
	}
	return p, nil
}

// ListByUser retrieves a user's payments, newest first
func (r *PaymentRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*payment.Payment, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM payments WHERE user_id = ?", userID).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count payments", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE user_id = ? ORDER BY created_at DESC, id LIMIT ? OFFSET ?",
		userID, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list payments", err)
	}
	defer rows.Close()

	var out []*payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan payment", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate payments", err)
	}
	return out, total, nil
}

// Update updates a payment
func (r *PaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	p.UpdatedAt = time.Now()

	query := `
		UPDATE payments
		SET subscription_id = ?, status = ?, transaction_id = ?, refund_id = ?, message = ?, receipt_key = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		p.SubscriptionID, string(p.Status), p.TransactionID, p.RefundID, p.Message, p.ReceiptKey, p.UpdatedAt.Unix(), p.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update payment", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Payment")
	}
	return nil
}

// TransitionStatus moves a payment between statuses with a single conditional update
func (r *PaymentRepository) TransitionStatus(ctx context.Context, id string, from, to payment.Status) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE payments SET status = ?, updated_at = ? WHERE id = ? AND status = ?",
		string(to), time.Now().Unix(), id, string(from),
	)
	if err != nil {
		return errors.DatabaseError("Failed to update payment status", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.InvalidState("Payment is no longer " + string(from))
	}
	return nil
}

// CountCompletedByUser counts a user's completed payments
func (r *PaymentRepository) CountCompletedByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM payments WHERE user_id = ? AND status IN (?, ?, ?)",
		userID, string(payment.StatusCompleted), string(payment.StatusRefunding), string(payment.StatusRefunded),
	).Scan(&n)
	if err != nil {
		return 0, errors.DatabaseError("Failed to count payments", err)
	}
	return n, nil
}
