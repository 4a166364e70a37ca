package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/net2mulu/signature-gym/internal/domain/user"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
)

const userColumns = `id, first_name, last_name, email, phone, resident_id, password_hash, google_id,
	role, referral_code, referred_by, referral_credits, notify_renewals, created_at, updated_at`

// UserRepository implements user.Repository
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) user.Repository {
	return &UserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	var googleID sql.NullString
	var referredBy sql.NullInt64
	var createdAt, updatedAt int64

	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.ResidentID, &u.PasswordHash, &googleID,
		&u.Role, &u.ReferralCode, &referredBy, &u.ReferralCredits, &u.NotifyRenewals, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.GoogleID = googleID.String
	if referredBy.Valid {
		u.ReferredBy = &referredBy.Int64
	}
	u.CreatedAt = time.Unix(createdAt, 0)
	u.UpdatedAt = time.Unix(updatedAt, 0)
	return &u, nil
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*user.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE "+where, arg))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}
	return u, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	query := `
		INSERT INTO users (first_name, last_name, email, phone, resident_id, password_hash, google_id,
			role, referral_code, referred_by, referral_credits, notify_renewals, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.InsertID(ctx, query,
		u.FirstName, u.LastName, u.Email, u.Phone, u.ResidentID, u.PasswordHash, nullString(u.GoogleID),
		u.Role, u.ReferralCode, nullInt64(u.ReferredBy), u.ReferralCredits, u.NotifyRenewals, now.Unix(), now.Unix(),
	)
	if isUniqueViolation(err) {
		return errors.Conflict("An account with this email already exists")
	}
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}

	u.ID = id
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

// GetByReferralCode retrieves the owner of a referral code
func (r *UserRepository) GetByReferralCode(ctx context.Context, code string) (*user.User, error) {
	return r.getOne(ctx, "referral_code = ?", strings.ToUpper(strings.TrimSpace(code)))
}

// GetByGoogleID retrieves a user linked to a Google account
func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*user.User, error) {
	return r.getOne(ctx, "google_id = ?", googleID)
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()

	query := `
		UPDATE users
		SET first_name = ?, last_name = ?, email = ?, phone = ?, resident_id = ?, password_hash = ?,
			google_id = ?, role = ?, referred_by = ?, notify_renewals = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		u.FirstName, u.LastName, u.Email, u.Phone, u.ResidentID, u.PasswordHash,
		nullString(u.GoogleID), u.Role, nullInt64(u.ReferredBy), u.NotifyRenewals, u.UpdatedAt.Unix(), u.ID,
	)
	if isUniqueViolation(err) {
		return errors.Conflict("An account with this email already exists")
	}
	if err != nil {
		return errors.DatabaseError("Failed to update user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// AdjustReferralCredits adds delta credits, never going below zero
func (r *UserRepository) AdjustReferralCredits(ctx context.Context, id int64, delta int) error {
	query := `
		UPDATE users
		SET referral_credits = referral_credits + ?, updated_at = ?
		WHERE id = ? AND referral_credits + ? >= 0
	`

	result, err := r.db.ExecContext(ctx, query, delta, time.Now().Unix(), id, delta)
	if err != nil {
		return errors.DatabaseError("Failed to update referral credits", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return errors.BadRequest("No referral credits available")
	}

	return nil
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// List retrieves all users with pagination
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to count users", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id DESC LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list users", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan user", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate users", err)
	}

	return users, total, nil
}

// CreatePasswordReset stores a reset token
func (r *UserRepository) CreatePasswordReset(ctx context.Context, reset *user.PasswordReset) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO password_resets (token, user_id, expires_at) VALUES (?, ?, ?)`,
		reset.Token, reset.UserID, reset.ExpiresAt.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to store password reset", err)
	}
	return nil
}

// GetPasswordReset retrieves a reset token
func (r *UserRepository) GetPasswordReset(ctx context.Context, token string) (*user.PasswordReset, error) {
	var reset user.PasswordReset
	var expiresAt int64
	var usedAt sql.NullInt64

	err := r.db.QueryRowContext(ctx,
		`SELECT token, user_id, expires_at, used_at FROM password_resets WHERE token = ?`, token,
	).Scan(&reset.Token, &reset.UserID, &expiresAt, &usedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Password reset")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get password reset", err)
	}

	reset.ExpiresAt = time.Unix(expiresAt, 0)
	reset.UsedAt = fromNullUnix(usedAt)
	return &reset, nil
}

// MarkPasswordResetUsed consumes a reset token
func (r *UserRepository) MarkPasswordResetUsed(ctx context.Context, token string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE password_resets SET used_at = ? WHERE token = ? AND used_at IS NULL`, at.Unix(), token)
	if err != nil {
		return errors.DatabaseError("Failed to update password reset", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.BadRequest("Reset token already used")
	}
	return nil
}
