package user

import (
	"context"
	"time"
)

// Repository defines the interface for user data access
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByReferralCode retrieves the user owning a referral code
	GetByReferralCode(ctx context.Context, code string) (*User, error)

	// GetByGoogleID retrieves a user linked to a Google account
	GetByGoogleID(ctx context.Context, googleID string) (*User, error)

	// Update updates a user
	Update(ctx context.Context, user *User) error

	// AdjustReferralCredits adds delta credits, never going below zero
	AdjustReferralCredits(ctx context.Context, id int64, delta int) error

	// Delete deletes a user
	Delete(ctx context.Context, id int64) error

	// List retrieves all users with pagination
	List(ctx context.Context, limit, offset int) ([]*User, int64, error)

	// CreatePasswordReset stores a reset token
	CreatePasswordReset(ctx context.Context, reset *PasswordReset) error

	// GetPasswordReset retrieves a reset token
	GetPasswordReset(ctx context.Context, token string) (*PasswordReset, error)

	// MarkPasswordResetUsed consumes a reset token
	MarkPasswordResetUsed(ctx context.Context, token string, at time.Time) error
}
