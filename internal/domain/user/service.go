package user

import "context"

// Service defines the interface for user business logic
type Service interface {
	// Register creates a member account
	Register(ctx context.Context, reg Registration) (*User, error)

	// Authenticate checks credentials and returns the user
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// SignInWithGoogle links or creates the user behind a Google profile
	SignInWithGoogle(ctx context.Context, googleID, email, firstName, lastName string) (*User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// UpdateProfile applies profile edits
	UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (*User, error)

	// ChangePassword verifies the current password and sets a new one
	ChangePassword(ctx context.Context, id int64, current, next string) error

	// SetRenewalNotifications toggles renewal reminders
	SetRenewalNotifications(ctx context.Context, id int64, enabled bool) (*User, error)

	// RequestPasswordReset issues a reset token; unknown emails return "" without error
	RequestPasswordReset(ctx context.Context, email string) (string, error)

	// ResetPassword consumes a reset token
	ResetPassword(ctx context.Context, token, password string) error
}
