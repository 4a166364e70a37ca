package user

import (
	"strings"
	"time"
)

// User represents a registered member
type User struct {
	ID              int64     `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	ResidentID      string    `json:"residentID,omitempty"`
	PasswordHash    string    `json:"-"` // Not exposed in JSON
	GoogleID        string    `json:"-"`
	Role            string    `json:"role"`
	ReferralCode    string    `json:"referralCode"`
	ReferredBy      *int64    `json:"-"`
	ReferralCredits int       `json:"referralCredits"`
	NotifyRenewals  bool      `json:"notifyRenewals"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Name returns the member's display name
func (u *User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// User roles
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Registration carries the sign-up form fields
type Registration struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	ResidentID   string
	Password     string
	ReferralCode string
}

// ProfileUpdate carries editable profile fields; nil means unchanged
type ProfileUpdate struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	ResidentID *string
}

// PasswordReset is a pending password reset request
type PasswordReset struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	UsedAt    *time.Time
}
