package dto

import (
	"time"

	"github.com/net2mulu/signature-gym/internal/domain/user"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID              int64     `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	ResidentID      string    `json:"residentID,omitempty"`
	Role            string    `json:"role"`
	ReferralCode    string    `json:"referralCode"`
	ReferralCredits int       `json:"referralCredits"`
	NotifyRenewals  bool      `json:"notifyRenewals"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToUserDTO converts a domain user to its API form
func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Name:            u.Name(),
		Email:           u.Email,
		Phone:           u.Phone,
		ResidentID:      u.ResidentID,
		Role:            u.Role,
		ReferralCode:    u.ReferralCode,
		ReferralCredits: u.ReferralCredits,
		NotifyRenewals:  u.NotifyRenewals,
		CreatedAt:       u.CreatedAt,
	}
}

// UpdateProfileRequest represents a profile update; omitted fields are unchanged
type UpdateProfileRequest struct {
	FirstName  *string `json:"firstName,omitempty" validate:"omitempty,min=1,max=50"`
	LastName   *string `json:"lastName,omitempty" validate:"omitempty,min=1,max=50"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,min=9,max=20"`
	ResidentID *string `json:"residentID,omitempty" validate:"omitempty,max=40"`
}

// ChangePasswordRequest represents a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// NotificationSettings are the member's reminder preferences
type NotificationSettings struct {
	RenewalReminders bool `json:"renewalReminders"`
}
