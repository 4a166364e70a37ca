package dto

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	FirstName    string `json:"firstName" validate:"required,max=50"`
	LastName     string `json:"lastName" validate:"required,max=50"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,min=9,max=20"`
	ResidentID   string `json:"residentID,omitempty" validate:"omitempty,max=40"`
	Password     string `json:"password" validate:"required,min=8"`
	AgreeToTerms bool   `json:"agreeToTerms" validate:"eq=true"`
	ReferralCode string `json:"referralCode,omitempty" validate:"omitempty,max=20"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         *UserDTO `json:"user"`
}

// RefreshTokenRequest represents a refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ForgotPasswordRequest starts a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes a password reset
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}
