package services

import (
	"context"
	"strings"
	"time"

	"github.com/net2mulu/signature-gym/internal/auth"
	"github.com/net2mulu/signature-gym/internal/domain/user"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
)

const referralCodeAttempts = 5

// UserService implements user.Service
type UserService struct {
	repo       user.Repository
	logger     *logger.Logger
	bcryptCost int
	resetTTL   time.Duration
	now        func() time.Time
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, log *logger.Logger, bcryptCost int, resetTTL time.Duration) user.Service {
	if resetTTL <= 0 {
		resetTTL = time.Hour
	}
	return &UserService{
		repo:       repo,
		logger:     log,
		bcryptCost: bcryptCost,
		resetTTL:   resetTTL,
		now:        time.Now,
	}
}

// Register creates a member account
func (s *UserService) Register(ctx context.Context, reg user.Registration) (*user.User, error) {
	email := normalizeEmail(reg.Email)

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, errors.Conflict("An account with this email already exists")
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	var referredBy *int64
	if code := strings.TrimSpace(reg.ReferralCode); code != "" {
		referrer, err := s.repo.GetByReferralCode(ctx, code)
		if errors.IsNotFound(err) {
			return nil, errors.BadRequest("Invalid referral code")
		}
		if err != nil {
			return nil, err
		}
		referredBy = &referrer.ID
	}

	hash, err := auth.HashPassword(reg.Password, s.bcryptCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	code, err := s.uniqueReferralCode(ctx)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		FirstName:      strings.TrimSpace(reg.FirstName),
		LastName:       strings.TrimSpace(reg.LastName),
		Email:          email,
		Phone:          strings.TrimSpace(reg.Phone),
		ResidentID:     strings.TrimSpace(reg.ResidentID),
		PasswordHash:   hash,
		Role:           user.RoleMember,
		ReferralCode:   code,
		ReferredBy:     referredBy,
		NotifyRenewals: true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create user")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":  u.ID,
		"email":    u.Email,
		"referred": referredBy != nil,
	}).Info("User registered")

	return u, nil
}

func (s *UserService) uniqueReferralCode(ctx context.Context) (string, error) {
	for i := 0; i < referralCodeAttempts; i++ {
		code, err := auth.ReferralCode()
		if err != nil {
			return "", errors.Internal("Failed to generate referral code", err)
		}
		if _, err := s.repo.GetByReferralCode(ctx, code); errors.IsNotFound(err) {
			return code, nil
		} else if err != nil {
			return "", err
		}
	}
	return "", errors.Internal("Failed to generate a unique referral code", nil)
}

// Authenticate checks credentials and returns the user
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.IsNotFound(err) {
		return nil, errors.Unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		s.logger.With("user_id", u.ID).Warn("Failed login attempt")
		return nil, errors.Unauthorized("Invalid email or password")
	}

	return u, nil
}

// SignInWithGoogle links or creates the user behind a Google profile
func (s *UserService) SignInWithGoogle(ctx context.Context, googleID, email, firstName, lastName string) (*user.User, error) {
	if googleID == "" || email == "" {
		return nil, errors.BadRequest("Google profile is missing an id or email")
	}

	u, err := s.repo.GetByGoogleID(ctx, googleID)
	if err == nil {
		return u, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	u, err = s.repo.GetByEmail(ctx, normalizeEmail(email))
	switch {
	case err == nil:
		u.GoogleID = googleID
		if err := s.repo.Update(ctx, u); err != nil {
			return nil, err
		}
		s.logger.With("user_id", u.ID).Info("Google account linked")
		return u, nil
	case !errors.IsNotFound(err):
		return nil, err
	}

	code, err := s.uniqueReferralCode(ctx)
	if err != nil {
		return nil, err
	}

	u = &user.User{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          normalizeEmail(email),
		GoogleID:       googleID,
		Role:           user.RoleMember,
		ReferralCode:   code,
		NotifyRenewals: true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create Google user")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
	}).Info("User registered with Google")

	return u, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.repo.GetByEmail(ctx, normalizeEmail(email))
}

// UpdateProfile applies profile edits
func (s *UserService) UpdateProfile(ctx context.Context, id int64, update user.ProfileUpdate) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.FirstName != nil {
		u.FirstName = strings.TrimSpace(*update.FirstName)
	}
	if update.LastName != nil {
		u.LastName = strings.TrimSpace(*update.LastName)
	}
	if update.Phone != nil {
		u.Phone = strings.TrimSpace(*update.Phone)
	}
	if update.ResidentID != nil {
		u.ResidentID = strings.TrimSpace(*update.ResidentID)
	}

	if u.FirstName == "" || u.LastName == "" {
		return nil, errors.BadRequest("First and last name cannot be empty")
	}

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update user")
		return nil, err
	}

	s.logger.With("user_id", u.ID).Info("Profile updated")
	return u, nil
}

// ChangePassword verifies the current password and sets a new one
func (s *UserService) ChangePassword(ctx context.Context, id int64, current, next string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// accounts created through Google have no password yet
	if u.PasswordHash != "" && !auth.CheckPassword(u.PasswordHash, current) {
		return errors.Unauthorized("Current password is incorrect")
	}

	hash, err := auth.HashPassword(next, s.bcryptCost)
	if err != nil {
		return errors.Internal("Failed to hash password", err)
	}
	u.PasswordHash = hash

	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}

	s.logger.With("user_id", u.ID).Info("Password changed")
	return nil
}

// SetRenewalNotifications toggles renewal reminders
func (s *UserService) SetRenewalNotifications(ctx context.Context, id int64, enabled bool) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.NotifyRenewals = enabled
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// RequestPasswordReset issues a reset token; unknown emails return "" without error
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.IsNotFound(err) {
		s.logger.Debug("Password reset requested for unknown email")
		return "", nil
	}
	if err != nil {
		return "", err
	}

	token, err := auth.RandomToken(32)
	if err != nil {
		return "", errors.Internal("Failed to generate reset token", err)
	}

	reset := &user.PasswordReset{
		Token:     token,
		UserID:    u.ID,
		ExpiresAt: s.now().Add(s.resetTTL),
	}
	if err := s.repo.CreatePasswordReset(ctx, reset); err != nil {
		return "", err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":    u.ID,
		"expires_at": reset.ExpiresAt,
	}).Info("Password reset issued")

	return token, nil
}

// ResetPassword consumes a reset token
func (s *UserService) ResetPassword(ctx context.Context, token, password string) error {
	reset, err := s.repo.GetPasswordReset(ctx, token)
	if errors.IsNotFound(err) {
		return errors.BadRequest("Invalid or expired reset token")
	}
	if err != nil {
		return err
	}

	now := s.now()
	if reset.UsedAt != nil || now.After(reset.ExpiresAt) {
		return errors.BadRequest("Invalid or expired reset token")
	}

	u, err := s.repo.GetByID(ctx, reset.UserID)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return errors.Internal("Failed to hash password", err)
	}
	u.PasswordHash = hash

	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}
	if err := s.repo.MarkPasswordResetUsed(ctx, token, now); err != nil {
		return err
	}

	s.logger.With("user_id", u.ID).Info("Password reset completed")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
