package services

import (
	"context"
	"testing"
	"time"

	"github.com/net2mulu/signature-gym/internal/domain/user"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/testutil"
)

const testBcryptCost = 4

func newTestUserService() (*UserService, *testutil.MockUserRepository) {
	repo := testutil.NewMockUserRepository()
	svc := NewUserService(repo, logger.Nop(), testBcryptCost, time.Hour).(*UserService)
	return svc, repo
}

func registration(email string) user.Registration {
	return user.Registration{
		FirstName: "Abebe",
		LastName:  "Kebede",
		Email:     email,
		Phone:     "+251911000000",
		Password:  "password123",
	}
}

func TestUserService_Register(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()

	referrer, err := service.Register(ctx, registration("referrer@example.com"))
	if err != nil {
		t.Fatalf("Register() referrer error = %v", err)
	}

	tests := []struct {
		name     string
		reg      func() user.Registration
		wantErr  string
		referred bool
	}{
		{
			name: "successful registration",
			reg:  func() user.Registration { return registration("Test@Example.com ") },
		},
		{
			name:    "duplicate email",
			reg:     func() user.Registration { return registration("referrer@example.com") },
			wantErr: errors.ErrCodeConflict,
		},
		{
			name: "with referral code",
			reg: func() user.Registration {
				r := registration("friend@example.com")
				r.ReferralCode = referrer.ReferralCode
				return r
			},
			referred: true,
		},
		{
			name: "unknown referral code",
			reg: func() user.Registration {
				r := registration("stranger@example.com")
				r.ReferralCode = "SIG-NOPE0000"
				return r
			},
			wantErr: errors.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := service.Register(ctx, tt.reg())

			if tt.wantErr != "" {
				appErr, ok := errors.As(err)
				if !ok || appErr.Code != tt.wantErr {
					t.Fatalf("Register() error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}

			if u.Role != user.RoleMember {
				t.Errorf("Register() role = %v, want %v", u.Role, user.RoleMember)
			}
			if u.PasswordHash == "" || u.PasswordHash == "password123" {
				t.Error("Register() did not hash the password")
			}
			if u.ReferralCode == "" {
				t.Error("Register() did not assign a referral code")
			}
			if !u.NotifyRenewals {
				t.Error("Register() renewal reminders should default on")
			}
			if tt.referred && (u.ReferredBy == nil || *u.ReferredBy != referrer.ID) {
				t.Errorf("Register() ReferredBy = %v, want %d", u.ReferredBy, referrer.ID)
			}
		})
	}
}

func TestUserService_Authenticate(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()

	if _, err := service.Register(ctx, registration("login@example.com")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "valid credentials", email: "login@example.com", password: "password123"},
		{name: "email is case-insensitive", email: "LOGIN@example.com", password: "password123"},
		{name: "wrong password", email: "login@example.com", password: "wrong-password", wantErr: true},
		{name: "unknown email", email: "nobody@example.com", password: "password123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Authenticate(ctx, tt.email, tt.password)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if appErr, ok := errors.As(err); !ok || appErr.Code != errors.ErrCodeUnauthorized {
					t.Errorf("Authenticate() error = %v, want unauthorized", err)
				}
			}
		})
	}
}

func TestUserService_SignInWithGoogle(t *testing.T) {
	service, repo := newTestUserService()
	ctx := context.Background()

	existing, _ := service.Register(ctx, registration("linked@example.com"))

	linked, err := service.SignInWithGoogle(ctx, "g-1", "linked@example.com", "Abebe", "Kebede")
	if err != nil {
		t.Fatalf("SignInWithGoogle() link error = %v", err)
	}
	if linked.ID != existing.ID || linked.GoogleID != "g-1" {
		t.Errorf("SignInWithGoogle() did not link the existing account: %+v", linked)
	}

	created, err := service.SignInWithGoogle(ctx, "g-2", "new@example.com", "New", "Member")
	if err != nil {
		t.Fatalf("SignInWithGoogle() create error = %v", err)
	}
	if created.ID == existing.ID || created.PasswordHash != "" {
		t.Errorf("SignInWithGoogle() created = %+v", created)
	}

	again, err := service.SignInWithGoogle(ctx, "g-2", "new@example.com", "New", "Member")
	if err != nil || again.ID != created.ID {
		t.Errorf("SignInWithGoogle() second call = %v, %v", again, err)
	}
	if len(repo.Users) != 2 {
		t.Errorf("expected 2 users, got %d", len(repo.Users))
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()
	u, _ := service.Register(ctx, registration("profile@example.com"))

	phone := "+251922000000"
	updated, err := service.UpdateProfile(ctx, u.ID, user.ProfileUpdate{Phone: &phone})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.Phone != phone || updated.FirstName != "Abebe" {
		t.Errorf("UpdateProfile() = %+v", updated)
	}

	empty := "  "
	if _, err := service.UpdateProfile(ctx, u.ID, user.ProfileUpdate{FirstName: &empty}); err == nil {
		t.Error("UpdateProfile() with empty first name expected error")
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()
	u, _ := service.Register(ctx, registration("change@example.com"))

	if err := service.ChangePassword(ctx, u.ID, "wrong", "newpassword1"); err == nil {
		t.Error("ChangePassword() with wrong current password expected error")
	}
	if err := service.ChangePassword(ctx, u.ID, "password123", "newpassword1"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	if _, err := service.Authenticate(ctx, "change@example.com", "newpassword1"); err != nil {
		t.Errorf("Authenticate() with new password error = %v", err)
	}
}

func TestUserService_PasswordReset(t *testing.T) {
	service, repo := newTestUserService()
	ctx := context.Background()
	u, _ := service.Register(ctx, registration("reset@example.com"))

	token, err := service.RequestPasswordReset(ctx, "unknown@example.com")
	if err != nil || token != "" {
		t.Fatalf("RequestPasswordReset(unknown) = %q, %v", token, err)
	}

	token, err = service.RequestPasswordReset(ctx, "reset@example.com")
	if err != nil || token == "" {
		t.Fatalf("RequestPasswordReset() = %q, %v", token, err)
	}
	if repo.Resets[token].UserID != u.ID {
		t.Errorf("reset stored for user %d, want %d", repo.Resets[token].UserID, u.ID)
	}

	if err := service.ResetPassword(ctx, "bogus", "freshpass123"); err == nil {
		t.Error("ResetPassword() with unknown token expected error")
	}
	if err := service.ResetPassword(ctx, token, "freshpass123"); err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}
	if _, err := service.Authenticate(ctx, "reset@example.com", "freshpass123"); err != nil {
		t.Errorf("Authenticate() after reset error = %v", err)
	}
	if err := service.ResetPassword(ctx, token, "another123"); err == nil {
		t.Error("ResetPassword() reused token expected error")
	}

	expired, _ := service.RequestPasswordReset(ctx, "reset@example.com")
	service.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if err := service.ResetPassword(ctx, expired, "another123"); err == nil {
		t.Error("ResetPassword() with expired token expected error")
	}
}

func TestUserService_SetRenewalNotifications(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()
	u, _ := service.Register(ctx, registration("notify@example.com"))

	got, err := service.SetRenewalNotifications(ctx, u.ID, false)
	if err != nil {
		t.Fatalf("SetRenewalNotifications() error = %v", err)
	}
	if got.NotifyRenewals {
		t.Error("SetRenewalNotifications(false) left reminders on")
	}
}
