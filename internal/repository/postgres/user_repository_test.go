package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/net2mulu/signature-gym/internal/domain/user"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
	"github.com/net2mulu/signature-gym/internal/testutil"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.CleanupDB(db) })
	return Wrap(db, "sqlite")
}

func createUser(t *testing.T, repo user.Repository, email, code string) *user.User {
	t.Helper()
	u := &user.User{
		FirstName:      "Abebe",
		LastName:       "Kebede",
		Email:          email,
		Role:           user.RoleMember,
		ReferralCode:   code,
		NotifyRenewals: true,
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return u
}

func TestUserRepository_Create(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	tests := []struct {
		name    string
		user    *user.User
		wantErr bool
	}{
		{
			name: "create user successfully",
			user: &user.User{
				FirstName:    "Test",
				LastName:     "User",
				Email:        "Test@Example.com",
				Role:         user.RoleMember,
				ReferralCode: "SIG-AAAA0001",
			},
			wantErr: false,
		},
		{
			name: "create another user",
			user: &user.User{
				FirstName:    "Another",
				LastName:     "User",
				Email:        "another@example.com",
				Role:         user.RoleMember,
				ReferralCode: "SIG-AAAA0002",
			},
			wantErr: false,
		},
		{
			name: "duplicate email",
			user: &user.User{
				FirstName:    "Dup",
				LastName:     "User",
				Email:        "test@example.com",
				Role:         user.RoleMember,
				ReferralCode: "SIG-AAAA0003",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			err := repo.Create(ctx, tt.user)

			if (err != nil) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if tt.user.ID == 0 {
					t.Error("Create() did not set user ID")
				}
			}
		})
	}
}

func TestUserRepository_Create_DuplicateIsConflict(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	createUser(t, repo, "dup@example.com", "SIG-00000001")

	err := repo.Create(context.Background(), &user.User{Email: "dup@example.com", ReferralCode: "SIG-00000002", Role: user.RoleMember})
	appErr, ok := errors.As(err)
	if !ok || appErr.Code != errors.ErrCodeConflict {
		t.Fatalf("Create() error = %v, want conflict", err)
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := createUser(t, repo, "test@example.com", "SIG-11111111")

	tests := []struct {
		name    string
		userID  int64
		wantErr bool
	}{
		{
			name:    "get existing user",
			userID:  u.ID,
			wantErr: false,
		},
		{
			name:    "get non-existing user",
			userID:  999,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByID(ctx, tt.userID)

			if (err != nil) != tt.wantErr {
				t.Errorf("GetByID() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				if !errors.IsNotFound(err) {
					t.Errorf("GetByID() error = %v, want not found", err)
				}
				return
			}
			if got.Email != u.Email {
				t.Errorf("GetByID() Email = %v, want %v", got.Email, u.Email)
			}
			if !got.NotifyRenewals {
				t.Error("GetByID() NotifyRenewals = false, want true")
			}
		})
	}
}

func TestUserRepository_Lookups(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := createUser(t, repo, "lookup@example.com", "SIG-22222222")
	u.GoogleID = "google-123"
	if err := repo.Update(ctx, u); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if got, err := repo.GetByEmail(ctx, "LOOKUP@example.com"); err != nil || got.ID != u.ID {
		t.Errorf("GetByEmail() = %v, %v", got, err)
	}
	if got, err := repo.GetByReferralCode(ctx, "sig-22222222"); err != nil || got.ID != u.ID {
		t.Errorf("GetByReferralCode() = %v, %v", got, err)
	}
	if got, err := repo.GetByGoogleID(ctx, "google-123"); err != nil || got.ID != u.ID {
		t.Errorf("GetByGoogleID() = %v, %v", got, err)
	}
	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.IsNotFound(err) {
		t.Errorf("GetByEmail() error = %v, want not found", err)
	}
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	referrer := createUser(t, repo, "referrer@example.com", "SIG-33333333")
	u := createUser(t, repo, "test@example.com", "SIG-44444444")

	u.Phone = "+251911000000"
	u.ReferredBy = &referrer.ID
	u.NotifyRenewals = false
	if err := repo.Update(ctx, u); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	updated, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() after update error = %v", err)
	}
	if updated.Phone != "+251911000000" {
		t.Errorf("Update() Phone = %v", updated.Phone)
	}
	if updated.ReferredBy == nil || *updated.ReferredBy != referrer.ID {
		t.Errorf("Update() ReferredBy = %v, want %d", updated.ReferredBy, referrer.ID)
	}
	if updated.NotifyRenewals {
		t.Error("Update() NotifyRenewals = true, want false")
	}
}

func TestUserRepository_AdjustReferralCredits(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()
	u := createUser(t, repo, "credits@example.com", "SIG-55555555")

	if err := repo.AdjustReferralCredits(ctx, u.ID, 2); err != nil {
		t.Fatalf("AdjustReferralCredits(+2) error = %v", err)
	}
	if err := repo.AdjustReferralCredits(ctx, u.ID, -1); err != nil {
		t.Fatalf("AdjustReferralCredits(-1) error = %v", err)
	}
	if err := repo.AdjustReferralCredits(ctx, u.ID, -5); err == nil {
		t.Error("AdjustReferralCredits(-5) expected error")
	}

	got, _ := repo.GetByID(ctx, u.ID)
	if got.ReferralCredits != 1 {
		t.Errorf("ReferralCredits = %d, want 1", got.ReferralCredits)
	}
}

func TestUserRepository_PasswordReset(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()
	u := createUser(t, repo, "reset@example.com", "SIG-66666666")

	reset := &user.PasswordReset{Token: "tok", UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour)}
	if err := repo.CreatePasswordReset(ctx, reset); err != nil {
		t.Fatalf("CreatePasswordReset() error = %v", err)
	}

	got, err := repo.GetPasswordReset(ctx, "tok")
	if err != nil {
		t.Fatalf("GetPasswordReset() error = %v", err)
	}
	if got.UserID != u.ID || got.UsedAt != nil {
		t.Errorf("GetPasswordReset() = %+v", got)
	}

	if err := repo.MarkPasswordResetUsed(ctx, "tok", time.Now()); err != nil {
		t.Fatalf("MarkPasswordResetUsed() error = %v", err)
	}
	got, _ = repo.GetPasswordReset(ctx, "tok")
	if got.UsedAt == nil {
		t.Error("MarkPasswordResetUsed() did not set UsedAt")
	}

	if _, err := repo.GetPasswordReset(ctx, "missing"); !errors.IsNotFound(err) {
		t.Errorf("GetPasswordReset(missing) error = %v, want not found", err)
	}
}

func TestUserRepository_Delete(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := createUser(t, repo, "test@example.com", "SIG-77777777")

	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Errorf("Delete() error = %v", err)
	}

	if _, err := repo.GetByID(ctx, u.ID); err == nil {
		t.Error("Delete() user still exists after deletion")
	}
}
