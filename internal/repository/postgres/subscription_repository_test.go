package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/net2mulu/signature-gym/internal/domain/membership"
	"github.com/net2mulu/signature-gym/internal/domain/subscription"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
)

func seedSubscriptionFixtures(t *testing.T, db *DB) int64 {
	t.Helper()
	u := createUser(t, NewUserRepository(db), "member@example.com", "SIG-SUB00001")
	err := NewMembershipRepository(db).Upsert(context.Background(), &membership.Membership{
		ID: "gym-1-month", Name: "1 Month", Type: membership.TypeGym, Duration: 1, Price: 6000, Currency: "USD", Active: true,
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	return u.ID
}

func newSubscription(id string, userID int64, status subscription.Status, end time.Time) *subscription.Subscription {
	return &subscription.Subscription{
		ID:           id,
		UserID:       userID,
		MembershipID: "gym-1-month",
		Status:       status,
		StartDate:    end.AddDate(0, -1, 0),
		EndDate:      end,
		GuestPasses:  2,
		PaymentID:    "pay-" + id,
	}
}

func TestSubscriptionRepository_CreateGetUpdate(t *testing.T) {
	db := newTestDB(t)
	userID := seedSubscriptionFixtures(t, db)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	end := time.Now().Add(30 * 24 * time.Hour).Truncate(time.Second)
	s := newSubscription("sub-1", userID, subscription.StatusActive, end)
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "sub-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Status != subscription.StatusActive || !got.EndDate.Equal(end) || got.PausedAt != nil {
		t.Errorf("GetByID() = %+v", got)
	}

	pausedAt := time.Now().Truncate(time.Second)
	got.Status = subscription.StatusPaused
	got.PausedAt = &pausedAt
	got.GuestPasses = 1
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	again, _ := repo.GetByID(ctx, "sub-1")
	if again.Status != subscription.StatusPaused || again.PausedAt == nil || !again.PausedAt.Equal(pausedAt) {
		t.Errorf("Update() not persisted: %+v", again)
	}
	if again.GuestPasses != 1 {
		t.Errorf("GuestPasses = %d, want 1", again.GuestPasses)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.IsNotFound(err) {
		t.Errorf("GetByID(missing) error = %v, want not found", err)
	}
	if err := repo.Update(ctx, newSubscription("missing", userID, subscription.StatusActive, end)); !errors.IsNotFound(err) {
		t.Errorf("Update(missing) error = %v, want not found", err)
	}
}

func TestSubscriptionRepository_LifecycleQueries(t *testing.T) {
	db := newTestDB(t)
	userID := seedSubscriptionFixtures(t, db)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()
	now := time.Now()

	fixtures := []*subscription.Subscription{
		newSubscription("expired", userID, subscription.StatusActive, now.Add(-time.Hour)),
		newSubscription("ending", userID, subscription.StatusActive, now.Add(3*24*time.Hour)),
		newSubscription("later", userID, subscription.StatusActive, now.Add(60*24*time.Hour)),
		newSubscription("paused", userID, subscription.StatusPaused, now.Add(-time.Hour)),
		newSubscription("cancelled", userID, subscription.StatusCancelled, now.Add(-time.Hour)),
	}
	for _, s := range fixtures {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create(%s) error = %v", s.ID, err)
		}
	}

	due, err := repo.ListDueForExpiry(ctx, now)
	if err != nil {
		t.Fatalf("ListDueForExpiry() error = %v", err)
	}
	if len(due) != 1 || due[0].ID != "expired" {
		t.Errorf("ListDueForExpiry() = %v", ids(due))
	}

	paused, _ := repo.ListPaused(ctx)
	if len(paused) != 1 || paused[0].ID != "paused" {
		t.Errorf("ListPaused() = %v", ids(paused))
	}

	ending, _ := repo.ListEndingBetween(ctx, now, now.Add(7*24*time.Hour))
	if len(ending) != 1 || ending[0].ID != "ending" {
		t.Errorf("ListEndingBetween() = %v", ids(ending))
	}

	notified := now
	ending[0].RenewalNotifiedAt = &notified
	if err := repo.Update(ctx, ending[0]); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	ending, _ = repo.ListEndingBetween(ctx, now, now.Add(7*24*time.Hour))
	if len(ending) != 0 {
		t.Errorf("ListEndingBetween() after reminder = %v, want none", ids(ending))
	}

	all, _ := repo.ListByUser(ctx, userID)
	if len(all) != len(fixtures) {
		t.Errorf("ListByUser() returned %d, want %d", len(all), len(fixtures))
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus() error = %v", err)
	}
	if counts[subscription.StatusActive] != 3 || counts[subscription.StatusPaused] != 1 ||
		counts[subscription.StatusCancelled] != 1 || counts[subscription.StatusExpired] != 0 {
		t.Errorf("CountByStatus() = %v", counts)
	}
}

func ids(subs []*subscription.Subscription) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.ID
	}
	return out
}
