package handlers

import (
	"net/http"
	"testing"

	"github.com/net2mulu/signature-gym/internal/domain/subscription"
)

func TestSubscriptionHandler_List(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/subscriptions", "", env.member.ID)
	var empty []subscription.Subscription
	decodeData(t, rr, &empty)
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected an empty array, got %s", rr.Body.String())
	}

	bought := env.purchase(t, "gym-6-month")

	rr = env.do(t, http.MethodGet, "/subscriptions", "", env.member.ID)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var subs []subscription.Subscription
	decodeData(t, rr, &subs)
	if len(subs) != 1 || subs[0].ID != bought.Subscription.ID {
		t.Fatalf("unexpected subscriptions %+v", subs)
	}
	if subs[0].Status != subscription.StatusActive || subs[0].MembershipID != "gym-6-month" {
		t.Errorf("unexpected subscription %+v", subs[0])
	}

	if rr := env.do(t, http.MethodGet, "/subscriptions", "", 0); rr.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", rr.Code)
	}
}

func TestSubscriptionHandler_Actions(t *testing.T) {
	env := newTestEnv(t)
	bought := env.purchase(t, "gym-6-month")
	path := "/subscriptions/" + bought.Subscription.ID

	tests := []struct {
		name           string
		method         string
		path           string
		userID         int64
		expectedStatus int
		expectedState  subscription.Status
	}{
		{"owner reads", http.MethodGet, path, env.member.ID, http.StatusOK, subscription.StatusActive},
		{"other member cannot see it", http.MethodGet, path, env.member.ID + 100, http.StatusNotFound, ""},
		{"pause", http.MethodPost, path + "/pause", env.member.ID, http.StatusOK, subscription.StatusPaused},
		{"pause twice", http.MethodPost, path + "/pause", env.member.ID, http.StatusConflict, ""},
		{"unknown id", http.MethodGet, "/subscriptions/does-not-exist", env.member.ID, http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, tt.method, tt.path, "", tt.userID)
			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (%s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if tt.expectedState == "" {
				return
			}
			var sub subscription.Subscription
			decodeData(t, rr, &sub)
			if sub.Status != tt.expectedState {
				t.Errorf("status = %s, want %s", sub.Status, tt.expectedState)
			}
		})
	}
}

func TestSubscriptionHandler_Dashboard(t *testing.T) {
	env := newTestEnv(t)
	env.purchase(t, "gym-6-month")
	env.purchase(t, "gym-12-month")

	rr := env.do(t, http.MethodGet, "/dashboard", "", env.member.ID)
	var d subscription.Dashboard
	decodeData(t, rr, &d)

	if d.ActiveCount != 2 {
		t.Errorf("active = %d, want 2", d.ActiveCount)
	}
	if d.GuestPasses != 12 {
		t.Errorf("guest passes = %d, want 12", d.GuestPasses)
	}
	if d.NextEndDate == nil {
		t.Error("expected a next end date")
	}
	if d.Memberships["gym-12-month"] == nil {
		t.Error("expected the purchased memberships to be included")
	}
}
