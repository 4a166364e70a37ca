package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/net2mulu/signature-gym/internal/api/dto"
	"github.com/net2mulu/signature-gym/internal/domain/membership"
	"github.com/net2mulu/signature-gym/internal/domain/pricing"
)

func TestMembershipHandler_Get(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/memberships/gym-6-month", "", 0)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rr.Code, rr.Body.String())
	}
	var m membership.Membership
	decodeData(t, rr, &m)
	if m.ID != "gym-6-month" || m.Price != 9000 || !m.BestValue {
		t.Errorf("unexpected membership %+v", m)
	}
}

func TestMembershipHandler_Get_UnknownSuggests(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/memberships/gym-6-mnth", "", 0)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}

	resp := decode(t, rr)
	if resp.Success || resp.Error.Code != "NOT_FOUND" {
		t.Fatalf("unexpected envelope %+v", resp)
	}
	var details struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal(resp.Error.Details, &details); err != nil {
		t.Fatalf("decode details %s: %v", resp.Error.Details, err)
	}
	if len(details.Suggestions) == 0 || details.Suggestions[0] != "gym-6-month" {
		t.Errorf("suggestions = %v, want gym-6-month first", details.Suggestions)
	}
}

func TestMembershipHandler_List(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedCount  int
	}{
		{"all plans", "", http.StatusOK, 34},
		{"gym plans", "?type=gym", http.StatusOK, 4},
		{"studio plans", "?type=studio", http.StatusOK, 3},
		{"flex plans", "?type=flex", http.StatusOK, 27},
		{"unknown type", "?type=swim", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, http.MethodGet, "/memberships"+tt.query, "", 0)
			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
			if rr.Code != http.StatusOK {
				return
			}
			var items []membership.Membership
			decodeData(t, rr, &items)
			if len(items) != tt.expectedCount {
				t.Errorf("got %d plans, want %d", len(items), tt.expectedCount)
			}
		})
	}
}

func TestPricingHandler(t *testing.T) {
	env := newTestEnv(t)

	t.Run("table", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/pricing", "", 0)
		var table dto.PricingTable
		decodeData(t, rr, &table)
		if table.Currency != "USD" || len(table.Rows) != 27 {
			t.Errorf("unexpected table: %s with %d rows", table.Currency, len(table.Rows))
		}
	})

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedTotal  int64
	}{
		{
			name:           "single monthly all day",
			body:           `{"membershipType":"single","duration":"monthly","accessTime":"all-day"}`,
			expectedStatus: http.StatusOK,
			expectedTotal:  6000,
		},
		{
			name:           "referral applied",
			body:           `{"membershipType":"single","duration":"monthly","accessTime":"all-day","referralCredits":1,"useReferral":true}`,
			expectedStatus: http.StatusOK,
			expectedTotal:  4800,
		},
		{
			name:           "referral without credits",
			body:           `{"membershipType":"single","duration":"monthly","accessTime":"all-day","useReferral":true}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown duration",
			body:           `{"membershipType":"single","duration":"weekly","accessTime":"all-day"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, http.MethodPost, "/pricing/quote", tt.body, 0)
			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (%s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if rr.Code != http.StatusOK {
				return
			}
			var q pricing.Quote
			decodeData(t, rr, &q)
			if q.Total != tt.expectedTotal {
				t.Errorf("total = %d, want %d", q.Total, tt.expectedTotal)
			}
		})
	}
}
