package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/net2mulu/signature-gym/internal/auth"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
)

const secret = "middleware-secret"

func echoUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := GetUserID(r); !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func TestAuthMiddleware(t *testing.T) {
	tokens, err := auth.MintTokens(7, "member@example.com", secret, time.Minute, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	otherSecret, err := auth.MintTokens(7, "member@example.com", "other", time.Minute, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		header         string
		cookie         string
		expectedStatus int
	}{
		{"bearer access token", "Bearer " + tokens.AccessToken, "", http.StatusOK},
		{"lower-case scheme", "bearer " + tokens.AccessToken, "", http.StatusOK},
		{"access cookie", "", tokens.AccessToken, http.StatusOK},
		{"refresh token rejected", "Bearer " + tokens.RefreshToken, "", http.StatusUnauthorized},
		{"wrong signing key", "Bearer " + otherSecret.AccessToken, "", http.StatusUnauthorized},
		{"basic auth", "Basic Zm9vOmJhcg==", "", http.StatusUnauthorized},
		{"no credentials", "", "", http.StatusUnauthorized},
	}

	handler := AuthMiddleware(secret)(http.HandlerFunc(echoUser))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/subscriptions", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AccessCookie, Value: tt.cookie})
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	handler := OptionalAuthMiddleware(secret)(http.HandlerFunc(echoUser))

	req := httptest.NewRequest(http.MethodGet, "/api/pricing", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Errorf("invalid token should pass through anonymously, got %d", rr.Code)
	}
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(1, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/memberships", nil)
		req.RemoteAddr = "10.0.0.1:5000" + string(rune('0'+i))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]; ports must not split the bucket", codes)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/memberships", nil)
	req.RemoteAddr = "10.0.0.2:4000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("a different client should have its own bucket, got %d", rr.Code)
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.Allow("a")
	rl.visitors["a"].lastSeen = time.Now().Add(-time.Hour)
	rl.Allow("b")

	rl.Cleanup(10 * time.Minute)
	if _, ok := rl.visitors["a"]; ok {
		t.Error("idle visitor was not removed")
	}
	if _, ok := rl.visitors["b"]; !ok {
		t.Error("recent visitor was removed")
	}
}

func TestRecovery(t *testing.T) {
	handler := Recovery(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if seen != "abc-123" || rr.Header().Get(RequestIDHeader) != "abc-123" {
		t.Errorf("caller request id not propagated: %q", seen)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if len(seen) != 36 {
		t.Errorf("expected a generated uuid, got %q", seen)
	}
}
