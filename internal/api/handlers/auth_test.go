package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/net2mulu/signature-gym/internal/api/dto"
	"github.com/net2mulu/signature-gym/internal/api/middleware"
	"github.com/net2mulu/signature-gym/internal/auth"
)

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "valid registration",
			body:           `{"firstName":"Sara","lastName":"Tesfaye","email":"sara@example.com","phone":"0912345678","password":"password123","agreeToTerms":true}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "terms not accepted",
			body:           `{"firstName":"Sara","lastName":"Tesfaye","email":"sara@example.com","phone":"0912345678","password":"password123","agreeToTerms":false}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "short password",
			body:           `{"firstName":"Sara","lastName":"Tesfaye","email":"sara@example.com","phone":"0912345678","password":"short","agreeToTerms":true}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "duplicate email",
			body:           `{"firstName":"Abebe","lastName":"Kebede","email":"Member@Example.com","phone":"0911223344","password":"password123","agreeToTerms":true}`,
			expectedStatus: http.StatusConflict,
			expectedCode:   "CONFLICT",
		},
		{
			name:           "unknown referral code",
			body:           `{"firstName":"Sara","lastName":"Tesfaye","email":"sara@example.com","phone":"0912345678","password":"password123","agreeToTerms":true,"referralCode":"SIG-NOPE"}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
		{
			name:           "malformed body",
			body:           `{"firstName":`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			rr := env.do(t, http.MethodPost, "/auth/register", tt.body, 0)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (%s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if tt.expectedCode != "" {
				if code := decode(t, rr).Error.Code; code != tt.expectedCode {
					t.Errorf("error code = %s, want %s", code, tt.expectedCode)
				}
				return
			}

			var resp dto.AuthResponse
			decodeData(t, rr, &resp)
			if resp.AccessToken == "" || resp.RefreshToken == "" {
				t.Error("expected a token pair")
			}
			if resp.User.Name != "Sara Tesfaye" || resp.User.ReferralCode == "" {
				t.Errorf("unexpected user %+v", resp.User)
			}
			if len(rr.Result().Cookies()) != 2 {
				t.Errorf("expected access and refresh cookies, got %d", len(rr.Result().Cookies()))
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"correct password", `{"email":"member@example.com","password":"password123"}`, http.StatusOK},
		{"email is case insensitive", `{"email":"MEMBER@example.com","password":"password123"}`, http.StatusOK},
		{"wrong password", `{"email":"member@example.com","password":"wrong-password"}`, http.StatusUnauthorized},
		{"unknown email", `{"email":"nobody@example.com","password":"password123"}`, http.StatusUnauthorized},
		{"missing email", `{"password":"password123"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, http.MethodPost, "/auth/login", tt.body, 0)
			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d (%s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/auth/me", "", env.member.ID)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rr.Code, rr.Body.String())
	}
	var u dto.UserDTO
	decodeData(t, rr, &u)
	if u.Email != "member@example.com" || !u.NotifyRenewals {
		t.Errorf("unexpected user %+v", u)
	}

	if rr := env.do(t, http.MethodGet, "/auth/me", "", 0); rr.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", rr.Code)
	}
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	env := newTestEnv(t)
	tokens, err := auth.MintTokens(env.member.ID, env.member.Email, testSecret, time.Minute, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		body           string
		cookie         string
		expectedStatus int
	}{
		{"refresh token in body", `{"refreshToken":"` + tokens.RefreshToken + `"}`, "", http.StatusOK},
		{"refresh token in cookie", "", tokens.RefreshToken, http.StatusOK},
		{"access token is rejected", `{"refreshToken":"` + tokens.AccessToken + `"}`, "", http.StatusUnauthorized},
		{"missing token", "", "", http.StatusUnauthorized},
		{"garbage token", `{"refreshToken":"not-a-jwt"}`, "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(http.MethodPost, "/auth/refresh", tt.body)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middleware.RefreshCookie, Value: tt.cookie})
			}
			rr := serve(env, req)
			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d (%s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/auth/logout", "", 0)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cleared cookies, got %d", len(cookies))
	}
	for _, c := range cookies {
		if c.MaxAge >= 0 || c.Value != "" {
			t.Errorf("cookie %s not cleared: %+v", c.Name, c)
		}
	}
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	env := newTestEnv(t)

	for _, email := range []string{"member@example.com", "nobody@example.com"} {
		rr := env.do(t, http.MethodPost, "/auth/forgot-password", `{"email":"`+email+`"}`, 0)
		if rr.Code != http.StatusAccepted {
			t.Errorf("%s: status = %d, want 202", email, rr.Code)
		}
	}
	if len(env.users.Resets) != 1 {
		t.Errorf("expected one stored reset, got %d", len(env.users.Resets))
	}
}

func TestAuthHandler_GoogleNotConfigured(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/auth/google", "", 0)
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rr.Code)
	}
}
