package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/net2mulu/signature-gym/internal/auth"
	"github.com/net2mulu/signature-gym/internal/domain/user"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/validator"
	"github.com/net2mulu/signature-gym/internal/services"
	"github.com/net2mulu/signature-gym/internal/testutil"
)

const testSecret = "settings-secret"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type fixture struct {
	engine *gin.Engine
	users  user.Service
	member *user.User
	token  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := services.NewUserService(testutil.NewMockUserRepository(), logger.Nop(), 4, time.Hour)
	member, err := users.Register(context.Background(), user.Registration{
		FirstName: "Sara",
		LastName:  "Bekele",
		Email:     "sara@example.com",
		Phone:     "0911223344",
		Password:  "password123",
	})
	require.NoError(t, err)

	tokens, err := auth.MintTokens(member.ID, member.Email, testSecret, time.Minute, time.Hour)
	require.NoError(t, err)

	ctl := NewController(users, logger.Nop(), validator.New())
	return &fixture{
		engine: NewEngine(ctl, testSecret, false),
		users:  users,
		member: member,
		token:  tokens.AccessToken,
	}
}

func (f *fixture) do(t *testing.T, method, path, body, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestRequireAuth(t *testing.T) {
	f := newFixture(t)

	refresh, err := auth.MintTokens(f.member.ID, f.member.Email, testSecret, time.Minute, time.Hour)
	require.NoError(t, err)
	foreign, err := auth.MintTokens(f.member.ID, f.member.Email, "other-secret", time.Minute, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{name: "missing token", token: "", status: http.StatusUnauthorized},
		{name: "garbage token", token: "not-a-jwt", status: http.StatusUnauthorized},
		{name: "refresh token", token: refresh.RefreshToken, status: http.StatusUnauthorized},
		{name: "wrong secret", token: foreign.AccessToken, status: http.StatusUnauthorized},
		{name: "valid access token", token: f.token, status: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := f.do(t, http.MethodGet, "/profile", "", tt.token)
			require.Equal(t, tt.status, rec.Code)
			require.Equal(t, tt.status == http.StatusOK, env.Success)
		})
	}
}

func TestRequireAuth_Cookie(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/notifications/settings", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: f.token})
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthIsPublic(t *testing.T) {
	f := newFixture(t)
	rec, env := f.do(t, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)
}

func TestProfile(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, http.MethodGet, "/profile", "", f.token)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	require.Equal(t, "sara@example.com", profile.Email)
	require.Equal(t, "Sara", profile.FirstName)

	rec, env = f.do(t, http.MethodPut, "/profile", `{"firstName":"Selam","phone":"0922334455"}`, f.token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Profile updated", env.Message)

	u, err := f.users.GetByID(context.Background(), f.member.ID)
	require.NoError(t, err)
	require.Equal(t, "Selam", u.FirstName)
	require.Equal(t, "Bekele", u.LastName)
	require.Equal(t, "0922334455", u.Phone)
}

func TestUpdateProfile_Invalid(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		body string
		code string
	}{
		{name: "malformed json", body: `{"firstName":`, code: "BAD_REQUEST"},
		{name: "phone too short", body: `{"phone":"123"}`, code: "VALIDATION_ERROR"},
		{name: "name blanked", body: `{"lastName":"  "}`, code: "BAD_REQUEST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := f.do(t, http.MethodPut, "/profile", tt.body, f.token)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.False(t, env.Success)
			require.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodPost, "/account/password",
		`{"currentPassword":"wrong-password","newPassword":"newpassword456"}`, f.token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/account/password",
		`{"currentPassword":"password123","newPassword":"short"}`, f.token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := f.do(t, http.MethodPost, "/account/password",
		`{"currentPassword":"password123","newPassword":"newpassword456"}`, f.token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Password changed", env.Message)

	_, err := f.users.Authenticate(context.Background(), "sara@example.com", "newpassword456")
	require.NoError(t, err)
}

func TestNotificationSettings(t *testing.T) {
	f := newFixture(t)

	read := func() bool {
		rec, env := f.do(t, http.MethodGet, "/notifications/settings", "", f.token)
		require.Equal(t, http.StatusOK, rec.Code)
		var s struct {
			RenewalReminders bool `json:"renewalReminders"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &s))
		return s.RenewalReminders
	}

	initial := read()

	rec, _ := f.do(t, http.MethodPut, "/notifications/settings",
		`{"renewalReminders":`+boolJSON(!initial)+`}`, f.token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, !initial, read())
}

func boolJSON(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
