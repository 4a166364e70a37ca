package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/net2mulu/signature-gym/internal/api/handlers"
	"github.com/net2mulu/signature-gym/internal/auth"
	"github.com/net2mulu/signature-gym/internal/config"
	"github.com/net2mulu/signature-gym/internal/domain/pricing"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/validator"
	"github.com/net2mulu/signature-gym/internal/services"
	"github.com/net2mulu/signature-gym/internal/testutil"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newTestRouter(t *testing.T) (http.Handler, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{FrontendURL: "http://localhost:5173", Environment: "test"},
		Auth:   config.AuthConfig{JWTSecret: "router-secret", AccessTokenExpiry: time.Minute, RefreshTokenExpiry: time.Hour},
	}
	log := logger.Nop()
	val := validator.New()

	users := testutil.NewMockUserRepository()
	memberRepo := testutil.NewMockMembershipRepository()
	subRepo := testutil.NewMockSubscriptionRepository()
	payRepo := testutil.NewMockPaymentRepository()
	gw := &testutil.StubGateway{}
	pub := &testutil.RecordingPublisher{}
	calc := pricing.NewCalculator("USD", pricing.DefaultReferralDiscount)

	memberships := services.NewMembershipService(memberRepo, "USD", nil, log)
	require.NoError(t, memberships.EnsureCatalog(context.Background()))
	subs := services.NewSubscriptionService(subRepo, memberRepo, users, pub, log, 7)
	issuer := services.NewReceiptIssuer(testutil.NewMemoryStore(), users, memberRepo, subRepo)
	userService := services.NewUserService(users, log, 4, time.Hour)

	h := &Handlers{
		Health:     handlers.NewHealthHandler(okPinger{}, nil, log),
		Auth:       handlers.NewAuthHandler(userService, nil, cfg, log, val),
		Catalog:    handlers.NewCatalogHandler(services.NewCatalogService(nil, nil), log),
		Membership: handlers.NewMembershipHandler(memberships, log),
		Pricing:    handlers.NewPricingHandler(calc, log, val),
		Payment:    handlers.NewPaymentHandler(services.NewPaymentService(payRepo, gw, subs, issuer, pub, log), log),
		Checkout: handlers.NewCheckoutHandler(services.NewCheckoutService(services.CheckoutDeps{
			Users: users, Memberships: memberships, Payments: payRepo, Subscriptions: subs,
			Gateway: gw, Calculator: calc, Receipts: issuer, Publisher: pub, Logger: log,
		}), log, val),
		Subscription: handlers.NewSubscriptionHandler(subs, log),
		Advisor:      handlers.NewAdvisorHandler(services.NewAdvisorService(calc, nil, log), log, val),
	}
	return New(cfg, log, h), cfg
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func get(t *testing.T, h http.Handler, path, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "192.0.2.1:1234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env envelope
	if rr.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	}
	return rr, env
}

func TestRouter_MembershipContract(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, path := range []string{"/api/memberships/studio-gold", "/api/v1/memberships/studio-gold"} {
		rr, env := get(t, h, path, "")
		require.Equal(t, http.StatusOK, rr.Code, path)
		require.True(t, env.Success)

		var m struct {
			ID    string `json:"id"`
			Price int64  `json:"price"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &m))
		require.Equal(t, "studio-gold", m.ID)
		require.Equal(t, int64(150000), m.Price)
	}
}

func TestRouter_SubscriptionsContract(t *testing.T) {
	h, cfg := newTestRouter(t)

	rr, _ := get(t, h, "/api/subscriptions", "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	tokens, err := auth.MintTokens(1, "member@example.com", cfg.Auth.JWTSecret, time.Minute, time.Hour)
	require.NoError(t, err)

	rr, env := get(t, h, "/api/subscriptions", tokens.AccessToken)
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, env.Success)
	require.JSONEq(t, `[]`, string(env.Data))

	rr, _ = get(t, h, "/api/subscriptions", tokens.RefreshToken)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRouter_PublicAndOperationalRoutes(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, path := range []string{
		"/health",
		"/readyz",
		"/api/v1/catalog/gym",
		"/api/v1/catalog/studio/pilates",
		"/api/v1/pricing",
		"/api/v1/pricing/faq",
		"/api/v1/payments/methods",
		"/api/memberships?type=gym",
	} {
		rr, _ := get(t, h, path, "")
		require.Equal(t, http.StatusOK, rr.Code, path)
		require.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"), path)
		require.NotEmpty(t, rr.Header().Get("X-Request-ID"), path)
	}

	rr, _ := get(t, h, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "http_requests_total")

	rr, _ = get(t, h, "/api/v1/catalog/studio/boxing", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}
