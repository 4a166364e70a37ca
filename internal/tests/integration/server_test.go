package integration

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/net2mulu/signature-gym/internal/api/handlers"
	"github.com/net2mulu/signature-gym/internal/api/router"
	"github.com/net2mulu/signature-gym/internal/config"
	"github.com/net2mulu/signature-gym/internal/domain/pricing"
	"github.com/net2mulu/signature-gym/internal/domain/subscription"
	"github.com/net2mulu/signature-gym/internal/events"
	"github.com/net2mulu/signature-gym/internal/integrations"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/validator"
	"github.com/net2mulu/signature-gym/internal/receipts"
	"github.com/net2mulu/signature-gym/internal/repository/postgres"
	"github.com/net2mulu/signature-gym/internal/services"
	"github.com/net2mulu/signature-gym/internal/testutil"
	"github.com/net2mulu/signature-gym/pkg/client"
	"github.com/stretchr/testify/require"
)

// testServer is the full API over SQLite, a local receipt store and an
// instant payment gateway
type testServer struct {
	URL           string
	Subscriptions subscription.Service
}

func newTestServer(t *testing.T, chargeSuccessRate float64) *testServer {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{FrontendURL: "http://localhost:5173", Environment: "test"},
		Auth: config.AuthConfig{
			JWTSecret:          "integration-secret",
			BCryptCost:         4,
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
			ResetTokenExpiry:   time.Hour,
		},
	}
	log := logger.Nop()
	val := validator.New()

	raw := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.CleanupDB(raw) })
	db := postgres.Wrap(raw, "sqlite")

	users := postgres.NewUserRepository(db)
	memberRepo := postgres.NewMembershipRepository(db)
	subRepo := postgres.NewSubscriptionRepository(db)
	payRepo := postgres.NewPaymentRepository(db)

	store, err := receipts.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	gw := integrations.NewMockGateway(
		integrations.WithDelays(0, 0),
		integrations.WithSuccessRates(chargeSuccessRate, 1),
	)
	pub := events.NewLogPublisher(log)
	calc := pricing.NewCalculator("USD", pricing.DefaultReferralDiscount)

	memberships := services.NewMembershipService(memberRepo, "USD", nil, log)
	require.NoError(t, memberships.EnsureCatalog(context.Background()))
	subs := services.NewSubscriptionService(subRepo, memberRepo, users, pub, log, 7)
	issuer := services.NewReceiptIssuer(store, users, memberRepo, subRepo)
	userService := services.NewUserService(users, log, cfg.Auth.BCryptCost, cfg.Auth.ResetTokenExpiry)

	h := &router.Handlers{
		Health:     handlers.NewHealthHandler(raw, nil, log),
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

	ts := httptest.NewServer(router.New(cfg, log, h))
	t.Cleanup(ts.Close)

	return &testServer{URL: ts.URL, Subscriptions: subs}
}

func (s *testServer) client() *client.Client {
	return client.NewClient(client.Config{BaseURL: s.URL, Timeout: 10 * time.Second})
}

// register signs up a member and returns a client holding their token
func (s *testServer) register(t *testing.T, email, referralCode string) (*client.Client, *client.User) {
	t.Helper()
	c := s.client()
	resp, err := c.Register(context.Background(), client.RegisterRequest{
		FirstName:    "Abebe",
		LastName:     "Kebede",
		Email:        email,
		Phone:        "0911223344",
		Password:     "SecurePassword123",
		AgreeToTerms: true,
		ReferralCode: referralCode,
	})
	require.NoError(t, err)
	require.NotEmpty(t, c.GetToken())
	return c, resp.User
}

func validCard() *client.CardDetails {
	return &client.CardDetails{
		CardNumber:     "4242 4242 4242 4242",
		ExpiryDate:     time.Now().AddDate(2, 0, 0).Format("01/06"),
		CVV:            "123",
		CardholderName: "Abebe Kebede",
	}
}
