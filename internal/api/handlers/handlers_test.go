package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/net2mulu/signature-gym/internal/api/middleware"
	"github.com/net2mulu/signature-gym/internal/auth"
	"github.com/net2mulu/signature-gym/internal/config"
	"github.com/net2mulu/signature-gym/internal/domain/checkout"
	"github.com/net2mulu/signature-gym/internal/domain/payment"
	"github.com/net2mulu/signature-gym/internal/domain/pricing"
	"github.com/net2mulu/signature-gym/internal/domain/user"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/validator"
	"github.com/net2mulu/signature-gym/internal/services"
	"github.com/net2mulu/signature-gym/internal/testutil"
)

const testSecret = "test-secret"

// testEnv wires the real services over in-memory repositories
type testEnv struct {
	cfg      *config.Config
	log      *logger.Logger
	val      *validator.Validator
	users    *testutil.MockUserRepository
	gateway  *testutil.StubGateway
	router   chi.Router
	member   *user.User
	checkout checkout.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	cfg := &config.Config{
		Server: config.ServerConfig{FrontendURL: "http://localhost:5173", Environment: "test"},
		Auth: config.AuthConfig{
			JWTSecret:          testSecret,
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: time.Hour,
			ResetTokenExpiry:   time.Hour,
			BCryptCost:         4,
		},
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

	userService := services.NewUserService(users, log, cfg.Auth.BCryptCost, cfg.Auth.ResetTokenExpiry)
	memberships := services.NewMembershipService(memberRepo, "USD", nil, log)
	if err := memberships.EnsureCatalog(ctx); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	subs := services.NewSubscriptionService(subRepo, memberRepo, users, pub, log, 7)
	issuer := services.NewReceiptIssuer(testutil.NewMemoryStore(), users, memberRepo, subRepo)
	payments := services.NewPaymentService(payRepo, gw, subs, issuer, pub, log)
	checkoutService := services.NewCheckoutService(services.CheckoutDeps{
		Users:         users,
		Memberships:   memberships,
		Payments:      payRepo,
		Subscriptions: subs,
		Gateway:       gw,
		Calculator:    calc,
		Receipts:      issuer,
		Publisher:     pub,
		Logger:        log,
	})

	member, err := userService.Register(ctx, user.Registration{
		FirstName: "Abebe",
		LastName:  "Kebede",
		Email:     "member@example.com",
		Phone:     "0911223344",
		Password:  "password123",
	})
	if err != nil {
		t.Fatalf("register member: %v", err)
	}

	authH := NewAuthHandler(userService, nil, cfg, log, val)
	membershipH := NewMembershipHandler(memberships, log)
	pricingH := NewPricingHandler(calc, log, val)
	paymentH := NewPaymentHandler(payments, log)
	checkoutH := NewCheckoutHandler(checkoutService, log, val)
	subH := NewSubscriptionHandler(subs, log)

	r := chi.NewRouter()
	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)
	r.Post("/auth/refresh", authH.RefreshToken)
	r.Post("/auth/logout", authH.Logout)
	r.Post("/auth/forgot-password", authH.ForgotPassword)
	r.Get("/auth/google", authH.GoogleLogin)
	r.Get("/memberships", membershipH.List)
	r.Get("/memberships/{id}", membershipH.Get)
	r.Get("/pricing", pricingH.Table)
	r.Post("/pricing/quote", pricingH.Quote)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(testSecret))
		r.Get("/auth/me", authH.Me)
		r.Post("/checkout", checkoutH.Checkout)
		r.Get("/subscriptions", subH.List)
		r.Get("/subscriptions/{id}", subH.Get)
		r.Post("/subscriptions/{id}/pause", subH.Pause)
		r.Post("/subscriptions/{id}/upgrade", checkoutH.Upgrade)
		r.Get("/dashboard", subH.Dashboard)
		r.Get("/payments", paymentH.List)
		r.Post("/payments/{id}/refund", paymentH.Refund)
		r.Get("/payments/{id}/receipt", paymentH.Receipt)
	})

	return &testEnv{
		cfg:      cfg,
		log:      log,
		val:      val,
		users:    users,
		gateway:  gw,
		router:   r,
		member:   member,
		checkout: checkoutService,
	}
}

func newRequest(method, path, body string) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(e *testEnv, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// do sends a request through the test router, authenticated as userID when it is non-zero
func (e *testEnv) do(t *testing.T, method, path, body string, userID int64) *httptest.ResponseRecorder {
	t.Helper()
	req := newRequest(method, path, body)
	if userID != 0 {
		req.Header.Set("Authorization", "Bearer "+accessToken(t, userID))
	}
	return serve(e, req)
}

func accessToken(t *testing.T, userID int64) string {
	t.Helper()
	tokens, err := auth.MintTokens(userID, "member@example.com", testSecret, time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("mint tokens: %v", err)
	}
	return tokens.AccessToken
}

// response is the success/error envelope
type response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return resp
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	resp := decode(t, rr)
	if !resp.Success {
		t.Fatalf("expected success, got %s: %s", resp.Error.Code, resp.Error.Message)
	}
	if err := json.Unmarshal(resp.Data, dst); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

// fieldErrors decodes validation details from an error envelope
func fieldErrors(t *testing.T, resp response) []validator.ValidationError {
	t.Helper()
	var errs []validator.ValidationError
	if err := json.Unmarshal(resp.Error.Details, &errs); err != nil {
		t.Fatalf("decode validation details %s: %v", resp.Error.Details, err)
	}
	return errs
}

func validCardJSON() string {
	expiry := time.Now().AddDate(2, 0, 0).Format("01/06")
	return `{"cardNumber":"4242 4242 4242 4242","expiryDate":"` + expiry + `","cvv":"123","cardholderName":"Abebe Kebede"}`
}

// purchase buys membershipID for the member through the service layer
func (e *testEnv) purchase(t *testing.T, membershipID string) *checkout.Result {
	t.Helper()
	res, err := e.checkout.Checkout(context.Background(), e.member.ID, checkout.Request{
		MembershipID: membershipID,
		Method:       payment.MethodCard,
		Card: &payment.CardDetails{
			CardNumber:     "4242424242424242",
			ExpiryDate:     time.Now().AddDate(1, 0, 0).Format("01/06"),
			CVV:            "123",
			CardholderName: "Abebe Kebede",
		},
	})
	if err != nil {
		t.Fatalf("checkout %s: %v", membershipID, err)
	}
	return res
}
