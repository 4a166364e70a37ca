package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/net2mulu/signature-gym/internal/api/handlers"
	"github.com/net2mulu/signature-gym/internal/api/middleware"
	"github.com/net2mulu/signature-gym/internal/config"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/metrics"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Catalog      *handlers.CatalogHandler
	Membership   *handlers.MembershipHandler
	Pricing      *handlers.PricingHandler
	Payment      *handlers.PaymentHandler
	Checkout     *handlers.CheckoutHandler
	Subscription *handlers.SubscriptionHandler
	Advisor      *handlers.AdvisorHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(metrics.Middleware)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec, burst of 200

	// Operational endpoints
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", h.Health.Healthz)
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Handle("/metrics", metrics.Handler())

	// The member site calls /api/...; /api/v1/... is the versioned surface
	for _, prefix := range []string{"/api/v1", "/api"} {
		mount(r, prefix, cfg, h)
	}

	return r
}

func mount(r chi.Router, prefix string, cfg *config.Config, h *Handlers) {
	// Public routes: offerings, plans and pricing are browsable without an account
	r.Group(func(r chi.Router) {
		r.Get(prefix+"/catalog/gym", h.Catalog.Gym)
		r.Get(prefix+"/catalog/studio", h.Catalog.Studio)
		r.Get(prefix+"/catalog/studio/{id}", h.Catalog.StudioType)

		r.Get(prefix+"/memberships", h.Membership.List)
		r.Get(prefix+"/memberships/{id}", h.Membership.Get)

		r.Get(prefix+"/pricing", h.Pricing.Table)
		r.Post(prefix+"/pricing/quote", h.Pricing.Quote)
		r.Get(prefix+"/pricing/faq", h.Pricing.FAQ)

		r.Get(prefix+"/payments/methods", h.Payment.Methods)
		r.Post(prefix+"/advisor/recommend", h.Advisor.Recommend)
	})

	r.Route(prefix+"/auth", func(r chi.Router) {
		// tighter limit against credential stuffing
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(2, 10))
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Post("/reset-password", h.Auth.ResetPassword)
		})
		r.Post("/refresh", h.Auth.RefreshToken)
		r.Post("/logout", h.Auth.Logout)
		r.Get("/google", h.Auth.GoogleLogin)
		r.Get("/google/callback", h.Auth.GoogleCallback)
		r.With(middleware.AuthMiddleware(cfg.Auth.JWTSecret)).Get("/me", h.Auth.Me)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

		r.Get(prefix+"/dashboard", h.Subscription.Dashboard)

		r.Route(prefix+"/subscriptions", func(r chi.Router) {
			r.Get("/", h.Subscription.List)
			r.Get("/{id}", h.Subscription.Get)
			r.Post("/{id}/pause", h.Subscription.Pause)
			r.Post("/{id}/resume", h.Subscription.Resume)
			r.Post("/{id}/cancel", h.Subscription.Cancel)
			r.Post("/{id}/guest-pass", h.Subscription.UseGuestPass)
			r.With(middleware.UserRateLimit(1, 5)).Post("/{id}/upgrade", h.Checkout.Upgrade)
		})

		r.Get(prefix+"/payments", h.Payment.List)
		r.Get(prefix+"/payments/{id}", h.Payment.Get)
		r.Post(prefix+"/payments/{id}/refund", h.Payment.Refund)
		r.Get(prefix+"/payments/{id}/receipt", h.Payment.Receipt)

		r.With(middleware.UserRateLimit(1, 5)).Post(prefix+"/checkout", h.Checkout.Checkout)
	})
}
