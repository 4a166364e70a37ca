// @title Signature Fitness API
// @version 1.0
// @description Membership, pricing, checkout and subscription API for Signature Fitness.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/net2mulu/signature-gym/docs"
	"github.com/net2mulu/signature-gym/internal/api/handlers"
	"github.com/net2mulu/signature-gym/internal/api/router"
	"github.com/net2mulu/signature-gym/internal/auth"
	"github.com/net2mulu/signature-gym/internal/cache"
	"github.com/net2mulu/signature-gym/internal/config"
	"github.com/net2mulu/signature-gym/internal/domain/advisor"
	"github.com/net2mulu/signature-gym/internal/domain/catalog"
	"github.com/net2mulu/signature-gym/internal/domain/pricing"
	"github.com/net2mulu/signature-gym/internal/events"
	"github.com/net2mulu/signature-gym/internal/integrations"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/validator"
	"github.com/net2mulu/signature-gym/internal/receipts"
	"github.com/net2mulu/signature-gym/internal/repository/postgres"
	"github.com/net2mulu/signature-gym/internal/services"
	"github.com/net2mulu/signature-gym/internal/worker"
	"github.com/net2mulu/signature-gym/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logCfg := logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
	}
	logger.Init(logCfg)
	log := logger.New(logCfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	migrationsFS, err := migrations.GetFS(db.Driver())
	if err != nil {
		log.Fatalf("Failed to load migrations: %v", err)
	}
	applied, err := postgres.RunMigrations(db, migrationsFS)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.WithFields(map[string]interface{}{
		"driver":  db.Driver(),
		"applied": len(applied),
	}).Info("Database ready")

	// Redis is optional: without it views are not cached and events go to the log
	var rdb *redis.Client
	var publisher events.Publisher = events.NewLogPublisher(log)
	if cfg.Redis.Enabled {
		rdb, err = cache.NewClient(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, continuing without cache")
		} else {
			defer rdb.Close()
			publisher = events.NewRedisPublisher(rdb)
			log.With("addr", cfg.Redis.Addr()).Info("Redis connected")
		}
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	membershipRepo := postgres.NewMembershipRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)

	// Integrations
	gateway := integrations.NewMockGateway(
		integrations.WithDelays(cfg.Payment.ProcessDelay, cfg.Payment.RefundDelay),
		integrations.WithSuccessRates(cfg.Payment.ProcessSuccess, cfg.Payment.RefundSuccess),
	)
	receiptStore, err := receipts.NewStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize receipt storage: %v", err)
	}
	var explainer advisor.Explainer
	switch {
	case cfg.Advisor.OpenAIAPIKey != "":
		explainer = integrations.NewOpenAIExplainer(cfg.Advisor.OpenAIAPIKey, cfg.Advisor.Model, cfg.Advisor.Timeout)
	case cfg.Advisor.GeminiAPIKey != "":
		explainer = integrations.NewGeminiExplainer(cfg.Advisor.GeminiAPIKey, cfg.Advisor.GeminiModel, cfg.Advisor.Timeout)
	}
	google := auth.NewGoogleProvider(cfg.OAuth.Google.ClientID, cfg.OAuth.Google.ClientSecret, cfg.OAuth.Google.RedirectURL)

	// Services
	calculator := pricing.NewCalculator(cfg.Payment.Currency, cfg.Payment.ReferralDiscount)
	userService := services.NewUserService(userRepo, log, cfg.Auth.BCryptCost, cfg.Auth.ResetTokenExpiry)
	membershipService := services.NewMembershipService(membershipRepo, cfg.Payment.Currency,
		cache.NewViewCache[services.MembershipList](rdb, "memberships", cfg.Redis.CacheTTL, log), log)
	if err := membershipService.EnsureCatalog(ctx); err != nil {
		log.Fatalf("Failed to seed membership catalog: %v", err)
	}
	catalogService := services.NewCatalogService(
		cache.NewViewCache[catalog.GymOfferings](rdb, "catalog-gym", cfg.Redis.CacheTTL, log),
		cache.NewViewCache[catalog.StudioOfferings](rdb, "catalog-studio", cfg.Redis.CacheTTL, log),
	)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, membershipRepo, userRepo, publisher, log, cfg.Scheduler.ReminderDays)
	issuer := services.NewReceiptIssuer(receiptStore, userRepo, membershipRepo, subscriptionRepo)
	paymentService := services.NewPaymentService(paymentRepo, gateway, subscriptionService, issuer, publisher, log)
	checkoutService := services.NewCheckoutService(services.CheckoutDeps{
		Users:         userRepo,
		Memberships:   membershipService,
		Payments:      paymentRepo,
		Subscriptions: subscriptionService,
		Gateway:       gateway,
		Calculator:    calculator,
		Receipts:      issuer,
		Publisher:     publisher,
		Logger:        log,
	})
	advisorService := services.NewAdvisorService(calculator, explainer, log)

	// Handlers
	val := validator.New()
	h := &router.Handlers{
		Health:       handlers.NewHealthHandler(db, rdb, log),
		Auth:         handlers.NewAuthHandler(userService, google, cfg, log, val),
		Catalog:      handlers.NewCatalogHandler(catalogService, log),
		Membership:   handlers.NewMembershipHandler(membershipService, log),
		Pricing:      handlers.NewPricingHandler(calculator, log, val),
		Payment:      handlers.NewPaymentHandler(paymentService, log),
		Checkout:     handlers.NewCheckoutHandler(checkoutService, log, val),
		Subscription: handlers.NewSubscriptionHandler(subscriptionService, log),
		Advisor:      handlers.NewAdvisorHandler(advisorService, log, val),
	}

	// Background lifecycle sweep
	if cfg.Scheduler.Enabled {
		lifecycle, err := worker.NewLifecycleScheduler(subscriptionService, cfg.Scheduler.Schedule, log)
		if err != nil {
			log.Fatalf("Failed to configure lifecycle scheduler: %v", err)
		}
		if err := lifecycle.Start(ctx); err != nil {
			log.Fatalf("Failed to start lifecycle scheduler: %v", err)
		}
		defer lifecycle.Stop()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.New(cfg, log, h),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithFields(map[string]interface{}{
			"addr":        srv.Addr,
			"environment": cfg.Server.Environment,
			"google":      google != nil,
			"advisor_ai":  explainer != nil,
		}).Info("Signature Fitness API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.With("signal", sig.String()).Info("Shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorWithErr(err, "Graceful shutdown failed")
	}
	log.Info("Server stopped")
}
