package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/net2mulu/signature-gym/internal/config"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/pkg/validator"
	"github.com/net2mulu/signature-gym/internal/repository/postgres"
	"github.com/net2mulu/signature-gym/internal/services"
	"github.com/net2mulu/signature-gym/internal/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
	}).With("service", "settings")

	// The API server owns migrations; this service only reads and writes members
	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	users := services.NewUserService(postgres.NewUserRepository(db), log, cfg.Auth.BCryptCost, cfg.Auth.ResetTokenExpiry)
	ctl := settings.NewController(users, log, validator.New())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.SettingsPort),
		Handler:      settings.NewEngine(ctl, cfg.Auth.JWTSecret, cfg.IsProduction()),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.With("addr", srv.Addr).Info("Settings API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Settings server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.ErrorWithErr(err, "Settings server shutdown failed")
	}
	log.Info("Settings API stopped")
}
