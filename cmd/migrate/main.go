package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/net2mulu/signature-gym/internal/config"
	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/net2mulu/signature-gym/internal/repository/postgres"
	"github.com/net2mulu/signature-gym/internal/services"
	"github.com/net2mulu/signature-gym/migrations"
)

func main() {
	seed := flag.Bool("seed", true, "seed the membership catalog after migrating")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Connect to database
	db, err := postgres.New(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Printf("Connected to %s database\n", db.Driver())

	migrationsFS, err := migrations.GetFS(db.Driver())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load migrations: %v\n", err)
		os.Exit(1)
	}

	applied, err := postgres.RunMigrations(db, migrationsFS)
	for _, name := range applied {
		fmt.Printf("✓ Migration %s completed successfully\n", name)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}
	if len(applied) == 0 {
		fmt.Println("Database is up to date")
	}

	if *seed {
		memberships := services.NewMembershipService(postgres.NewMembershipRepository(db), cfg.Payment.Currency, nil, logger.Nop())
		if err := memberships.EnsureCatalog(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed membership catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✓ Membership catalog seeded")
	}

	fmt.Println("\nAll migrations completed successfully!")
}
