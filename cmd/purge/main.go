// Command purge removes past-date availability slots and expired bookings.
// Intended to run from cron. An optional argument overrides the cutoff date:
//
//	purge [YYYY-MM-DD]
package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	appconfig "github.com/clinicasol/turnero/internal/config"
	"github.com/clinicasol/turnero/internal/maintenance"
	"github.com/clinicasol/turnero/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	cutoff := time.Now().Format("2006-01-02")
	if len(os.Args) >= 2 {
		cutoff = strings.TrimSpace(os.Args[1])
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create pgx pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := maintenance.NewPurger(pool, logger).Run(ctx, cutoff); err != nil {
		logger.Error("purge failed", "error", err)
		os.Exit(1)
	}
}
