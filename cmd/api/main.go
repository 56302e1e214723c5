package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/clinicasol/turnero/internal/api/router"
	"github.com/clinicasol/turnero/internal/availability"
	"github.com/clinicasol/turnero/internal/booking"
	appconfig "github.com/clinicasol/turnero/internal/config"
	"github.com/clinicasol/turnero/internal/doctors"
	"github.com/clinicasol/turnero/internal/http/handlers"
	"github.com/clinicasol/turnero/internal/notify"
	"github.com/clinicasol/turnero/internal/observability/metrics"
	"github.com/clinicasol/turnero/internal/session"
	"github.com/clinicasol/turnero/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting turnero API server", "env", cfg.Env, "port", cfg.Port)

	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	if cfg.AdminPassword == "" {
		logger.Warn("ADMIN_PASSWORD not set, admin login disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create pgx pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	// Sessions: redis-backed when configured, process memory otherwise.
	var sessions session.Manager
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		defer func() { _ = client.Close() }()
		sessions = session.NewRedisManager(client, cfg.AdminSessionTTL)
		logger.Info("admin sessions stored in redis", "addr", cfg.RedisAddr)
	} else {
		sessions = session.NewMemoryManager(cfg.AdminSessionTTL)
	}

	m := metrics.NewBookingMetrics(nil)

	var sender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		sender = sg
	} else {
		logger.Info("no email transport configured, using logging stub")
		sender = notify.NewStubEmailSender(logger)
	}
	dispatcher := notify.NewDispatcher(sender, cfg.ClinicEmail, m, logger)
	defer dispatcher.Close()

	doctorsRepo := doctors.NewRepository(pool)
	availRepo := availability.NewRepository(pool)
	ledger := booking.NewLedger(pool)
	engine := booking.NewEngine(pool, doctorsRepo, dispatcher, m, logger)

	r := router.New(&router.Config{
		Logger:              logger,
		DoctorsHandler:      doctors.NewHandler(doctorsRepo, logger),
		AvailabilityHandler: availability.NewHandler(availRepo, m, logger),
		BookingHandler:      booking.NewHandler(engine, ledger, logger),
		AdminLogin:          handlers.NewAdminLoginHandler(cfg.AdminPassword, sessions, logger),
		Sessions:            sessions,
		MetricsHandler:      promhttp.Handler(),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
