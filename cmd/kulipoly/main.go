// Package main is the entry point for the Kulipoly API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kulipoly/internal/cache"
	"kulipoly/internal/config"
	"kulipoly/internal/database"
	"kulipoly/internal/handlers"
	"kulipoly/internal/logger"
	"kulipoly/internal/mail"
	"kulipoly/internal/middleware"
	"kulipoly/internal/router"
	"kulipoly/internal/session"
	"kulipoly/internal/storage"
	"kulipoly/internal/store"
	"kulipoly/internal/translate"
)

// Per-IP budgets for the public write endpoints.
const (
	contactPerMinute   = 5
	translatePerMinute = 30
	loginPerMinute     = 10
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Text output in development, JSON elsewhere.
	slog.SetDefault(logger.New(os.Stdout, cfg.IsDev(), cfg.LogLevel))
	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Secure cookies and HSTS outside development.
	secure := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secure)

	// A new build may change response shapes, so start from a cold cache.
	responseCache := cache.NewResponseCache(valkeyClient, cfg.CacheTTL)
	responseCache.InvalidateAll(context.Background())

	blogStore := store.NewBlogStore(db)
	portfolioStore := store.NewPortfolioStore(db)
	userStore := store.NewUserStore(db)
	cacheLogStore := store.NewCacheLogStore(db)

	translator := translate.NewService(
		translate.NewClient(cfg.TranslateBaseURL, cfg.TranslateRate, cfg.TranslateTimeout),
	)

	var sender mail.Sender
	sender, err = mail.New(mail.Config{
		ResendAPIKey: cfg.ResendAPIKey,
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPUser:     cfg.SMTPUser,
		SMTPPassword: cfg.SMTPPassword,
	})
	if err != nil {
		slog.Warn("mail delivery not configured, contact form disabled", "error", err)
		sender = nil
	}

	// Object storage is optional; media uploads answer 503 without it.
	var media handlers.MediaStorage
	s3Client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
	switch {
	case err != nil:
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	case s3Client != nil:
		media = s3Client
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	default:
		slog.Warn("s3 storage not configured, media uploads disabled")
	}

	contactLimiter := middleware.NewRateLimiter(contactPerMinute, time.Minute)
	defer contactLimiter.Stop()
	translateLimiter := middleware.NewRateLimiter(translatePerMinute, time.Minute)
	defer translateLimiter.Stop()
	loginLimiter := middleware.NewRateLimiter(loginPerMinute, time.Minute)
	defer loginLimiter.Stop()

	r := router.New(router.Deps{
		Sessions:      sessionStore,
		SecureCookies: secure,

		Public:    handlers.NewPublic(blogStore, portfolioStore, translator, responseCache, cacheLogStore),
		Translate: handlers.NewTranslate(translator, blogStore, portfolioStore, responseCache, cacheLogStore),
		Contact:   handlers.NewContact(sender, cfg.ContactFrom, cfg.ContactTo, cfg.SiteURL),
		Auth:      handlers.NewAuth(sessionStore, userStore),
		Admin:     handlers.NewAdmin(blogStore, portfolioStore, responseCache, cacheLogStore, media),

		ContactLimiter:   contactLimiter,
		TranslateLimiter: translateLimiter,
		LoginLimiter:     loginLimiter,
	})

	// WriteTimeout must cover an on-demand translation of a long post.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
