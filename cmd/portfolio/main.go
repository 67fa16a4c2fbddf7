// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the portfolio API server.
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

	"portfolio/internal/auth"
	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/handlers"
	"portfolio/internal/middleware"
	"portfolio/internal/router"
	"portfolio/internal/seed"
	"portfolio/internal/storage"
	"portfolio/internal/store"
	"portfolio/internal/store/filestore"
)

func main() {
	// Load configuration from .env and environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON elsewhere.
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"store", cfg.StoreBackend,
	)

	ctx := context.Background()

	repos, ping, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Seed the admin user, plus sample content when enabled (no-op if data exists).
	if err := seed.Run(ctx, repos, seed.Options{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		Content:       cfg.SeedContent,
	}); err != nil {
		slog.Error("failed to seed store", "error", err)
		os.Exit(1)
	}

	// Public response cache: Valkey when configured, in-process otherwise.
	var responses cache.Store
	if cfg.UseValkey() {
		valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyAddr(), cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		responses = cache.NewValkeyStore(valkeyClient, cfg.CacheTTL)
		slog.Info("valkey cache connected", "addr", cfg.ValkeyAddr())
	} else {
		responses = cache.NewMemoryStore(cfg.CacheTTL)
		slog.Info("using in-process response cache")
	}

	// Upload storage: S3-compatible bucket when configured, local disk otherwise.
	var files storage.Storage
	uploadsDir := ""
	if cfg.UseS3() {
		files, err = storage.NewS3(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage configured", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		files, err = storage.NewLocal(cfg.UploadsDir, "/uploads")
		if err != nil {
			slog.Error("failed to initialize local upload storage", "error", err)
			os.Exit(1)
		}
		uploadsDir = cfg.UploadsDir
		slog.Warn("s3 storage not configured, uploads are stored on local disk", "dir", cfg.UploadsDir)
	}

	tokens := auth.NewService(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, time.Minute)
	defer loginLimiter.Stop()

	// Set up the Chi router with all middleware and routes.
	r := router.New(router.Deps{
		Tokens:       tokens,
		Auth:         handlers.NewAuth(repos.Users, tokens),
		Public:       handlers.NewPublic(repos, responses),
		Admin:        handlers.NewAdmin(repos, responses),
		Uploads:      handlers.NewUploads(files),
		Health:       handlers.NewHealth(cfg.StoreBackend, ping),
		LoginLimiter: loginLimiter,
		CORSOrigins:  cfg.CORSOrigins,
		TrustProxy:   cfg.TrustProxy,
		UploadsDir:   uploadsDir,
	})

	// Create the HTTP server with sensible timeouts. ReadTimeout leaves room
	// for 10 MB uploads on slow links.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// openStore opens the configured backend. ping feeds the health check and
// is nil for the file backend.
func openStore(ctx context.Context, cfg *config.Config) (store.Repositories, func(context.Context) error, func(), error) {
	if cfg.StoreBackend == config.BackendFile {
		fs, err := filestore.Open(cfg.DataFile)
		if err != nil {
			return store.Repositories{}, nil, nil, err
		}
		slog.Info("file store opened", "path", fs.Path())
		return fs.Repositories(), nil, func() {}, nil
	}

	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		return store.Repositories{}, nil, nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return store.Repositories{}, nil, nil, err
	}
	return store.NewPostgres(db), db.PingContext, func() { db.Close() }, nil
}
