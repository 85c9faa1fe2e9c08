// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the catalog admin server.
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

	"tattiadmin/internal/cache"
	"tattiadmin/internal/config"
	"tattiadmin/internal/database"
	"tattiadmin/internal/handlers"
	"tattiadmin/internal/imaging"
	"tattiadmin/internal/router"
	"tattiadmin/internal/storage"
	"tattiadmin/internal/store"
	"tattiadmin/internal/upload"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"admins", len(cfg.AdminIDs),
	)
	if cfg.TelegramBotToken == "" {
		slog.Warn("no bot token configured — init data signatures are not verified")
	}

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if documents already exist).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (optional — documents are served from Postgres
	// either way, just without the read cache).
	var docCache *cache.DocumentCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable — document cache disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		docCache = cache.NewDocumentCache(valkeyClient, cache.DefaultDocumentTTL)
	}

	// Initialize libvips for WebP conversion.
	imaging.Startup(0)
	defer imaging.Shutdown()

	// Document store.
	docs := store.NewDocumentStore(db)

	// Connect to S3-compatible object storage (optional).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	}

	// Upload backends, in preference order: object storage, then imgbb.
	uploads := upload.NewChain(
		upload.NewS3Strategy(storageClient),
		upload.NewImgbbStrategy(cfg.ImgbbKey),
	)
	if !uploads.Available() {
		slog.Warn("no upload backend configured — image uploads disabled")
	}

	// Create the handler group and the router.
	admin := handlers.NewAdmin(docs, docCache, uploads)
	r := router.New(admin, cfg.TelegramBotToken, cfg.AdminIDs)

	// Create the HTTP server with sensible timeouts. WriteTimeout must
	// accommodate image conversion plus a slow upload backend.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
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
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
