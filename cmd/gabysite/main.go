// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"gabysite/internal/auth"
	"gabysite/internal/cache"
	"gabysite/internal/catalog"
	"gabysite/internal/config"
	"gabysite/internal/geoip"
	"gabysite/internal/handler"
	"gabysite/internal/handler/api"
	"gabysite/internal/i18n"
	"gabysite/internal/logging"
	"gabysite/internal/middleware"
	"gabysite/internal/model"
	"gabysite/internal/scheduler"
	"gabysite/internal/service"
	"gabysite/internal/session"
	"gabysite/internal/store"
	"gabysite/internal/version"
	"gabysite/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "gabysite - bilingual memorial site server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GABY_SESSION_SECRET       Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GABY_ADMIN_PASSWORD_HASH  argon2id hash of the admin password (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GABY_DB_PATH              SQLite database path (default: ./data/gabysite.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GABY_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GABY_ENV                  Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GABY_UPLOADS_DIR          Photo uploads directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GABY_REDIS_URL            Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GABY_GEOIP_DB_PATH        GeoLite2-Country.mmdb path for wall metadata (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GABY_OPENAI_API_KEY       API key for the admin translate endpoints (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GABY_BOOK_RELEASE_DATE    Book release date, YYYY-MM-DD (default: 2026-08-02)\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Handle -v/-version flag
	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Printf("gabysite %s\n", info)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Create version info from build-time injected values
	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Initialize the localization catalog
	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	// Ensure data and upload directories exist
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	queries := store.New(db)

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, queries))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Seed the default site locale and starting video catalog
	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	// Site-wide locale, persisted to the config table across restarts
	persisted, err := queries.GetConfig(ctx, store.ConfigKeySiteLocale)
	if err != nil {
		persisted = string(i18n.DefaultLocale)
	}
	siteLocale := i18n.NewStore(persisted, i18n.PersisterFunc(func(loc i18n.Locale) error {
		return queries.SetConfig(context.Background(), store.ConfigKeySiteLocale, string(loc), time.Now())
	}), logger)
	slog.Info("site locale loaded", "locale", siteLocale.Current())

	// Initialize session manager
	sessionManager := session.New(db, cfg.IsDevelopment())

	// Initialize cache manager
	cacheConfig := cache.Config{
		Type:            "memory",
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	}
	if cfg.UseRedisCache() {
		cacheConfig.Type = "redis"
	}
	cacheManager := cache.NewManager(
		cache.NewCache(cacheConfig, logger),
		time.Duration(cfg.CacheTTL)*time.Second,
		time.Duration(cfg.CacheTTL)*time.Second,
	)
	defer func() {
		if err := cacheManager.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	slog.Info("cache manager initialized", "backend", cacheConfig.Type)

	// Load the embedded photo catalog and its translation overlay
	var photos []model.Photo
	if err := json.Unmarshal(web.PhotosJSON, &photos); err != nil {
		return fmt.Errorf("parsing photo catalog: %w", err)
	}
	photoOverlay, videoOverlay, err := catalog.ParseOverlays(web.MediaTranslationsJSON)
	if err != nil {
		return fmt.Errorf("parsing media translations: %w", err)
	}
	if videoOverlay.Len() > 0 {
		slog.Warn("embedded video translations are ignored; video overlays load from the media_translations table",
			"rows", videoOverlay.Len())
	}
	slog.Info("photo catalog loaded", "photos", len(photos), "translations", photoOverlay.Len())

	mediaService := service.NewMediaService(photos, photoOverlay, queries, cacheManager)
	if err := mediaService.RefreshVideoOverlays(ctx); err != nil {
		return fmt.Errorf("loading video translations: %w", err)
	}
	if err := mediaService.RefreshPhotoOverlays(ctx); err != nil {
		return fmt.Errorf("loading photo translations: %w", err)
	}

	// GeoIP lookup for wall moderation metadata. Missing database degrades
	// gracefully: entries record an empty country.
	geo := geoip.NewLookup()
	if err := geo.Init(cfg.GeoIPDBPath); err != nil {
		slog.Warn("GeoIP lookup unavailable", "error", err)
	}
	defer func() {
		if err := geo.Close(); err != nil {
			slog.Error("error closing GeoIP database", "error", err)
		}
	}()

	// Services
	bookRelease, err := cfg.BookRelease()
	if err != nil {
		return fmt.Errorf("parsing GABY_BOOK_RELEASE_DATE: %w", err)
	}
	bookService := service.NewBookService(web.BookFS(), bookRelease)
	wallService := service.NewWallService(queries, cacheManager, geo)
	uploadService := service.NewUploadService(queries, cfg.UploadsDir)
	translateService := service.NewTranslateService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if translateService.Enabled() {
		slog.Info("machine translation enabled", "model", cfg.OpenAIModel)
	}

	tokenService := auth.NewTokenService(queries, cfg.AdminTokenTTL)
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	// Periodic maintenance jobs
	var schedGeo *geoip.Lookup
	if cfg.GeoIPEnabled() {
		schedGeo = geo
	}
	sched := scheduler.New(queries, tokenService, schedGeo, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Handlers
	frontendHandler := handler.NewFrontendHandler(mediaService, bookService, siteLocale, sessionManager)
	wallHandler := handler.NewWallHandler(wallService)
	healthHandler := handler.NewHealthHandler(db, tokenService, cfg.UploadsDir, versionInfo.Version)
	adminHandler := api.NewHandler(queries, tokenService, mediaService, uploadService, wallService,
		translateService, siteLocale, loginProtection, cfg.AdminPasswordHash, logger)

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.StripSlashes)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)

	// The admin API authenticates with bearer tokens; everything else gets
	// Fetch-metadata CSRF checks. Skip must register before the check.
	r.Use(middleware.SkipCSRF("/api/v1/admin"))
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())))

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		apiRateLimiter := middleware.NewRateLimiter(100, 200)
		r.Use(apiRateLimiter.Middleware())

		r.Get("/status", frontendHandler.Status)

		// Public gallery and locale endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.Locale(siteLocale))

			r.Get("/photos", frontendHandler.Photos)
			r.Get("/videos", frontendHandler.Videos)
			r.Get("/timeline", frontendHandler.Timeline)
			r.Get("/categories", frontendHandler.Categories)
			r.Get("/stats", frontendHandler.Stats)
			r.Get("/book", frontendHandler.Book)
			r.Get("/strings", frontendHandler.Strings)
			r.Get("/locale", frontendHandler.GetLocale)
			r.Post("/locale", frontendHandler.SetLocale)

			// Wall: posting is rate limited per client IP
			r.Get("/wall", wallHandler.List)
			r.Get("/wall/export", wallHandler.Export)
			r.Group(func(r chi.Router) {
				wallRateLimiter := middleware.NewRateLimiter(1, 5)
				r.Use(wallRateLimiter.Middleware())
				r.Post("/wall", wallHandler.Create)
			})
		})

		// Admin API (bearer token)
		r.Route("/admin", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(loginProtection.Middleware())
				r.Post("/login", adminHandler.Login)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(tokenService))

				r.Post("/logout", adminHandler.Logout)

				r.Put("/locale", adminHandler.SetSiteLocale)

				r.Get("/videos", adminHandler.ListVideos)
				r.Post("/videos", adminHandler.CreateVideo)
				r.Put("/videos/{id}", adminHandler.UpdateVideo)
				r.Delete("/videos/{id}", adminHandler.DeleteVideo)
				r.Post("/videos/{id}/translate", adminHandler.TranslateVideo)

				r.Post("/photos", adminHandler.UploadPhoto)
				r.Post("/photos/{id}/translate", adminHandler.TranslatePhoto)

				r.Delete("/wall/{id}", adminHandler.DeleteWallEntry)
			})
		})
	})
	slog.Info("REST API v1 mounted at /api/v1")

	// Serve uploaded photos. Uploads: cache for 1 week (604800 seconds).
	uploadsHandler := middleware.StaticCache(604800)(http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	r.Handle("/uploads/*", uploadsHandler)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
