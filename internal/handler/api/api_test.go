// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"gabysite/internal/auth"
	"gabysite/internal/cache"
	"gabysite/internal/catalog"
	"gabysite/internal/i18n"
	"gabysite/internal/middleware"
	"gabysite/internal/model"
	"gabysite/internal/service"
	"gabysite/internal/store"
)

const testAdminPassword = "correct-horse-battery"

type testEnv struct {
	handler    *Handler
	tokens     *auth.TokenService
	queries    *store.Queries
	media      *service.MediaService
	siteLocale *i18n.Store
	router     http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, i18n.Init(logger))

	f, err := os.CreateTemp(t.TempDir(), "gabysite-api-*.db")
	require.NoError(t, err)
	dbPath := f.Name()
	require.NoError(t, f.Close())

	db, err := store.NewDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db))
	require.NoError(t, store.Seed(context.Background(), db))
	queries := store.New(db)

	backend := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = backend.Close() })
	cacheMgr := cache.NewManager(backend, time.Minute, time.Minute)

	photos := []model.Photo{
		{ID: 1, Src: "/images/p1.jpg", Alt: "Beautiful moment", Title: "A Special Day", Category: "family", Year: 2021},
	}
	media := service.NewMediaService(photos, catalog.NewOverlay(), queries, cacheMgr)
	require.NoError(t, media.RefreshVideoOverlays(context.Background()))

	hash, err := auth.HashPassword(testAdminPassword)
	require.NoError(t, err)

	tokens := auth.NewTokenService(queries, time.Hour)
	siteLocale := i18n.NewStore("es", nil, logger)
	h := NewHandler(
		queries,
		tokens,
		media,
		service.NewUploadService(queries, t.TempDir()),
		service.NewWallService(queries, cacheMgr, nil),
		service.NewTranslateService("", "gpt-4o-mini"),
		siteLocale,
		middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig()),
		hash,
		logger,
	)

	r := chi.NewRouter()
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Put("/locale", h.SetSiteLocale)
	r.Get("/videos", h.ListVideos)
	r.Post("/videos", h.CreateVideo)
	r.Put("/videos/{id}", h.UpdateVideo)
	r.Delete("/videos/{id}", h.DeleteVideo)
	r.Post("/videos/{id}/translate", h.TranslateVideo)
	r.Post("/photos", h.UploadPhoto)
	r.Post("/photos/{id}/translate", h.TranslatePhoto)
	r.Delete("/wall/{id}", h.DeleteWallEntry)

	return &testEnv{
		handler:    h,
		tokens:     tokens,
		queries:    queries,
		media:      media,
		siteLocale: siteLocale,
		router:     r,
	}
}
