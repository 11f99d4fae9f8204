// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"gabysite/internal/cache"
	"gabysite/internal/catalog"
	"gabysite/internal/i18n"
	"gabysite/internal/middleware"
	"gabysite/internal/model"
	"gabysite/internal/service"
	"gabysite/internal/store"
)

type testEnv struct {
	frontend   *FrontendHandler
	wall       *WallHandler
	queries    *store.Queries
	db         *sql.DB
	siteLocale *i18n.Store
	locale     func(http.Handler) http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, i18n.Init(logger))

	f, err := os.CreateTemp(t.TempDir(), "gabysite-handler-*.db")
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

	photoOverlay := catalog.NewOverlay()
	require.NoError(t, photoOverlay.Add(catalog.OverlayRow{
		ID: 1, Locale: i18n.LocaleES, Title: "Un día especial", Alt: "Momento hermoso",
	}))
	photos := []model.Photo{
		{ID: 1, Src: "/images/p1.jpg", Alt: "Beautiful moment", Title: "A Special Day", Category: "family", Year: 2021, Month: 5},
		{ID: 2, Src: "/images/p2.jpg", Alt: "Joyful moment", Title: "Celebration", Category: "celebration", Year: 2019, Month: 12},
	}

	media := service.NewMediaService(photos, photoOverlay, queries, cacheMgr)
	require.NoError(t, media.RefreshVideoOverlays(context.Background()))

	bookFS := fstest.MapFS{
		"es.md": &fstest.MapFile{Data: []byte("# El libro\n\nDisponible el {{releaseDate}}.")},
		"en.md": &fstest.MapFile{Data: []byte("# The Book\n\nAvailable on {{releaseDate}}.")},
	}
	book := service.NewBookService(bookFS, time.Date(2026, time.August, 2, 0, 0, 0, 0, time.UTC))

	siteLocale := i18n.NewStore("es", nil, logger)
	wallSvc := service.NewWallService(queries, cacheMgr, nil)

	return &testEnv{
		frontend:   NewFrontendHandler(media, book, siteLocale, nil),
		wall:       NewWallHandler(wallSvc),
		queries:    queries,
		db:         db,
		siteLocale: siteLocale,
		locale:     middleware.Locale(siteLocale),
	}
}

// get performs a GET through the locale middleware and decodes the wrapper.
func (env *testEnv) get(t *testing.T, h http.HandlerFunc, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	env.locale(h).ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

// dataSlice extracts the response "data" array.
func dataSlice(t *testing.T, body map[string]any) []any {
	t.Helper()
	data, ok := body["data"].([]any)
	require.True(t, ok, "expected data array, got %T", body["data"])
	return data
}

// dataObject extracts the response "data" object.
func dataObject(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "expected data object, got %T", body["data"])
	return data
}
