// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"gabysite/internal/auth"
	"gabysite/internal/store"
)

func testScheduler(t *testing.T) (*Scheduler, *store.Queries) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "gabysite-scheduler-*.db")
	if err != nil {
		t.Fatalf("creating temp db: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrating db: %v", err)
	}

	queries := store.New(db)
	tokens := auth.NewTokenService(queries, time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(queries, tokens, nil, logger), queries
}

func TestStartAndStop(t *testing.T) {
	s, _ := testScheduler(t)

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if got := len(s.cron.Entries()); got != 2 {
		t.Errorf("expected 2 jobs without GeoIP, got %d", got)
	}
	s.Stop()
}

func TestPruneTokens(t *testing.T) {
	s, queries := testScheduler(t)
	ctx := context.Background()

	// An already-expired token.
	now := time.Now()
	_, err := queries.CreateAdminToken(ctx, store.CreateAdminTokenParams{
		TokenHash:  "stale-hash",
		TokenHint:  "stale",
		LastUsedAt: now.Add(-48 * time.Hour),
		ExpiresAt:  now.Add(-24 * time.Hour),
		CreatedAt:  now.Add(-48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("creating token: %v", err)
	}

	if err := s.pruneTokens(); err != nil {
		t.Fatalf("pruneTokens() error: %v", err)
	}

	if _, err := queries.GetAdminTokenByHash(ctx, "stale-hash"); err == nil {
		t.Error("expected expired token to be pruned")
	}
}

func TestTrimEvents(t *testing.T) {
	s, queries := testScheduler(t)
	ctx := context.Background()

	old := time.Now().Add(-120 * 24 * time.Hour)
	if err := queries.CreateEvent(ctx, store.CreateEventParams{
		Level: "info", Category: "test", Message: "old event", CreatedAt: old,
	}); err != nil {
		t.Fatalf("creating event: %v", err)
	}
	if err := queries.CreateEvent(ctx, store.CreateEventParams{
		Level: "info", Category: "test", Message: "recent event", CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("creating event: %v", err)
	}

	if err := s.trimEvents(); err != nil {
		t.Fatalf("trimEvents() error: %v", err)
	}

	events, err := queries.ListEvents(ctx, store.ListEventsParams{Limit: 10})
	if err != nil {
		t.Fatalf("listing events: %v", err)
	}
	for _, e := range events {
		if e.Message == "old event" {
			t.Error("expected old event to be trimmed")
		}
	}
}
