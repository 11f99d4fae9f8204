// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic maintenance jobs: expired-token
// pruning, event log retention, and GeoIP database reloads.
package scheduler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"gabysite/internal/auth"
	"gabysite/internal/geoip"
	"gabysite/internal/store"
)

// DefaultEventRetention is how long event log rows are kept.
const DefaultEventRetention = 90 * 24 * time.Hour

// Scheduler handles periodic maintenance tasks.
type Scheduler struct {
	queries        *store.Queries
	tokens         *auth.TokenService
	geo            *geoip.Lookup
	eventRetention time.Duration
	cron           *cron.Cron
	logger         *slog.Logger
}

// New creates a scheduler. geo may be nil when GeoIP is disabled.
func New(queries *store.Queries, tokens *auth.TokenService, geo *geoip.Lookup, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		queries:        queries,
		tokens:         tokens,
		geo:            geo,
		eventRetention: DefaultEventRetention,
		cron:           cron.New(),
		logger:         logger,
	}
}

// Start registers the maintenance jobs and begins the cron loop.
func (s *Scheduler) Start() error {
	// Hourly: drop expired admin tokens.
	if _, err := s.cron.AddFunc("0 * * * *", func() {
		if err := s.pruneTokens(); err != nil {
			s.logger.Error("failed to prune expired tokens", "error", err)
		}
	}); err != nil {
		return err
	}

	// Nightly: trim the event log to the retention window.
	if _, err := s.cron.AddFunc("30 3 * * *", func() {
		if err := s.trimEvents(); err != nil {
			s.logger.Error("failed to trim event log", "error", err)
		}
	}); err != nil {
		return err
	}

	// Nightly: pick up a refreshed GeoIP database if one was installed.
	if s.geo != nil {
		if _, err := s.cron.AddFunc("0 4 * * *", func() {
			if err := s.geo.Reload(); err != nil {
				s.logger.Error("failed to reload GeoIP database", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// pruneTokens removes expired admin tokens.
func (s *Scheduler) pruneTokens() error {
	ctx := context.Background()

	pruned, err := s.tokens.PruneExpired(ctx)
	if err != nil {
		return err
	}
	if pruned == 0 {
		return nil
	}

	s.logger.Info("pruned expired admin tokens", "count", pruned)
	return nil
}

// trimEvents deletes event log rows older than the retention window and
// records the trim itself as an event.
func (s *Scheduler) trimEvents() error {
	ctx := context.Background()
	now := time.Now()
	cutoff := now.Add(-s.eventRetention)

	deleted, err := s.queries.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return nil
	}

	s.logger.Info("trimmed event log", "deleted", deleted, "cutoff", cutoff)

	metadata, _ := json.Marshal(map[string]any{
		"deleted": deleted,
		"cutoff":  cutoff.Format(time.RFC3339),
	})
	err = s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     "info",
		Category:  "scheduler",
		Message:   "Event log trimmed by retention job",
		Metadata:  string(metadata),
		CreatedAt: now,
	})
	if err != nil {
		s.logger.Warn("failed to log retention event", "error", err)
	}

	return nil
}
