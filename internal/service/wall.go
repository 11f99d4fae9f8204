// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mileusna/useragent"

	"gabysite/internal/cache"
	"gabysite/internal/geoip"
	"gabysite/internal/model"
	"gabysite/internal/store"
)

// Wall validation errors
var (
	ErrWallMissingFields  = errors.New("full name and message are required")
	ErrWallNameTooLong    = errors.New("full name is too long")
	ErrWallMessageTooLong = errors.New("message is too long")
)

// WallService manages guestbook entries: validation, sanitization,
// moderation metadata, and the cached public listing.
type WallService struct {
	queries   *store.Queries
	cache     *cache.Manager
	geo       *geoip.Lookup
	sanitizer *bluemonday.Policy
}

// NewWallService creates a wall service. geo may be nil when GeoIP is
// disabled.
func NewWallService(queries *store.Queries, cacheMgr *cache.Manager, geo *geoip.Lookup) *WallService {
	return &WallService{
		queries:   queries,
		cache:     cacheMgr,
		geo:       geo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Create validates, sanitizes, and stores a wall entry. ip and rawUserAgent
// feed the moderation metadata and never appear in public responses.
func (s *WallService) Create(ctx context.Context, fullName, message, ip, rawUserAgent string) (model.WallEntry, error) {
	fullName = strings.TrimSpace(s.sanitizer.Sanitize(fullName))
	message = strings.TrimSpace(s.sanitizer.Sanitize(message))

	if fullName == "" || message == "" {
		return model.WallEntry{}, ErrWallMissingFields
	}
	if len(fullName) > model.MaxWallNameLength {
		return model.WallEntry{}, ErrWallNameTooLong
	}
	if len(message) > model.MaxWallMessageLength {
		return model.WallEntry{}, ErrWallMessageTooLong
	}

	country := ""
	if s.geo != nil {
		country = s.geo.LookupCountry(ip)
	}

	uaFamily := ""
	if rawUserAgent != "" {
		ua := useragent.Parse(rawUserAgent)
		uaFamily = strings.TrimSpace(ua.Name + " " + ua.OS)
	}

	entry, err := s.queries.CreateWallEntry(ctx, store.CreateWallEntryParams{
		ID:        uuid.New().String(),
		FullName:  fullName,
		Message:   message,
		Country:   country,
		UserAgent: uaFamily,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return model.WallEntry{}, err
	}

	s.cache.InvalidateWall(ctx)
	return entry, nil
}

// List returns all wall entries, newest first. The result is cached until
// the next Create.
func (s *WallService) List(ctx context.Context) ([]model.WallEntry, error) {
	result, err := s.cache.Wall.GetOrSet(ctx, cache.WallKey(), func() (*[]model.WallEntry, error) {
		entries, err := s.queries.ListWallEntries(ctx)
		if err != nil {
			return nil, err
		}
		return &entries, nil
	})
	if err != nil {
		return nil, err
	}
	return *result, nil
}

// Count returns the number of wall entries.
func (s *WallService) Count(ctx context.Context) (int64, error) {
	return s.queries.CountWallEntries(ctx)
}

// Delete removes a wall entry (admin moderation).
func (s *WallService) Delete(ctx context.Context, id string) error {
	if err := s.queries.DeleteWallEntry(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateWall(ctx)
	return nil
}
