// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the business logic between the HTTP handlers and
// the catalog, store, and cache layers.
package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"gabysite/internal/cache"
	"gabysite/internal/catalog"
	"gabysite/internal/i18n"
	"gabysite/internal/model"
	"gabysite/internal/store"
)

// CategoryOption is one entry in the category selector sent to the SPA.
type CategoryOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Stats are the hero counters on the landing page.
type Stats struct {
	Photos      int64 `json:"photos"`
	Videos      int64 `json:"videos"`
	WallEntries int64 `json:"wallEntries"`
}

// MediaService assembles localized, filtered media collections. Photos come
// from the embedded catalog (extended at runtime by admin uploads), videos
// from the database. Results are memoized per (locale, query, category).
type MediaService struct {
	queries      *store.Queries
	resolver     *catalog.Resolver
	photoOverlay *catalog.Overlay // embedded base; DB rows layer on top
	cache        *cache.Manager

	mu     sync.RWMutex
	photos []model.Photo
}

// NewMediaService creates a media service over the given photo catalog and
// embedded photo translation overlay. Video overlays are loaded from the
// database via RefreshVideoOverlays.
func NewMediaService(photos []model.Photo, photoOverlay *catalog.Overlay, queries *store.Queries, cacheMgr *cache.Manager) *MediaService {
	if photoOverlay == nil {
		photoOverlay = catalog.NewOverlay()
	}
	return &MediaService{
		queries:      queries,
		resolver:     catalog.NewResolver(photoOverlay, catalog.NewOverlay()),
		photoOverlay: photoOverlay,
		cache:        cacheMgr,
		photos:       photos,
	}
}

// basePhotos returns a snapshot of the photo catalog.
func (s *MediaService) basePhotos() []model.Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Photo, len(s.photos))
	copy(out, s.photos)
	return out
}

// AppendPhoto adds an uploaded photo to the catalog and returns it with its
// assigned id. Media caches are invalidated so the next request sees it.
func (s *MediaService) AppendPhoto(ctx context.Context, p model.Photo) model.Photo {
	s.mu.Lock()
	var maxID int64
	for _, existing := range s.photos {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	p.ID = maxID + 1
	s.photos = append(s.photos, p)
	s.mu.Unlock()

	s.cache.InvalidateMedia(ctx)
	return p
}

// Photos returns the localized photo collection filtered by query and
// category key.
func (s *MediaService) Photos(ctx context.Context, loc i18n.Locale, query, categoryKey string) ([]model.LocalizedPhoto, error) {
	key := cache.MediaKey("photos", loc, query, categoryKey)
	result, err := s.cache.Photos.GetOrSet(ctx, key, func() (*[]model.LocalizedPhoto, error) {
		localized := s.resolver.LocalizePhotos(s.basePhotos(), loc)
		filtered := catalog.FilterPhotos(localized, query, categoryKey)
		return &filtered, nil
	})
	if err != nil {
		return nil, err
	}
	return *result, nil
}

// Videos returns the localized video collection filtered by query and
// category key.
func (s *MediaService) Videos(ctx context.Context, loc i18n.Locale, query, categoryKey string) ([]model.LocalizedVideo, error) {
	key := cache.MediaKey("videos", loc, query, categoryKey)
	result, err := s.cache.Videos.GetOrSet(ctx, key, func() (*[]model.LocalizedVideo, error) {
		videos, err := s.queries.ListVideos(ctx)
		if err != nil {
			return nil, err
		}
		localized := s.resolver.LocalizeVideos(videos, loc)
		filtered := catalog.FilterVideos(localized, query, categoryKey)
		return &filtered, nil
	})
	if err != nil {
		return nil, err
	}
	return *result, nil
}

// Timeline returns the merged photo+video timeline grouped by year,
// newest first.
func (s *MediaService) Timeline(ctx context.Context, loc i18n.Locale, query, categoryKey string) ([]catalog.YearGroup, error) {
	key := cache.MediaKey("timeline", loc, query, categoryKey)
	result, err := s.cache.Timeline.GetOrSet(ctx, key, func() (*[]catalog.YearGroup, error) {
		videos, err := s.queries.ListVideos(ctx)
		if err != nil {
			return nil, err
		}
		photos := s.resolver.LocalizePhotos(s.basePhotos(), loc)
		localizedVideos := s.resolver.LocalizeVideos(videos, loc)
		groups := catalog.Aggregate(photos, localizedVideos, query, categoryKey)
		return &groups, nil
	})
	if err != nil {
		return nil, err
	}
	return *result, nil
}

// Categories returns the category selector options for a locale: the "all"
// sentinel, the registered categories in registry order, then any extra
// categories found in the data, alphabetically.
func (s *MediaService) Categories(ctx context.Context, loc i18n.Locale) ([]CategoryOption, error) {
	options := []CategoryOption{
		{Key: catalog.CategoryAll, Label: i18n.T(loc, "filters.all")},
	}

	registered := make(map[string]bool)
	for _, entry := range catalog.RegisteredCategories() {
		registered[entry.Key] = true
		options = append(options, CategoryOption{
			Key:   entry.Key,
			Label: entry.Label(loc, entry.Key),
		})
	}

	// Synthesize entries for categories that appear in the data but are
	// not in the registry.
	videos, err := s.queries.ListVideos(ctx)
	if err != nil {
		return nil, err
	}
	extra := make(map[string]string)
	for _, p := range s.basePhotos() {
		entry := catalog.NormalizeCategory(p.Category)
		if !registered[entry.Key] {
			extra[entry.Key] = entry.Label(loc, p.Category)
		}
	}
	for _, v := range videos {
		entry := catalog.NormalizeCategory(v.Category)
		if !registered[entry.Key] {
			extra[entry.Key] = entry.Label(loc, v.Category)
		}
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		options = append(options, CategoryOption{Key: k, Label: extra[k]})
	}

	return options, nil
}

// Stats returns the landing page counters.
func (s *MediaService) Stats(ctx context.Context) (Stats, error) {
	videos, err := s.queries.CountVideos(ctx)
	if err != nil {
		return Stats{}, err
	}
	wall, err := s.queries.CountWallEntries(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Photos:      int64(len(s.basePhotos())),
		Videos:      videos,
		WallEntries: wall,
	}, nil
}

// RefreshVideoOverlays reloads the video translation overlay from the
// media_translations table and drops memoized media responses. Called at
// startup and after the admin edits translations.
func (s *MediaService) RefreshVideoOverlays(ctx context.Context) error {
	rows, err := s.queries.ListMediaTranslations(ctx, "video")
	if err != nil {
		return err
	}

	overlay := catalog.NewOverlay()
	for _, row := range rows {
		err := overlay.Add(catalog.OverlayRow{
			ID:          row.MediaID,
			Locale:      i18n.Locale(row.Locale),
			Title:       row.Title,
			Alt:         row.Alt,
			Description: row.Description,
		})
		if err != nil {
			slog.Warn("skipping invalid video translation row",
				"category", "media", "media_id", row.MediaID, "locale", row.Locale, "error", err)
		}
	}

	s.resolver.SetVideoOverlay(overlay)
	s.cache.InvalidateMedia(ctx)
	return nil
}

// RefreshPhotoOverlays layers the photo rows of the media_translations table
// over the embedded photo overlay and drops memoized media responses.
func (s *MediaService) RefreshPhotoOverlays(ctx context.Context) error {
	rows, err := s.queries.ListMediaTranslations(ctx, "photo")
	if err != nil {
		return err
	}

	overlay := s.photoOverlay.Clone()
	for _, row := range rows {
		err := overlay.Add(catalog.OverlayRow{
			ID:          row.MediaID,
			Locale:      i18n.Locale(row.Locale),
			Title:       row.Title,
			Alt:         row.Alt,
			Description: row.Description,
		})
		if err != nil {
			slog.Warn("skipping invalid photo translation row",
				"category", "media", "media_id", row.MediaID, "locale", row.Locale, "error", err)
		}
	}

	s.resolver.SetPhotoOverlay(overlay)
	s.cache.InvalidateMedia(ctx)
	return nil
}

// PhotoByID returns a photo from the catalog by id.
func (s *MediaService) PhotoByID(id int64) (model.Photo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.photos {
		if p.ID == id {
			return p, true
		}
	}
	return model.Photo{}, false
}

// InvalidateCache drops all memoized media responses.
func (s *MediaService) InvalidateCache(ctx context.Context) {
	s.cache.InvalidateMedia(ctx)
}
