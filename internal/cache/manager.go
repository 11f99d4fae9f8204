package cache

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"gabysite/internal/catalog"
	"gabysite/internal/i18n"
	"gabysite/internal/model"
)

// Key prefixes. Media keys share a prefix so one invalidation covers photos,
// videos, and the timeline together.
const (
	mediaPrefix = "media:"
	wallPrefix  = "wall:"
)

// Manager holds the typed caches over one shared backend. Localized gallery
// views are memoized per (locale, query, category): the underlying resolve,
// filter, and aggregate functions are pure, so a cached result never goes
// stale except through data changes, which invalidate by prefix.
type Manager struct {
	backend Cacher

	Photos   *TypedCache[[]model.LocalizedPhoto]
	Videos   *TypedCache[[]model.LocalizedVideo]
	Timeline *TypedCache[[]catalog.YearGroup]
	Wall     *TypedCache[[]model.WallEntry]
}

// NewManager creates a cache manager over the given backend.
func NewManager(backend Cacher, mediaTTL, wallTTL time.Duration) *Manager {
	return &Manager{
		backend:  backend,
		Photos:   NewTypedCache[[]model.LocalizedPhoto](backend, mediaTTL),
		Videos:   NewTypedCache[[]model.LocalizedVideo](backend, mediaTTL),
		Timeline: NewTypedCache[[]catalog.YearGroup](backend, mediaTTL),
		Wall:     NewTypedCache[[]model.WallEntry](backend, wallTTL),
	}
}

// MediaKey builds the cache key for one localized, filtered media view.
// The query is escaped so user input cannot collide with key structure.
func MediaKey(kind string, loc i18n.Locale, query, categoryKey string) string {
	return mediaPrefix + kind + ":" + string(loc) +
		":q=" + url.QueryEscape(strings.ToLower(strings.TrimSpace(query))) +
		":c=" + url.QueryEscape(categoryKey)
}

// WallKey is the cache key for the wall entry list.
func WallKey() string {
	return wallPrefix + "entries"
}

// InvalidateMedia drops every cached media view. Called after admin edits to
// videos or translations.
func (m *Manager) InvalidateMedia(ctx context.Context) {
	if err := m.backend.DeleteByPrefix(ctx, mediaPrefix); err != nil {
		slog.Warn("failed to invalidate media cache", "error", err)
	}
}

// InvalidateWall drops the cached wall feed. Called after a new entry posts.
func (m *Manager) InvalidateWall(ctx context.Context) {
	if err := m.backend.DeleteByPrefix(ctx, wallPrefix); err != nil {
		slog.Warn("failed to invalidate wall cache", "error", err)
	}
}

// ClearAll clears every cache entry and resets statistics.
func (m *Manager) ClearAll(ctx context.Context) {
	if err := m.backend.Clear(ctx); err != nil {
		slog.Warn("failed to clear cache", "error", err)
	}
	if sp, ok := m.backend.(StatsProvider); ok {
		sp.ResetStats()
	}
}

// Stats returns backend statistics when the backend provides them.
func (m *Manager) Stats() (CacheStats, bool) {
	if sp, ok := m.backend.(StatsProvider); ok {
		return sp.Stats(), true
	}
	return CacheStats{}, false
}

// Close releases the backend.
func (m *Manager) Close() error {
	return m.backend.Close()
}
