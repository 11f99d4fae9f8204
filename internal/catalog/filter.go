// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"strings"

	"gabysite/internal/model"
)

// Matches reports whether a record with the given localized text fields and
// normalized category key satisfies the combined predicate: an empty query
// or a case-insensitive substring match against any field, AND a category
// key equal to the selection or the "all" sentinel. Search runs over the
// currently localized strings, so results change with the locale.
func Matches(query, selectedKey, categoryKey string, fields ...string) bool {
	if selectedKey != "" && selectedKey != CategoryAll && selectedKey != categoryKey {
		return false
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// filterRecords keeps the records satisfying Matches, preserving input order.
func filterRecords[T any](records []T, query, selectedKey string, fields func(T) (key string, texts []string)) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		key, texts := fields(rec)
		if Matches(query, selectedKey, key, texts...) {
			out = append(out, rec)
		}
	}
	return out
}

// FilterPhotos applies the search+category predicate over localized photos.
// Filtering is stable: the input collection's relative order is preserved.
func FilterPhotos(photos []model.LocalizedPhoto, query, categoryKey string) []model.LocalizedPhoto {
	return filterRecords(photos, query, categoryKey, func(p model.LocalizedPhoto) (string, []string) {
		return p.CategoryKey, []string{p.Title, p.Alt}
	})
}

// FilterVideos applies the search+category predicate over localized videos.
func FilterVideos(videos []model.LocalizedVideo, query, categoryKey string) []model.LocalizedVideo {
	return filterRecords(videos, query, categoryKey, func(v model.LocalizedVideo) (string, []string) {
		return v.CategoryKey, []string{v.Title, v.Description}
	})
}

// FilterTimeline applies the search+category predicate over timeline items.
func FilterTimeline(items []TimelineItem, query, categoryKey string) []TimelineItem {
	return filterRecords(items, query, categoryKey, func(it TimelineItem) (string, []string) {
		return it.CategoryKey, []string{it.Title, it.Description}
	})
}
