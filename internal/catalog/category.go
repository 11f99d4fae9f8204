// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalog localizes the media catalog: it resolves per-locale display
// text for photos and videos through sparse translation overlays, derives
// stable category keys from free-text categories, and provides the combined
// search+category filter and timeline grouping used by every gallery surface.
package catalog

import (
	"gabysite/internal/i18n"
	"gabysite/internal/util"
)

// CategoryAll is the sentinel category key that matches every record.
const CategoryAll = "all"

// CategoryEntry pairs a stable category key with its display labels.
type CategoryEntry struct {
	Key    string                 `json:"key"`
	Labels map[i18n.Locale]string `json:"labels"`
}

// Label returns the display label for the given locale, falling back to the
// provided raw text when the entry carries no label for that locale.
func (e CategoryEntry) Label(loc i18n.Locale, fallback string) string {
	if label, ok := e.Labels[loc]; ok && label != "" {
		return label
	}
	return fallback
}

// registeredCategories is the static registry of known categories, in the
// order category pickers present them.
var registeredCategories = []CategoryEntry{
	{Key: "family", Labels: map[i18n.Locale]string{i18n.LocaleEN: "Family", i18n.LocaleES: "Familia"}},
	{Key: "celebration", Labels: map[i18n.Locale]string{i18n.LocaleEN: "Celebration", i18n.LocaleES: "Celebración"}},
	{Key: "adventure", Labels: map[i18n.Locale]string{i18n.LocaleEN: "Adventure", i18n.LocaleES: "Aventura"}},
	{Key: "friends", Labels: map[i18n.Locale]string{i18n.LocaleEN: "Friends", i18n.LocaleES: "Amigos"}},
	{Key: "nature", Labels: map[i18n.Locale]string{i18n.LocaleEN: "Nature", i18n.LocaleES: "Naturaleza"}},
	{Key: "music", Labels: map[i18n.Locale]string{i18n.LocaleEN: "Music", i18n.LocaleES: "Música"}},
	{Key: "portrait", Labels: map[i18n.Locale]string{i18n.LocaleEN: "Portrait", i18n.LocaleES: "Retrato"}},
	{Key: "quiet-moments", Labels: map[i18n.Locale]string{i18n.LocaleEN: "Quiet Moments", i18n.LocaleES: "Momentos tranquilos"}},
}

var categoryIndex = func() map[string]CategoryEntry {
	idx := make(map[string]CategoryEntry, len(registeredCategories))
	for _, e := range registeredCategories {
		idx[e.Key] = e
	}
	return idx
}()

// RegisteredCategories returns the static category registry in display order.
// The returned slice is shared; callers must not modify it.
func RegisteredCategories() []CategoryEntry {
	return registeredCategories
}

// NormalizeCategory slugifies a raw category string and resolves it against
// the registry. Unknown categories fail open: the result carries the slug as
// key and the original, untranslated input as the label in every supported
// locale. Pure and deterministic, so the same raw input always yields the
// same key regardless of casing or whitespace.
func NormalizeCategory(raw string) CategoryEntry {
	slug := util.Slugify(raw)
	if entry, ok := categoryIndex[slug]; ok {
		return entry
	}
	labels := make(map[i18n.Locale]string, len(i18n.SupportedLocales))
	for _, loc := range i18n.SupportedLocales {
		labels[loc] = raw
	}
	return CategoryEntry{Key: slug, Labels: labels}
}

// TranslateCategoryKey returns the display label for a category key in the
// given locale, falling back to the key itself for unregistered categories.
func TranslateCategoryKey(key string, loc i18n.Locale) string {
	return NormalizeCategory(key).Label(loc, key)
}
