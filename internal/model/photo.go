// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the application.
package model

// Photo is a gallery photo as it appears in the base catalog. All text
// fields carry the base-locale (English) values; localized renditions are
// produced by the catalog package.
type Photo struct {
	ID       int64  `json:"id"`
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Title    string `json:"title"`
	Date     string `json:"date,omitempty"`
	Category string `json:"category"`
	Year     int    `json:"year"`
	Month    int    `json:"month,omitempty"`
}

// LocalizedPhoto is a photo rendered for one locale. Title and Alt hold the
// resolved text, Category the display label for the resolved category key.
type LocalizedPhoto struct {
	ID          int64  `json:"id"`
	Src         string `json:"src"`
	Alt         string `json:"alt"`
	Title       string `json:"title"`
	Date        string `json:"date,omitempty"`
	CategoryKey string `json:"categoryKey"`
	Category    string `json:"category"`
	Year        int    `json:"year"`
	Month       int    `json:"month,omitempty"`
}
