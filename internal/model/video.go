// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Video sources
const (
	VideoSourceFile    = "file"
	VideoSourceYouTube = "youtube"
)

// Video is a gallery video row. Text fields carry base-locale (English)
// values; Spanish renditions come from the media translation overlays.
type Video struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Thumbnail   string         `json:"thumbnail"`
	VideoURL    string         `json:"videoUrl"`
	Source      string         `json:"source"`
	YouTubeID   sql.NullString `json:"-"`
	Date        string         `json:"date,omitempty"`
	Category    string         `json:"category"`
	Year        int            `json:"year"`
	Month       int            `json:"month,omitempty"`
	Position    int64          `json:"-"`
	CreatedAt   time.Time      `json:"-"`
	UpdatedAt   time.Time      `json:"-"`
}

// LocalizedVideo is a video rendered for one locale.
type LocalizedVideo struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	VideoURL    string `json:"videoUrl"`
	Source      string `json:"source"`
	YouTubeID   string `json:"youtubeId,omitempty"`
	Date        string `json:"date,omitempty"`
	CategoryKey string `json:"categoryKey"`
	Category    string `json:"category"`
	Year        int    `json:"year"`
	Month       int    `json:"month,omitempty"`
}
