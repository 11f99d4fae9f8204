// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"gabysite/internal/i18n"
)

// Config keys
const (
	ConfigKeySiteLocale = "site_locale"
)

type seedVideo struct {
	title         string
	description   string
	thumbnail     string
	videoURL      string
	category      string
	year          int
	esTitle       string
	esDescription string
}

var seedVideos = []seedVideo{
	{
		title:         "Beautiful Memories",
		description:   "A collection of precious moments",
		thumbnail:     "media/videos/beautiful-memories.jpg",
		videoURL:      "media/videos/beautiful-memories.mp4",
		category:      "family",
		year:          2021,
		esTitle:       "Recuerdos hermosos",
		esDescription: "Una colección de momentos valiosos",
	},
	{
		title:         "Family Moments",
		description:   "Time spent together",
		thumbnail:     "media/videos/family-moments.jpg",
		videoURL:      "media/videos/family-moments.mp4",
		category:      "family",
		year:          2020,
		esTitle:       "Momentos en familia",
		esDescription: "Tiempo compartido",
	},
	{
		title:         "Celebrations",
		description:   "Moments filled with joy",
		thumbnail:     "media/videos/celebrations.jpg",
		videoURL:      "media/videos/celebrations.mp4",
		category:      "celebration",
		year:          2019,
		esTitle:       "Celebraciones",
		esDescription: "Momentos llenos de alegría",
	},
}

// Seed creates initial data: the default site locale and the starting video
// catalog with Spanish translations. Idempotent: a non-empty video table
// skips the whole seed.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	if _, err := queries.GetConfig(ctx, ConfigKeySiteLocale); err == sql.ErrNoRows {
		if err := queries.SetConfig(ctx, ConfigKeySiteLocale, string(i18n.DefaultLocale), time.Now()); err != nil {
			return fmt.Errorf("seeding site locale: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("checking site locale: %w", err)
	}

	count, err := queries.CountVideos(ctx)
	if err != nil {
		return fmt.Errorf("counting videos: %w", err)
	}
	if count > 0 {
		slog.Info("videos already present, skipping seed")
		return nil
	}

	now := time.Now()
	for i, sv := range seedVideos {
		video, err := queries.CreateVideo(ctx, CreateVideoParams{
			Title:       sv.title,
			Description: sv.description,
			Thumbnail:   sv.thumbnail,
			VideoURL:    sv.videoURL,
			Source:      "file",
			Category:    sv.category,
			Year:        sv.year,
			Position:    int64(i),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("seeding video %q: %w", sv.title, err)
		}
		_, err = queries.UpsertMediaTranslation(ctx, UpsertMediaTranslationParams{
			MediaType:   "video",
			MediaID:     video.ID,
			Locale:      string(i18n.LocaleES),
			Title:       sv.esTitle,
			Description: sv.esDescription,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("seeding translation for video %d: %w", video.ID, err)
		}
	}

	slog.Info("seeded video catalog", "count", len(seedVideos))
	return nil
}
