// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package web

import (
	"encoding/json"
	"io/fs"
	"testing"

	"gabysite/internal/catalog"
	"gabysite/internal/model"
)

func TestPhotosJSON(t *testing.T) {
	var photos []model.Photo
	if err := json.Unmarshal(PhotosJSON, &photos); err != nil {
		t.Fatalf("parsing photos.json: %v", err)
	}
	if len(photos) == 0 {
		t.Fatal("photos.json is empty")
	}

	seen := make(map[int64]bool)
	for _, p := range photos {
		if seen[p.ID] {
			t.Errorf("duplicate photo id %d", p.ID)
		}
		seen[p.ID] = true
		if p.Title == "" || p.Src == "" || p.Category == "" || p.Year == 0 {
			t.Errorf("photo %d is missing required fields", p.ID)
		}
	}
}

func TestMediaTranslationsJSON(t *testing.T) {
	photos, videos, err := catalog.ParseOverlays(MediaTranslationsJSON)
	if err != nil {
		t.Fatalf("parsing media_translations.json: %v", err)
	}
	if photos.Len() == 0 {
		t.Fatal("photo overlay is empty")
	}
	if videos.Len() != 0 {
		t.Error("video overlay should be empty; video translations live in the database")
	}

	// Every catalog photo resolves to a usable Spanish title.
	var catalogPhotos []model.Photo
	if err := json.Unmarshal(PhotosJSON, &catalogPhotos); err != nil {
		t.Fatalf("parsing photos.json: %v", err)
	}
	for _, p := range catalogPhotos {
		if got := photos.Resolve(p.ID, catalog.FieldTitle, "es", p.Title); got == "" {
			t.Errorf("photo %d resolves to empty title", p.ID)
		}
	}
}

func TestBookFS(t *testing.T) {
	for _, name := range []string{"es.md", "en.md"} {
		data, err := fs.ReadFile(BookFS(), name)
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}
