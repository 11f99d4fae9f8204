// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"testing"

	"gabysite/internal/i18n"
	"gabysite/internal/model"
)

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	photos := NewOverlay()
	if err := photos.Add(OverlayRow{ID: 1, Locale: i18n.LocaleES, Title: "Atardecer", Alt: "Cielo dorado"}); err != nil {
		t.Fatal(err)
	}
	videos := NewOverlay()
	if err := videos.Add(OverlayRow{ID: 1, Locale: i18n.LocaleES, Title: "Recuerdos hermosos", Description: "Una colección de momentos valiosos"}); err != nil {
		t.Fatal(err)
	}
	return NewResolver(photos, videos)
}

func TestLocalizePhotoOverlayPrecedence(t *testing.T) {
	r := testResolver(t)
	base := model.Photo{ID: 1, Title: "Sunset", Alt: "Golden sky", Category: "Nature", Year: 2020}

	es := r.LocalizePhoto(base, i18n.LocaleES)
	if es.Title != "Atardecer" || es.Alt != "Cielo dorado" {
		t.Errorf("es overlay not applied: title=%q alt=%q", es.Title, es.Alt)
	}
	if es.CategoryKey != "nature" || es.Category != "Naturaleza" {
		t.Errorf("es category = %q/%q, want nature/Naturaleza", es.CategoryKey, es.Category)
	}

	en := r.LocalizePhoto(base, i18n.LocaleEN)
	if en.Title != "Sunset" || en.Alt != "Golden sky" {
		t.Errorf("base locale must use base text: title=%q alt=%q", en.Title, en.Alt)
	}
	if en.Category != "Nature" {
		t.Errorf("en category label = %q, want Nature", en.Category)
	}

	// Input is never mutated.
	if base.Title != "Sunset" || base.Alt != "Golden sky" {
		t.Error("LocalizePhoto mutated its input")
	}
}

func TestLocalizeFallbackTotality(t *testing.T) {
	r := testResolver(t)
	// No overlay entry exists for id 99 in either table.
	photo := model.Photo{ID: 99, Title: "Untranslated", Alt: "Plain alt", Category: "family", Year: 2019}
	video := model.Video{ID: 99, Title: "Untranslated clip", Description: "Plain description", Category: "family", Year: 2019}

	for _, loc := range i18n.SupportedLocales {
		lp := r.LocalizePhoto(photo, loc)
		if lp.Title != photo.Title || lp.Alt != photo.Alt {
			t.Errorf("photo fallback broken for %s: title=%q alt=%q", loc, lp.Title, lp.Alt)
		}
		lv := r.LocalizeVideo(video, loc)
		if lv.Title != video.Title || lv.Description != video.Description {
			t.Errorf("video fallback broken for %s: title=%q description=%q", loc, lv.Title, lv.Description)
		}
	}
}

func TestLocalizeVideoOverlay(t *testing.T) {
	r := testResolver(t)
	video := model.Video{ID: 1, Title: "Beautiful Memories", Description: "A collection of precious moments", Category: "celebration", Year: 2021}

	es := r.LocalizeVideo(video, i18n.LocaleES)
	if es.Title != "Recuerdos hermosos" {
		t.Errorf("title = %q", es.Title)
	}
	if es.Description != "Una colección de momentos valiosos" {
		t.Errorf("description = %q", es.Description)
	}
	if es.Category != "Celebración" {
		t.Errorf("category label = %q", es.Category)
	}
}

func TestOverlayTablesAreSeparate(t *testing.T) {
	r := testResolver(t)
	// Photo id 1 has a photo overlay; the same id in the video table must not
	// pick up photo text.
	video := model.Video{ID: 1, Title: "Video one", Description: "Video description", Category: "family", Year: 2020}
	es := r.LocalizeVideo(video, i18n.LocaleES)
	if es.Title == "Atardecer" {
		t.Error("video resolution leaked into the photo overlay table")
	}
}

func TestResolverConcurrentOverlaySwap(t *testing.T) {
	r := NewResolver(NewOverlay(), NewOverlay())
	photo := model.Photo{ID: 1, Title: "Sunset", Alt: "Golden sky", Category: "nature", Year: 2020}
	video := model.Video{ID: 1, Title: "Beautiful Memories", Description: "A collection", Category: "family", Year: 2021}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			photos := NewOverlay()
			if err := photos.Add(OverlayRow{ID: 1, Locale: i18n.LocaleES, Title: "Atardecer"}); err != nil {
				t.Error(err)
				return
			}
			videos := NewOverlay()
			if err := videos.Add(OverlayRow{ID: 1, Locale: i18n.LocaleES, Title: "Recuerdos hermosos"}); err != nil {
				t.Error(err)
				return
			}
			r.SetPhotoOverlay(photos)
			r.SetVideoOverlay(videos)
		}
	}()

	// Readers only ever see a fully built overlay: either the base text or
	// the complete translation, never a torn state.
	for i := 0; i < 500; i++ {
		lp := r.LocalizePhoto(photo, i18n.LocaleES)
		if lp.Title != "Sunset" && lp.Title != "Atardecer" {
			t.Fatalf("photo title = %q", lp.Title)
		}
		lv := r.LocalizeVideo(video, i18n.LocaleES)
		if lv.Title != "Beautiful Memories" && lv.Title != "Recuerdos hermosos" {
			t.Fatalf("video title = %q", lv.Title)
		}
	}
	<-done
}

func TestOverlayRejectsBaseLocale(t *testing.T) {
	o := NewOverlay()
	if err := o.Set(1, FieldTitle, i18n.BaseLocale, "English text"); err == nil {
		t.Error("expected error for base-locale override")
	}
	if err := o.Set(1, FieldTitle, i18n.Locale("fr"), "Coucher de soleil"); err == nil {
		t.Error("expected error for unsupported locale")
	}
}

func TestParseOverlays(t *testing.T) {
	data := []byte(`{
		"photos": [
			{"id": 1, "locale": "es", "title": "Un día especial", "alt": "Momento hermoso"},
			{"id": 2, "locale": "es", "title": "Tiempo en familia"}
		],
		"videos": [
			{"id": 1, "locale": "es", "title": "Recuerdos hermosos", "description": "Una colección de momentos valiosos"}
		]
	}`)

	photos, videos, err := ParseOverlays(data)
	if err != nil {
		t.Fatalf("ParseOverlays: %v", err)
	}
	if photos.Len() != 2 {
		t.Errorf("photo overlay count = %d, want 2", photos.Len())
	}
	if videos.Len() != 1 {
		t.Errorf("video overlay count = %d, want 1", videos.Len())
	}
	if got := photos.Resolve(1, FieldTitle, i18n.LocaleES, "base"); got != "Un día especial" {
		t.Errorf("Resolve = %q", got)
	}
	// Row 2 sets only the title; alt falls through to base.
	if got := photos.Resolve(2, FieldAlt, i18n.LocaleES, "base alt"); got != "base alt" {
		t.Errorf("partial row alt = %q, want base text", got)
	}

	if _, _, err := ParseOverlays([]byte(`{"photos": [{"id": 1, "locale": "en", "title": "nope"}]}`)); err == nil {
		t.Error("expected error for base-locale row")
	}
	if _, _, err := ParseOverlays([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
