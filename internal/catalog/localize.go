// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"gabysite/internal/i18n"
	"gabysite/internal/model"
	"gabysite/internal/util"
)

// Translatable fields
const (
	FieldTitle       = "title"
	FieldAlt         = "alt"
	FieldDescription = "description"
)

// OverlayRow is one translation record: a partial, per-locale override of a
// media record's text fields. Rows arrive from the embedded photo
// translations file and from the media_translations table.
type OverlayRow struct {
	ID          int64       `json:"id"`
	Locale      i18n.Locale `json:"locale"`
	Title       string      `json:"title,omitempty"`
	Alt         string      `json:"alt,omitempty"`
	Description string      `json:"description,omitempty"`
}

// Overlay is a sparse per-locale text override table keyed by record id.
// A missing id, field, or locale means "use the base record's text".
type Overlay struct {
	entries map[int64]map[string]map[i18n.Locale]string
}

// NewOverlay creates an empty overlay table.
func NewOverlay() *Overlay {
	return &Overlay{entries: make(map[int64]map[string]map[i18n.Locale]string)}
}

// Set records an override for one field of one record in one locale.
// The base locale is rejected: base-language text lives on the record itself.
func (o *Overlay) Set(id int64, field string, loc i18n.Locale, text string) error {
	if loc == i18n.BaseLocale {
		return fmt.Errorf("overlay must not override the base locale %q (id %d, field %s)", loc, id, field)
	}
	if !i18n.IsSupported(string(loc)) {
		return fmt.Errorf("unsupported overlay locale %q (id %d, field %s)", loc, id, field)
	}
	fields, ok := o.entries[id]
	if !ok {
		fields = make(map[string]map[i18n.Locale]string)
		o.entries[id] = fields
	}
	locales, ok := fields[field]
	if !ok {
		locales = make(map[i18n.Locale]string)
		fields[field] = locales
	}
	locales[loc] = text
	return nil
}

// Add records all non-empty fields of a translation row.
func (o *Overlay) Add(row OverlayRow) error {
	for field, text := range map[string]string{
		FieldTitle:       row.Title,
		FieldAlt:         row.Alt,
		FieldDescription: row.Description,
	} {
		if text == "" {
			continue
		}
		if err := o.Set(row.ID, field, row.Locale, text); err != nil {
			return err
		}
	}
	return nil
}

// Resolve returns the display text for one field of one record. Precedence
// is explicit: overlay[id][field][locale] when present, the base text
// otherwise. Untranslated records therefore render in the base language.
func (o *Overlay) Resolve(id int64, field string, loc i18n.Locale, base string) string {
	if o == nil {
		return base
	}
	if fields, ok := o.entries[id]; ok {
		if locales, ok := fields[field]; ok {
			if text, ok := locales[loc]; ok {
				return text
			}
		}
	}
	return base
}

// Clone returns a deep copy of the overlay. Used when layering database
// translation rows over the embedded base table.
func (o *Overlay) Clone() *Overlay {
	out := NewOverlay()
	if o == nil {
		return out
	}
	for id, fields := range o.entries {
		outFields := make(map[string]map[i18n.Locale]string, len(fields))
		for field, locales := range fields {
			outLocales := make(map[i18n.Locale]string, len(locales))
			for loc, text := range locales {
				outLocales[loc] = text
			}
			outFields[field] = outLocales
		}
		out.entries[id] = outFields
	}
	return out
}

// Len returns the number of records with at least one override.
func (o *Overlay) Len() int {
	if o == nil {
		return 0
	}
	return len(o.entries)
}

// overlayFile is the on-disk shape of the embedded media translations file.
type overlayFile struct {
	Photos []OverlayRow `json:"photos"`
	Videos []OverlayRow `json:"videos"`
}

// ParseOverlays loads photo and video overlay tables from the embedded media
// translations file, validating every row.
func ParseOverlays(data []byte) (photos, videos *Overlay, err error) {
	var file overlayFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse media translations: %w", err)
	}
	photos = NewOverlay()
	for _, row := range file.Photos {
		if err := photos.Add(row); err != nil {
			return nil, nil, fmt.Errorf("photo translations: %w", err)
		}
	}
	videos = NewOverlay()
	for _, row := range file.Videos {
		if err := videos.Add(row); err != nil {
			return nil, nil, fmt.Errorf("video translations: %w", err)
		}
	}
	return photos, videos, nil
}

// Resolver produces locale-resolved views of media records. Photos and
// videos carry separate overlay tables. Overlay swaps happen at request time
// from the admin handlers while public requests localize concurrently, so the
// tables are held behind atomic pointers: a published overlay is immutable,
// and Set*Overlay publishes a fully built replacement.
type Resolver struct {
	photos atomic.Pointer[Overlay]
	videos atomic.Pointer[Overlay]
}

// NewResolver creates a resolver over the given overlay tables. Nil overlays
// are valid and resolve everything to base text.
func NewResolver(photos, videos *Overlay) *Resolver {
	r := &Resolver{}
	r.photos.Store(photos)
	r.videos.Store(videos)
	return r
}

// SetVideoOverlay swaps the video overlay table. Called after admin edits to
// video translations. The overlay must not be mutated after this call.
func (r *Resolver) SetVideoOverlay(videos *Overlay) {
	r.videos.Store(videos)
}

// SetPhotoOverlay swaps the photo overlay table. The overlay must not be
// mutated after this call.
func (r *Resolver) SetPhotoOverlay(photos *Overlay) {
	r.photos.Store(photos)
}

// LocalizePhoto returns a fresh localized view of a photo for one locale.
// The input is never mutated.
func (r *Resolver) LocalizePhoto(p model.Photo, loc i18n.Locale) model.LocalizedPhoto {
	overlay := r.photos.Load()
	entry := NormalizeCategory(p.Category)
	return model.LocalizedPhoto{
		ID:          p.ID,
		Src:         p.Src,
		Alt:         overlay.Resolve(p.ID, FieldAlt, loc, p.Alt),
		Title:       overlay.Resolve(p.ID, FieldTitle, loc, p.Title),
		Date:        p.Date,
		CategoryKey: entry.Key,
		Category:    entry.Label(loc, p.Category),
		Year:        p.Year,
		Month:       p.Month,
	}
}

// LocalizePhotos localizes a photo collection, preserving order.
func (r *Resolver) LocalizePhotos(photos []model.Photo, loc i18n.Locale) []model.LocalizedPhoto {
	out := make([]model.LocalizedPhoto, len(photos))
	for i, p := range photos {
		out[i] = r.LocalizePhoto(p, loc)
	}
	return out
}

// LocalizeVideo returns a fresh localized view of a video for one locale.
func (r *Resolver) LocalizeVideo(v model.Video, loc i18n.Locale) model.LocalizedVideo {
	overlay := r.videos.Load()
	entry := NormalizeCategory(v.Category)
	return model.LocalizedVideo{
		ID:          v.ID,
		Title:       overlay.Resolve(v.ID, FieldTitle, loc, v.Title),
		Description: overlay.Resolve(v.ID, FieldDescription, loc, v.Description),
		Thumbnail:   v.Thumbnail,
		VideoURL:    v.VideoURL,
		Source:      v.Source,
		YouTubeID:   util.StringFromNull(v.YouTubeID, ""),
		Date:        v.Date,
		CategoryKey: entry.Key,
		Category:    entry.Label(loc, v.Category),
		Year:        v.Year,
		Month:       v.Month,
	}
}

// LocalizeVideos localizes a video collection, preserving order.
func (r *Resolver) LocalizeVideos(videos []model.Video, loc i18n.Locale) []model.LocalizedVideo {
	out := make([]model.LocalizedVideo, len(videos))
	for i, v := range videos {
		out[i] = r.LocalizeVideo(v, loc)
	}
	return out
}
