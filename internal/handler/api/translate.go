// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"gabysite/internal/handler"
	"gabysite/internal/i18n"
	"gabysite/internal/service"
	"gabysite/internal/store"
)

// TranslateResponse carries the machine-translated Spanish text written to
// the translation overlay.
type TranslateResponse struct {
	MediaType string            `json:"mediaType"`
	MediaID   int64             `json:"mediaId"`
	Locale    i18n.Locale       `json:"locale"`
	Text      service.MediaText `json:"text"`
}

// TranslateVideo handles POST /api/v1/admin/videos/{id}/translate. The base
// English title and description are machine-translated to Spanish and stored
// as an overlay row.
func (h *Handler) TranslateVideo(w http.ResponseWriter, r *http.Request) {
	if !h.translate.Enabled() {
		handler.WriteError(w, http.StatusServiceUnavailable, "translation_disabled",
			"Machine translation is not configured", nil)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handler.WriteBadRequest(w, "Invalid video ID", nil)
		return
	}

	video, err := h.queries.GetVideoByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			handler.WriteNotFound(w, "Video not found")
			return
		}
		h.logger.Error("get video failed", "id", id, "error", err)
		handler.WriteInternalError(w, "Failed to load video")
		return
	}

	translated, err := h.translate.TranslateToSpanish(r.Context(), service.MediaText{
		Title:       video.Title,
		Description: video.Description,
	})
	if err != nil {
		h.logger.Error("video translation failed", "id", id, "error", err)
		handler.WriteError(w, http.StatusBadGateway, "translation_failed",
			"Translation request failed", nil)
		return
	}

	now := time.Now()
	_, err = h.queries.UpsertMediaTranslation(r.Context(), store.UpsertMediaTranslationParams{
		MediaType:   "video",
		MediaID:     id,
		Locale:      string(i18n.LocaleES),
		Title:       translated.Title,
		Description: translated.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		h.logger.Error("translation upsert failed", "id", id, "error", err)
		handler.WriteInternalError(w, "Failed to store translation")
		return
	}

	if err := h.media.RefreshVideoOverlays(r.Context()); err != nil {
		h.logger.Error("overlay refresh failed", "error", err)
	}

	h.logger.Info("video translated", "id", id)
	handler.WriteSuccess(w, TranslateResponse{
		MediaType: "video",
		MediaID:   id,
		Locale:    i18n.LocaleES,
		Text:      translated,
	}, nil)
}

// TranslatePhoto handles POST /api/v1/admin/photos/{id}/translate.
func (h *Handler) TranslatePhoto(w http.ResponseWriter, r *http.Request) {
	if !h.translate.Enabled() {
		handler.WriteError(w, http.StatusServiceUnavailable, "translation_disabled",
			"Machine translation is not configured", nil)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handler.WriteBadRequest(w, "Invalid photo ID", nil)
		return
	}

	photo, ok := h.media.PhotoByID(id)
	if !ok {
		handler.WriteNotFound(w, "Photo not found")
		return
	}

	translated, err := h.translate.TranslateToSpanish(r.Context(), service.MediaText{
		Title: photo.Title,
		Alt:   photo.Alt,
	})
	if err != nil {
		h.logger.Error("photo translation failed", "id", id, "error", err)
		handler.WriteError(w, http.StatusBadGateway, "translation_failed",
			"Translation request failed", nil)
		return
	}

	now := time.Now()
	_, err = h.queries.UpsertMediaTranslation(r.Context(), store.UpsertMediaTranslationParams{
		MediaType: "photo",
		MediaID:   id,
		Locale:    string(i18n.LocaleES),
		Title:     translated.Title,
		Alt:       translated.Alt,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		h.logger.Error("translation upsert failed", "id", id, "error", err)
		handler.WriteInternalError(w, "Failed to store translation")
		return
	}

	if err := h.media.RefreshPhotoOverlays(r.Context()); err != nil {
		h.logger.Error("overlay refresh failed", "error", err)
	}

	h.logger.Info("photo translated", "id", id)
	handler.WriteSuccess(w, TranslateResponse{
		MediaType: "photo",
		MediaID:   id,
		Locale:    i18n.LocaleES,
		Text:      translated,
	}, nil)
}
