// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"gabysite/internal/catalog"
	"gabysite/internal/i18n"
	"gabysite/internal/middleware"
	"gabysite/internal/service"
)

// SessionKeyLocale is the session key holding the visitor's chosen locale.
const SessionKeyLocale = "locale"

// FrontendHandler serves the public gallery, timeline, and site endpoints
// consumed by the SPA.
type FrontendHandler struct {
	media      *service.MediaService
	book       *service.BookService
	siteLocale *i18n.Store
	sessions   *scs.SessionManager
}

// NewFrontendHandler creates the public API handler.
func NewFrontendHandler(media *service.MediaService, book *service.BookService, siteLocale *i18n.Store, sessions *scs.SessionManager) *FrontendHandler {
	return &FrontendHandler{
		media:      media,
		book:       book,
		siteLocale: siteLocale,
		sessions:   sessions,
	}
}

// mediaParams extracts the shared gallery query parameters.
func mediaParams(r *http.Request) (query, categoryKey string) {
	q := r.URL.Query()
	query = q.Get("q")
	categoryKey = q.Get("category")
	if categoryKey == "" {
		categoryKey = catalog.CategoryAll
	}
	return query, categoryKey
}

// Photos handles GET /api/v1/photos.
func (h *FrontendHandler) Photos(w http.ResponseWriter, r *http.Request) {
	loc := middleware.GetLocale(r)
	query, categoryKey := mediaParams(r)

	photos, err := h.media.Photos(r.Context(), loc, query, categoryKey)
	if err != nil {
		WriteInternalError(w, "Failed to load photos")
		return
	}
	WriteSuccess(w, photos, &Meta{Total: len(photos)})
}

// Videos handles GET /api/v1/videos.
func (h *FrontendHandler) Videos(w http.ResponseWriter, r *http.Request) {
	loc := middleware.GetLocale(r)
	query, categoryKey := mediaParams(r)

	videos, err := h.media.Videos(r.Context(), loc, query, categoryKey)
	if err != nil {
		WriteInternalError(w, "Failed to load videos")
		return
	}
	WriteSuccess(w, videos, &Meta{Total: len(videos)})
}

// Timeline handles GET /api/v1/timeline.
func (h *FrontendHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	loc := middleware.GetLocale(r)
	query, categoryKey := mediaParams(r)

	groups, err := h.media.Timeline(r.Context(), loc, query, categoryKey)
	if err != nil {
		WriteInternalError(w, "Failed to load timeline")
		return
	}
	WriteSuccess(w, groups, &Meta{Total: len(groups)})
}

// Categories handles GET /api/v1/categories.
func (h *FrontendHandler) Categories(w http.ResponseWriter, r *http.Request) {
	loc := middleware.GetLocale(r)

	options, err := h.media.Categories(r.Context(), loc)
	if err != nil {
		WriteInternalError(w, "Failed to load categories")
		return
	}
	WriteSuccess(w, options, &Meta{Total: len(options)})
}

// Stats handles GET /api/v1/stats.
func (h *FrontendHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.media.Stats(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to load stats")
		return
	}
	WriteSuccess(w, stats, nil)
}

// Book handles GET /api/v1/book.
func (h *FrontendHandler) Book(w http.ResponseWriter, r *http.Request) {
	loc := middleware.GetLocale(r)

	book, err := h.book.Get(loc)
	if err != nil {
		WriteInternalError(w, "Failed to load book announcement")
		return
	}
	WriteSuccess(w, book, nil)
}

// StringsResponse carries the UI string catalog for one locale.
type StringsResponse struct {
	Locale  i18n.Locale       `json:"locale"`
	Strings map[string]string `json:"strings"`
}

// Strings handles GET /api/v1/strings.
func (h *FrontendHandler) Strings(w http.ResponseWriter, r *http.Request) {
	loc := middleware.GetLocale(r)
	WriteSuccess(w, StringsResponse{
		Locale:  loc,
		Strings: i18n.Messages(loc),
	}, nil)
}

// LocaleResponse describes the locale state for the SPA.
type LocaleResponse struct {
	Locale    i18n.Locale   `json:"locale"`
	Default   i18n.Locale   `json:"default"`
	Supported []i18n.Locale `json:"supported"`
}

// GetLocale handles GET /api/v1/locale.
func (h *FrontendHandler) GetLocale(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, LocaleResponse{
		Locale:    middleware.GetLocale(r),
		Default:   h.siteLocale.Current(),
		Supported: i18n.SupportedLocales,
	}, nil)
}

// SetLocaleRequest is the request body for POST /api/v1/locale.
type SetLocaleRequest struct {
	Locale string `json:"locale"`
}

// SetLocale handles POST /api/v1/locale. The chosen locale is written to the
// visitor cookie and session only. The site-wide default served to first-time
// visitors is changed through the admin API, not here.
func (h *FrontendHandler) SetLocale(w http.ResponseWriter, r *http.Request) {
	var req SetLocaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if !i18n.IsSupported(req.Locale) {
		WriteValidationError(w, map[string]string{"locale": "unsupported locale"})
		return
	}

	loc := i18n.ParseLocale(req.Locale)
	middleware.SetLocaleCookie(w, loc)
	if h.sessions != nil {
		h.sessions.Put(r.Context(), SessionKeyLocale, string(loc))
	}

	WriteSuccess(w, LocaleResponse{
		Locale:    loc,
		Default:   h.siteLocale.Current(),
		Supported: i18n.SupportedLocales,
	}, nil)
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status handles GET /api/v1/status.
func (h *FrontendHandler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{
		Status:  "ok",
		Version: "v1",
	}, nil)
}
