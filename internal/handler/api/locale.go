// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"

	"gabysite/internal/handler"
	"gabysite/internal/i18n"
)

// SiteLocaleRequest is the request body for PUT /api/v1/admin/locale.
type SiteLocaleRequest struct {
	Locale string `json:"locale"`
}

// SiteLocaleResponse reports the site-wide default locale.
type SiteLocaleResponse struct {
	Locale i18n.Locale `json:"locale"`
}

// SetSiteLocale handles PUT /api/v1/admin/locale. It changes the site-wide
// default served to first-time visitors; the locale store persists the value
// to the config table. Visitors change their own language via the public
// locale endpoint, which never touches the site default.
func (h *Handler) SetSiteLocale(w http.ResponseWriter, r *http.Request) {
	var req SiteLocaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if !i18n.IsSupported(req.Locale) {
		handler.WriteValidationError(w, map[string]string{"locale": "unsupported locale"})
		return
	}

	loc := i18n.ParseLocale(req.Locale)
	h.siteLocale.Set(loc)

	h.logger.Info("site locale changed", "locale", loc)
	handler.WriteSuccess(w, SiteLocaleResponse{Locale: loc}, nil)
}
