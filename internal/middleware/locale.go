// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for locale detection,
// admin authentication, and request protection.
package middleware

import (
	"context"
	"net/http"

	"gabysite/internal/i18n"
)

// ContextKey is the type for request context keys set by this package.
type ContextKey string

// ContextKeyLocale is the context key for the resolved request locale.
const ContextKeyLocale ContextKey = "locale"

// LocaleCookieName is the cookie name for the visitor's language preference.
const LocaleCookieName = "gaby_lang"

// Locale creates middleware that resolves the request locale.
// Priority order:
//  1. Query parameter ?lang=XX (explicit language switch, updates cookie)
//  2. Cookie preference
//  3. Accept-Language header
//  4. The site-wide locale from the locale store
func Locale(siteLocale *i18n.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Explicit switch via query parameter. Takes highest priority
			// and updates the cookie.
			if queryLang := r.URL.Query().Get("lang"); queryLang != "" {
				if i18n.IsSupported(queryLang) {
					loc := i18n.ParseLocale(queryLang)
					SetLocaleCookie(w, loc)
					serveWithLocale(next, w, r, loc)
					return
				}
			}

			// 2. Cookie preference.
			if cookie, err := r.Cookie(LocaleCookieName); err == nil {
				if i18n.IsSupported(cookie.Value) {
					serveWithLocale(next, w, r, i18n.ParseLocale(cookie.Value))
					return
				}
			}

			// 3. Accept-Language header, through the i18n language matcher.
			if acceptLang := r.Header.Get("Accept-Language"); acceptLang != "" {
				if loc, ok := i18n.MatchLocale(acceptLang); ok {
					serveWithLocale(next, w, r, loc)
					return
				}
			}

			// 4. Site-wide locale.
			serveWithLocale(next, w, r, siteLocale.Current())
		})
	}
}

func serveWithLocale(next http.Handler, w http.ResponseWriter, r *http.Request, loc i18n.Locale) {
	ctx := context.WithValue(r.Context(), ContextKeyLocale, loc)
	next.ServeHTTP(w, r.WithContext(ctx))
}

// GetLocale retrieves the resolved locale from the request context.
// Falls back to the default locale when the middleware did not run.
func GetLocale(r *http.Request) i18n.Locale {
	loc, ok := r.Context().Value(ContextKeyLocale).(i18n.Locale)
	if !ok {
		return i18n.DefaultLocale
	}
	return loc
}

// SetLocaleCookie sets the language preference cookie.
func SetLocaleCookie(w http.ResponseWriter, loc i18n.Locale) {
	http.SetCookie(w, &http.Cookie{
		Name:     LocaleCookieName,
		Value:    string(loc),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60, // 1 year
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
