// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the bearer-token admin API handlers.
package api

import (
	"log/slog"

	"gabysite/internal/auth"
	"gabysite/internal/i18n"
	"gabysite/internal/middleware"
	"gabysite/internal/service"
	"gabysite/internal/store"
)

// Handler holds shared dependencies for all admin API handlers.
type Handler struct {
	queries      *store.Queries
	tokens       *auth.TokenService
	media        *service.MediaService
	uploads      *service.UploadService
	wall         *service.WallService
	translate    *service.TranslateService
	siteLocale   *i18n.Store
	protection   *middleware.LoginProtection
	passwordHash string
	logger       *slog.Logger
}

// NewHandler creates the admin API handler. passwordHash is the argon2id
// hash of the admin password.
func NewHandler(
	queries *store.Queries,
	tokens *auth.TokenService,
	media *service.MediaService,
	uploads *service.UploadService,
	wall *service.WallService,
	translate *service.TranslateService,
	siteLocale *i18n.Store,
	protection *middleware.LoginProtection,
	passwordHash string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		queries:      queries,
		tokens:       tokens,
		media:        media,
		uploads:      uploads,
		wall:         wall,
		translate:    translate,
		siteLocale:   siteLocale,
		protection:   protection,
		passwordHash: passwordHash,
		logger:       logger,
	}
}
