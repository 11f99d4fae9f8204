// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Wall limits
const (
	MaxWallNameLength    = 120
	MaxWallMessageLength = 1024
)

// WallEntry is a visitor note on Gaby's Wall. Country and UserAgent are
// moderation metadata and never leave the server in public responses.
type WallEntry struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Country   string    `json:"-"`
	UserAgent string    `json:"-"`
}
