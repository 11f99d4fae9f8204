// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Supported image variant types
const (
	VariantThumbnail = "thumbnail"
	VariantLarge     = "large"
)

// Supported MIME types for photo uploads
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeWebP = "image/webp"
)

// ImageVariantConfig defines settings for generating image variants.
type ImageVariantConfig struct {
	Width   int
	Height  int
	Quality int
	Crop    bool // true = crop to exact size, false = fit within bounds
}

// ImageVariants defines the default image variant configurations.
var ImageVariants = map[string]ImageVariantConfig{
	VariantThumbnail: {Width: 400, Height: 400, Quality: 80, Crop: true},
	VariantLarge:     {Width: 1920, Height: 1280, Quality: 90, Crop: false},
}

// Upload is an admin-uploaded photo file backing a gallery Photo.
type Upload struct {
	ID        int64
	UUID      string
	Filename  string
	MimeType  string
	Size      int64
	Width     sql.NullInt64
	Height    sql.NullInt64
	TakenAt   sql.NullTime
	CreatedAt time.Time
}

// UploadVariant represents a generated variant of an uploaded photo.
type UploadVariant struct {
	ID        int64
	UploadID  int64
	Type      string
	Width     int64
	Height    int64
	Size      int64
	CreatedAt time.Time
}
