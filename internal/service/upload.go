// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"gabysite/internal/imaging"
	"gabysite/internal/model"
	"gabysite/internal/store"
	"gabysite/internal/util"
)

// Upload limits
const (
	MaxUploadSize    = 20 * 1024 * 1024 // 20MB
	DefaultUploadDir = "./uploads"
)

// UploadResult contains the processed upload and the gallery photo fields
// derived from it.
type UploadResult struct {
	Upload   model.Upload
	Photo    model.Photo
	Variants []*imaging.VariantResult
}

// UploadService turns admin photo uploads into gallery photos: variant
// generation, EXIF dating, and upload bookkeeping.
type UploadService struct {
	queries   *store.Queries
	processor *imaging.Processor
	uploadDir string
}

// NewUploadService creates an upload service writing under uploadDir.
func NewUploadService(queries *store.Queries, uploadDir string) *UploadService {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	return &UploadService{
		queries:   queries,
		processor: imaging.NewProcessor(uploadDir),
		uploadDir: uploadDir,
	}
}

// Upload processes one multipart photo upload. title, alt, and category are
// the base-locale (English) gallery fields supplied by the admin form.
func (s *UploadService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, title, alt, category string) (*UploadResult, error) {
	if header.Size > MaxUploadSize {
		return nil, fmt.Errorf("file size exceeds maximum allowed (%d bytes)", MaxUploadSize)
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mimeTypeFromExtension(header.Filename)
	}
	if !s.processor.IsImage(mimeType) {
		return nil, fmt.Errorf("file type %s is not allowed", mimeType)
	}

	fileUUID := uuid.New().String()
	filename := sanitizeFilename(header.Filename)

	processResult, err := s.processor.ProcessImage(file, fileUUID, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to process image: %w", err)
	}

	variants, err := s.processor.CreateAllVariants(processResult.FilePath, fileUUID, filename)
	if err != nil {
		_ = s.processor.DeleteUploadFiles(fileUUID)
		return nil, fmt.Errorf("failed to create variants: %w", err)
	}

	now := time.Now()
	upload, err := s.queries.CreateUpload(ctx, store.CreateUploadParams{
		UUID:      fileUUID,
		Filename:  filename,
		MimeType:  processResult.MimeType,
		Size:      processResult.Size,
		Width:     sql.NullInt64{Int64: int64(processResult.Width), Valid: true},
		Height:    sql.NullInt64{Int64: int64(processResult.Height), Valid: true},
		TakenAt:   util.NullTimeFromValue(processResult.TakenAt),
		CreatedAt: now,
	})
	if err != nil {
		_ = s.processor.DeleteUploadFiles(fileUUID)
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	for _, v := range variants {
		err := s.queries.CreateUploadVariant(ctx, store.CreateUploadVariantParams{
			UploadID:  upload.ID,
			Type:      v.Type,
			Width:     int64(v.Width),
			Height:    int64(v.Height),
			Size:      v.Size,
			CreatedAt: now,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to record %s variant: %w", v.Type, err)
		}
	}

	// Timeline placement prefers the EXIF capture date, falling back to
	// the upload time.
	taken := processResult.TakenAt
	if taken.IsZero() {
		taken = now
	}

	photo := model.Photo{
		Src:      s.PublicPath(model.VariantLarge, fileUUID, filename, variants),
		Alt:      alt,
		Title:    title,
		Date:     taken.Format("2006-01-02"),
		Category: category,
		Year:     taken.Year(),
		Month:    int(taken.Month()),
	}

	return &UploadResult{
		Upload:   upload,
		Photo:    photo,
		Variants: variants,
	}, nil
}

// PublicPath returns the URL path for a variant of an upload, falling back
// to the original when the variant was skipped (small sources).
func (s *UploadService) PublicPath(variantType, fileUUID, filename string, variants []*imaging.VariantResult) string {
	for _, v := range variants {
		if v.Type == variantType {
			return path.Join("/uploads", variantType, fileUUID, filename)
		}
	}
	return path.Join("/uploads", "originals", fileUUID, filename)
}

// Delete removes an upload's files. The uploads table keeps the row for
// bookkeeping; gallery visibility is controlled by the photo catalog.
func (s *UploadService) Delete(fileUUID string) error {
	return s.processor.DeleteUploadFiles(fileUUID)
}

// sanitizeFilename strips path separators and suspicious characters from an
// uploaded filename.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	filename = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, filename)
	if filename == "" || filename == "." || filename == ".." {
		return "upload.jpg"
	}
	return filename
}

// mimeTypeFromExtension guesses a MIME type when the client omitted one.
func mimeTypeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return model.MimeTypeJPEG
	case ".png":
		return model.MimeTypePNG
	case ".webp":
		return model.MimeTypeWebP
	default:
		return ""
	}
}
