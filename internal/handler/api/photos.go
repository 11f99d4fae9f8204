// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"gabysite/internal/handler"
	"gabysite/internal/model"
	"gabysite/internal/service"
)

// PhotoUploadResponse carries the catalog photo created from an upload.
type PhotoUploadResponse struct {
	Photo  model.Photo  `json:"photo"`
	Upload model.Upload `json:"upload"`
}

// UploadPhoto handles POST /api/v1/admin/photos (multipart form). The form
// carries the image under "file" plus base-locale "title", "alt", and
// "category" fields.
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		handler.WriteBadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handler.WriteValidationError(w, map[string]string{"file": "image file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	title := r.FormValue("title")
	alt := r.FormValue("alt")
	category := r.FormValue("category")

	fieldErrors := make(map[string]string)
	if title == "" {
		fieldErrors["title"] = "title is required"
	}
	if category == "" {
		fieldErrors["category"] = "category is required"
	}
	if len(fieldErrors) > 0 {
		handler.WriteValidationError(w, fieldErrors)
		return
	}

	result, err := h.uploads.Upload(r.Context(), file, header, title, alt, category)
	if err != nil {
		h.logger.Error("photo upload failed", "filename", header.Filename, "error", err)
		handler.WriteBadRequest(w, err.Error(), nil)
		return
	}

	photo := h.media.AppendPhoto(r.Context(), result.Photo)
	h.logger.Info("photo uploaded", "id", photo.ID, "uuid", result.Upload.UUID)

	handler.WriteCreated(w, PhotoUploadResponse{
		Photo:  photo,
		Upload: result.Upload,
	})
}
