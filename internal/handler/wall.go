// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gabysite/internal/middleware"
	"gabysite/internal/service"
)

// WallHandler serves the public guestbook endpoints.
type WallHandler struct {
	wall *service.WallService
}

// NewWallHandler creates the wall handler.
func NewWallHandler(wall *service.WallService) *WallHandler {
	return &WallHandler{wall: wall}
}

// List handles GET /api/v1/wall.
func (h *WallHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.wall.List(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to load wall entries")
		return
	}
	WriteSuccess(w, entries, &Meta{Total: len(entries)})
}

// CreateWallRequest is the request body for POST /api/v1/wall.
type CreateWallRequest struct {
	FullName string `json:"fullName"`
	Message  string `json:"message"`
}

// Create handles POST /api/v1/wall.
func (h *WallHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateWallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	entry, err := h.wall.Create(r.Context(), req.FullName, req.Message,
		middleware.GetClientIP(r), r.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWallMissingFields):
			WriteValidationError(w, map[string]string{
				"fullName": "full name and message are required",
				"message":  "full name and message are required",
			})
		case errors.Is(err, service.ErrWallNameTooLong):
			WriteValidationError(w, map[string]string{"fullName": "full name is too long"})
		case errors.Is(err, service.ErrWallMessageTooLong):
			WriteValidationError(w, map[string]string{"message": "message is too long"})
		default:
			WriteInternalError(w, "Failed to save wall entry")
		}
		return
	}

	WriteCreated(w, entry)
}

// Export handles GET /api/v1/wall/export. Entries are returned as a JSON
// attachment for download.
func (h *WallHandler) Export(w http.ResponseWriter, r *http.Request) {
	entries, err := h.wall.List(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to export wall entries")
		return
	}

	filename := "wall-entries-" + time.Now().UTC().Format("2006-01-02") + ".json"
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(entries)
}
