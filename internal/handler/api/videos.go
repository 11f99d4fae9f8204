// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"gabysite/internal/handler"
	"gabysite/internal/model"
	"gabysite/internal/store"
)

// VideoResponse represents a video in admin API responses, including the
// fields hidden from the public payload.
type VideoResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	VideoURL    string    `json:"videoUrl"`
	Source      string    `json:"source"`
	YouTubeID   string    `json:"youtubeId,omitempty"`
	Date        string    `json:"date,omitempty"`
	Category    string    `json:"category"`
	Year        int       `json:"year"`
	Month       int       `json:"month,omitempty"`
	Position    int64     `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func videoToResponse(v model.Video) VideoResponse {
	resp := VideoResponse{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Thumbnail:   v.Thumbnail,
		VideoURL:    v.VideoURL,
		Source:      v.Source,
		Date:        v.Date,
		Category:    v.Category,
		Year:        v.Year,
		Month:       v.Month,
		Position:    v.Position,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
	if v.YouTubeID.Valid {
		resp.YouTubeID = v.YouTubeID.String
	}
	return resp
}

// VideoRequest is the request body for creating or updating a video. A
// YouTube URL in videoUrl is detected automatically: source, youtubeId, and
// a default thumbnail are derived from it.
type VideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	VideoURL    string `json:"videoUrl"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Position    int64  `json:"position"`
}

func (req *VideoRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)
	if req.Title == "" {
		fieldErrors["title"] = "title is required"
	}
	if req.Category == "" {
		fieldErrors["category"] = "category is required"
	}
	if req.Year < 1900 || req.Year > time.Now().Year()+1 {
		fieldErrors["year"] = "year is out of range"
	}
	if req.Month < 0 || req.Month > 12 {
		fieldErrors["month"] = "month is out of range"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// resolveSource fills in the YouTube-derived fields.
func (req *VideoRequest) resolveSource() (source string, youtubeID sql.NullString) {
	id, ok := ParseYouTubeID(req.VideoURL)
	if !ok {
		return model.VideoSourceFile, sql.NullString{}
	}
	if req.Thumbnail == "" {
		req.Thumbnail = YouTubeThumbnail(id)
	}
	req.VideoURL = YouTubeEmbedURL(id)
	return model.VideoSourceYouTube, sql.NullString{String: id, Valid: true}
}

// ListVideos handles GET /api/v1/admin/videos.
func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.queries.ListVideos(r.Context())
	if err != nil {
		h.logger.Error("list videos failed", "error", err)
		handler.WriteInternalError(w, "Failed to load videos")
		return
	}

	resp := make([]VideoResponse, len(videos))
	for i, v := range videos {
		resp[i] = videoToResponse(v)
	}
	handler.WriteSuccess(w, resp, &handler.Meta{Total: len(resp)})
}

// CreateVideo handles POST /api/v1/admin/videos.
func (h *Handler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var req VideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		handler.WriteValidationError(w, fieldErrors)
		return
	}

	source, youtubeID := req.resolveSource()

	now := time.Now()
	video, err := h.queries.CreateVideo(r.Context(), store.CreateVideoParams{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		VideoURL:    req.VideoURL,
		Source:      source,
		YouTubeID:   youtubeID,
		Date:        req.Date,
		Category:    req.Category,
		Year:        req.Year,
		Month:       req.Month,
		Position:    req.Position,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		h.logger.Error("create video failed", "error", err)
		handler.WriteInternalError(w, "Failed to create video")
		return
	}

	h.media.InvalidateCache(r.Context())
	h.logger.Info("video created", "id", video.ID, "title", video.Title)
	handler.WriteCreated(w, videoToResponse(video))
}

// UpdateVideo handles PUT /api/v1/admin/videos/{id}.
func (h *Handler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handler.WriteBadRequest(w, "Invalid video ID", nil)
		return
	}

	if _, err := h.queries.GetVideoByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			handler.WriteNotFound(w, "Video not found")
			return
		}
		h.logger.Error("get video failed", "id", id, "error", err)
		handler.WriteInternalError(w, "Failed to load video")
		return
	}

	var req VideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		handler.WriteValidationError(w, fieldErrors)
		return
	}

	source, youtubeID := req.resolveSource()

	video, err := h.queries.UpdateVideo(r.Context(), store.UpdateVideoParams{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		VideoURL:    req.VideoURL,
		Source:      source,
		YouTubeID:   youtubeID,
		Date:        req.Date,
		Category:    req.Category,
		Year:        req.Year,
		Month:       req.Month,
		Position:    req.Position,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		h.logger.Error("update video failed", "id", id, "error", err)
		handler.WriteInternalError(w, "Failed to update video")
		return
	}

	h.media.InvalidateCache(r.Context())
	handler.WriteSuccess(w, videoToResponse(video), nil)
}

// DeleteVideo handles DELETE /api/v1/admin/videos/{id}. Translation overlay
// rows go with the video.
func (h *Handler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handler.WriteBadRequest(w, "Invalid video ID", nil)
		return
	}

	if _, err := h.queries.GetVideoByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			handler.WriteNotFound(w, "Video not found")
			return
		}
		h.logger.Error("get video failed", "id", id, "error", err)
		handler.WriteInternalError(w, "Failed to load video")
		return
	}

	if err := h.queries.DeleteVideo(r.Context(), id); err != nil {
		h.logger.Error("delete video failed", "id", id, "error", err)
		handler.WriteInternalError(w, "Failed to delete video")
		return
	}
	if err := h.queries.DeleteMediaTranslations(r.Context(), "video", id); err != nil {
		h.logger.Error("delete video translations failed", "id", id, "error", err)
	}

	if err := h.media.RefreshVideoOverlays(r.Context()); err != nil {
		h.logger.Error("overlay refresh failed", "error", err)
	}

	h.logger.Info("video deleted", "id", id)
	handler.WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
