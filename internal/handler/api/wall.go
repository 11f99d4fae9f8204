// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gabysite/internal/handler"
)

// DeleteWallEntry handles DELETE /api/v1/admin/wall/{id} (moderation).
func (h *Handler) DeleteWallEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		handler.WriteBadRequest(w, "Invalid entry ID", nil)
		return
	}

	if err := h.wall.Delete(r.Context(), id); err != nil {
		h.logger.Error("wall entry delete failed", "id", id, "error", err)
		handler.WriteInternalError(w, "Failed to delete wall entry")
		return
	}

	h.logger.Info("wall entry deleted", "id", id)
	handler.WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
