// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"gabysite/internal/auth"
	"gabysite/internal/handler"
	"gabysite/internal/middleware"
)

// LoginRequest is the request body for POST /api/v1/admin/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login handles POST /api/v1/admin/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ip := middleware.GetClientIP(r)

	if locked, remaining := h.protection.IsLocked(ip); locked {
		handler.WriteError(w, http.StatusTooManyRequests, "locked_out",
			"Too many failed attempts. Try again in "+remaining.Round(time.Second).String(), nil)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	ok, err := auth.CheckPassword(req.Password, h.passwordHash)
	if err != nil {
		h.logger.Error("password check failed", "error", err)
		handler.WriteInternalError(w, "Login failed")
		return
	}
	if !ok {
		h.protection.RecordFailedAttempt(ip)
		h.logger.Warn("failed admin login", "ip", ip,
			"remaining_attempts", h.protection.GetRemainingAttempts(ip))
		handler.WriteUnauthorized(w, "Invalid password")
		return
	}

	h.protection.RecordSuccessfulLogin(ip)

	token, err := h.tokens.Issue(r.Context())
	if err != nil {
		h.logger.Error("token issue failed", "error", err)
		handler.WriteInternalError(w, "Login failed")
		return
	}

	h.logger.Info("admin login", "ip", ip)
	handler.WriteSuccess(w, LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.tokens.TTL()),
	}, nil)
}

// Logout handles POST /api/v1/admin/logout. Revokes the presented token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	raw := middleware.BearerToken(r)
	if raw == "" {
		handler.WriteUnauthorized(w, "Missing bearer token")
		return
	}

	if err := h.tokens.Revoke(r.Context(), raw); err != nil {
		h.logger.Error("token revoke failed", "error", err)
		handler.WriteInternalError(w, "Logout failed")
		return
	}

	handler.WriteSuccess(w, map[string]string{"status": "logged_out"}, nil)
}
