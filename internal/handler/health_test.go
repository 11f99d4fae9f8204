// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gabysite/internal/auth"
)

func TestLivenessEndpoint(t *testing.T) {
	env := newTestEnv(t)
	h := NewHealthHandler(env.db, nil, t.TempDir(), "test")

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	h.Liveness(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alive")
}

func TestReadinessEndpoint(t *testing.T) {
	env := newTestEnv(t)
	h := NewHealthHandler(env.db, nil, t.TempDir(), "test")

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	h.Readiness(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ready")
}

func TestHealthEndpointPublic(t *testing.T) {
	env := newTestEnv(t)
	h := NewHealthHandler(env.db, nil, t.TempDir(), "test")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	// Public callers never see check details.
	assert.NotContains(t, body, "checks")
}

func TestHealthEndpointAdmin(t *testing.T) {
	env := newTestEnv(t)
	tokens := auth.NewTokenService(env.queries, time.Hour)
	h := NewHealthHandler(env.db, tokens, t.TempDir(), "v1.2.3")

	raw, err := tokens.Issue(t.Context())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health?verbose=true", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "v1.2.3", body["version"])

	checks := body["checks"].(map[string]any)
	db := checks["database"].(map[string]any)
	assert.Equal(t, "healthy", db["status"])
	assert.NotNil(t, body["system"])
}

func TestHealthEndpointInvalidToken(t *testing.T) {
	env := newTestEnv(t)
	tokens := auth.NewTokenService(env.queries, time.Hour)
	h := NewHealthHandler(env.db, tokens, t.TempDir(), "test")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body, "checks")
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.in))
	}
}
