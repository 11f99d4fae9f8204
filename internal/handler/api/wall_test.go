// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gabysite/internal/store"
)

func TestDeleteWallEntryEndpoint(t *testing.T) {
	env := newTestEnv(t)

	entry, err := env.queries.CreateWallEntry(t.Context(), store.CreateWallEntryParams{
		ID:       "11111111-1111-1111-1111-111111111111",
		FullName: "Ana",
		Message:  "nota",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/wall/"+entry.ID, nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	entries, err := env.queries.ListWallEntries(t.Context())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
