// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gabysite/internal/geoip"
	"gabysite/internal/model"
)

func testWallService(t *testing.T) *WallService {
	t.Helper()
	queries, _ := testQueries(t)
	geo := geoip.NewLookup()
	require.NoError(t, geo.Init(""))
	return NewWallService(queries, testCacheManager(t), geo)
}

func TestWallCreateAndList(t *testing.T) {
	svc := testWallService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "Ana García", "Con mucho cariño", "192.168.1.5", "Mozilla/5.0 (Windows NT 10.0) Chrome/120.0")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "Ana García", first.FullName)
	assert.Equal(t, "LOCAL", first.Country)
	assert.Contains(t, first.UserAgent, "Chrome")

	second, err := svc.Create(ctx, "John Smith", "With love", "10.0.0.2", "")
	require.NoError(t, err)

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Newest first.
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestWallValidation(t *testing.T) {
	svc := testWallService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "message", "", "")
	assert.ErrorIs(t, err, ErrWallMissingFields)

	_, err = svc.Create(ctx, "Name", "", "", "")
	assert.ErrorIs(t, err, ErrWallMissingFields)

	_, err = svc.Create(ctx, strings.Repeat("n", model.MaxWallNameLength+1), "message", "", "")
	assert.ErrorIs(t, err, ErrWallNameTooLong)

	_, err = svc.Create(ctx, "Name", strings.Repeat("m", model.MaxWallMessageLength+1), "", "")
	assert.ErrorIs(t, err, ErrWallMessageTooLong)

	// Exactly at the limit passes.
	_, err = svc.Create(ctx, "Name", strings.Repeat("m", model.MaxWallMessageLength), "", "")
	assert.NoError(t, err)
}

func TestWallSanitizesHTML(t *testing.T) {
	svc := testWallService(t)
	ctx := context.Background()

	entry, err := svc.Create(ctx, "<b>Ana</b>", "Hola <script>alert('x')</script> querida", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Ana", entry.FullName)
	assert.NotContains(t, entry.Message, "<script>")
	assert.Contains(t, entry.Message, "Hola")

	// Markup-only input is empty after sanitization.
	_, err = svc.Create(ctx, "<img src=x>", "message", "", "")
	assert.ErrorIs(t, err, ErrWallMissingFields)
}

func TestWallListCacheInvalidation(t *testing.T) {
	svc := testWallService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Ana", "primera nota", "", "")
	require.NoError(t, err)

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// A new entry must show up despite the cached listing.
	_, err = svc.Create(ctx, "Luis", "segunda nota", "", "")
	require.NoError(t, err)

	entries, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWallDelete(t *testing.T) {
	svc := testWallService(t)
	ctx := context.Background()

	entry, err := svc.Create(ctx, "Ana", "nota", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, entry.ID))

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
