// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateServiceDisabled(t *testing.T) {
	svc := NewTranslateService("", "gpt-4o-mini")
	assert.False(t, svc.Enabled())

	_, err := svc.TranslateToSpanish(context.Background(), MediaText{Title: "A Special Day"})
	assert.ErrorIs(t, err, ErrTranslationDisabled)
}

func TestTranslateServiceEnabled(t *testing.T) {
	svc := NewTranslateService("sk-test", "gpt-4o-mini")
	assert.True(t, svc.Enabled())
}
