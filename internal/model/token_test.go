// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"
	"time"
)

func TestGenerateAdminToken(t *testing.T) {
	raw, hint, err := GenerateAdminToken()
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}
	if raw == "" {
		t.Error("raw token is empty")
	}
	if len(hint) != 8 || raw[:8] != hint {
		t.Errorf("hint %q is not the first 8 chars of the token", hint)
	}

	raw2, _, err := GenerateAdminToken()
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}
	if raw == raw2 {
		t.Error("two generated tokens are identical")
	}
}

func TestHashAdminToken(t *testing.T) {
	h1 := HashAdminToken("token-a")
	h2 := HashAdminToken("token-a")
	h3 := HashAdminToken("token-b")

	if h1 != h2 {
		t.Error("hashing is not deterministic")
	}
	if h1 == h3 {
		t.Error("different tokens produced the same hash")
	}
	if len(h1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h1))
	}
}

func TestAdminTokenIsExpired(t *testing.T) {
	tok := AdminToken{ExpiresAt: time.Now().Add(time.Hour)}
	if tok.IsExpired() {
		t.Error("token expiring in an hour reported expired")
	}
	tok.ExpiresAt = time.Now().Add(-time.Hour)
	if !tok.IsExpired() {
		t.Error("token expired an hour ago reported valid")
	}
}
