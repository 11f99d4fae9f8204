// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"time"
)

// AdminToken is a bearer token for the admin API. Only the SHA-256 hash is
// stored; the raw token is shown once at login.
type AdminToken struct {
	ID         int64
	TokenHash  string
	TokenHint  string
	LastUsedAt time.Time
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// GenerateAdminToken generates a new random bearer token.
// Returns the raw token (to hand to the client once) and a short hint
// suitable for listing active tokens.
func GenerateAdminToken() (rawToken string, hint string, err error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", err
	}
	rawToken = base64.URLEncoding.EncodeToString(bytes)
	hint = rawToken[:8]
	return rawToken, hint, nil
}

// HashAdminToken creates a SHA-256 hash of the token for storage.
func HashAdminToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// IsExpired reports whether the token has passed its expiry.
func (t *AdminToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
