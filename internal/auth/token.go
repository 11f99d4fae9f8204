// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gabysite/internal/model"
	"gabysite/internal/store"
)

// DefaultTokenTTL is how long an admin token stays valid without renewal.
const DefaultTokenTTL = 24 * time.Hour

// Token validation errors
var (
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenExpired  = errors.New("token expired")
)

// TokenService issues and validates admin bearer tokens. Only SHA-256 hashes
// are stored; the raw token exists client-side only.
type TokenService struct {
	queries *store.Queries
	ttl     time.Duration
}

// NewTokenService creates a token service with the given lifetime.
// A zero ttl uses DefaultTokenTTL.
func NewTokenService(queries *store.Queries, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{queries: queries, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue creates a new token and returns the raw value to hand to the client.
func (s *TokenService) Issue(ctx context.Context) (string, error) {
	raw, hint, err := model.GenerateAdminToken()
	if err != nil {
		return "", err
	}

	now := time.Now()
	_, err = s.queries.CreateAdminToken(ctx, store.CreateAdminTokenParams{
		TokenHash:  model.HashAdminToken(raw),
		TokenHint:  hint,
		LastUsedAt: now,
		ExpiresAt:  now.Add(s.ttl),
		CreatedAt:  now,
	})
	if err != nil {
		return "", err
	}
	return raw, nil
}

// Validate checks a raw token and records its use. Expired tokens are
// revoked on sight.
func (s *TokenService) Validate(ctx context.Context, raw string) error {
	hash := model.HashAdminToken(raw)
	token, err := s.queries.GetAdminTokenByHash(ctx, hash)
	if err == sql.ErrNoRows {
		return ErrTokenNotFound
	}
	if err != nil {
		return err
	}

	if token.IsExpired() {
		_ = s.queries.DeleteAdminToken(ctx, hash)
		return ErrTokenExpired
	}

	_ = s.queries.TouchAdminToken(ctx, token.ID, time.Now())
	return nil
}

// Revoke invalidates a raw token (logout). Unknown tokens are a no-op.
func (s *TokenService) Revoke(ctx context.Context, raw string) error {
	return s.queries.DeleteAdminToken(ctx, model.HashAdminToken(raw))
}

// PruneExpired removes expired tokens, returning how many were dropped.
func (s *TokenService) PruneExpired(ctx context.Context) (int64, error) {
	return s.queries.DeleteExpiredAdminTokens(ctx, time.Now())
}
