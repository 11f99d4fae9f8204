// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"GABY_DB_PATH" envDefault:"./data/gabysite.db"`
	SessionSecret string `env:"GABY_SESSION_SECRET,required"`
	ServerHost    string `env:"GABY_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"GABY_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"GABY_ENV" envDefault:"development"`
	LogLevel      string `env:"GABY_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"GABY_UPLOADS_DIR" envDefault:"./uploads"`

	// Admin authentication
	AdminPasswordHash string        `env:"GABY_ADMIN_PASSWORD_HASH,required"` // argon2id hash of the admin password
	AdminTokenTTL     time.Duration `env:"GABY_ADMIN_TOKEN_TTL" envDefault:"24h"`

	// Cache configuration
	RedisURL     string `env:"GABY_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"GABY_CACHE_PREFIX" envDefault:"gaby:"`   // Redis key prefix
	CacheTTL     int    `env:"GABY_CACHE_TTL" envDefault:"300"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"GABY_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// GeoIP configuration (wall moderation metadata)
	GeoIPDBPath string `env:"GABY_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Machine translation (admin translate endpoints)
	OpenAIAPIKey string `env:"GABY_OPENAI_API_KEY"`
	OpenAIModel  string `env:"GABY_OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	// Book announcement
	BookReleaseDate string `env:"GABY_BOOK_RELEASE_DATE" envDefault:"2026-08-02"` // YYYY-MM-DD

	// Seeding configuration
	DoSeed bool `env:"GABY_DO_SEED" envDefault:"true"` // Seed the starting video catalog
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// GeoIPEnabled returns true if a GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// TranslationEnabled returns true if the machine-translation API is configured.
func (c Config) TranslationEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// BookRelease parses the configured book release date.
func (c Config) BookRelease() (time.Time, error) {
	return time.Parse("2006-01-02", c.BookReleaseDate)
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("GABY_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("GABY_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("GABY_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if !strings.HasPrefix(cfg.AdminPasswordHash, "$argon2id$") {
		return nil, fmt.Errorf("GABY_ADMIN_PASSWORD_HASH must be an argon2id encoded hash")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
