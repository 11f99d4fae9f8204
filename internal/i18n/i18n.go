// Package i18n provides the bilingual string catalog and locale handling
// for the memorial site. Media text localization lives in internal/catalog;
// this package covers the closed locale set and the UI string table.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// Locale is a display language from the closed supported set.
type Locale string

// Supported locales. Base media text (titles, alt text, descriptions in the
// source collections) is authored in English; translation overlays carry
// Spanish only.
const (
	LocaleES Locale = "es"
	LocaleEN Locale = "en"
)

// DefaultLocale is the locale used when no preference is stored.
var DefaultLocale = LocaleES

// BaseLocale is the language the base media records are authored in.
// Overlays never carry base-locale text.
const BaseLocale = LocaleEN

// SupportedLocales lists the site languages in switcher order.
var SupportedLocales = []Locale{LocaleES, LocaleEN}

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds all UI translations for all supported locales.
type Catalog struct {
	mu           sync.RWMutex
	translations map[Locale]map[string]string
	matcher      language.Matcher
	logger       *slog.Logger
}

// catalog is the global catalog instance.
var catalog *Catalog

// Init loads the embedded message catalogs and verifies completeness:
// every supported locale must define the exact same key set. UI strings
// never fall back between locales at runtime, so a hole in one catalog
// is a startup error rather than a silent gap.
func Init(logger *slog.Logger) error {
	c := &Catalog{
		translations: make(map[Locale]map[string]string),
		logger:       logger,
	}

	tags := make([]language.Tag, 0, len(SupportedLocales))
	for _, loc := range SupportedLocales {
		tags = append(tags, language.MustParse(string(loc)))
	}
	c.matcher = language.NewMatcher(tags)

	for _, loc := range SupportedLocales {
		if err := c.loadLocale(loc); err != nil {
			return fmt.Errorf("loading locale %s: %w", loc, err)
		}
	}

	if err := c.verifyComplete(); err != nil {
		return err
	}

	catalog = c

	if logger != nil {
		logger.Info("i18n initialized", "locales", SupportedLocales)
	}

	return nil
}

// loadLocale loads translations for a specific locale.
func (c *Catalog) loadLocale(loc Locale) error {
	path := fmt.Sprintf("locales/%s/messages.json", loc)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.translations[loc] = make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		c.translations[loc][msg.ID] = msg.Translation
	}

	if c.logger != nil {
		c.logger.Debug("loaded translations", "locale", loc, "count", len(msgFile.Messages))
	}

	return nil
}

// verifyComplete checks that every locale defines every key.
func (c *Catalog) verifyComplete() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	reference := c.translations[DefaultLocale]
	for _, loc := range SupportedLocales {
		msgs := c.translations[loc]
		if len(msgs) != len(reference) {
			return fmt.Errorf("locale %s has %d messages, %s has %d", loc, len(msgs), DefaultLocale, len(reference))
		}
		for key := range reference {
			if _, ok := msgs[key]; !ok {
				return fmt.Errorf("locale %s is missing message %q", loc, key)
			}
		}
	}
	return nil
}

// T translates a message key to the specified locale.
// Catalogs are verified complete at Init, so a missing key means a typo at
// the call site; the key itself is returned to keep rendering total.
// Supports optional arguments for string formatting.
func T(loc Locale, key string, args ...any) string {
	if catalog == nil {
		return key
	}

	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	msgs, ok := catalog.translations[loc]
	if !ok {
		msgs, ok = catalog.translations[DefaultLocale]
		if !ok {
			return key
		}
	}

	translation, ok := msgs[key]
	if !ok {
		if catalog.logger != nil {
			catalog.logger.Warn("unknown message key", "key", key, "locale", loc)
		}
		return key
	}

	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}

	return translation
}

// Messages returns a copy of the full message map for a locale,
// used to hand the SPA its string table in one response.
func Messages(loc Locale) map[string]string {
	if catalog == nil {
		return nil
	}

	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	msgs := catalog.translations[loc]
	out := make(map[string]string, len(msgs))
	for k, v := range msgs {
		out[k] = v
	}
	return out
}

// IsSupported checks if a string names a supported locale.
func IsSupported(s string) bool {
	s = strings.ToLower(s)
	for _, loc := range SupportedLocales {
		if string(loc) == s {
			return true
		}
	}
	return false
}

// ParseLocale maps an arbitrary string onto the closed locale set.
// Anything unrecognized (including a stale persisted value) falls back
// to the default locale.
func ParseLocale(s string) Locale {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, loc := range SupportedLocales {
		if string(loc) == s {
			return loc
		}
	}
	return DefaultLocale
}

// MatchLocale finds the best supported locale for an Accept-Language header
// or bare language code. The boolean reports whether anything matched; on no
// match the default locale is returned so callers that do not care about a
// fallback of their own can use the first value directly.
func MatchLocale(acceptLang string) (Locale, bool) {
	if catalog == nil || acceptLang == "" {
		return DefaultLocale, false
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return DefaultLocale, false
		}
		tags = []language.Tag{tag}
	}

	_, idx, conf := catalog.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(SupportedLocales) {
		return DefaultLocale, false
	}
	return SupportedLocales[idx], true
}
