// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"gabysite/internal/i18n"
)

// releaseDateToken is the placeholder replaced in the book markdown.
const releaseDateToken = "{{releaseDate}}"

// spanishMonths maps time.Month to Spanish month names.
var spanishMonths = [...]string{
	"", "enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Book is the rendered book announcement for one locale.
type Book struct {
	HTML        string `json:"html"`
	ReleaseDate string `json:"releaseDate"`
}

// BookService renders the per-locale book announcement markdown.
type BookService struct {
	files       fs.FS
	releaseDate time.Time
	md          goldmark.Markdown
	sanitizer   *bluemonday.Policy

	mu       sync.Mutex
	rendered map[i18n.Locale]*Book
}

// NewBookService creates a book service over the embedded book files
// (one markdown file per locale, named <locale>.md).
func NewBookService(files fs.FS, releaseDate time.Time) *BookService {
	return &BookService{
		files:       files,
		releaseDate: releaseDate,
		md: goldmark.New(
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		sanitizer: bluemonday.UGCPolicy(),
		rendered:  make(map[i18n.Locale]*Book),
	}
}

// Get returns the rendered book announcement for a locale. Rendering happens
// once per locale; the markdown is embedded and never changes at runtime.
func (s *BookService) Get(loc i18n.Locale) (*Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if book, ok := s.rendered[loc]; ok {
		return book, nil
	}

	source, err := fs.ReadFile(s.files, string(loc)+".md")
	if err != nil {
		return nil, fmt.Errorf("reading book markdown for %q: %w", loc, err)
	}

	releaseDate := FormatDate(s.releaseDate, loc)
	markdown := strings.ReplaceAll(string(source), releaseDateToken, releaseDate)

	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("rendering book markdown for %q: %w", loc, err)
	}

	book := &Book{
		HTML:        string(s.sanitizer.SanitizeBytes(buf.Bytes())),
		ReleaseDate: releaseDate,
	}
	s.rendered[loc] = book
	return book, nil
}

// FormatDate renders a date in the locale's long form:
// "2 de agosto de 2026" for Spanish, "August 2, 2026" for English.
func FormatDate(t time.Time, loc i18n.Locale) string {
	if loc == i18n.LocaleES {
		return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()], t.Year())
	}
	return t.Format("January 2, 2006")
}
