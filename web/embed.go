// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the site data: the photo catalog, the photo translation
// overlay, and the book announcement markdown.
package web

import (
	"embed"
	"io/fs"
)

//go:embed data/photos.json
var PhotosJSON []byte

//go:embed data/media_translations.json
var MediaTranslationsJSON []byte

//go:embed all:data/book
var bookFS embed.FS

// BookFS returns the per-locale book markdown files ("es.md", "en.md").
func BookFS() fs.FS {
	sub, err := fs.Sub(bookFS, "data/book")
	if err != nil {
		panic(err)
	}
	return sub
}
