// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseYouTubeID(t *testing.T) {
	tests := []struct {
		url    string
		wantID string
		wantOK bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtube.com/watch?v=dQw4w9WgXcQ&t=30s", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://vimeo.com/123456", "", false},
		{"https://www.youtube.com/watch?v=short", "", false},
		{"/uploads/videos/family.mp4", "", false},
		{"not a url", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		id, ok := ParseYouTubeID(tt.url)
		assert.Equal(t, tt.wantOK, ok, "url %q", tt.url)
		if tt.wantOK {
			assert.Equal(t, tt.wantID, id, "url %q", tt.url)
		}
	}
}

func TestYouTubeURLs(t *testing.T) {
	assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", YouTubeThumbnail("dQw4w9WgXcQ"))
	assert.Equal(t, "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", YouTubeEmbedURL("dQw4w9WgXcQ"))
}
