// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/url"
	"strings"
)

// ParseYouTubeID extracts the video ID from the common YouTube URL shapes:
// watch?v=, youtu.be/, /embed/, /shorts/, and /live/. Returns false when the
// URL is not a YouTube link or carries no usable ID.
func ParseYouTubeID(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	switch host {
	case "youtu.be":
		id := strings.Trim(u.Path, "/")
		return id, isYouTubeID(id)
	case "youtube.com", "m.youtube.com", "youtube-nocookie.com":
	default:
		return "", false
	}

	if id := u.Query().Get("v"); id != "" {
		return id, isYouTubeID(id)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) >= 2 {
		switch parts[0] {
		case "embed", "shorts", "live", "v":
			return parts[1], isYouTubeID(parts[1])
		}
	}

	return "", false
}

// isYouTubeID reports whether s looks like a YouTube video ID (11 chars of
// [A-Za-z0-9_-]).
func isYouTubeID(s string) bool {
	if len(s) != 11 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// YouTubeThumbnail returns the standard thumbnail URL for a video ID.
func YouTubeThumbnail(id string) string {
	return "https://i.ytimg.com/vi/" + id + "/hqdefault.jpg"
}

// YouTubeEmbedURL returns the privacy-enhanced embed URL for a video ID.
func YouTubeEmbedURL(id string) string {
	return "https://www.youtube-nocookie.com/embed/" + id
}
