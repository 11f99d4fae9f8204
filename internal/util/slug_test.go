// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "family", "family"},
		{"uppercase", "FAMILY", "family"},
		{"mixed case", "Family", "family"},
		{"leading and trailing spaces", " family ", "family"},
		{"spaces to hyphens", "quiet moments", "quiet-moments"},
		{"punctuation collapsed", "Birthday Party!!", "birthday-party"},
		{"multiple separators", "a  -  b", "a-b"},
		{"accents stripped", "Celebración", "celebracion"},
		{"spanish label", "Momentos tranquilos", "momentos-tranquilos"},
		{"transliteration", "Музыка", "muzyka"},
		{"numbers kept", "summer 2019", "summer-2019"},
		{"already a slug", "quiet-moments", "quiet-moments"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Birthday Party!!", "  family ", "Celebración", "quiet moments"}
	for _, in := range inputs {
		once := Slugify(in)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"family", true},
		{"quiet-moments", true},
		{"summer-2019", true},
		{"", false},
		{"-family", false},
		{"family-", false},
		{"quiet--moments", false},
		{"Family", false},
		{"a b", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidSlug(tt.input); got != tt.expected {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
