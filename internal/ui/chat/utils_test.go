// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"
	"time"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		check func(t *testing.T, got string)
	}{
		{
			name:  "short text unchanged",
			text:  "hello",
			width: 20,
			check: func(t *testing.T, got string) {
				if got != "hello" {
					t.Errorf("got %q, want unchanged", got)
				}
			},
		},
		{
			name:  "wraps at word boundary",
			text:  "one two three four",
			width: 9,
			check: func(t *testing.T, got string) {
				for _, line := range strings.Split(got, "\n") {
					if len(line) > 9 {
						t.Errorf("line %q exceeds width", line)
					}
				}
			},
		},
		{
			name:  "breaks overlong word",
			text:  "abcdefghijklmnop",
			width: 5,
			check: func(t *testing.T, got string) {
				if !strings.Contains(got, "\n") {
					t.Errorf("got %q, want broken word", got)
				}
			},
		},
		{
			name:  "preserves existing newlines",
			text:  "a\nb",
			width: 20,
			check: func(t *testing.T, got string) {
				if got != "a\nb" {
					t.Errorf("got %q, want newlines preserved", got)
				}
			},
		},
		{
			name:  "zero width is passthrough",
			text:  "anything",
			width: 0,
			check: func(t *testing.T, got string) {
				if got != "anything" {
					t.Errorf("got %q, want passthrough", got)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, wrapText(tc.text, tc.width))
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q, want unchanged", got)
	}
	got := truncate("a rather long string", 10)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncate = %q, want '...' suffix", got)
	}
}

func TestFormatTimestamp(t *testing.T) {
	now := time.Now()

	today := formatTimestamp(now)
	if strings.Contains(today, "Jan") || strings.Contains(today, "Mon") {
		// Today's messages show the clock time only
		if len(today) != 5 {
			t.Errorf("formatTimestamp(now) = %q, want HH:MM", today)
		}
	}

	old := formatTimestamp(now.AddDate(0, -2, 0))
	if !strings.Contains(old, " ") {
		t.Errorf("formatTimestamp(old) = %q, want a dated format", old)
	}
}
