// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file contains text helpers shared by the renderers: timestamp
// formatting, width-aware wrapping, and truncation.
package chat

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// formatTimestamp formats a message timestamp relative to today:
// time only for today's messages, weekday for this week, full date otherwise.
func formatTimestamp(t time.Time) string {
	now := time.Now()

	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	if now.Sub(t) < 7*24*time.Hour {
		return t.Format("Mon 15:04")
	}
	return t.Format("Jan 2 15:04")
}

// wrapText wraps text at the given display width, preserving existing
// newlines. Words longer than the width are broken mid-word.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

// wrapLine wraps a single line at word boundaries.
func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var wrapped []string
	var current strings.Builder
	currentWidth := 0

	for _, word := range strings.Fields(line) {
		wordWidth := runewidth.StringWidth(word)

		// Break words that cannot fit on a line of their own
		for wordWidth > width {
			head := runewidth.Truncate(word, width, "")
			if current.Len() > 0 {
				wrapped = append(wrapped, current.String())
				current.Reset()
				currentWidth = 0
			}
			wrapped = append(wrapped, head)
			word = word[len(head):]
			wordWidth = runewidth.StringWidth(word)
		}

		if currentWidth > 0 && currentWidth+1+wordWidth > width {
			wrapped = append(wrapped, current.String())
			current.Reset()
			currentWidth = 0
		}
		if currentWidth > 0 {
			current.WriteString(" ")
			currentWidth++
		}
		current.WriteString(word)
		currentWidth += wordWidth
	}

	if current.Len() > 0 {
		wrapped = append(wrapped, current.String())
	}
	if len(wrapped) == 0 {
		return []string{""}
	}
	return wrapped
}

// truncate shortens a string to the given display width with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
