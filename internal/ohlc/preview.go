// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ohlc handles CSV price data for the chat client.
//
// This file implements the file preview shown after a CSV is selected:
// the header columns, the first few data rows, and the total row count.
package ohlc

import "strings"

// PreviewRows is how many data rows the preview shows.
const PreviewRows = 5

// Preview is the lightweight view of a selected CSV file.
// The zero value represents "no file selected".
type Preview struct {
	Headers    []string // Header row split on commas
	Rows       []string // Up to PreviewRows raw data lines
	TotalLines int      // Data row count (header excluded)
}

// IsEmpty reports whether the preview represents a cleared state.
func (p Preview) IsEmpty() bool {
	return len(p.Headers) == 0 && len(p.Rows) == 0 && p.TotalLines == 0
}

// BuildPreview derives a Preview from raw file text.
//
// The split is deliberately naive: headers are separated on every comma with
// no quote or escape handling. A comma inside a quoted field becomes a column
// boundary. This matches the positional contract the converter uses.
func BuildPreview(text string) Preview {
	lines := splitLines(text)
	if len(lines) == 0 {
		return Preview{}
	}

	headers := strings.Split(lines[0], ",")
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	end := 1 + PreviewRows
	if end > len(lines) {
		end = len(lines)
	}

	return Preview{
		Headers:    headers,
		Rows:       lines[1:end],
		TotalLines: len(lines) - 1,
	}
}

// splitLines breaks text into trimmed, non-empty lines.
// Blank lines anywhere in the file are dropped, not counted.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
