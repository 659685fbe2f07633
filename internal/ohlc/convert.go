// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ohlc handles CSV price data for the chat client.
//
// This file implements the CSV to OHLC conversion: header dropped, the most
// recent MaxRows rows kept, columns addressed strictly by position.
package ohlc

import (
	"strconv"
	"strings"
	"time"
)

// Convert parses CSV text into OHLC records.
//
// The header line is dropped. When more than MaxRows data rows remain, only
// the last MaxRows are kept — the system models recent price history, so the
// tail of the file wins over the head. Row order is preserved as-is; no
// re-sorting by timestamp happens.
//
// Parsing is forgiving: numeric columns that fail to parse become 0, a
// missing or empty timestamp is replaced with the current wall-clock time
// from now. Malformed rows never abort the conversion.
func Convert(text string, now func() time.Time) []Record {
	if now == nil {
		now = time.Now
	}

	lines := splitLines(text)
	if len(lines) <= 1 {
		return nil
	}

	rows := lines[1:]
	if len(rows) > MaxRows {
		rows = rows[len(rows)-MaxRows:]
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		cols := strings.Split(row, ",")

		ts := strings.TrimSpace(column(cols, 0))
		if ts == "" {
			ts = now().Format(time.RFC3339)
		}

		records = append(records, Record{
			Timestamp: ts,
			Open:      parseFloat(column(cols, 1)),
			High:      parseFloat(column(cols, 2)),
			Low:       parseFloat(column(cols, 3)),
			Close:     parseFloat(column(cols, 4)),
			Volume:    parseFloat(column(cols, 5)),
		})
	}
	return records
}

// column returns cols[i], or "" when the row has fewer columns.
func column(cols []string, i int) string {
	if i < len(cols) {
		return cols[i]
	}
	return ""
}

// parseFloat coerces a CSV field to float64, falling back to 0 on failure.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
