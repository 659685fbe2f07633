// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ohlc handles CSV price data: building a lightweight preview of an
// uploaded file, converting rows into OHLC records for the analysis backend,
// and computing a local summary of the converted records.
package ohlc

import "encoding/json"

// MaxRows is the maximum number of data rows sent to the backend.
// When a file has more, the most recent rows (the tail) are kept.
const MaxRows = 50

// Record is one OHLC bar parsed from a single CSV data row.
// The JSON field names match the price-table keys the backend expects.
type Record struct {
	Timestamp string  `json:"t"`      // Column 0, raw passthrough (RFC 3339 when synthesized)
	Open      float64 `json:"open"`   // Column 1
	High      float64 `json:"high"`   // Column 2
	Low       float64 `json:"low"`    // Column 3
	Close     float64 `json:"close"`  // Column 4
	Volume    float64 `json:"volume"` // Column 5
}

// ToJSON encodes records as a JSON array for the analyze request payload.
func ToJSON(records []Record) (string, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
