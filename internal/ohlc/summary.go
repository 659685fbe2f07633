// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ohlc handles CSV price data for the chat client.
//
// This file computes the local summary reported to the user before the
// analyze request completes: record count, time span, and price range.
package ohlc

import (
	"fmt"
	"strconv"
)

// Summary describes a converted record set.
type Summary struct {
	Count          int
	FirstTimestamp string
	LastTimestamp  string
	MinLow         float64 // Minimum of all low values
	MaxHigh        float64 // Maximum of all high values
}

// Summarize scans the full record set and computes its summary.
// An empty record set yields the zero Summary.
func Summarize(records []Record) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	s := Summary{
		Count:          len(records),
		FirstTimestamp: records[0].Timestamp,
		LastTimestamp:  records[len(records)-1].Timestamp,
		MinLow:         records[0].Low,
		MaxHigh:        records[0].High,
	}
	for _, r := range records[1:] {
		if r.Low < s.MinLow {
			s.MinLow = r.Low
		}
		if r.High > s.MaxHigh {
			s.MaxHigh = r.High
		}
	}
	return s
}

// PriceRange renders the low/high span as "$9 - $14".
// Trailing zeros are trimmed so whole prices read naturally.
func (s Summary) PriceRange() string {
	return fmt.Sprintf("$%s - $%s", formatPrice(s.MinLow), formatPrice(s.MaxHigh))
}

// String renders the summary as the system message shown in chat.
func (s Summary) String() string {
	if s.Count == 0 {
		return "No records to analyze."
	}
	return fmt.Sprintf("Prepared %d records for analysis (%s to %s). Price range: %s.",
		s.Count, s.FirstTimestamp, s.LastTimestamp, s.PriceRange())
}

// formatPrice formats a price with the shortest exact representation.
func formatPrice(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
