// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ohlc

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// PREVIEW TESTS
// =============================================================================

func TestBuildPreview(t *testing.T) {
	text := "timestamp,open,high,low,close,volume\n" +
		"t1,10,12,9,11,100\n" +
		"t2,11,13,10,12,110\n"

	p := BuildPreview(text)

	if len(p.Headers) != 6 {
		t.Errorf("Headers len = %d, want 6", len(p.Headers))
	}
	if p.Headers[0] != "timestamp" || p.Headers[5] != "volume" {
		t.Errorf("Headers = %v, want timestamp..volume", p.Headers)
	}
	if len(p.Rows) != 2 {
		t.Errorf("Rows len = %d, want 2", len(p.Rows))
	}
	if p.Rows[0] != "t1,10,12,9,11,100" {
		t.Errorf("Rows[0] = %q, want raw line", p.Rows[0])
	}
	if p.TotalLines != 2 {
		t.Errorf("TotalLines = %d, want 2", p.TotalLines)
	}
}

func TestBuildPreviewCapsAtFiveRows(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("timestamp,open,high,low,close,volume\n")
	for i := 0; i < 9; i++ {
		fmt.Fprintf(&sb, "t%d,1,2,1,2,10\n", i)
	}

	p := BuildPreview(sb.String())

	if len(p.Rows) != PreviewRows {
		t.Errorf("Rows len = %d, want %d", len(p.Rows), PreviewRows)
	}
	if p.TotalLines != 9 {
		t.Errorf("TotalLines = %d, want 9", p.TotalLines)
	}
}

func TestBuildPreviewEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty input", ""},
		{"whitespace only", "   \n\n  \t\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPreview(tt.text)
			if !p.IsEmpty() {
				t.Errorf("BuildPreview(%q) = %+v, want empty preview", tt.text, p)
			}
		})
	}
}

func TestBuildPreviewNaiveCommaSplit(t *testing.T) {
	// Quoted fields are not honored; every comma is a separator.
	p := BuildPreview(`"a,b",open` + "\nx,1\n")
	if len(p.Headers) != 3 {
		t.Errorf("Headers len = %d, want 3 (naive split)", len(p.Headers))
	}
}

func TestBuildPreviewSkipsBlankLines(t *testing.T) {
	p := BuildPreview("h1,h2\n\nrow1,1\n\n\nrow2,2\n")
	if p.TotalLines != 2 {
		t.Errorf("TotalLines = %d, want 2 (blank lines skipped)", p.TotalLines)
	}
}

// =============================================================================
// CONVERTER TESTS
// =============================================================================

func TestConvertBasic(t *testing.T) {
	text := "timestamp,open,high,low,close,volume\n" +
		"t1,10,12,9,11,100\n" +
		"t2,11,13,10,12,110\n" +
		"t3,12,14,11,13,120\n"

	records := Convert(text, nil)

	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	want := Record{Timestamp: "t2", Open: 11, High: 13, Low: 10, Close: 12, Volume: 110}
	if records[1] != want {
		t.Errorf("records[1] = %+v, want %+v", records[1], want)
	}
	if records[0].Timestamp != "t1" || records[2].Timestamp != "t3" {
		t.Errorf("record order = %q,%q,%q, want t1,t2,t3",
			records[0].Timestamp, records[1].Timestamp, records[2].Timestamp)
	}
}

func TestConvertKeepsLastRows(t *testing.T) {
	tests := []struct {
		name      string
		dataRows  int
		wantCount int
		wantFirst string
		wantLast  string
	}{
		{"under cap", 10, 10, "t0", "t9"},
		{"at cap", 50, 50, "t0", "t49"},
		{"over cap keeps tail", 80, 50, "t30", "t79"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			sb.WriteString("timestamp,open,high,low,close,volume\n")
			for i := 0; i < tt.dataRows; i++ {
				fmt.Fprintf(&sb, "t%d,1,2,1,2,10\n", i)
			}

			records := Convert(sb.String(), nil)

			if len(records) != tt.wantCount {
				t.Fatalf("len(records) = %d, want %d", len(records), tt.wantCount)
			}
			if records[0].Timestamp != tt.wantFirst {
				t.Errorf("first timestamp = %q, want %q", records[0].Timestamp, tt.wantFirst)
			}
			if records[len(records)-1].Timestamp != tt.wantLast {
				t.Errorf("last timestamp = %q, want %q", records[len(records)-1].Timestamp, tt.wantLast)
			}
		})
	}
}

func TestConvertCoercesBadNumbers(t *testing.T) {
	text := "timestamp,open,high,low,close,volume\n" +
		"t1,abc,12,,11,n/a\n"

	records := Convert(text, nil)

	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	r := records[0]
	if r.Open != 0 || r.Low != 0 || r.Volume != 0 {
		t.Errorf("coerced fields = open %v, low %v, volume %v, want all 0", r.Open, r.Low, r.Volume)
	}
	if r.High != 12 || r.Close != 11 {
		t.Errorf("valid fields = high %v, close %v, want 12, 11", r.High, r.Close)
	}
}

func TestConvertSynthesizesTimestamp(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return fixed }

	records := Convert("timestamp,open,high,low,close,volume\n,10,12,9,11,100\n", now)

	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].Timestamp != fixed.Format(time.RFC3339) {
		t.Errorf("Timestamp = %q, want %q", records[0].Timestamp, fixed.Format(time.RFC3339))
	}
}

func TestConvertShortRows(t *testing.T) {
	records := Convert("timestamp,open\nt1,10\n", nil)
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	r := records[0]
	if r.Open != 10 || r.High != 0 || r.Volume != 0 {
		t.Errorf("short row = %+v, want missing columns as 0", r)
	}
}

func TestConvertEmptyInput(t *testing.T) {
	if records := Convert("", nil); records != nil {
		t.Errorf("Convert(empty) = %v, want nil", records)
	}
	if records := Convert("timestamp,open,high,low,close,volume\n", nil); records != nil {
		t.Errorf("Convert(header only) = %v, want nil", records)
	}
}

// =============================================================================
// SUMMARY TESTS
// =============================================================================

func TestSummarizeScenario(t *testing.T) {
	text := "timestamp,open,high,low,close,volume\n" +
		"t1,10,12,9,11,100\n" +
		"t2,11,13,10,12,110\n" +
		"t3,12,14,11,13,120\n"

	records := Convert(text, nil)
	s := Summarize(records)

	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if s.FirstTimestamp != "t1" || s.LastTimestamp != "t3" {
		t.Errorf("span = %q to %q, want t1 to t3", s.FirstTimestamp, s.LastTimestamp)
	}
	if s.MinLow != 9 || s.MaxHigh != 14 {
		t.Errorf("range = [%v, %v], want [9, 14]", s.MinLow, s.MaxHigh)
	}
	if s.PriceRange() != "$9 - $14" {
		t.Errorf("PriceRange() = %q, want \"$9 - $14\"", s.PriceRange())
	}
	if !strings.Contains(s.String(), "$9 - $14") {
		t.Errorf("String() = %q, want it to contain the price range", s.String())
	}
}

func TestSummarizeSingleRecord(t *testing.T) {
	s := Summarize([]Record{{Timestamp: "t1", Open: 10, High: 12, Low: 9, Close: 11}})
	if s.MinLow != 9 || s.MaxHigh != 12 {
		t.Errorf("single record range = [%v, %v], want [9, 12]", s.MinLow, s.MaxHigh)
	}
	if s.FirstTimestamp != s.LastTimestamp {
		t.Errorf("single record span = %q to %q, want equal", s.FirstTimestamp, s.LastTimestamp)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 {
		t.Errorf("Count = %d, want 0", s.Count)
	}
	if s.String() != "No records to analyze." {
		t.Errorf("String() = %q", s.String())
	}
}

func TestPriceRangeTrimsZeros(t *testing.T) {
	s := Summary{MinLow: 9.5, MaxHigh: 14}
	if got := s.PriceRange(); got != "$9.5 - $14" {
		t.Errorf("PriceRange() = %q, want \"$9.5 - $14\"", got)
	}
}

// =============================================================================
// JSON PAYLOAD TESTS
// =============================================================================

func TestToJSON(t *testing.T) {
	payload, err := ToJSON([]Record{{Timestamp: "t1", Open: 10, High: 12, Low: 9, Close: 11, Volume: 100}})
	if err != nil {
		t.Fatalf("ToJSON error: %v", err)
	}
	for _, key := range []string{`"t":"t1"`, `"open":10`, `"high":12`, `"low":9`, `"close":11`, `"volume":100`} {
		if !strings.Contains(payload, key) {
			t.Errorf("payload %q missing %q", payload, key)
		}
	}
}
