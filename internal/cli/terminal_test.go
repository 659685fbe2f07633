// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/muesli/termenv"
)

func TestGetTerminalWidth_AlwaysPositive(t *testing.T) {
	// Non-TTY environments fall back to the default width
	if w := GetTerminalWidth(); w <= 0 {
		t.Errorf("GetTerminalWidth() = %d, want a positive width", w)
	}
}

func TestColorsEnabled_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if ColorsEnabled() {
		t.Error("ColorsEnabled() = true with NO_COLOR set")
	}
	if p := GetColorProfile(); p != termenv.Ascii {
		t.Errorf("GetColorProfile() = %v, want Ascii with NO_COLOR set", p)
	}
}
