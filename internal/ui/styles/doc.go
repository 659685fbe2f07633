// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the TUI application.

This package defines the color palette and the Theme of pre-built Lip Gloss
styles used throughout the application. All colors use AdaptiveColor for
automatic light/dark terminal detection.

# Color System (colors.go)

  - Purple - Primary accent for assistant messages
  - Cyan - Brand color for info, commands, and user highlights
  - Emerald - Connected status
  - Amber - Checking and warning states
  - Rose - Errors and disconnected status

# Theme System (theme.go)

The Theme struct provides runtime color adaptation:

	theme := styles.NewTheme()
	if theme.IsDark {
		// Dark terminal detected
	}

NewTheme detects the terminal's color profile and builds every style once at
startup. Components take a *Theme rather than constructing styles per frame.
*/
package styles
