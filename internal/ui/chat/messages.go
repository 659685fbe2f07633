// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the Bubble Tea messages the chat view reacts to. Every
// asynchronous outcome (health probe, chat reply, analysis reply, file read)
// arrives as one of these typed messages on the update loop.
package chat

import (
	"time"

	"github.com/jeranaias/candlechat-tui/internal/backend"
)

// =============================================================================
// CONNECTION MESSAGES
// =============================================================================

// HealthCheckMsg carries the outcome of a backend health probe.
type HealthCheckMsg struct {
	Report backend.HealthReport
}

// healthTickMsg fires the periodic background health probe.
type healthTickMsg time.Time

// =============================================================================
// ACTION RESULT MESSAGES
// =============================================================================

// ChatResultMsg carries the outcome of a chat request.
// Gen ties the result back to the action that started it.
type ChatResultMsg struct {
	Gen    uint64
	Answer string
	Err    error
}

// AnalyzeResultMsg carries the outcome of an analyze request.
type AnalyzeResultMsg struct {
	Gen      uint64
	Analysis string
	Err      error
}

// ModelsResultMsg carries the backend's advertised model list.
type ModelsResultMsg struct {
	Models []string
	Err    error
}

// =============================================================================
// FILE MESSAGES
// =============================================================================

// FileLoadedMsg carries the text of a CSV file read from disk.
type FileLoadedMsg struct {
	Path string
	Text string
	Err  error
}
