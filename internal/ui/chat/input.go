// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file implements input submission: slash commands are routed to the
// command registry, everything else starts a send action through the
// session controller.
package chat

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/candlechat-tui/internal/session"
)

// submitInput processes the current input box content.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	content := m.input.Value()

	// Slash commands bypass the chat pipeline
	if strings.HasPrefix(strings.TrimSpace(content), "/") {
		return m.handleCommand(content)
	}

	gen, prompt, err := m.controller.BeginSend(content)
	if err != nil {
		// Empty input and busy rejection are both silent no-ops; the status
		// bar already shows the in-flight state.
		return m, nil
	}

	m.input.Reset()
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, m.sendChat(gen, prompt)
}

// startAnalyze begins the analyze action for the selected file.
func (m Model) startAnalyze() (tea.Model, tea.Cmd) {
	gen, req, err := m.controller.BeginAnalyze(m.input.Value())
	if errors.Is(err, session.ErrNoData) {
		m.controller.Conversation().AddSystemMessage(
			"The selected CSV has no data rows to analyze.")
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil
	}
	if err != nil {
		// No file selected or an action already in flight
		return m, nil
	}

	m.input.Reset()
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, m.sendAnalyze(gen, req)
}
