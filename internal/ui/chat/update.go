// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file contains the Update function and its handlers: window resizing,
// keyboard input, health probe results, and the completion messages for the
// send and analyze actions.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/candlechat-tui/internal/backend"
)

// Update processes incoming messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case HealthCheckMsg:
		m.status = msg.Report.Status
		m.statusDetail = msg.Report.Detail
		if len(msg.Report.Models) > 0 {
			m.models = msg.Report.Models
		}
		return m, nil

	case healthTickMsg:
		return m, tea.Batch(m.checkBackend(), m.healthTick())

	case ChatResultMsg:
		m.controller.CompleteSend(msg.Gen, msg.Answer, msg.Err)
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil

	case AnalyzeResultMsg:
		m.controller.CompleteAnalyze(msg.Gen, msg.Analysis, msg.Err)
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil

	case ModelsResultMsg:
		return m.handleModelsResult(msg)

	case FileLoadedMsg:
		return m.handleFileLoaded(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m.updateComponents(msg)
}

// =============================================================================
// EVENT HANDLERS
// =============================================================================

// handleResize recalculates the layout.
//
// COUPLING WARNING: the viewport height is derived from the rendered heights
// of the fixed chrome (header, preview, input, status). If a component grows
// a line, this calculation and View() must stay in agreement.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	header := m.renderHeader()
	preview := m.renderPreview()
	input := m.renderInput()
	status := m.renderStatusBar()

	chrome := lipgloss.Height(header) + lipgloss.Height(input) + lipgloss.Height(status)
	if preview != "" {
		chrome += lipgloss.Height(preview)
	}

	viewportHeight := m.height - chrome
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	m.viewport.Width = m.width
	m.viewport.Height = viewportHeight
	m.input.Width = m.width - 6

	wrap := m.width - 8
	if cfgWrap := m.cfg.UI.WrapWidth; cfgWrap > 0 && cfgWrap < wrap {
		wrap = cfgWrap
	}
	m.initRenderer(wrap)

	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// handleKey routes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.controller.Clear()
		m.updateViewport()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.status = backend.StatusChecking
		return m, m.checkBackend()

	case key.Matches(msg, m.keys.Submit):
		return m.submitInput()

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown),
		key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down),
		key.Matches(msg, m.keys.Home), key.Matches(msg, m.keys.End):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		// Any other key dismisses the help overlay
		m.showHelp = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleModelsResult appends the model list (or its failure) to the chat.
func (m Model) handleModelsResult(msg ModelsResultMsg) (tea.Model, tea.Cmd) {
	conv := m.controller.Conversation()
	switch {
	case msg.Err != nil:
		conv.AddSystemMessage("Could not list models: backend unavailable.")
	case len(msg.Models) == 0:
		conv.AddSystemMessage("The backend reports no models installed.")
	default:
		m.models = msg.Models
		conv.AddSystemMessage(fmt.Sprintf("Available models: %s", strings.Join(msg.Models, ", ")))
	}
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// handleFileLoaded stores the selected file and derives its preview.
func (m Model) handleFileLoaded(msg FileLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.controller.Conversation().AddSystemMessage(
			fmt.Sprintf("Could not read %s.", msg.Path))
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil
	}

	m.controller.SelectFile(msg.Path, msg.Text)
	// Preview panel takes chrome space, so the layout shifts
	return m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})
}

// updateComponents forwards unhandled messages to the focused bubbles.
func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}
