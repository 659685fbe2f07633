// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file contains all rendering logic for the chat interface: the main
// layout, message bubbles per role, the CSV preview panel, the input area,
// the status bar, and the help overlay.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/candlechat-tui/internal/backend"
	"github.com/jeranaias/candlechat-tui/internal/model"
)

// View renders the complete chat view.
// Layout: header + [preview panel] + messages (viewport) + input + status.
// Total height must equal m.height exactly to prevent overflow.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	header := m.renderHeader()
	preview := m.renderPreview()
	input := m.renderInput()
	status := m.renderStatusBar()
	messages := m.viewport.View()

	sections := make([]string, 0, 5)
	sections = append(sections, header)
	if preview != "" {
		sections = append(sections, preview)
	}
	sections = append(sections, messages, input, status)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// =============================================================================
// CHROME
// =============================================================================

// renderHeader renders the one-line application header.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("candlechat")
	subtitle := m.theme.HeaderSubtitle.Render("local market analysis")
	line := title + "  " + subtitle
	return m.theme.StatusBar.Width(m.width).Render(line)
}

// renderPreview renders the CSV preview panel, or "" when no file is selected.
func (m Model) renderPreview() string {
	p := m.controller.Preview()
	if p.IsEmpty() {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.PreviewHeader.Render(strings.Join(p.Headers, " | ")))
	b.WriteString("\n")
	for _, row := range p.Rows {
		b.WriteString(m.theme.PreviewRow.Render(truncate(row, m.width-6)))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.PreviewMeta.Render(
		fmt.Sprintf("%s — %d data rows", m.controller.FilePath(), p.TotalLines)))

	return m.theme.PreviewBox.Width(m.width - 2).Render(b.String())
}

// renderInput renders the input area.
func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width).Render(m.input.View())
}

// renderStatusBar renders the bottom status line: connection badge, busy
// indicator, selected file, and key hints.
func (m Model) renderStatusBar() string {
	badge := m.statusBadge()

	var parts []string
	parts = append(parts, badge)

	if m.controller.Busy() {
		parts = append(parts, m.spin.View()+m.theme.ThinkingText.Render("waiting for backend..."))
	}

	if path := m.controller.FilePath(); path != "" {
		parts = append(parts, m.theme.ShortcutDesc.Render("file: "+path))
	}

	if len(m.models) > 0 {
		parts = append(parts, m.theme.ShortcutDesc.Render(
			fmt.Sprintf("%d model(s)", len(m.models))))
	}

	hints := m.theme.ShortcutKey.Render("C-h") + m.theme.ShortcutDesc.Render(" help ") +
		m.theme.ShortcutKey.Render("C-r") + m.theme.ShortcutDesc.Render(" recheck ") +
		m.theme.ShortcutKey.Render("C-c") + m.theme.ShortcutDesc.Render(" quit")
	parts = append(parts, hints)

	return m.theme.StatusBar.Width(m.width).Render(strings.Join(parts, "  "))
}

// statusBadge renders the connection status with its semantic color.
func (m Model) statusBadge() string {
	label := m.status.Label()
	switch m.status {
	case backend.StatusConnected:
		return m.theme.StatusConnected.Render("● " + label)
	case backend.StatusDisconnected:
		return m.theme.StatusDisconnected.Render("● " + label)
	case backend.StatusError:
		if m.statusDetail != "" {
			label += " (" + truncate(m.statusDetail, 40) + ")"
		}
		return m.theme.StatusError.Render("● " + label)
	default:
		return m.theme.StatusChecking.Render("● " + label)
	}
}

// =============================================================================
// MESSAGES
// =============================================================================

// updateViewport rebuilds the viewport content from the conversation.
func (m *Model) updateViewport() {
	history := m.controller.Conversation().GetHistory()
	if len(history) == 0 {
		m.viewport.SetContent(m.theme.ThinkingText.Render(
			"Type a message, or /load a CSV of OHLC data to analyze."))
		return
	}

	var b strings.Builder
	for i, msg := range history {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}

// renderMessage renders one message bubble with its sender and timestamp.
func (m Model) renderMessage(msg *model.Message) string {
	meta := m.theme.ShortcutDesc.Render(
		msg.Role.DisplayName() + " · " + formatTimestamp(msg.Timestamp))

	wrap := m.viewport.Width - 10
	if wrap < 20 {
		wrap = 20
	}

	switch msg.Role {
	case model.RoleUser:
		body := m.theme.UserBubble.Render(wrapText(msg.Content, wrap))
		return lipgloss.JoinVertical(lipgloss.Right, meta, body)
	case model.RoleSystem:
		return m.theme.SystemBubble.Render(wrapText(msg.Content, wrap))
	default:
		return lipgloss.JoinVertical(lipgloss.Left, meta,
			m.theme.AssistantBubble.Render(m.renderAssistantContent(msg.Content, wrap)))
	}
}

// renderAssistantContent renders assistant markdown via glamour when enabled,
// falling back to plain wrapped text.
func (m Model) renderAssistantContent(content string, wrap int) string {
	if content == "" {
		return m.theme.ThinkingText.Render("(empty response)")
	}
	if m.renderer != nil {
		if out, err := m.renderer.Render(content); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return wrapText(content, wrap)
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

// renderHelpOverlay renders the full-screen help view.
func (m Model) renderHelpOverlay() string {
	rows := []struct{ cmd, desc string }{
		{"/load <path>", "select a CSV file of OHLC data"},
		{"/analyze", "send the selected CSV for analysis"},
		{"/unload", "deselect the CSV file"},
		{"/models", "list models available on the backend"},
		{"/status", "re-check the backend connection"},
		{"/clear", "clear the conversation"},
		{"/quit", "exit"},
	}

	var b strings.Builder
	b.WriteString(m.theme.HeaderTitle.Render("Commands"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			m.theme.ShortcutKey.Render(fmt.Sprintf("%-14s", r.cmd)),
			m.theme.ShortcutDesc.Render(r.desc)))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.ShortcutDesc.Render(
		"CSV format: timestamp,open,high,low,close,volume (header row first).\n" +
			"Only the most recent 50 rows are sent for analysis."))
	b.WriteString("\n\n")
	b.WriteString(m.theme.ThinkingText.Render("Press any key to close."))

	box := m.theme.ErrorBox.BorderForeground(m.theme.HeaderTitle.GetForeground()).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
