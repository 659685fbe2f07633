// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file implements the command handler registry: each slash command maps
// to an individual, testable handler function.
package chat

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/candlechat-tui/internal/backend"
)

// =============================================================================
// COMMAND HANDLER REGISTRY
// =============================================================================

// CommandHandler is a function that handles a specific command.
// It receives the model and command arguments, and returns an updated model
// and command.
type CommandHandler func(m *Model, args []string) (tea.Model, tea.Cmd)

// commandHandlers maps command names to their handler functions.
var commandHandlers = map[string]CommandHandler{
	// Help & Meta
	"help": handleHelpCommand,
	"h":    handleHelpCommand,
	"?":    handleHelpCommand,
	"quit": handleQuitCommand,
	"q":    handleQuitCommand,
	"exit": handleQuitCommand,

	// Session
	"clear": handleClearCommand,
	"c":     handleClearCommand,

	// CSV workflow
	"load":    handleLoadCommand,
	"l":       handleLoadCommand,
	"unload":  handleUnloadCommand,
	"analyze": handleAnalyzeCommand,
	"a":       handleAnalyzeCommand,

	// Backend
	"status": handleStatusCommand,
	"models": handleModelsCommand,
	"m":      handleModelsCommand,
}

// handleCommand processes slash commands using the command registry.
func (m Model) handleCommand(content string) (tea.Model, tea.Cmd) {
	m.input.Reset()

	parts := strings.Fields(content)
	if len(parts) == 0 {
		return m, nil
	}

	cmdName := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	args := parts[1:]

	handler, ok := commandHandlers[cmdName]
	if !ok {
		m.controller.Conversation().AddSystemMessage(
			fmt.Sprintf("Unknown command: /%s. Try /help.", cmdName))
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil
	}

	return handler(&m, args)
}

// =============================================================================
// HELP & META COMMANDS
// =============================================================================

func handleHelpCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	m.showHelp = !m.showHelp
	return *m, nil
}

func handleQuitCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	return *m, tea.Quit
}

// =============================================================================
// SESSION COMMANDS
// =============================================================================

func handleClearCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	m.controller.Clear()
	m.updateViewport()
	return *m, nil
}

// =============================================================================
// CSV COMMANDS
// =============================================================================

func handleLoadCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		m.controller.Conversation().AddSystemMessage("Usage: /load <path-to-csv>")
		m.updateViewport()
		m.viewport.GotoBottom()
		return *m, nil
	}
	// Paths may contain spaces; everything after the command is the path
	path := strings.Join(args, " ")
	return *m, loadFile(path)
}

func handleUnloadCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	m.controller.ClearFile()
	return m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})
}

func handleAnalyzeCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	if m.controller.FilePath() == "" {
		m.controller.Conversation().AddSystemMessage("No CSV selected. Use /load <path> first.")
		m.updateViewport()
		m.viewport.GotoBottom()
		return *m, nil
	}
	return m.startAnalyze()
}

// =============================================================================
// BACKEND COMMANDS
// =============================================================================

func handleStatusCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	m.status = backend.StatusChecking
	return *m, m.checkBackend()
}

func handleModelsCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	return *m, m.listModels()
}
