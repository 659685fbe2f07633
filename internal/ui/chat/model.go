// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the chat Model, its constructor, and the tea.Cmd
// builders for the asynchronous work (health probes, chat and analyze
// requests, file reads). Rendering lives in view.go, event handling in
// update.go.
package chat

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/candlechat-tui/internal/backend"
	"github.com/jeranaias/candlechat-tui/internal/config"
	"github.com/jeranaias/candlechat-tui/internal/session"
	"github.com/jeranaias/candlechat-tui/internal/ui/styles"
)

// healthProbeTimeout bounds a single health probe so a hung backend cannot
// leave the status stuck at "checking".
const healthProbeTimeout = 5 * time.Second

// =============================================================================
// MODEL
// =============================================================================

// Model is the chat view state.
type Model struct {
	// Dependencies
	cfg        *config.Config
	client     *backend.Client
	theme      *styles.Theme
	controller *session.Controller

	// Connection status
	status       backend.Status
	statusDetail string
	models       []string

	// Bubbles
	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	// Markdown rendering (nil when disabled or unavailable)
	renderer *glamour.TermRenderer

	// Layout
	width    int
	height   int
	showHelp bool

	keys KeyMap
}

// NewModel creates the chat view.
func NewModel(cfg *config.Config, client *backend.Client, theme *styles.Theme) Model {
	input := textinput.New()
	input.Placeholder = "Ask about the market, or /load a CSV file..."
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.TextStyle = theme.InputText
	input.PlaceholderStyle = theme.InputPlaceholder
	input.CharLimit = 4000
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = theme.Spinner

	m := Model{
		cfg:        cfg,
		client:     client,
		theme:      theme,
		controller: session.NewController(),
		status:     backend.StatusChecking,
		viewport:   viewport.New(80, 20),
		input:      input,
		spin:       spin,
		keys:       DefaultKeyMap(),
	}
	m.initRenderer(cfg.UI.WrapWidth)
	return m
}

// initRenderer builds the glamour renderer for assistant messages.
// Rendering is skipped entirely when disabled in config or when the
// renderer cannot be constructed.
func (m *Model) initRenderer(wrap int) {
	if !m.cfg.UI.Markdown {
		m.renderer = nil
		return
	}
	if wrap <= 0 {
		wrap = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = r
}

// Init starts the first health probe, the probe timer, and input blinking.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.checkBackend(),
		m.healthTick(),
		textinput.Blink,
		m.spin.Tick,
	)
}

// Controller exposes the session controller, mainly for tests.
func (m Model) Controller() *session.Controller {
	return m.controller
}

// Status returns the current backend connection status.
func (m Model) Status() backend.Status {
	return m.status
}

// =============================================================================
// COMMANDS
// =============================================================================

// checkBackend probes the health endpoint off the update loop.
// The client is captured before the closure to avoid racing on the model.
func (m Model) checkBackend() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthProbeTimeout)
		defer cancel()
		return HealthCheckMsg{Report: client.CheckHealth(ctx)}
	}
}

// healthTick schedules the next periodic health probe.
func (m Model) healthTick() tea.Cmd {
	return tea.Tick(m.cfg.HealthInterval(), func(t time.Time) tea.Msg {
		return healthTickMsg(t)
	})
}

// sendChat performs the chat request for a started send action.
func (m Model) sendChat(gen uint64, prompt string) tea.Cmd {
	client := m.client
	timeout := m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		answer, err := client.Chat(ctx, prompt)
		return ChatResultMsg{Gen: gen, Answer: answer, Err: err}
	}
}

// sendAnalyze performs the analyze request for a started analyze action.
func (m Model) sendAnalyze(gen uint64, req session.AnalyzeRequest) tea.Cmd {
	client := m.client
	timeout := m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		analysis, err := client.Analyze(ctx, req.Question, req.OhlcJSON)
		return AnalyzeResultMsg{Gen: gen, Analysis: analysis, Err: err}
	}
}

// listModels fetches the backend's model list.
func (m Model) listModels() tea.Cmd {
	client := m.client
	timeout := m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		models, err := client.ListModels(ctx)
		return ModelsResultMsg{Models: models, Err: err}
	}
}

// loadFile reads a CSV file from disk off the update loop.
func loadFile(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return FileLoadedMsg{Path: path, Err: err}
		}
		return FileLoadedMsg{Path: path, Text: string(data)}
	}
}
