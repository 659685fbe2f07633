// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// The view is a standard Bubble Tea model: Update reacts to keyboard input
// and to the typed result messages produced by asynchronous commands, View
// renders the current session state. All session mutation goes through the
// session.Controller; the view never touches the conversation outside of it
// except to append informational system messages for command feedback.
//
// # File Layout
//
//   - model.go: Model struct, constructor, tea.Cmd builders
//   - update.go: Update and its event handlers
//   - view.go: rendering
//   - input.go: input submission, action start
//   - commands.go: slash command registry
//   - keys.go: key bindings
//   - messages.go: tea.Msg definitions
//   - utils.go: text helpers
package chat
