// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/candlechat-tui/internal/backend"
	"github.com/jeranaias/candlechat-tui/internal/config"
	"github.com/jeranaias/candlechat-tui/internal/model"
	"github.com/jeranaias/candlechat-tui/internal/ui/styles"
)

const sampleCSV = "timestamp,open,high,low,close,volume\n" +
	"t1,10,12,9,11,100\n" +
	"t2,11,13,10,12,110\n" +
	"t3,12,14,11,13,120\n"

func newTestModel() Model {
	cfg := config.Default()
	cfg.UI.Markdown = false // keep tests independent of terminal detection
	m := NewModel(cfg, backend.NewClient(), styles.NewTheme())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func TestHealthCheckMsg_UpdatesStatus(t *testing.T) {
	m := newTestModel()

	if m.Status() != backend.StatusChecking {
		t.Fatalf("initial status = %v, want checking", m.Status())
	}

	updated, _ := m.Update(HealthCheckMsg{Report: backend.HealthReport{
		Status: backend.StatusConnected,
		Models: []string{"gemma3:4b"},
	}})
	m = updated.(Model)

	if m.Status() != backend.StatusConnected {
		t.Errorf("status = %v, want connected", m.Status())
	}

	updated, _ = m.Update(HealthCheckMsg{Report: backend.HealthReport{
		Status: backend.StatusDisconnected,
		Detail: "connection refused",
	}})
	m = updated.(Model)

	if m.Status() != backend.StatusDisconnected {
		t.Errorf("status = %v, want disconnected", m.Status())
	}
}

func TestChatResult_CompletesAction(t *testing.T) {
	m := newTestModel()

	gen, _, err := m.Controller().BeginSend("hello")
	if err != nil {
		t.Fatalf("BeginSend: %v", err)
	}

	updated, _ := m.Update(ChatResultMsg{Gen: gen, Answer: "hi"})
	m = updated.(Model)

	history := m.Controller().Conversation().GetHistory()
	if len(history) != 2 {
		t.Fatalf("history len = %d, want 2", len(history))
	}
	if history[1].Role != model.RoleAssistant || history[1].Content != "hi" {
		t.Errorf("last message = %+v, want assistant 'hi'", history[1])
	}
	if m.Controller().Busy() {
		t.Error("controller should be idle after completion")
	}
}

func TestFileLoadedMsg_SelectsFile(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(FileLoadedMsg{Path: "prices.csv", Text: sampleCSV})
	m = updated.(Model)

	if m.Controller().FilePath() != "prices.csv" {
		t.Errorf("FilePath = %q, want prices.csv", m.Controller().FilePath())
	}
	if m.Controller().Preview().TotalLines != 3 {
		t.Errorf("preview TotalLines = %d, want 3", m.Controller().Preview().TotalLines)
	}
	if !strings.Contains(m.View(), "prices.csv") {
		t.Error("view should show the selected file")
	}
}

func TestFileLoadedMsg_ReadError(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(FileLoadedMsg{Path: "missing.csv", Err: errFake})
	m = updated.(Model)

	history := m.Controller().Conversation().GetHistory()
	if len(history) != 1 || history[0].Role != model.RoleSystem {
		t.Fatalf("history = %+v, want one system message", history)
	}
	if m.Controller().FilePath() != "" {
		t.Error("failed read must not select a file")
	}
}

func TestHandleCommand_Unknown(t *testing.T) {
	m := newTestModel()

	updated, _ := m.handleCommand("/bogus")
	m = updated.(Model)

	history := m.Controller().Conversation().GetHistory()
	if len(history) != 1 || !strings.Contains(history[0].Content, "Unknown command") {
		t.Errorf("history = %+v, want unknown-command message", history)
	}
}

func TestHandleCommand_AnalyzeWithoutFile(t *testing.T) {
	m := newTestModel()

	updated, cmd := m.handleCommand("/analyze")
	m = updated.(Model)

	if cmd != nil {
		t.Error("analyze without a file must not issue a request")
	}
	history := m.Controller().Conversation().GetHistory()
	if len(history) != 1 || !strings.Contains(history[0].Content, "No CSV selected") {
		t.Errorf("history = %+v, want guidance message", history)
	}
}

func TestHandleCommand_AnalyzeHeaderOnlyCsv(t *testing.T) {
	m := newTestModel()
	m.Controller().SelectFile("empty.csv", "timestamp,open,high,low,close,volume\n")

	updated, cmd := m.handleCommand("/analyze")
	m = updated.(Model)

	if cmd != nil {
		t.Error("analyze with no data rows must not issue a request")
	}
	if m.Controller().Busy() {
		t.Error("session must stay idle")
	}
	history := m.Controller().Conversation().GetHistory()
	if len(history) != 1 || !strings.Contains(history[0].Content, "no data rows") {
		t.Errorf("history = %+v, want a no-data message", history)
	}
}

func TestHandleCommand_Clear(t *testing.T) {
	m := newTestModel()
	m.Controller().Conversation().AddUserMessage("hello")

	updated, _ := m.handleCommand("/clear")
	m = updated.(Model)

	if !m.Controller().Conversation().IsEmpty() {
		t.Error("conversation should be empty after /clear")
	}
}

func TestModelsResultMsg(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(ModelsResultMsg{Models: []string{"gemma3:4b", "llama3:8b"}})
	m = updated.(Model)

	history := m.Controller().Conversation().GetHistory()
	if len(history) != 1 || !strings.Contains(history[0].Content, "gemma3:4b") {
		t.Errorf("history = %+v, want model list message", history)
	}
}

// errFake is a sentinel for simulated failures in tests.
var errFake = &backend.ClientError{Type: backend.ErrTypeConnection, Message: "fake failure"}
