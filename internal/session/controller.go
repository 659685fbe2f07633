// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the chat session state machine: the append-only
// message history, the selected CSV file and its preview, and the busy flag
// that serializes the two user actions (send, analyze).
package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/candlechat-tui/internal/model"
	"github.com/jeranaias/candlechat-tui/internal/ohlc"
)

// DefaultQuestion is the analyze question used when the input box is empty.
const DefaultQuestion = "Analyze this OHLC price data and describe the trend."

// Fixed user-facing error texts. Request errors carry detail on the typed
// error for the status line; the chat transcript gets a stable message.
const (
	chatErrorText    = "Error: failed to get a response from the backend."
	analyzeErrorText = "Error: analysis request failed."
)

// Action rejection errors.
var (
	// ErrBusy is returned when an action starts while another is in flight.
	// Policy: a second action is rejected, not queued.
	ErrBusy = errors.New("an action is already in progress")

	// ErrEmptyInput is returned for a whitespace-only message. Not shown to
	// the user; an empty send is a silent no-op.
	ErrEmptyInput = errors.New("input is empty")

	// ErrNoFile is returned when analyze is triggered with no file selected.
	ErrNoFile = errors.New("no file selected")

	// ErrNoData is returned when the selected CSV has no data rows, so no
	// payload can be built.
	ErrNoData = errors.New("csv has no data rows")
)

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller is the session state machine. All mutation goes through it;
// the UI reads from it to render. Methods are safe for concurrent use, though
// in practice all calls arrive on the single Bubble Tea update goroutine.
//
// Each action runs Begin/Complete in two phases: Begin validates, flips the
// busy flag, and applies the optimistic local mutations; the caller performs
// the network request and reports back via Complete. A generation counter
// ties the two phases together so a completion that arrives after the
// session was cleared cannot mutate fresh state.
type Controller struct {
	mu sync.Mutex

	sessionID string
	startTime time.Time

	conv    *model.Conversation
	busy    bool
	gen     uint64
	csvPath string
	csvText string
	preview ohlc.Preview
}

// NewController creates a controller with an empty conversation.
func NewController() *Controller {
	return &Controller{
		sessionID: uuid.NewString(),
		startTime: time.Now(),
		conv:      model.NewConversation(),
	}
}

// =============================================================================
// READ ACCESS
// =============================================================================

// SessionID returns the session identifier.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Duration returns how long the session has been active.
func (c *Controller) Duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Since(c.startTime)
}

// Conversation returns the session's conversation.
func (c *Controller) Conversation() *model.Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv
}

// Busy reports whether an action is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Preview returns the current CSV preview (zero value when no file is selected).
func (c *Controller) Preview() ohlc.Preview {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.preview
}

// FilePath returns the selected CSV path, or "" when none is selected.
func (c *Controller) FilePath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.csvPath
}

// =============================================================================
// FILE SELECTION
// =============================================================================

// SelectFile stores a CSV file's text and derives its preview, replacing any
// previous selection wholesale.
func (c *Controller) SelectFile(path, text string) ohlc.Preview {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.csvPath = path
	c.csvText = text
	c.preview = ohlc.BuildPreview(text)
	return c.preview
}

// ClearFile drops the selected file and its preview.
func (c *Controller) ClearFile() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearFileLocked()
}

func (c *Controller) clearFileLocked() {
	c.csvPath = ""
	c.csvText = ""
	c.preview = ohlc.Preview{}
}

// =============================================================================
// SEND ACTION
// =============================================================================

// BeginSend validates and starts the send action: the user message is
// appended optimistically and the busy flag is set. It returns the
// generation token the caller must pass to CompleteSend, and the trimmed
// prompt to put on the wire.
func (c *Controller) BeginSend(text string) (uint64, string, error) {
	prompt := strings.TrimSpace(text)
	if prompt == "" {
		return 0, "", ErrEmptyInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return 0, "", ErrBusy
	}

	c.busy = true
	c.gen++
	c.conv.AddUserMessage(prompt)
	return c.gen, prompt, nil
}

// CompleteSend finishes the send action. On success one assistant message is
// appended (possibly empty when the backend returned neither response key);
// on failure exactly one system message with fixed error text. Either way
// the session returns to idle. A stale generation is dropped entirely.
func (c *Controller) CompleteSend(gen uint64, answer string, reqErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}

	if reqErr != nil {
		c.conv.AddSystemMessage(chatErrorText)
	} else {
		c.conv.AddAssistantMessage(answer)
	}
	c.busy = false
}

// =============================================================================
// ANALYZE ACTION
// =============================================================================

// AnalyzeRequest is the outbound payload prepared by BeginAnalyze.
type AnalyzeRequest struct {
	Question string
	OhlcJSON string
	Summary  ohlc.Summary
}

// BeginAnalyze validates and starts the analyze action: the selected file is
// converted to OHLC records, a locally computed summary is appended as a
// system message before any network activity, and the busy flag is set. The
// question falls back to DefaultQuestion when the input text is blank.
func (c *Controller) BeginAnalyze(inputText string) (uint64, AnalyzeRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.csvPath == "" {
		return 0, AnalyzeRequest{}, ErrNoFile
	}
	if c.busy {
		return 0, AnalyzeRequest{}, ErrBusy
	}

	records := ohlc.Convert(c.csvText, nil)
	if len(records) == 0 {
		return 0, AnalyzeRequest{}, ErrNoData
	}
	payload, err := ohlc.ToJSON(records)
	if err != nil {
		// Records are plain structs; marshal failure is not reachable in
		// practice, but fail closed rather than sending a broken payload.
		return 0, AnalyzeRequest{}, err
	}

	question := strings.TrimSpace(inputText)
	if question == "" {
		question = DefaultQuestion
	}

	summary := ohlc.Summarize(records)
	c.conv.AddSystemMessage(summary.String())

	c.busy = true
	c.gen++
	return c.gen, AnalyzeRequest{
		Question: question,
		OhlcJSON: payload,
		Summary:  summary,
	}, nil
}

// CompleteAnalyze finishes the analyze action. Success appends one assistant
// message with the analysis; failure appends one system error message. The
// selected file and preview are cleared and the session returns to idle
// regardless of outcome.
func (c *Controller) CompleteAnalyze(gen uint64, analysis string, reqErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}

	if reqErr != nil {
		c.conv.AddSystemMessage(analyzeErrorText)
	} else {
		c.conv.AddAssistantMessage(analysis)
	}
	c.clearFileLocked()
	c.busy = false
}

// =============================================================================
// SESSION RESET
// =============================================================================

// Clear wipes the conversation and file selection and invalidates any
// in-flight completion, returning the session to a fresh idle state.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conv.ClearHistory()
	c.clearFileLocked()
	c.gen++
	c.busy = false
}
