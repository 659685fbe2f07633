// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strings"
	"testing"
)

// =============================================================================
// ROLE TESTS
// =============================================================================

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAssistant, "Assistant"},
		{RoleSystem, "System"},
		{Role("other"), "other"},
	}

	for _, tc := range tests {
		t.Run(string(tc.role), func(t *testing.T) {
			if got := tc.role.DisplayName(); got != tc.want {
				t.Errorf("DisplayName() = %q, want %q", got, tc.want)
			}
		})
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage(t *testing.T) {
	msg := NewUserMessage("hello")

	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want 'user'", msg.Role)
	}
	if msg.Content != "hello" {
		t.Errorf("Content = %q, want 'hello'", msg.Content)
	}
	if !strings.HasPrefix(msg.ID, "msg_") {
		t.Errorf("ID = %q, want 'msg_' prefix", msg.ID)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestMessage_Preview(t *testing.T) {
	msg := NewAssistantMessage("a long message that will be truncated")
	got := msg.Preview(10)
	if len([]rune(got)) != 10 {
		t.Errorf("Preview(10) = %q, want 10 runes", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Preview(10) = %q, want '...' suffix", got)
	}

	short := NewAssistantMessage("short")
	if short.Preview(10) != "short" {
		t.Errorf("Preview of short message = %q, want unchanged", short.Preview(10))
	}
}

func TestMessage_PreviewTinyWidths(t *testing.T) {
	msg := NewAssistantMessage("a long message that will be truncated")

	// Too small for an ellipsis: plain cut, no panic
	if got := msg.Preview(3); got != "a l" {
		t.Errorf("Preview(3) = %q, want %q", got, "a l")
	}
	if got := msg.Preview(1); got != "a" {
		t.Errorf("Preview(1) = %q, want %q", got, "a")
	}
	if got := msg.Preview(0); got != "" {
		t.Errorf("Preview(0) = %q, want empty", got)
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_AppendOrder(t *testing.T) {
	conv := NewConversation()

	conv.AddUserMessage("first")
	conv.AddAssistantMessage("second")
	conv.AddSystemMessage("third")

	if conv.MessageCount() != 3 {
		t.Fatalf("MessageCount() = %d, want 3", conv.MessageCount())
	}

	wantRoles := []Role{RoleUser, RoleAssistant, RoleSystem}
	wantContent := []string{"first", "second", "third"}
	for i, msg := range conv.GetHistory() {
		if msg.Role != wantRoles[i] {
			t.Errorf("Messages[%d].Role = %q, want %q", i, msg.Role, wantRoles[i])
		}
		if msg.Content != wantContent[i] {
			t.Errorf("Messages[%d].Content = %q, want %q", i, msg.Content, wantContent[i])
		}
	}
}

func TestConversation_GetLastMessage(t *testing.T) {
	conv := NewConversation()
	if conv.GetLastMessage() != nil {
		t.Error("GetLastMessage() on empty conversation should be nil")
	}

	conv.AddUserMessage("question")
	conv.AddAssistantMessage("answer")

	last := conv.GetLastMessage()
	if last == nil || last.Content != "answer" {
		t.Errorf("GetLastMessage() = %+v, want the assistant message", last)
	}

	lastUser := conv.GetLastUserMessage()
	if lastUser == nil || lastUser.Content != "question" {
		t.Errorf("GetLastUserMessage() = %+v, want the user message", lastUser)
	}
}

func TestConversation_ClearHistory(t *testing.T) {
	conv := NewConversation()
	conv.AddUserMessage("hello")
	conv.ClearHistory()

	if !conv.IsEmpty() {
		t.Errorf("IsEmpty() = false after ClearHistory, MessageCount = %d", conv.MessageCount())
	}
}

func TestConversation_PrunesOldMessages(t *testing.T) {
	conv := NewConversation()
	for i := 0; i < MaxMessages+10; i++ {
		conv.AddUserMessage("m")
	}
	if conv.MessageCount() != MaxMessages {
		t.Errorf("MessageCount() = %d, want %d after pruning", conv.MessageCount(), MaxMessages)
	}
}
