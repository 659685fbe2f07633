// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// This package defines the core domain types used throughout the application
// for representing a chat session.
//
// # Key Types
//
//   - Conversation: Append-only container for a chat session's messages
//   - Message: Single immutable message with role, content, and timestamp
//   - Role: Message role enumeration (user, assistant, system)
//
// # Usage
//
// Create a new conversation and append to it:
//
//	conv := model.NewConversation()
//	conv.AddUserMessage("Hello!")
//	conv.AddAssistantMessage("Hi there.")
package model
