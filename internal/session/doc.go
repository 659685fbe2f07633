// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session provides the chat session state machine.
//
// The controller owns everything mutable in a session: the append-only
// conversation, the selected CSV file with its derived preview, and the busy
// flag shared by the send and analyze actions. Actions run in two phases
// (Begin validates and applies local mutations, Complete applies the network
// outcome) tied together by a generation token so stale completions are
// dropped.
//
// # Key Types
//
//   - Controller: Session state machine
//   - AnalyzeRequest: Outbound payload prepared by BeginAnalyze
//
// # Usage
//
// Start a send action and complete it once the request returns:
//
//	gen, prompt, err := ctrl.BeginSend(input)
//	if err != nil {
//	    return // rejected: empty input or busy
//	}
//	answer, reqErr := client.Chat(ctx, prompt)
//	ctrl.CompleteSend(gen, answer, reqErr)
//
// # Concurrency Policy
//
// While an action is in flight the controller rejects a second Begin with
// ErrBusy rather than queuing or interleaving it.
package session
