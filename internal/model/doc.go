// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// # Key Types
//
//   - Role: user or assistant
//   - Message: one immutable {role, content} turn
//   - Conversation: ordered messages plus ID, display name, model and creation time
//   - Metadata: the {model_name, name, create_date} sidecar record
//
// # Usage
//
//	conv := model.NewConversation("llama3")
//	conv.Append(model.NewUserMessage("hello"))
//	history := conv.Messages() // exact payload for the next model call
package model
