// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import "fmt"

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Valid reports whether r is a role a transcript may contain.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Speaker returns the short label shown before a message in the chat pane.
func (r Role) Speaker() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "AIm"
	default:
		return string(r)
	}
}

// ParseRole converts a stored role string, rejecting unknown roles.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is one turn of a conversation. It is immutable once appended.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Line renders the message the way the chat pane shows it, e.g. "You: hi".
func (m Message) Line() string {
	return m.Role.Speaker() + ": " + m.Content
}
