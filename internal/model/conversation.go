// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// DateLayout is the create_date format of the metadata sidecar.
const DateLayout = "2006-01-02 15:04:05"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is an ordered message history plus its display attributes.
// It is owned by the UI goroutine and is not safe for concurrent use.
type Conversation struct {
	// ID names the backing files. Empty until the first persist.
	ID string

	// Name is the user-editable display name. Empty shows as "NO NAME".
	Name string

	// Model is the model identifier used for generation.
	Model string

	// Created is when the conversation was first persisted.
	Created time.Time

	messages []Message
}

// NewConversation creates an empty conversation for the given model.
func NewConversation(model string) *Conversation {
	return &Conversation{Model: model}
}

// Append adds msg to the end of the history.
func (c *Conversation) Append(msg Message) {
	c.messages = append(c.messages, msg)
}

// Replace swaps the whole history, used when hydrating from disk.
func (c *Conversation) Replace(msgs []Message) {
	c.messages = append([]Message(nil), msgs...)
}

// Messages returns a copy of the history in chronological order.
func (c *Conversation) Messages() []Message {
	return append([]Message(nil), c.messages...)
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// DisplayName returns Name, or "NO NAME" when unset.
func (c *Conversation) DisplayName() string {
	if c.Name == "" {
		return "NO NAME"
	}
	return c.Name
}

// Metadata returns the sidecar record for the conversation. An unknown
// creation time is written as an empty create_date.
func (c *Conversation) Metadata() Metadata {
	md := Metadata{ModelName: c.Model, Name: c.Name}
	if !c.Created.IsZero() {
		md.CreateDate = c.Created.Format(DateLayout)
	}
	return md
}

// ApplyMetadata copies the non-empty fields of md onto c.
func (c *Conversation) ApplyMetadata(md Metadata) {
	if md.ModelName != "" {
		c.Model = md.ModelName
	}
	if md.Name != "" {
		c.Name = md.Name
	}
	if t, err := time.ParseInLocation(DateLayout, md.CreateDate, time.Local); err == nil {
		c.Created = t
	}
}

// =============================================================================
// METADATA TYPE
// =============================================================================

// Metadata is the sidecar record stored next to each transcript so history
// listings never have to parse full transcripts.
type Metadata struct {
	ModelName  string `json:"model_name"`
	Name       string `json:"name"`
	CreateDate string `json:"create_date"`
}
