// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import "time"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Message represents a chat message in the conversation.
type Message struct {
	Role    string `json:"role"`    // "user" or "assistant"
	Content string `json:"content"` // The message content
}

// ChatRequest is the request body for /api/chat endpoint.
type ChatRequest struct {
	Model    string    `json:"model"`    // Model name (e.g., "llama3")
	Messages []Message `json:"messages"` // Conversation history
	Stream   bool      `json:"stream"`   // Always false: one blocking round trip
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ChatResponse is the response from /api/chat endpoint.
type ChatResponse struct {
	Model         string    `json:"model"`
	CreatedAt     time.Time `json:"created_at"`
	Message       Message   `json:"message"`
	Done          bool      `json:"done"`
	DoneReason    string    `json:"done_reason,omitempty"`
	TotalDuration int64     `json:"total_duration,omitempty"` // nanoseconds
	EvalCount     int       `json:"eval_count,omitempty"`     // number of tokens generated
}

// TotalTime returns the server-reported generation time.
func (r *ChatResponse) TotalTime() time.Duration {
	return time.Duration(r.TotalDuration)
}

// ModelInfo contains information about a model.
type ModelInfo struct {
	Name       string    `json:"name"`
	Model      string    `json:"model"` // Older servers only fill this one
	ModifiedAt time.Time `json:"modified_at"`
	Size       int64     `json:"size"`
	Digest     string    `json:"digest"`
}

// Label returns the model's name, falling back to the model field.
func (m ModelInfo) Label() string {
	if m.Name != "" {
		return m.Name
	}
	return m.Model
}

// ListModelsResponse is the response from /api/tags endpoint.
type ListModelsResponse struct {
	Models []ModelInfo `json:"models"`
}

// OllamaError is the error body returned by the Ollama API.
type OllamaError struct {
	Error string `json:"error"`
}
