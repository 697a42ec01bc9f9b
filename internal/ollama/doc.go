// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with Ollama API.
//
// Only the two endpoints shellmind needs are covered: /api/tags to list
// local models and /api/chat (non-streaming) to get one complete reply.
//
// # Key Types
//
//   - Client: resty-based client, never retries
//   - Message, ChatRequest, ChatResponse: /api/chat payloads
//   - ModelInfo: one /api/tags entry
//   - ClientError: typed failure with ErrorType and sentinel matching
//
// # Usage
//
//	client := ollama.NewClient(&ollama.ClientConfig{BaseURL: cfg.OllamaHost})
//	resp, err := client.Chat(ctx, "llama3", []ollama.Message{
//	    {Role: "user", Content: "Hello"},
//	})
//	if ollama.IsNotRunning(err) {
//	    // tell the user to start the server
//	}
package ollama
