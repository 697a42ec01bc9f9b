// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/jeranaias/shellmind/internal/model"
)

// OpenAI talks to any OpenAI-compatible /v1 server, including Ollama's own
// compatibility endpoint.
type OpenAI struct {
	client *openai.Client
	log    zerolog.Logger
}

var _ Gateway = (*OpenAI)(nil)

// NewOpenAI targets host + "/v1". OPENAI_API_KEY is sent when set; local
// servers ignore it.
func NewOpenAI(host string, log zerolog.Logger) *OpenAI {
	cfg := openai.DefaultConfig(os.Getenv("OPENAI_API_KEY"))
	base := strings.TrimRight(host, "/")
	if !strings.HasSuffix(base, "/v1") {
		base += "/v1"
	}
	cfg.BaseURL = base

	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		log:    log.With().Str("component", "gateway").Str("api", "openai").Logger(),
	}
}

// ListModels implements Gateway.
func (g *OpenAI) ListModels(ctx context.Context) []string {
	list, err := g.client.ListModels(ctx)
	if err != nil {
		g.log.Warn().Err(err).Msg("list models failed")
		return []string{}
	}
	names := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		if m.ID != "" {
			names = append(names, m.ID)
		}
	}
	return names
}

// GenerateReply implements Gateway.
func (g *OpenAI) GenerateReply(ctx context.Context, modelName string, history []model.Message) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, len(history))
	for i, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == model.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs[i] = openai.ChatCompletionMessage{Role: role, Content: m.Content}
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    modelName,
		Messages: msgs,
	})
	if err != nil {
		g.log.Error().Err(err).Str("model", modelName).Msg("chat completion failed")
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return "", &GatewayError{Detail: apiErr.Message, Err: err}
		}
		return "", wrap(err)
	}
	if len(resp.Choices) == 0 {
		return "", &GatewayError{Detail: "server returned no choices"}
	}

	g.log.Debug().
		Str("model", modelName).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("reply received")
	return resp.Choices[0].Message.Content, nil
}
