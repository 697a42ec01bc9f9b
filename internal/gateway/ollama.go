// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jeranaias/shellmind/internal/model"
	"github.com/jeranaias/shellmind/internal/ollama"
)

// Ollama adapts the native Ollama client to Gateway.
type Ollama struct {
	client *ollama.Client
	log    zerolog.Logger
}

var (
	_ Gateway = (*Ollama)(nil)
	_ Prober  = (*Ollama)(nil)
)

// NewOllama wraps client.
func NewOllama(client *ollama.Client, log zerolog.Logger) *Ollama {
	return &Ollama{
		client: client,
		log:    log.With().Str("component", "gateway").Str("api", "ollama").Logger(),
	}
}

// ListModels implements Gateway.
func (g *Ollama) ListModels(ctx context.Context) []string {
	infos, err := g.client.ListModels(ctx)
	if err != nil {
		g.log.Warn().Err(err).Msg("list models failed")
		return []string{}
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if label := info.Label(); label != "" {
			names = append(names, label)
		}
	}
	return names
}

// GenerateReply implements Gateway.
func (g *Ollama) GenerateReply(ctx context.Context, modelName string, history []model.Message) (string, error) {
	msgs := make([]ollama.Message, len(history))
	for i, m := range history {
		msgs[i] = ollama.Message{Role: m.Role.String(), Content: m.Content}
	}

	resp, err := g.client.Chat(ctx, modelName, msgs)
	if err != nil {
		g.log.Error().
			Err(err).
			Str("model", modelName).
			Bool("timeout", ollama.IsTimeout(err)).
			Msg("chat failed")
		return "", wrap(err)
	}
	g.log.Debug().
		Str("model", modelName).
		Int("eval_count", resp.EvalCount).
		Dur("took", resp.TotalTime()).
		Msg("reply received")
	return resp.Message.Content, nil
}

// CheckRunning implements Prober.
func (g *Ollama) CheckRunning(ctx context.Context) error {
	if err := g.client.CheckRunning(ctx); err != nil {
		g.log.Warn().Err(err).Str("host", g.client.BaseURL()).Msg("server not reachable")
		return wrap(err)
	}
	return nil
}
