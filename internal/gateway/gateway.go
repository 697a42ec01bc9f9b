// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway is the narrow model-server boundary the chat screen uses:
// list model names, and turn a full message history into one reply.
package gateway

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jeranaias/shellmind/internal/config"
	"github.com/jeranaias/shellmind/internal/model"
	"github.com/jeranaias/shellmind/internal/ollama"
)

// Gateway is a blocking model-server client. Implementations must be safe to
// call from a worker goroutine.
type Gateway interface {
	// ListModels returns known model names. Any failure yields an empty
	// list, which means "no models known", not "the server has none".
	ListModels(ctx context.Context) []string

	// GenerateReply sends the ordered history and returns one assistant
	// reply, or a *GatewayError.
	GenerateReply(ctx context.Context, modelName string, history []model.Message) (string, error)
}

// Prober is implemented by backends that can check their server is up
// without running a model.
type Prober interface {
	CheckRunning(ctx context.Context) error
}

// GatewayError carries the transport or server message verbatim so it can be
// shown in the chat pane.
type GatewayError struct {
	Detail string
	Err    error
}

func (e *GatewayError) Error() string {
	return e.Detail
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func wrap(err error) *GatewayError {
	return &GatewayError{Detail: err.Error(), Err: err}
}

// New builds the backend selected by cfg.API.
func New(cfg *config.Config, log zerolog.Logger) (Gateway, error) {
	switch cfg.API {
	case config.APIOllama, "":
		client := ollama.NewClient(&ollama.ClientConfig{
			BaseURL: cfg.OllamaHost,
			Timeout: cfg.Timeout(),
		})
		return NewOllama(client, log), nil
	case config.APIOpenAI:
		return NewOpenAI(cfg.OllamaHost, log), nil
	default:
		return nil, fmt.Errorf("unknown api %q", cfg.API)
	}
}
