// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/shellmind/internal/config"
	"github.com/jeranaias/shellmind/internal/gateway"
	"github.com/jeranaias/shellmind/internal/logging"
)

func gatewayFor(t *testing.T, api, host string) gateway.Gateway {
	t.Helper()
	cfg := config.Default()
	cfg.API = api
	cfg.OllamaHost = host
	gw, err := gateway.New(cfg, logging.Nop())
	require.NoError(t, err)
	return gw
}

func TestProbe(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Ollama is running"))
	}))
	t.Cleanup(up.Close)

	down := httptest.NewServer(http.NotFoundHandler())
	downURL := down.URL
	down.Close()

	assert.Empty(t, probe(gatewayFor(t, config.APIOllama, up.URL), up.URL))

	msg := probe(gatewayFor(t, config.APIOllama, downURL), downURL)
	assert.Contains(t, msg, downURL)
	assert.Contains(t, msg, "Ollama is not running")

	assert.Empty(t, probe(gatewayFor(t, config.APIOpenAI, downURL), downURL), "backend without a probe")
	assert.Empty(t, probe(nil, downURL))
}
