// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with Ollama API.
package ollama

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the Ollama client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches sentinel errors by type.
func (e *ClientError) Is(target error) bool {
	var t *ClientError
	if errors.As(target, &t) {
		return t.Type == e.Type
	}
	return false
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotRunning
	ErrTypeTimeout
	ErrTypeModelNotFound
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrNotRunning    = &ClientError{Type: ErrTypeNotRunning, Message: "Ollama is not running"}
	ErrTimeout       = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrModelNotFound = &ClientError{Type: ErrTypeModelNotFound, Message: "model not found"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the Ollama client.
type ClientConfig struct {
	// BaseURL is the Ollama API base URL (default: http://127.0.0.1:11434)
	BaseURL string

	// Timeout caps every request. Chat calls are further bounded by ctx.
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:11434",
		Timeout: 5 * time.Minute,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Ollama API. Requests are never
// retried.
//
// The Client is safe for concurrent use.
type Client struct {
	config *ClientConfig
	http   *resty.Client
}

// NewClient creates a new Ollama client. A nil config uses DefaultConfig.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetHeader("User-Agent", "shellmind/1.0").
		SetHeader("Accept", "application/json").
		SetTimeout(config.Timeout)

	return &Client{config: config, http: httpClient}
}

// BaseURL returns the server address the client talks to.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckRunning verifies that Ollama is reachable and running.
func (c *Client) CheckRunning(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/")
	if err != nil {
		return transportError(err)
	}
	if resp.StatusCode() != http.StatusOK {
		return &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "unexpected status from Ollama: " + resp.Status(),
		}
	}
	return nil
}

// =============================================================================
// MODEL OPERATIONS
// =============================================================================

// ListModels retrieves all locally available models.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var result ListModelsResponse
	var apiErr OllamaError

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&apiErr).
		Get("/api/tags")
	if err != nil {
		return nil, transportError(err)
	}
	if resp.IsError() {
		return nil, statusError(resp, apiErr, "failed to list models")
	}
	return result.Models, nil
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// Chat sends the full history and returns the complete (non-streaming) reply.
func (c *Client) Chat(ctx context.Context, model string, messages []Message) (*ChatResponse, error) {
	var result ChatResponse
	var apiErr OllamaError

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(ChatRequest{Model: model, Messages: messages, Stream: false}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/api/chat")
	if err != nil {
		return nil, transportError(err)
	}
	if resp.IsError() {
		return nil, statusError(resp, apiErr, "chat request failed")
	}
	return &result, nil
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

func transportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &ClientError{Type: ErrTypeTimeout, Message: ErrTimeout.Message, Cause: err}
	}
	return &ClientError{Type: ErrTypeNotRunning, Message: ErrNotRunning.Message, Cause: err}
}

// statusError prefers the server's own error text so it can be shown verbatim.
func statusError(resp *resty.Response, apiErr OllamaError, fallback string) error {
	msg := apiErr.Error
	if msg == "" {
		msg = fallback + ": " + resp.Status()
	}
	errType := ErrTypeInvalidResponse
	if resp.StatusCode() == http.StatusNotFound {
		errType = ErrTypeModelNotFound
	}
	return &ClientError{Type: errType, Message: msg}
}

// IsModelNotFound checks if an error is a model not found error.
func IsModelNotFound(err error) bool {
	return errors.Is(err, ErrModelNotFound)
}

// IsNotRunning checks if an error indicates Ollama is not running.
func IsNotRunning(err error) bool {
	return errors.Is(err, ErrNotRunning)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
