package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"cyberguard-ai/internal/config"
	"cyberguard-ai/pkg/logger"
)

// Per-call token budgets. Frame calls are cheaper because their output is
// only an intermediate analysis fed into the aggregation call.
const (
	MaxTokensDefault = 500
	MaxTokensFrame   = 300
)

// completionAPI is the slice of the OpenAI-compatible client the Groq
// client needs. Narrowed to an interface so tests can script failures.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// GroqClient calls the Groq chat-completions API with an ordered
// model-candidate fallback list. Groq exposes an OpenAI-compatible API, so
// the transport is the go-openai client pointed at the Groq base URL.
//
// A single client is constructed at process start and shared; the
// underlying transport is safe for concurrent use.
type GroqClient struct {
	api         completionAPI
	models      []string
	temperature float32
	logger      *logger.Logger
}

// KeyConfigured reports whether key looks like a usable Groq API key.
func KeyConfigured(key string) bool {
	return strings.HasPrefix(key, "gsk_")
}

// NewGroqClient creates a Groq client. If the API key is absent or
// malformed the client is still returned but every call fails with
// ErrAPIKeyMissing; the health endpoint reports the condition.
func NewGroqClient(cfg config.GroqConfig, log *logger.Logger) *GroqClient {
	c := &GroqClient{
		models:      cfg.Models,
		temperature: cfg.Temperature,
		logger:      log.WithComponent("groq-client"),
	}
	if len(c.models) == 0 {
		c.models = config.DefaultModels
	}
	if c.temperature == 0 {
		c.temperature = 0.7
	}

	if KeyConfigured(cfg.APIKey) {
		oc := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			oc.BaseURL = cfg.BaseURL
		}
		if cfg.Timeout > 0 {
			oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
		}
		c.api = openai.NewClientWithConfig(oc)
	}

	return c
}

// Available reports whether the client holds a usable API key.
func (c *GroqClient) Available() bool {
	return c.api != nil
}

// Complete sends prompt to the first model candidate that succeeds.
// Candidates are tried strictly in order; this is a cost/quota fallback,
// not a latency optimization. When every candidate fails the returned
// error is an *ExhaustedError carrying the last failure.
func (c *GroqClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.api == nil {
		return "", ErrAPIKeyMissing
	}
	if maxTokens <= 0 {
		maxTokens = MaxTokensDefault
	}

	var last error
	for _, model := range c.models {
		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			Temperature: c.temperature,
			MaxTokens:   maxTokens,
		})
		if err != nil {
			last = &ModelError{Model: model, Err: describeAPIError(err)}
			c.logger.Warn().Err(err).Str("model", model).Msg("completion attempt failed, trying next candidate")
			continue
		}
		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			last = &ModelError{Model: model, Err: errors.New("empty completion")}
			c.logger.Warn().Str("model", model).Msg("empty completion, trying next candidate")
			continue
		}

		c.logger.Debug().
			Str("model", model).
			Int("prompt_tokens", resp.Usage.PromptTokens).
			Int("completion_tokens", resp.Usage.CompletionTokens).
			Msg("completion succeeded")
		return resp.Choices[0].Message.Content, nil
	}

	return "", &ExhaustedError{Attempts: len(c.models), Last: last}
}

// describeAPIError maps well-known Groq HTTP failures to actionable
// messages; anything else passes through unchanged.
func describeAPIError(err error) error {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.HTTPStatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("invalid Groq API key: %w", err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("Groq API rate limit exceeded: %w", err)
	case http.StatusBadRequest:
		return fmt.Errorf("invalid request to Groq API: %w", err)
	}
	return err
}
