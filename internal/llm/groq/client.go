// Package groq implements the llm.Client interface against Groq's
// OpenAI-compatible chat completions API.
package groq

import (
	"context"
	"strings"

	"github.com/crosscheck-ai/crosscheck/internal/llm"
	"github.com/crosscheck-ai/crosscheck/internal/transport"
	"github.com/crosscheck-ai/crosscheck/pkg/errors"
)

// Client implements llm.Client for Groq.
type Client struct {
	provider  *llm.Provider
	transport *transport.Client
	url       string
}

// New creates a new Groq client from its registry entry.
func New(provider *llm.Provider) *Client {
	return &Client{
		provider:  provider,
		transport: transport.New(authenticator(provider)),
		url:       provider.ChatCompletions.URL,
	}
}

// authenticator selects the auth mechanism declared in the registry.
func authenticator(provider *llm.Provider) transport.Authenticator {
	if provider.APIKey == nil {
		return &transport.NoAuth{}
	}
	if provider.APIKey.Scheme == "Bearer" {
		return &transport.BearerAuth{}
	}
	if provider.APIKey.Header != "" {
		return &transport.HeaderAuth{Header: provider.APIKey.Header}
	}
	return &transport.BearerAuth{}
}

// Name implements llm.Client.
func (c *Client) Name() string { return c.provider.ID }

// HasAPIKey implements llm.Client.
func (c *Client) HasAPIKey() bool { return c.provider.HasAPIKey() }

// chatRequest mirrors the OpenAI-compatible completion request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// chatResponse mirrors the OpenAI-compatible completion response body.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete implements llm.Client with a single chat completion call.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	payload := chatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	resp, err := c.transport.Post(ctx, c.url, c.provider.APIKeyValue(), payload)
	if err != nil {
		return "", &errors.APIError{
			Provider: c.provider.ID,
			Endpoint: c.url,
			Message:  "completion request failed",
			Err:      err,
		}
	}

	var result chatResponse
	if err := transport.DecodeResponse(resp, c.provider.ID, &result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", errors.NewAPIError(c.provider.ID, 0, "completion returned no choices")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
