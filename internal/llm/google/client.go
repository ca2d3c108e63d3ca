// Package google implements the llm.Client interface on top of the
// Gemini API via the google.golang.org/genai SDK.
package google

import (
	"context"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/crosscheck-ai/crosscheck/internal/llm"
	"github.com/crosscheck-ai/crosscheck/pkg/errors"
)

// Client implements llm.Client for Google AI Studio.
type Client struct {
	provider *llm.Provider

	// GenAI client - reused across calls when possible
	genaiClient *genai.Client
	mu          sync.Mutex
}

// New creates a new Google client from its registry entry.
func New(provider *llm.Provider) *Client {
	return &Client{provider: provider}
}

// Name implements llm.Client.
func (c *Client) Name() string { return c.provider.ID }

// HasAPIKey implements llm.Client.
func (c *Client) HasAPIKey() bool { return c.provider.HasAPIKey() }

// getOrCreateClient lazily initializes the genai client.
func (c *Client) getOrCreateClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.genaiClient != nil {
		return c.genaiClient, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.provider.APIKeyValue(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &errors.APIError{
			Provider: c.provider.ID,
			Message:  "failed to create genai client",
			Err:      err,
		}
	}

	c.genaiClient = client
	return client, nil
}

// Complete implements llm.Client with a single generate-content call.
// System messages map to the system instruction; user messages are
// concatenated into the prompt contents.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	client, err := c.getOrCreateClient(ctx)
	if err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	var userParts []string
	for _, msg := range req.Messages {
		switch msg.Role {
		case "system":
			config.SystemInstruction = genai.NewContentFromText(msg.Content, genai.RoleUser)
		default:
			userParts = append(userParts, msg.Content)
		}
	}

	resp, err := client.Models.GenerateContent(ctx, req.Model,
		genai.Text(strings.Join(userParts, "\n\n")), config)
	if err != nil {
		return "", &errors.APIError{
			Provider: c.provider.ID,
			Message:  "generate content failed",
			Err:      err,
		}
	}

	return strings.TrimSpace(resp.Text()), nil
}
