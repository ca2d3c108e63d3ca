package crosscheck

import (
	"github.com/crosscheck-ai/crosscheck/internal/llm"
	"github.com/crosscheck-ai/crosscheck/pkg/errors"
)

// Option configures an Agent.
type Option func(*config) error

type config struct {
	provider    string
	model       string
	temperature float64
	maxTokens   int
	client      llm.Client
}

func newConfig() *config {
	return &config{provider: "groq"}
}

// WithProvider selects the model backend by registry identifier
// ("groq" or "google").
func WithProvider(id string) Option {
	return func(c *config) error {
		if id == "" {
			return &errors.ConfigError{Component: "provider", Message: "provider id must not be empty"}
		}
		c.provider = id
		return nil
	}
}

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(c *config) error {
		c.model = model
		return nil
	}
}

// WithTemperature sets the sampling temperature. Zero keeps analyses
// reproducible and is the default.
func WithTemperature(temperature float64) Option {
	return func(c *config) error {
		if temperature < 0 || temperature > 2 {
			return &errors.ConfigError{Component: "temperature", Message: "temperature must be in [0, 2]"}
		}
		c.temperature = temperature
		return nil
	}
}

// WithMaxTokens bounds the model response length.
func WithMaxTokens(maxTokens int) Option {
	return func(c *config) error {
		if maxTokens < 0 {
			return &errors.ConfigError{Component: "max_tokens", Message: "max_tokens must not be negative"}
		}
		c.maxTokens = maxTokens
		return nil
	}
}

// WithClient injects a model client directly, bypassing the provider
// registry. Intended for tests and custom backends.
func WithClient(client llm.Client) Option {
	return func(c *config) error {
		c.client = client
		return nil
	}
}
