// Package llm defines the generative-model client contract and the
// provider registry. Providers are declared in an embedded YAML document;
// each carries its credential environment variable, auth scheme, chat
// endpoint, and default model.
package llm

import (
	"context"
	_ "embed"
	"os"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/crosscheck-ai/crosscheck/pkg/errors"
)

//go:embed providers.yaml
var providersYAML []byte

// Message is a single role-tagged message in a chat completion request.
type Message struct {
	Role    string `json:"role"` // "system" or "user"
	Content string `json:"content"`
}

// Request describes one chat-style completion call.
type Request struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Messages    []Message
}

// Client is the generative-model client consumed by the reconciliation
// engine. A missing credential must be detectable before any network
// call is attempted.
type Client interface {
	// Name returns the provider identifier ("groq", "google", ...).
	Name() string

	// HasAPIKey reports whether a usable credential is configured.
	HasAPIKey() bool

	// Complete performs a single chat completion and returns the
	// generated text.
	Complete(ctx context.Context, req Request) (string, error)
}

// APIKey describes how a provider's credential is supplied and applied.
type APIKey struct {
	Name   string `yaml:"name"`   // environment variable name
	Scheme string `yaml:"scheme"` // "Bearer" or empty for direct
	Header string `yaml:"header"` // defaults to Authorization
}

// ChatCompletions holds the provider's completion endpoint.
type ChatCompletions struct {
	URL string `yaml:"url"`
}

// Provider is one entry of the embedded provider registry.
type Provider struct {
	ID              string           `yaml:"id"`
	Name            string           `yaml:"name"`
	APIKey          *APIKey          `yaml:"api_key"`
	ChatCompletions *ChatCompletions `yaml:"chat_completions"`
	DefaultModel    string           `yaml:"default_model"`
}

// APIKeyValue returns the configured credential, or "" when unset or
// still holding a placeholder value from a .env template.
func (p *Provider) APIKeyValue() string {
	if p.APIKey == nil {
		return ""
	}
	v := strings.TrimSpace(os.Getenv(p.APIKey.Name))
	if isPlaceholder(v) {
		return ""
	}
	return v
}

// HasAPIKey reports whether a usable credential is configured.
func (p *Provider) HasAPIKey() bool {
	return p.APIKeyValue() != ""
}

// isPlaceholder catches template values like "your_groq_api_key_here".
func isPlaceholder(v string) bool {
	return strings.HasPrefix(v, "your_") && strings.HasSuffix(v, "_here")
}

type registryFile struct {
	Providers []Provider `yaml:"providers"`
}

var (
	registryOnce sync.Once
	registry     []Provider
	registryErr  error
)

// Providers returns all registered providers.
func Providers() ([]Provider, error) {
	registryOnce.Do(func() {
		var file registryFile
		if err := yaml.Unmarshal(providersYAML, &file); err != nil {
			registryErr = &errors.ConfigError{Component: "llm", Message: "invalid provider registry", Err: err}
			return
		}
		registry = file.Providers
	})
	return registry, registryErr
}

// Lookup returns the provider with the given ID.
func Lookup(id string) (*Provider, error) {
	providers, err := Providers()
	if err != nil {
		return nil, err
	}
	for i := range providers {
		if providers[i].ID == id {
			return &providers[i], nil
		}
	}
	return nil, &errors.ConfigError{Component: "llm", Message: "unknown provider " + id, Err: errors.ErrNotFound}
}
