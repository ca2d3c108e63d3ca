// Package registry constructs llm.Client implementations from the
// embedded provider registry.
package registry

import (
	"github.com/crosscheck-ai/crosscheck/internal/llm"
	"github.com/crosscheck-ai/crosscheck/internal/llm/google"
	"github.com/crosscheck-ai/crosscheck/internal/llm/groq"
	"github.com/crosscheck-ai/crosscheck/pkg/errors"
)

// New returns the client for the given provider ID.
func New(providerID string) (llm.Client, error) {
	provider, err := llm.Lookup(providerID)
	if err != nil {
		return nil, err
	}

	switch provider.ID {
	case "groq":
		return groq.New(provider), nil
	case "google":
		return google.New(provider), nil
	default:
		return nil, &errors.ConfigError{
			Component: "llm",
			Message:   "no client implementation for provider " + provider.ID,
			Err:       errors.ErrNotFound,
		}
	}
}

// DefaultModel returns the registry default model for a provider.
func DefaultModel(providerID string) (string, error) {
	provider, err := llm.Lookup(providerID)
	if err != nil {
		return "", err
	}
	return provider.DefaultModel, nil
}
