package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/crosscheck-ai/crosscheck"
	"github.com/crosscheck-ai/crosscheck/internal/config"
	"github.com/crosscheck-ai/crosscheck/internal/history"
)

// newAgent builds an Agent from resolved configuration.
func newAgent(cfg *config.Config) (*crosscheck.Agent, error) {
	opts := []crosscheck.Option{
		crosscheck.WithProvider(cfg.Provider),
		crosscheck.WithTemperature(cfg.Temperature),
		crosscheck.WithMaxTokens(cfg.MaxTokens),
	}
	if cfg.Model != "" {
		opts = append(opts, crosscheck.WithModel(cfg.Model))
	}
	return crosscheck.New(opts...)
}

// openStore opens the history database at the configured path.
func openStore(cfg *config.Config) (*history.Store, error) {
	return history.Open(cfg.DatabasePath)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
