// Package config loads runtime settings from the environment and
// optional .env files. Settings flow into constructors explicitly;
// nothing reads process-wide state after startup.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries every runtime setting the application reads.
type Config struct {
	// Provider selects the model backend ("groq" or "google").
	Provider string
	// Model overrides the provider's default model when non-empty.
	Model string
	// Temperature for model calls. Zero keeps analyses reproducible.
	Temperature float64
	// MaxTokens bounds the model response length.
	MaxTokens int
	// DatabasePath locates the SQLite history store.
	DatabasePath string
	// LogLevel sets the zerolog level name (debug, info, warn, error).
	LogLevel string
}

// Defaults applied when neither the environment nor a .env file sets a
// value.
const (
	DefaultProvider     = "groq"
	DefaultMaxTokens    = 2000
	DefaultDatabasePath = "crosscheck.db"
	DefaultLogLevel     = "info"
)

// Load reads configuration from the environment, honoring a .env file
// in the working directory when present. A missing .env file is not an
// error; real environment variables always win over file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CROSSCHECK")
	v.AutomaticEnv()

	v.SetDefault("provider", DefaultProvider)
	v.SetDefault("model", "")
	v.SetDefault("temperature", 0.0)
	v.SetDefault("max_tokens", DefaultMaxTokens)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("log_level", DefaultLogLevel)

	return &Config{
		Provider:     v.GetString("provider"),
		Model:        v.GetString("model"),
		Temperature:  v.GetFloat64("temperature"),
		MaxTokens:    v.GetInt("max_tokens"),
		DatabasePath: v.GetString("database_path"),
		LogLevel:     v.GetString("log_level"),
	}, nil
}

// GetString reads a raw environment variable, falling back to viper's
// bound sources. Provider API keys use their own unprefixed names
// (GROQ_API_KEY, GEMINI_API_KEY), so they bypass the CROSSCHECK prefix.
func GetString(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return viper.GetString(key)
}
