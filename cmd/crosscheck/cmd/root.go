// Package cmd implements the crosscheck command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crosscheck-ai/crosscheck/internal/config"
	"github.com/crosscheck-ai/crosscheck/pkg/logging"
)

var (
	flagProvider    string
	flagModel       string
	flagTemperature float64
	flagMaxTokens   int
	flagDatabase    string
	flagJSON        bool
	flagVerbose     bool
	flagQuiet       bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "crosscheck",
	Short: "Cross-document project analysis",
	Long: `Crosscheck reconciles project portfolio data across documents.

It extracts tabular data from Excel workbooks and text from PowerPoint
decks, finds substantive discrepancies between them with the help of a
generative model, and computes deterministic priority scores for
project portfolios. Completed analyses are stored locally so they can
be listed and re-opened later.`,
}

// Execute runs the root command with signal-aware context.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
	rootCmd.Version = version

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "model provider (groq, google)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "model override for the selected provider")
	rootCmd.PersistentFlags().Float64Var(&flagTemperature, "temperature", 0, "model sampling temperature")
	rootCmd.PersistentFlags().IntVar(&flagMaxTokens, "max-tokens", 0, "model response token limit")
	rootCmd.PersistentFlags().StringVar(&flagDatabase, "db", "", "history database path")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON instead of formatted text")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "only log warnings and errors")
}

// initConfig loads .env files and binds environment variables before
// any command runs.
func initConfig() {
	loadEnvFiles()

	viper.SetEnvPrefix("CROSSCHECK")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	configureLogging()
}

// loadConfig resolves the effective settings: flags win over
// environment, environment wins over defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagProvider != "" {
		cfg.Provider = flagProvider
	}
	if flagModel != "" {
		cfg.Model = flagModel
	}
	if flagTemperature != 0 {
		cfg.Temperature = flagTemperature
	}
	if flagMaxTokens != 0 {
		cfg.MaxTokens = flagMaxTokens
	}
	if flagDatabase != "" {
		cfg.DatabasePath = flagDatabase
	}
	return cfg, nil
}

func configureLogging() {
	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	if flagQuiet {
		level = zerolog.WarnLevel
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}

	zerolog.SetGlobalLevel(level)
	logging.SetDefault(logging.Default().Level(level))
}

// loadEnvFiles loads .env then .env.local, so local values override.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		if err := godotenv.Overload(envFile); err == nil && flagVerbose {
			fmt.Fprintf(os.Stderr, "Loaded %s\n", envFile)
		}
	}
}
