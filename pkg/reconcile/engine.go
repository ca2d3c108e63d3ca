package reconcile

import (
	"context"

	"github.com/crosscheck-ai/crosscheck/internal/llm"
	"github.com/crosscheck-ai/crosscheck/pkg/errors"
	"github.com/crosscheck-ai/crosscheck/pkg/logging"
)

// Defaults for the model call. Temperature stays at zero so identical
// inputs yield identical or near-identical outputs.
const (
	DefaultMaxTokens = 2000
)

// Config carries the engine's model settings. It is passed explicitly
// into the constructor rather than read from process-wide state, so
// tests can inject fake clients deterministically.
type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Engine performs one reconciliation analysis per call. It is stateless
// across calls; concurrent use requires no locking.
type Engine struct {
	cfg    Config
	client llm.Client
}

// New creates a reconciliation engine with the given model client.
func New(cfg Config, client llm.Client) *Engine {
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	return &Engine{cfg: cfg, client: client}
}

// Analyze composes the prompt from the relevance-filtered tabular context
// and the deck summary, invokes the model once, and returns the repaired,
// hallucination-filtered result. Missing credentials fail before any
// network call; transport/auth/rate-limit failures surface as
// AIAnalysisError with no retry.
func (e *Engine) Analyze(ctx context.Context, excelContext, deckSummary string) (*Result, error) {
	log := logging.Ctx(ctx)

	if e.client == nil || !e.client.HasAPIKey() {
		return nil, errors.NewAIAnalysisError(e.providerName(),
			"API key no configurada. Por favor configura una llave válida en el archivo .env.",
			errors.ErrAPIKeyRequired)
	}

	raw, err := e.client.Complete(ctx, llm.Request{
		Model:       e.cfg.Model,
		Temperature: e.cfg.Temperature,
		MaxTokens:   e.cfg.MaxTokens,
		Messages: []llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(excelContext, deckSummary)},
		},
	})
	if err != nil {
		return nil, errors.NewAIAnalysisError(e.providerName(), err.Error(), err)
	}

	result, state := Repair(raw)
	if state == StateFallback {
		log.Warn().
			Str("provider", e.providerName()).
			Msg("model response was not valid JSON, synthesized fallback result")
	}

	log.Info().
		Str("provider", e.providerName()).
		Str("model", e.cfg.Model).
		Int("discrepancies", len(result.Discrepancies)).
		Int("match_score", result.MatchScore).
		Msg("reconciliation completed")

	return result, nil
}

func (e *Engine) providerName() string {
	if e.client == nil {
		return ""
	}
	return e.client.Name()
}
