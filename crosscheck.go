// Package crosscheck reconciles project data across document formats.
// It extracts tabular data from spreadsheets and text from slide decks,
// filters the table down to rows the deck actually mentions, asks a
// generative model for substantive discrepancies under a strict JSON
// contract, and computes deterministic priority scores for project
// portfolios.
package crosscheck

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/crosscheck-ai/crosscheck/internal/llm/registry"
	"github.com/crosscheck-ai/crosscheck/pkg/deck"
	"github.com/crosscheck-ai/crosscheck/pkg/errors"
	"github.com/crosscheck-ai/crosscheck/pkg/priority"
	"github.com/crosscheck-ai/crosscheck/pkg/reconcile"
	"github.com/crosscheck-ai/crosscheck/pkg/relevance"
	"github.com/crosscheck-ai/crosscheck/pkg/tabular"
)

// Agent is the public entry point. Construct one with New and reuse it;
// it holds no per-analysis state.
type Agent struct {
	config *config
	engine *reconcile.Engine
}

// New creates an Agent with the given options. Without options it uses
// the default provider and that provider's default model.
func New(opts ...Option) (*Agent, error) {
	c := newConfig()
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.client == nil {
		client, err := registry.New(c.provider)
		if err != nil {
			return nil, err
		}
		c.client = client
	}
	if c.model == "" {
		model, err := registry.DefaultModel(c.provider)
		if err != nil {
			return nil, err
		}
		c.model = model
	}

	engine := reconcile.New(reconcile.Config{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}, c.client)

	return &Agent{config: c, engine: engine}, nil
}

// Analysis is the outcome of one cross-document reconciliation,
// pairing the model's validated findings with the extraction summaries
// that produced them.
type Analysis struct {
	Result       *reconcile.Result `json:"result"`
	ExcelSummary string            `json:"excel_summary"`
	DeckSummary  string            `json:"deck_summary"`
}

// Analyze reconciles a spreadsheet against a slide deck. Both documents
// are extracted concurrently; either extraction failing aborts the
// analysis with a ParsingError before any model call.
func (a *Agent) Analyze(ctx context.Context, excelData, deckData []byte) (*Analysis, error) {
	var (
		dataset *tabular.Dataset
		slides  *deck.Document
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		dataset, err = tabular.Parse(excelData)
		return err
	})
	g.Go(func() error {
		var err error
		slides, err = deck.Parse(deckData)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	excelContext := dataset.Summary
	if table := dataset.WorkingTable(); table != nil && len(table.Rows) > 0 {
		excelContext = relevance.Filter(table, slides.Summary)
	}

	result, err := a.engine.Analyze(ctx, excelContext, slides.Summary)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Result:       result,
		ExcelSummary: excelContext,
		DeckSummary:  slides.Summary,
	}, nil
}

// Score computes the deterministic priority score for one project.
func (a *Agent) Score(in priority.Input) priority.Score {
	return priority.Calculate(in)
}

// ScoreBatch parses a project spreadsheet and scores every row,
// returning results ordered by score descending.
func (a *Agent) ScoreBatch(data []byte) (*priority.BatchResult, error) {
	dataset, err := tabular.Parse(data)
	if err != nil {
		return nil, err
	}

	table := dataset.WorkingTable()
	if table == nil {
		return nil, errors.NewParsingError("xlsx", "workbook contains no sheets", errors.ErrEmptyDocument)
	}

	return priority.ScoreBatch(table), nil
}
