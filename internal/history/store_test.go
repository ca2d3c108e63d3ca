package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosscheck-ai/crosscheck/pkg/errors"
	"github.com/crosscheck-ai/crosscheck/pkg/priority"
	"github.com/crosscheck-ai/crosscheck/pkg/reconcile"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleResult() *reconcile.Result {
	excel := "100000"
	pptx := "120000"
	return &reconcile.Result{
		Discrepancies: []reconcile.Discrepancy{{
			Type:           "presupuesto",
			Severity:       "alta",
			Description:    "El presupuesto difiere",
			ExcelValue:     &excel,
			PptxValue:      &pptx,
			Recommendation: "Verificar con finanzas",
		}},
		Summary:    "Una discrepancia",
		MatchScore: 85,
	}
}

func TestSaveAndGetAnalysis(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.SaveAnalysis(ctx, "portafolio.xlsx", "resumen.pptx", sampleResult())
	require.NoError(t, err)
	require.Positive(t, id)

	rec, err := store.GetAnalysis(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "portafolio.xlsx", rec.ExcelFilename)
	assert.Equal(t, "resumen.pptx", rec.PptxFilename)
	assert.Equal(t, "Una discrepancia", rec.Summary)
	assert.Equal(t, "completed", rec.Status)
	assert.False(t, rec.AnalysisDate.IsZero())

	require.NotNil(t, rec.Result)
	require.Len(t, rec.Result.Discrepancies, 1)
	assert.Equal(t, "presupuesto", rec.Result.Discrepancies[0].Type)
	assert.Equal(t, 85, rec.Result.MatchScore)
}

func TestGetAnalysisNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetAnalysis(context.Background(), 9999)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestSaveAndGetPriority(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	batch := &priority.BatchResult{
		TotalProjects: 2,
		Results: []priority.ProjectScore{
			{ID: "PRJ-002", Name: "App Móvil", Score: priority.Calculate(priority.DefaultInput(95, 90, 10))},
			{ID: "PRJ-001", Name: "Migración Cloud", Score: priority.Calculate(priority.DefaultInput(60, 50, 40))},
		},
	}

	id, err := store.SavePriority(ctx, "proyectos.xlsx", batch)
	require.NoError(t, err)

	rec, err := store.GetPriority(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "proyectos.xlsx", rec.Filename)
	assert.Equal(t, 2, rec.TotalProjects)
	require.NotNil(t, rec.Result)
	require.Len(t, rec.Result.Results, 2)
	assert.Equal(t, "PRJ-002", rec.Result.Results[0].ID)
}

func TestListAnalysesNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, err := store.SaveAnalysis(ctx, "a.xlsx", "a.pptx", sampleResult())
	require.NoError(t, err)
	second, err := store.SaveAnalysis(ctx, "b.xlsx", "b.pptx", sampleResult())
	require.NoError(t, err)

	records, err := store.ListAnalyses(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, second, records[0].ID)
	assert.Equal(t, first, records[1].ID)
	// List omits the heavy payload.
	assert.Nil(t, records[0].Result)
}

func TestListPrioritiesHonorsLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	batch := &priority.BatchResult{TotalProjects: 0, Results: []priority.ProjectScore{}}
	for i := 0; i < 3; i++ {
		_, err := store.SavePriority(ctx, "lote.xlsx", batch)
		require.NoError(t, err)
	}

	records, err := store.ListPriorities(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
