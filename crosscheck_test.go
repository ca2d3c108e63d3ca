package crosscheck

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/crosscheck-ai/crosscheck/internal/llm"
	"github.com/crosscheck-ai/crosscheck/pkg/errors"
	"github.com/crosscheck-ai/crosscheck/pkg/priority"
)

type stubClient struct {
	response string
	lastReq  llm.Request
	calls    int
}

func (s *stubClient) Name() string    { return "stub" }
func (s *stubClient) HasAPIKey() bool { return true }

func (s *stubClient) Complete(_ context.Context, req llm.Request) (string, error) {
	s.calls++
	s.lastReq = req
	return s.response, nil
}

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func buildDeck(t *testing.T, slideBodies ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	ct, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = ct.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`))
	require.NoError(t, err)

	for i, body := range slideBodies {
		f, err := w.Create(fmt.Sprintf("ppt/slides/slide%d.xml", i+1))
		require.NoError(t, err)

		slide := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"` +
			` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">` +
			`<p:cSld><p:spTree><p:sp><p:txBody><a:p><a:r><a:t>` + body +
			`</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld></p:sld>`
		_, err = f.Write([]byte(slide))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestAnalyzeEndToEnd(t *testing.T) {
	stub := &stubClient{
		response: `{"discrepancies":[{"type":"presupuesto","severity":"alta",` +
			`"description":"Presupuesto difiere","excel_value":"100000","pptx_value":"120000",` +
			`"recommendation":"Verificar"}],"summary":"Una discrepancia","match_score":85}`,
	}

	agent, err := New(WithClient(stub), WithModel("llama-3.3-70b-versatile"))
	require.NoError(t, err)

	excelData := buildWorkbook(t, [][]any{
		{"Project Name", "Presupuesto"},
		{"Migración Cloud", 100000},
		{"Rediseño Web", 50000},
	})
	deckData := buildDeck(t, "Migración Cloud: presupuesto 120000")

	analysis, err := agent.Analyze(context.Background(), excelData, deckData)
	require.NoError(t, err)

	require.Len(t, analysis.Result.Discrepancies, 1)
	assert.Equal(t, 85, analysis.Result.MatchScore)
	assert.Equal(t, 1, stub.calls)

	// The deck mentions Migración Cloud, so relevance filtering keeps
	// that row and the prompt carries it.
	assert.Contains(t, analysis.ExcelSummary, "Found 1 relevant matching rows in Excel")
	assert.Contains(t, analysis.ExcelSummary, "Migración Cloud")
	assert.Contains(t, analysis.DeckSummary, "=== Slide 1 ===")
	assert.Contains(t, stub.lastReq.Messages[1].Content, "Migración Cloud")
}

func TestAnalyzeCorruptSpreadsheet(t *testing.T) {
	agent, err := New(WithClient(&stubClient{response: "{}"}))
	require.NoError(t, err)

	_, err = agent.Analyze(context.Background(), []byte("not a workbook"), buildDeck(t, "Slide"))
	require.Error(t, err)
	assert.True(t, errors.IsParsingError(err))
}

func TestAnalyzeCorruptDeck(t *testing.T) {
	agent, err := New(WithClient(&stubClient{response: "{}"}))
	require.NoError(t, err)

	excelData := buildWorkbook(t, [][]any{{"Nombre"}, {"A"}})
	_, err = agent.Analyze(context.Background(), excelData, []byte("not a deck"))
	require.Error(t, err)
	assert.True(t, errors.IsParsingError(err))
}

func TestScoreDelegates(t *testing.T) {
	agent, err := New(WithClient(&stubClient{}))
	require.NoError(t, err)

	score := agent.Score(priority.DefaultInput(95, 90, 10))
	assert.Equal(t, priority.TierCritical, score.Tier)
}

func TestScoreBatchFromWorkbook(t *testing.T) {
	agent, err := New(WithClient(&stubClient{}))
	require.NoError(t, err)

	data := buildWorkbook(t, [][]any{
		{"ID Proyecto", "Nombre Proyecto", "Metric ROI 0 100", "Metric Urgencia 0 100", "Metric Riesgo 0 100"},
		{"PRJ-001", "Migración Cloud", 60, 50, 40},
		{"PRJ-002", "App Móvil", 95, 90, 10},
	})

	result, err := agent.ScoreBatch(data)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalProjects)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "PRJ-002", result.Results[0].ID)
}

func TestScoreBatchCorruptInput(t *testing.T) {
	agent, err := New(WithClient(&stubClient{}))
	require.NoError(t, err)

	_, err = agent.ScoreBatch([]byte("garbage"))
	require.Error(t, err)
	assert.True(t, errors.IsParsingError(err))
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(WithProvider("nonexistent"))
	require.Error(t, err)
}

func TestOptionValidation(t *testing.T) {
	_, err := New(WithClient(&stubClient{}), WithTemperature(3))
	require.Error(t, err)

	_, err = New(WithClient(&stubClient{}), WithMaxTokens(-1))
	require.Error(t, err)

	_, err = New(WithClient(&stubClient{}), WithProvider(""))
	require.Error(t, err)
}
