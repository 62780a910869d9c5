package mcptools

import (
	"context"
	"strings"
	"testing"

	"wellbeing/internal/catalog"
	"wellbeing/internal/model"
	"wellbeing/internal/report"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

type stubGenerator struct {
	got model.ReportRequest
	err error
}

func (g *stubGenerator) Generate(_ context.Context, req model.ReportRequest) (*model.ReportResponse, error) {
	g.got = req
	if g.err != nil {
		return nil, g.err
	}
	analyses := map[string]model.DimensionAnalysis{}
	for _, r := range req.Results {
		analyses[r.Label] = model.DimensionAnalysis{Definition: "def", Interpretation: "int"}
	}
	return &model.ReportResponse{DimensionAnalyses: analyses, GlobalSynthesis: "Synthèse"}, nil
}

func TestScoreToolDefinition(t *testing.T) {
	def := NewScoreTool(testCatalog(t)).Definition()
	assert.Equal(t, "score_answers", def.Name)
	assert.Contains(t, def.InputSchema.Properties, "answers")
	assert.Contains(t, def.InputSchema.Required, "answers")
}

func TestScoreToolHandle(t *testing.T) {
	tool := NewScoreTool(testCatalog(t))
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"answers": `[{"questionId":"q0_1","value":4},{"questionId":"q1_1","value":null}]`,
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	text := resultText(res)
	assert.Contains(t, text, "| Satisfaction globale | 75.0 | favorable | 1 |")
	assert.NotContains(t, text, "Optimisme")
}

func TestScoreToolErrors(t *testing.T) {
	tool := NewScoreTool(testCatalog(t))

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{"answers": "not json"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{"answers": `[{"questionId":"zz","value":1}]`}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "zz")
}

func TestReportToolHandle(t *testing.T) {
	gen := &stubGenerator{}
	tool := NewReportTool(testCatalog(t), gen)
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"answers": `[{"questionId":"q9_1","value":2},{"questionId":"q0_1","value":5}]`,
		"locale":  "en",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(res))
	assert.Equal(t, model.LocaleEN, gen.got.Locale)
	require.Len(t, gen.got.Results, 2)
	assert.Equal(t, "Satisfaction globale", gen.got.Results[0].Label)

	text := resultText(res)
	assert.Contains(t, text, "Synthèse")
	assert.Less(t, strings.Index(text, "### Satisfaction globale"), strings.Index(text, "### Charge de travail"))
}

func TestReportToolSurfacesErrorKind(t *testing.T) {
	tool := NewReportTool(testCatalog(t), &stubGenerator{err: &report.ConfigurationError{Reason: "no key"}})
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"answers": `[{"questionId":"q0_1","value":5}]`,
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), report.KindConfiguration)
}

func TestCatalogTool(t *testing.T) {
	tool := NewCatalogTool(testCatalog(t))
	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"dimension": "Stress et détente"}))
	require.NoError(t, err)
	text := resultText(res)
	assert.Contains(t, text, "q2_2")
	assert.Contains(t, text, "(inverted)")
	assert.NotContains(t, text, "q0_1")

	res, err = tool.Handle(context.Background(), makeReq(map[string]interface{}{"dimension": "nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestNewServerRegistersTools(t *testing.T) {
	s := NewServer("wellbeing", "test", testCatalog(t), &stubGenerator{})
	assert.NotNil(t, s)
}
