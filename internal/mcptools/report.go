package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"wellbeing/internal/catalog"
	"wellbeing/internal/model"
	"wellbeing/internal/report"
	"wellbeing/internal/scoring"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReportTool handles the generate_report MCP tool.
type ReportTool struct {
	catalog   *catalog.Catalog
	generator report.Generator
}

// NewReportTool creates a ReportTool.
func NewReportTool(cat *catalog.Catalog, gen report.Generator) *ReportTool {
	return &ReportTool{catalog: cat, generator: gen}
}

// Definition returns the MCP tool definition for generate_report.
func (t *ReportTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_report",
		mcp.WithDescription(
			"Score questionnaire answers and generate the narrative well-being report.",
		),
		mcp.WithString("answers",
			mcp.Required(),
			mcp.Description(`JSON array of {"questionId": "...", "value": n}.`),
		),
		mcp.WithString("locale",
			mcp.Description("Report language"),
			mcp.Enum("fr", "en"),
		),
	)
}

// Handle processes the generate_report tool call.
func (t *ReportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	answers, errResult := parseAnswers(req)
	if errResult != nil {
		return errResult, nil
	}

	scores, err := scoring.Aggregate(t.catalog.Questions(), answers)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	rreq, err := report.BuildReportRequest(scores, model.Locale(req.GetString("locale", "")))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := t.generator.Generate(ctx, rreq)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report generation failed (%s): %v", report.KindOf(err), err)), nil
	}

	structured, _ := json.Marshal(resp)
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(formatReport(rreq, resp)),
			mcp.NewTextContent(string(structured)),
		},
	}, nil
}

func formatReport(req model.ReportRequest, resp *model.ReportResponse) string {
	var sb strings.Builder
	sb.WriteString("## Report\n\n")
	sb.WriteString(resp.GlobalSynthesis)
	sb.WriteString("\n\n## Dimensions\n")

	labels := make([]string, 0, len(resp.DimensionAnalyses))
	order := make(map[string]int, len(req.Results))
	for i, r := range req.Results {
		order[r.Label] = i
	}
	for label := range resp.DimensionAnalyses {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return order[labels[i]] < order[labels[j]] })

	for _, label := range labels {
		a := resp.DimensionAnalyses[label]
		sb.WriteString(fmt.Sprintf("\n### %s\n%s\n\n%s\n", label, a.Definition, a.Interpretation))
	}
	return sb.String()
}
