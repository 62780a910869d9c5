// Package mcptools exposes scoring and report generation as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"wellbeing/internal/catalog"
	"wellbeing/internal/model"
	"wellbeing/internal/scoring"

	"github.com/mark3labs/mcp-go/mcp"
)

// ScoreTool handles the score_answers MCP tool.
type ScoreTool struct {
	catalog *catalog.Catalog
}

// NewScoreTool creates a ScoreTool scoring against cat.
func NewScoreTool(cat *catalog.Catalog) *ScoreTool {
	return &ScoreTool{catalog: cat}
}

// Definition returns the MCP tool definition for score_answers.
func (t *ScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("score_answers",
		mcp.WithDescription(
			"Score questionnaire answers. Returns one 0-100 score per dimension with its display band.",
		),
		mcp.WithString("answers",
			mcp.Required(),
			mcp.Description(`JSON array of {"questionId": "...", "value": n}. A null value means unanswered.`),
		),
	)
}

// Handle processes the score_answers tool call.
func (t *ScoreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	answers, errResult := parseAnswers(req)
	if errResult != nil {
		return errResult, nil
	}

	scores, err := scoring.Aggregate(t.catalog.Questions(), answers)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	return mcp.NewToolResultText(formatScores(scoring.Decorate(scores))), nil
}

func parseAnswers(req mcp.CallToolRequest) ([]model.Answer, *mcp.CallToolResult) {
	raw := req.GetString("answers", "")
	if strings.TrimSpace(raw) == "" {
		return nil, mcp.NewToolResultError("'answers' is required")
	}
	var answers []model.Answer
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("'answers' must be a JSON array: %v", err))
	}
	return answers, nil
}

func formatScores(scores []model.ScoredDimension) string {
	if len(scores) == 0 {
		return "No answered question, no dimension score."
	}
	var sb strings.Builder
	sb.WriteString("| Dimension | Score | Band | Items |\n|---|---|---|---|\n")
	for _, s := range scores {
		sb.WriteString(fmt.Sprintf("| %s | %.1f | %s | %d |\n", s.Dimension, s.Rounded, s.Band, s.ItemCount))
	}
	return sb.String()
}
