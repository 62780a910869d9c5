package mcptools

import (
	"context"
	"fmt"
	"strings"

	"wellbeing/internal/catalog"

	"github.com/mark3labs/mcp-go/mcp"
)

// CatalogTool handles the list_questions MCP tool.
type CatalogTool struct {
	catalog *catalog.Catalog
}

// NewCatalogTool creates a CatalogTool.
func NewCatalogTool(cat *catalog.Catalog) *CatalogTool {
	return &CatalogTool{catalog: cat}
}

// Definition returns the MCP tool definition for list_questions.
func (t *CatalogTool) Definition() mcp.Tool {
	return mcp.NewTool("list_questions",
		mcp.WithDescription("List the questionnaire items grouped by dimension."),
		mcp.WithString("dimension",
			mcp.Description("Only list the questions of this dimension"),
		),
	)
}

// Handle processes the list_questions tool call.
func (t *CatalogTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	only := req.GetString("dimension", "")
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Catalog %s\n", t.catalog.Version()))
	found := false
	for _, dim := range t.catalog.Dimensions() {
		if only != "" && dim != only {
			continue
		}
		found = true
		sb.WriteString(fmt.Sprintf("\n## %s\n", dim))
		for _, q := range t.catalog.ByDimension(dim) {
			inv := ""
			if q.Inverted {
				inv = " (inverted)"
			}
			sb.WriteString(fmt.Sprintf("- %s: %s [%d-%d]%s\n", q.ID, q.Text, q.Scale.Min, q.Scale.Max, inv))
		}
	}
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("unknown dimension %q", only)), nil
	}
	return mcp.NewToolResultText(sb.String()), nil
}
