package mcptools

import (
	"wellbeing/internal/catalog"
	"wellbeing/internal/report"

	"github.com/mark3labs/mcp-go/server"
)

// NewServer registers every tool on a new MCP server
func NewServer(name, version string, cat *catalog.Catalog, gen report.Generator) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
	)

	scoreTool := NewScoreTool(cat)
	s.AddTool(scoreTool.Definition(), scoreTool.Handle)

	reportTool := NewReportTool(cat, gen)
	s.AddTool(reportTool.Definition(), reportTool.Handle)

	catalogTool := NewCatalogTool(cat)
	s.AddTool(catalogTool.Definition(), catalogTool.Handle)

	return s
}
