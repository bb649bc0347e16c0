package mcptools

import (
	"context"

	"github.com/dusk-indust/compose/internal/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewComposeMCPServer creates an MCP server with the composition tools
// registered: snap_to_grid, convert_domain, validate_composition and compose.
func NewComposeMCPServer(p *pipeline.Pipeline) *mcp.Server {
	svc := NewComposeService(p)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "compose",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "snap_to_grid",
		Description: "Round every coordinate of the drawing operations to the layout grid. Returns the snapped operations and their alignment percentage.",
	}, svc.SnapToGrid)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert_domain",
		Description: "Replace generic shapes with domain-specific elements (resistors, force vectors, neurons, molecules...) inferred from the topic and nearby labels.",
	}, svc.ConvertDomain)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_composition",
		Description: "Score a composition on grid alignment, sectioning, spacing and label density. Returns issues and suggestions; the input is not modified.",
	}, svc.ValidateComposition)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compose",
		Description: "Run the full pipeline: grid snap, expansion of sparse scenes, label de-overlap, domain conversion and validation.",
	}, svc.Compose)

	return server
}

// RunStdio runs the MCP server on stdio transport, blocking until stdin is
// closed or the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
