package mcptools

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/dusk-indust/compose/internal/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupServerClient wires an MCP server and client together using in-memory
// transports.
func setupServerClient(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := NewComposeMCPServer(pipeline.New(pipeline.Config{}))
	st, ct := mcp.NewInMemoryTransports()

	ctx := context.Background()
	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
	})
	return session
}

func TestMCPListTools(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	sort.Strings(names)

	assert.Equal(t, []string{
		"compose",
		"convert_domain",
		"snap_to_grid",
		"validate_composition",
	}, names)
}

func TestMCPCompose(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "compose",
		Arguments: ComposeInput{
			Operations: resistorMaps(),
			Topic:      "RC circuit resistor",
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError, "compose should not return an error")
	require.NotNil(t, result.StructuredContent)

	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)

	var out ComposeOutput
	require.NoError(t, json.Unmarshal(raw, &out))

	require.GreaterOrEqual(t, len(out.Operations), 2)
	assert.Equal(t, "drawCircuitElement", out.Operations[1]["op"])
	assert.Equal(t, "resistor", out.Operations[1]["type"])
	assert.InDelta(t, 0.45, out.Operations[1]["x"], 1e-9)
	assert.True(t, out.Expanded)
}

func TestMCPValidateComposition(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "validate_composition",
		Arguments: ValidateInput{Operations: resistorMaps()},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)

	var out ValidateOutput
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.False(t, out.Report.Passed)
	assert.GreaterOrEqual(t, out.Report.Score, 0)
	assert.LessOrEqual(t, out.Report.Score, 100)
}

func TestMCPInvalidOperationsIsToolError(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "snap_to_grid",
		Arguments: SnapInput{
			Operations: []map[string]any{{"x": 0.1}},
		},
	})
	if err == nil {
		assert.True(t, result.IsError)
	}
}
