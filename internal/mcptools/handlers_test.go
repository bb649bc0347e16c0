package mcptools

import (
	"context"
	"testing"

	"github.com/dusk-indust/compose/internal/domain"
	"github.com/dusk-indust/compose/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resistorMaps() []map[string]any {
	return []map[string]any{
		{"op": "drawLabel", "text": "resistor network"},
		{"op": "drawRect", "x": 0.47, "y": 0.23, "width": 0.1, "height": 0.08},
	}
}

func newTestService() *ComposeService {
	return NewComposeService(pipeline.New(pipeline.Config{SkipExpansion: true}))
}

func TestComposeService_SnapToGrid(t *testing.T) {
	svc := newTestService()

	_, out, err := svc.SnapToGrid(context.Background(), nil, SnapInput{Operations: resistorMaps()})
	require.NoError(t, err)
	require.Len(t, out.Operations, 2)
	assert.Equal(t, "drawRect", out.Operations[1]["op"])
	assert.InDelta(t, 0.45, out.Operations[1]["x"], 1e-9)
	assert.InDelta(t, 0.25, out.Operations[1]["y"], 1e-9)
	assert.InDelta(t, 0.1, out.Operations[1]["width"], 1e-9)
	assert.Equal(t, 100.0, out.GridAlignment)
}

func TestComposeService_SnapToGrid_CustomUnit(t *testing.T) {
	svc := newTestService()

	_, out, err := svc.SnapToGrid(context.Background(), nil, SnapInput{
		Operations: []map[string]any{{"op": "drawCircle", "x": 0.47, "y": 0.23}},
		GridUnit:   0.1,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, out.Operations[0]["x"], 1e-9)
	assert.InDelta(t, 0.2, out.Operations[0]["y"], 1e-9)
}

func TestComposeService_ConvertDomain(t *testing.T) {
	svc := newTestService()

	_, out, err := svc.ConvertDomain(context.Background(), nil, ConvertInput{
		Operations: resistorMaps(),
		Topic:      "RC circuit resistor",
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.Domain{domain.Electrical}, out.Domains)
	assert.Equal(t, "drawCircuitElement", out.Operations[1]["op"])
	assert.Equal(t, "resistor", out.Operations[1]["type"])
	assert.Equal(t, []MatchSummary{{
		Index:  1,
		Domain: "electrical",
		Role:   "resistor",
		From:   "drawRect",
		To:     "drawCircuitElement",
	}}, out.Matches)
	assert.Equal(t, 0.0, out.V2Before)
	assert.Equal(t, 50.0, out.V2After)
}

func TestComposeService_ConvertDomain_GeneralTopic(t *testing.T) {
	svc := newTestService()

	_, out, err := svc.ConvertDomain(context.Background(), nil, ConvertInput{
		Operations: resistorMaps(),
		Topic:      "weekly planning",
	})
	require.NoError(t, err)
	assert.Equal(t, resistorMaps(), out.Operations)
	assert.Empty(t, out.Matches)
	assert.NotNil(t, out.Matches)
}

func TestComposeService_ValidateComposition(t *testing.T) {
	svc := newTestService()

	_, out, err := svc.ValidateComposition(context.Background(), nil, ValidateInput{Operations: resistorMaps()})
	require.NoError(t, err)
	assert.False(t, out.Report.Passed)
	assert.NotEmpty(t, out.Report.Issues)
}

func TestComposeService_Compose(t *testing.T) {
	svc := NewComposeService(pipeline.New(pipeline.Config{}))

	_, out, err := svc.Compose(context.Background(), nil, ComposeInput{
		Operations: resistorMaps(),
		Topic:      "RC circuit resistor",
	})
	require.NoError(t, err)
	assert.True(t, out.Expanded)
	assert.Equal(t, len(out.Operations)-2, out.Inserted)
	assert.Equal(t, "drawCircuitElement", out.Operations[1]["op"])
	assert.Equal(t, 100.0, out.GridAlignment)
}

func TestComposeService_Compose_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := newTestService().Compose(ctx, nil, ComposeInput{Operations: resistorMaps()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestComposeService_RejectsMissingOp(t *testing.T) {
	svc := newTestService()
	bad := []map[string]any{{"x": 0.1}}

	_, _, err := svc.SnapToGrid(context.Background(), nil, SnapInput{Operations: bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid operations")

	_, _, err = svc.ConvertDomain(context.Background(), nil, ConvertInput{Operations: bad})
	require.Error(t, err)

	_, _, err = svc.ValidateComposition(context.Background(), nil, ValidateInput{Operations: bad})
	require.Error(t, err)

	_, _, err = svc.Compose(context.Background(), nil, ComposeInput{Operations: bad})
	require.Error(t, err)
}
