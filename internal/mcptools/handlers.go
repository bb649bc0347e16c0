package mcptools

import (
	"context"
	"fmt"

	"github.com/dusk-indust/compose/internal/domain"
	"github.com/dusk-indust/compose/internal/grid"
	"github.com/dusk-indust/compose/internal/ops"
	"github.com/dusk-indust/compose/internal/pipeline"
	"github.com/dusk-indust/compose/internal/validate"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ComposeService handles MCP tool calls. Each tool runs one stage, or the
// whole pipeline, over the operations in its input.
type ComposeService struct {
	pipeline *pipeline.Pipeline
}

// NewComposeService creates a ComposeService backed by p.
func NewComposeService(p *pipeline.Pipeline) *ComposeService {
	return &ComposeService{pipeline: p}
}

// SnapToGrid rounds every positional field to the grid.
func (s *ComposeService) SnapToGrid(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SnapInput,
) (*mcp.CallToolResult, SnapOutput, error) {
	list, err := decodeOperations(input.Operations)
	if err != nil {
		return nil, SnapOutput{}, err
	}
	unit := input.GridUnit
	if unit <= 0 {
		unit = s.pipeline.Config().GridUnit
	}

	snapped := grid.SnapAll(list, unit)
	return nil, SnapOutput{
		Operations:    ops.ToMaps(snapped),
		GridAlignment: grid.CheckAlignment(snapped, unit),
	}, nil
}

// ConvertDomain upgrades generic shapes to domain-specific elements and
// reports each conversion it made.
func (s *ComposeService) ConvertDomain(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ConvertInput,
) (*mcp.CallToolResult, ConvertOutput, error) {
	list, err := decodeOperations(input.Operations)
	if err != nil {
		return nil, ConvertOutput{}, err
	}

	domains := domain.Detect(input.Topic)
	converted := domain.Convert(list, input.Topic)

	matches := []MatchSummary{}
	for i := range list {
		if converted[i].Op == list[i].Op {
			continue
		}
		m, ok := domain.Resolve(list[i], domain.ContextAround(list, i), domains)
		if !ok {
			continue
		}
		matches = append(matches, MatchSummary{
			Index:  i,
			Domain: string(m.Domain),
			Role:   string(m.Role),
			From:   string(list[i].Op),
			To:     string(converted[i].Op),
		})
	}

	return nil, ConvertOutput{
		Operations: ops.ToMaps(converted),
		Domains:    domains,
		Matches:    matches,
		V2Before:   domain.V2Percentage(list),
		V2After:    domain.V2Percentage(converted),
	}, nil
}

// ValidateComposition scores the operations without changing them.
func (s *ComposeService) ValidateComposition(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ValidateInput,
) (*mcp.CallToolResult, ValidateOutput, error) {
	list, err := decodeOperations(input.Operations)
	if err != nil {
		return nil, ValidateOutput{}, err
	}

	cfg := s.pipeline.Config()
	v := validate.Validator{
		GridUnit:      cfg.GridUnit,
		PassThreshold: cfg.PassThreshold,
		Weights:       cfg.Weights,
	}
	return nil, ValidateOutput{Report: v.Validate(list, input.Topic)}, nil
}

// Compose runs the full pipeline.
func (s *ComposeService) Compose(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ComposeInput,
) (*mcp.CallToolResult, ComposeOutput, error) {
	list, err := decodeOperations(input.Operations)
	if err != nil {
		return nil, ComposeOutput{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, ComposeOutput{}, err
	}

	res := s.pipeline.Run(list, input.Topic)
	return nil, ComposeOutput{
		Operations:    ops.ToMaps(res.Operations),
		Report:        res.Report,
		Domains:       res.Domains,
		Expanded:      res.Expanded,
		Inserted:      res.Inserted,
		GridAlignment: res.GridAlignment,
		V2Before:      res.V2Before,
		V2After:       res.V2After,
	}, nil
}

func decodeOperations(items []map[string]any) ([]ops.Operation, error) {
	list, err := ops.FromMaps(items)
	if err != nil {
		return nil, fmt.Errorf("invalid operations: %w", err)
	}
	return list, nil
}
