package mcptools

import (
	"github.com/dusk-indust/compose/internal/domain"
	"github.com/dusk-indust/compose/internal/validate"
)

// Operations travel as plain JSON objects so that clients can pass whatever
// fields their renderer understands. Each object must carry an "op" key.

// SnapInput is the input for the snap_to_grid MCP tool.
type SnapInput struct {
	Operations []map[string]any `json:"operations" jsonschema:"drawing operations, each an object with an op field"`
	GridUnit   float64          `json:"gridUnit,omitempty" jsonschema:"grid spacing in normalised canvas units (default 0.05)"`
}

// SnapOutput is the result of the snap_to_grid MCP tool.
type SnapOutput struct {
	Operations    []map[string]any `json:"operations"`
	GridAlignment float64          `json:"gridAlignment"`
}

// ConvertInput is the input for the convert_domain MCP tool.
type ConvertInput struct {
	Operations []map[string]any `json:"operations" jsonschema:"drawing operations, each an object with an op field"`
	Topic      string           `json:"topic" jsonschema:"subject of the scene, used to detect domains"`
}

// ConvertOutput is the result of the convert_domain MCP tool.
type ConvertOutput struct {
	Operations []map[string]any `json:"operations"`
	Domains    []domain.Domain  `json:"domains"`
	Matches    []MatchSummary   `json:"matches"`
	V2Before   float64          `json:"v2Before"`
	V2After    float64          `json:"v2After"`
}

// MatchSummary records one converted operation.
type MatchSummary struct {
	Index  int    `json:"index"`
	Domain string `json:"domain"`
	Role   string `json:"role"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// ValidateInput is the input for the validate_composition MCP tool.
type ValidateInput struct {
	Operations []map[string]any `json:"operations" jsonschema:"drawing operations, each an object with an op field"`
	Topic      string           `json:"topic,omitempty" jsonschema:"subject of the scene"`
}

// ValidateOutput is the result of the validate_composition MCP tool.
type ValidateOutput struct {
	Report validate.Report `json:"report"`
}

// ComposeInput is the input for the compose MCP tool.
type ComposeInput struct {
	Operations []map[string]any `json:"operations" jsonschema:"drawing operations, each an object with an op field"`
	Topic      string           `json:"topic" jsonschema:"subject of the scene"`
}

// ComposeOutput is the result of the compose MCP tool.
type ComposeOutput struct {
	Operations    []map[string]any `json:"operations"`
	Report        validate.Report  `json:"report"`
	Domains       []domain.Domain  `json:"domains"`
	Expanded      bool             `json:"expanded"`
	Inserted      int              `json:"inserted"`
	GridAlignment float64          `json:"gridAlignment"`
	V2Before      float64          `json:"v2Before"`
	V2After       float64          `json:"v2After"`
}
