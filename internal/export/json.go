package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dusk-indust/compose/internal/domain"
	"github.com/dusk-indust/compose/internal/ops"
	"github.com/dusk-indust/compose/internal/pipeline"
	"github.com/dusk-indust/compose/internal/validate"
)

// Document is the top-level JSON export of a composed scene.
type Document struct {
	Topic      string          `json:"topic"`
	ExportedAt string          `json:"exportedAt"`
	Domains    []domain.Domain `json:"domains"`
	Operations []ops.Operation `json:"operations"`
	Report     validate.Report `json:"report"`
	Metrics    ComposeMetrics  `json:"metrics"`
}

// ComposeMetrics summarises what the pipeline changed.
type ComposeMetrics struct {
	OperationCount int     `json:"operationCount"`
	Inserted       int     `json:"inserted"`
	GridAlignment  float64 `json:"gridAlignment"`
	V2Before       float64 `json:"v2Before"`
	V2After        float64 `json:"v2After"`
}

// FromResult builds a Document from a pipeline result, stamped with the
// current UTC time.
func FromResult(res pipeline.Result) *Document {
	operations := res.Operations
	if operations == nil {
		operations = []ops.Operation{}
	}
	return &Document{
		Topic:      res.Topic,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Domains:    res.Domains,
		Operations: operations,
		Report:     res.Report,
		Metrics: ComposeMetrics{
			OperationCount: len(res.Operations),
			Inserted:       res.Inserted,
			GridAlignment:  res.GridAlignment,
			V2Before:       res.V2Before,
			V2After:        res.V2After,
		},
	}
}

// WriteJSON writes doc as indented JSON followed by a newline.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}
