package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/dusk-indust/compose/internal/domain"
	"github.com/dusk-indust/compose/internal/ops"
	"github.com/dusk-indust/compose/internal/pipeline"
	"github.com/dusk-indust/compose/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() pipeline.Result {
	return pipeline.Result{
		Topic: "RC circuit",
		Operations: []ops.Operation{
			ops.New(ops.KindLabel, "text", "① resistor"),
			ops.New(ops.KindCircuitElement, "x", 0.45, "y", 0.25, "type", "resistor"),
		},
		Report: validate.Report{
			Passed:      false,
			Score:       42,
			Issues:      []string{"Low label density"},
			Suggestions: []string{"Add labels"},
			Metrics: validate.Metrics{
				GridAlignmentScore: 100,
				SectioningScore:    40,
				SpacingScore:       20,
				DensityScore:       10,
			},
		},
		Domains:       []domain.Domain{domain.Electrical},
		V2Before:      0,
		V2After:       50,
		GridAlignment: 100,
		Expanded:      true,
		Inserted:      1,
	}
}

func TestFromResult(t *testing.T) {
	doc := FromResult(sampleResult())

	assert.Equal(t, "RC circuit", doc.Topic)
	assert.Equal(t, []domain.Domain{domain.Electrical}, doc.Domains)
	assert.Len(t, doc.Operations, 2)
	assert.Equal(t, ComposeMetrics{
		OperationCount: 2,
		Inserted:       1,
		GridAlignment:  100,
		V2Before:       0,
		V2After:        50,
	}, doc.Metrics)

	_, err := time.Parse(time.RFC3339, doc.ExportedAt)
	assert.NoError(t, err)
}

func TestFromResult_NilOperationsEncodeAsArray(t *testing.T) {
	doc := FromResult(pipeline.Result{})
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, doc))
	assert.Contains(t, buf.String(), `"operations": []`)
}

func TestWriteJSON_RoundTripsOperations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, FromResult(sampleResult())))

	var decoded struct {
		Topic      string          `json:"topic"`
		Operations []ops.Operation `json:"operations"`
		Report     validate.Report `json:"report"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "RC circuit", decoded.Topic)
	require.Len(t, decoded.Operations, 2)
	assert.Equal(t, ops.KindCircuitElement, decoded.Operations[1].Op)
	assert.Equal(t, "resistor", decoded.Operations[1].StringField("type"))
	assert.Equal(t, 42, decoded.Report.Score)

	// Circled markers are not HTML-escaped.
	assert.Contains(t, buf.String(), "① resistor")
}

func TestRenderMarkdown(t *testing.T) {
	md := RenderMarkdown(sampleResult())

	assert.Contains(t, md, "# Composition report: RC circuit")
	assert.Contains(t, md, "**FAIL** with score **42/100**")
	assert.Contains(t, md, "- Domains: electrical")
	assert.Contains(t, md, "- Operations: 2 (1 inserted)")
	assert.Contains(t, md, "| Sectioning | 40 |")
	assert.Contains(t, md, "## Issues\n\n- Low label density\n")
	assert.Contains(t, md, "## Suggestions\n\n- Add labels\n")
}

func TestRenderMarkdown_OmitsEmptySections(t *testing.T) {
	res := sampleResult()
	res.Topic = ""
	res.Expanded = false
	res.Report.Passed = true
	res.Report.Issues = nil
	res.Report.Suggestions = nil

	md := RenderMarkdown(res)
	assert.Contains(t, md, "# Composition report: untitled")
	assert.Contains(t, md, "**PASS**")
	assert.Contains(t, md, "- Operations: 2\n")
	assert.NotContains(t, md, "## Issues")
	assert.NotContains(t, md, "## Suggestions")
}
