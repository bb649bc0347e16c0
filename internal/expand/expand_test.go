package expand

import (
	"testing"

	"github.com/dusk-indust/compose/internal/grid"
	"github.com/dusk-indust/compose/internal/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isSubsequence reports whether every element of sub appears in list in the
// same order with identical content.
func isSubsequence(sub, list []ops.Operation) bool {
	j := 0
	for i := 0; i < len(list) && j < len(sub); i++ {
		if ops.Equal([]ops.Operation{sub[j]}, []ops.Operation{list[i]}) {
			j++
		}
	}
	return j == len(sub)
}

func TestNeedsExpansion(t *testing.T) {
	assert.True(t, NeedsExpansion(nil, 0))
	assert.True(t, NeedsExpansion(make([]ops.Operation, 24), 0))
	assert.False(t, NeedsExpansion(make([]ops.Operation, 25), 0))
	assert.False(t, NeedsExpansion(make([]ops.Operation, 5), 5))
	assert.True(t, NeedsExpansion(make([]ops.Operation, 4), 5))
}

func TestExpand_DenseListUnchanged(t *testing.T) {
	list := make([]ops.Operation, 6)
	for i := range list {
		list[i] = ops.New(ops.KindCircle, "x", 0.1*float64(i), "y", 0.5)
	}
	out := Expand(list, Config{MinOperations: 6})
	assert.True(t, ops.Equal(list, out))
}

func TestExpand_AnnotatesThenAddsMarkers(t *testing.T) {
	list := []ops.Operation{
		ops.New(ops.KindCircle, "x", 0.2, "y", 0.5),
		ops.New(ops.KindCircuitElement, "x", 0.5, "y", 0.5, "type", "resistor"),
		ops.New(ops.KindForceVector, "x", 0.8, "y", 0.5),
	}

	out := Expand(list, Config{MinOperations: 10})
	require.Len(t, out, 10)
	assert.True(t, isSubsequence(list, out))

	assert.Equal(t, ops.KindLabel, out[1].Op)
	assert.Equal(t, "Circle", out[1].Text())
	assert.Equal(t, "resistor", out[3].Text())
	assert.Equal(t, "Force Vector", out[5].Text())
	y, _ := out[1].Float(ops.FieldY)
	assert.InDelta(t, 0.55, y, 1e-9)

	for i, marker := range []string{"①", "②", "③", "④"} {
		assert.Equal(t, marker, out[6+i].Text())
		assert.Equal(t, true, out[6+i].Fields["generated"])
	}
	assert.Equal(t, 100.0, grid.CheckAlignment(out, grid.DefaultUnit))
}

func TestExpand_InsertsBeatsBetweenVisuals(t *testing.T) {
	list := []ops.Operation{
		ops.New(ops.KindCircle),
		ops.New(ops.KindRect),
	}

	out := Expand(list, Config{MinOperations: 5})
	require.Len(t, out, 5)
	assert.Equal(t, []ops.Kind{ops.KindCircle, ops.KindDelay, ops.KindRect, ops.KindLabel, ops.KindLabel},
		kinds(out))
	assert.True(t, isSubsequence(list, out))
}

func TestExpand_SkipsExistingMarkers(t *testing.T) {
	list := []ops.Operation{
		ops.New(ops.KindLabel, "text", "① Setup", "x", 0.05, "y", 0.1),
		ops.New(ops.KindLabel, "text", "② Result", "x", 0.2, "y", 0.1),
	}
	out := Expand(list, Config{MinOperations: 4})
	require.Len(t, out, 4)
	assert.Equal(t, "③", out[2].Text())
	assert.Equal(t, "④", out[3].Text())
	x, _ := out[2].Float(ops.FieldX)
	assert.InDelta(t, 0.35, x, 1e-9)
}

func TestExpand_NeverShrinksOrExceedsTarget(t *testing.T) {
	var list []ops.Operation
	for i := 0; i < 12; i++ {
		list = append(list, ops.New(ops.KindCircle, "x", 0.05*float64(i), "y", 0.4))
	}
	out := Expand(list, Config{})
	assert.GreaterOrEqual(t, len(out), len(list))
	assert.LessOrEqual(t, len(out), DefaultMinOperations)
	assert.True(t, isSubsequence(list, out))
}

func TestExpand_AnnotationClampedToCanvas(t *testing.T) {
	list := []ops.Operation{ops.New(ops.KindCircle, "x", 0.9, "y", 1.0)}
	out := Expand(list, Config{MinOperations: 2})
	require.Len(t, out, 2)
	y, _ := out[1].Float(ops.FieldY)
	assert.InDelta(t, 1.0, y, 1e-9)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Circle", describe(ops.New(ops.KindCircle)))
	assert.Equal(t, "Data Structure", describe(ops.New(ops.KindDataStructure)))
	assert.Equal(t, "stack", describe(ops.New(ops.KindDataStructure, "type", "stack")))
	assert.Equal(t, "R1", describe(ops.New(ops.KindRect, "label", " R1 ")))
	assert.Equal(t, "Element", describe(ops.New("draw")))
}

func kinds(list []ops.Operation) []ops.Kind {
	out := make([]ops.Kind, len(list))
	for i, op := range list {
		out[i] = op.Op
	}
	return out
}
