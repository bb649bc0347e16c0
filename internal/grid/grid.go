// Package grid snaps operation coordinates onto a fixed normalised grid and
// measures how much of a composition is already aligned.
package grid

import (
	"math"

	"github.com/dusk-indust/compose/internal/ops"
)

// DefaultUnit is the grid spacing in normalised canvas space.
const DefaultUnit = 0.05

// alignEpsilon is the distance to the nearest grid line still counted as
// aligned by CheckAlignment.
const alignEpsilon = 0.001

// Snap rounds v to the nearest multiple of unit. The result depends only on
// the grid index, which keeps snapping idempotent. Values too large to snap
// without overflowing are returned unchanged.
func Snap(v, unit float64) float64 {
	unit = normalizeUnit(unit)
	k := math.Round(v / unit)
	snapped := math.Round(k*unit*1e9) / 1e9
	if math.IsInf(snapped, 0) || math.IsNaN(snapped) {
		return v
	}
	return snapped
}

// Aligned reports whether v lies within alignEpsilon of a grid line.
func Aligned(v, unit float64) bool {
	unit = normalizeUnit(unit)
	return math.Abs(v-math.Round(v/unit)*unit) <= alignEpsilon
}

func normalizeUnit(unit float64) float64 {
	if unit <= 0 || math.IsNaN(unit) || math.IsInf(unit, 0) {
		return DefaultUnit
	}
	return unit
}

// SnapAll returns a new list in which every recognised positional value is
// snapped to the grid. The input list and its field maps are not modified.
func SnapAll(list []ops.Operation, unit float64) []ops.Operation {
	out := make([]ops.Operation, len(list))
	for i, op := range list {
		out[i] = SnapOperation(op, unit)
	}
	return out
}

// SnapOperation snaps a single operation's x/y, from/to and path points.
func SnapOperation(op ops.Operation, unit float64) ops.Operation {
	snapped := op.Clone()

	for _, key := range []string{ops.FieldX, ops.FieldY} {
		if v, ok := snapped.Float(key); ok {
			snapped.SetFloat(key, Snap(v, unit))
		}
	}

	for _, key := range []string{ops.FieldFrom, ops.FieldTo} {
		if p, ok := snapPoint(snapped.Fields[key], unit); ok {
			snapped.Fields[key] = p
		}
	}

	for _, key := range ops.PathFields {
		points, ok := snapped.Points(key)
		if !ok {
			continue
		}
		next := make([]any, len(points))
		for i, pt := range points {
			if p, ok := snapPoint(pt, unit); ok {
				next[i] = p
			} else {
				next[i] = pt
			}
		}
		snapped.Fields[key] = next
	}

	return snapped
}

// snapPoint returns a fresh copy of a tuple or point object with its first
// two components snapped. Extra components are preserved as-is.
func snapPoint(v any, unit float64) (any, bool) {
	x, y, ok := ops.PointValue(v)
	if !ok {
		return nil, false
	}
	switch p := v.(type) {
	case []any:
		next := make([]any, len(p))
		copy(next, p)
		next[0], next[1] = Snap(x, unit), Snap(y, unit)
		return next, true
	case []float64:
		next := make([]float64, len(p))
		copy(next, p)
		next[0], next[1] = Snap(x, unit), Snap(y, unit)
		return next, true
	case map[string]any:
		next := make(map[string]any, len(p))
		for k, val := range p {
			next[k] = val
		}
		next[ops.FieldX], next[ops.FieldY] = Snap(x, unit), Snap(y, unit)
		return next, true
	}
	return nil, false
}

// CheckAlignment returns the percentage (0-100) of positional scalar values
// that sit on the grid. A list with no positional values scores 100.
func CheckAlignment(list []ops.Operation, unit float64) float64 {
	var total, aligned int
	count := func(v float64) {
		total++
		if Aligned(v, unit) {
			aligned++
		}
	}

	for _, op := range list {
		for _, v := range PositionalValues(op) {
			count(v)
		}
	}

	if total == 0 {
		return 100
	}
	return float64(aligned) / float64(total) * 100
}

// PositionalValues collects every scalar the snapper would touch.
func PositionalValues(op ops.Operation) []float64 {
	var vals []float64
	for _, key := range []string{ops.FieldX, ops.FieldY} {
		if v, ok := op.Float(key); ok {
			vals = append(vals, v)
		}
	}
	for _, key := range []string{ops.FieldFrom, ops.FieldTo} {
		if x, y, ok := op.Point(key); ok {
			vals = append(vals, x, y)
		}
	}
	for _, key := range ops.PathFields {
		points, ok := op.Points(key)
		if !ok {
			continue
		}
		for _, pt := range points {
			if x, y, ok := ops.PointValue(pt); ok {
				vals = append(vals, x, y)
			}
		}
	}
	return vals
}
