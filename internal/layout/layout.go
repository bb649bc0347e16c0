// Package layout repositions labels whose estimated bounding boxes overlap.
package layout

import (
	"unicode/utf8"

	"github.com/dusk-indust/compose/internal/grid"
	"github.com/dusk-indust/compose/internal/ops"
)

const (
	charWidth   = 0.012
	labelHeight = 0.04
	minWidth    = 0.04
	// maxNudges bounds how far a single label may travel.
	maxNudges = 40
)

// Box is an axis-aligned rectangle in normalised canvas space.
type Box struct {
	X, Y, W, H float64
}

// Overlaps reports whether b and o share any area.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.X+o.W && o.X < b.X+b.W &&
		b.Y < o.Y+o.H && o.Y < b.Y+b.H
}

// LabelBox estimates the box a label occupies, anchored at its x/y.
func LabelBox(op ops.Operation) (Box, bool) {
	x, y, ok := op.Position()
	if !ok || !op.Op.IsLabel() {
		return Box{}, false
	}
	w := float64(utf8.RuneCountInString(op.Text())) * charWidth
	if w < minWidth {
		w = minWidth
	}
	return Box{X: x, Y: y, W: w, H: labelHeight}, true
}

// FixLabelOverlap returns a list of the same length in which each label
// that overlaps an earlier placed label has been moved down one grid unit
// at a time, wrapping to the next column when it reaches the bottom edge.
// Non-label operations are returned unchanged.
func FixLabelOverlap(list []ops.Operation, unit float64) []ops.Operation {
	if unit <= 0 {
		unit = grid.DefaultUnit
	}
	out := make([]ops.Operation, len(list))
	copy(out, list)

	var placed []Box
	for i, op := range list {
		box, ok := LabelBox(op)
		if !ok {
			continue
		}
		if !collides(box, placed) {
			placed = append(placed, box)
			continue
		}

		moved, ok := findFreeSpot(box, placed, unit)
		if !ok {
			placed = append(placed, box)
			continue
		}
		next := op.Clone()
		next.SetFloat(ops.FieldX, moved.X)
		next.SetFloat(ops.FieldY, moved.Y)
		out[i] = next
		placed = append(placed, moved)
	}
	return out
}

func collides(b Box, placed []Box) bool {
	for _, p := range placed {
		if b.Overlaps(p) {
			return true
		}
	}
	return false
}

// findFreeSpot walks downward from box in grid steps, wrapping to the top
// of the next column, until the box no longer collides.
func findFreeSpot(box Box, placed []Box, unit float64) (Box, bool) {
	candidate := box
	candidate.X = grid.Snap(box.X, unit)
	candidate.Y = grid.Snap(box.Y, unit)
	for n := 0; n < maxNudges; n++ {
		candidate.Y = grid.Snap(candidate.Y+unit, unit)
		if candidate.Y+candidate.H > 1 {
			candidate.Y = grid.Snap(unit, unit)
			candidate.X = grid.Snap(candidate.X+unit*2, unit)
			if candidate.X >= 1 {
				candidate.X = 0
			}
		}
		if !collides(candidate, placed) {
			return candidate, true
		}
	}
	return Box{}, false
}
