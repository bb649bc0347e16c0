// Package expand densifies sparse compositions by inserting annotation
// labels, timing beats and section markers. Existing operations are never
// removed or reordered.
package expand

import (
	"strings"
	"unicode"

	"github.com/dusk-indust/compose/internal/grid"
	"github.com/dusk-indust/compose/internal/ops"
)

// DefaultMinOperations is the count below which a composition is expanded.
const DefaultMinOperations = 25

// defaultBeatMillis is the duration of inserted delay operations.
const defaultBeatMillis = 300

var sectionMarkers = []string{"①", "②", "③", "④", "⑤", "⑥"}

// Config controls expansion. Zero values select the defaults.
type Config struct {
	// MinOperations is both the trigger threshold and the target count.
	MinOperations int
	GridUnit      float64
}

func (c Config) withDefaults() Config {
	if c.MinOperations <= 0 {
		c.MinOperations = DefaultMinOperations
	}
	if c.GridUnit <= 0 {
		c.GridUnit = grid.DefaultUnit
	}
	return c
}

// NeedsExpansion reports whether list is shorter than minOps (default 25).
func NeedsExpansion(list []ops.Operation, minOps int) bool {
	if minOps <= 0 {
		minOps = DefaultMinOperations
	}
	return len(list) < minOps
}

// Expand inserts operations until list reaches the configured target, in
// three passes: annotations for unlabeled visuals, delays between
// back-to-back visuals, then section markers appended along the top band.
// Lists that do not need expansion are returned as a copy.
func Expand(list []ops.Operation, cfg Config) []ops.Operation {
	cfg = cfg.withDefaults()
	out := append([]ops.Operation(nil), list...)
	if !NeedsExpansion(out, cfg.MinOperations) {
		return out
	}

	out = annotate(out, cfg)
	out = addBeats(out, cfg)
	out = addSectionMarkers(out, cfg)
	return out
}

// annotate inserts a label after each positioned visual operation that has
// no label immediately before or after it.
func annotate(list []ops.Operation, cfg Config) []ops.Operation {
	out := make([]ops.Operation, 0, cfg.MinOperations)
	budget := cfg.MinOperations - len(list)
	for i, op := range list {
		out = append(out, op)
		if budget <= 0 || !isVisual(op) || hasAdjacentLabel(list, i) {
			continue
		}
		x, y, ok := op.Position()
		if !ok {
			continue
		}
		out = append(out, ops.New(ops.KindLabel,
			ops.FieldText, describe(op),
			ops.FieldX, grid.Snap(clampUnit(x), cfg.GridUnit),
			ops.FieldY, grid.Snap(clampUnit(y+cfg.GridUnit), cfg.GridUnit),
			ops.FieldGenerated, true,
		))
		budget--
	}
	return out
}

// addBeats inserts a delay between consecutive visual operations so the
// renderer reveals them one at a time.
func addBeats(list []ops.Operation, cfg Config) []ops.Operation {
	budget := cfg.MinOperations - len(list)
	if budget <= 0 {
		return list
	}
	out := make([]ops.Operation, 0, cfg.MinOperations)
	for i, op := range list {
		out = append(out, op)
		if budget > 0 && i+1 < len(list) && isVisual(op) && isVisual(list[i+1]) {
			out = append(out, ops.New(ops.KindDelay, "ms", defaultBeatMillis, ops.FieldGenerated, true))
			budget--
		}
	}
	return out
}

// addSectionMarkers appends numbered markers spread across the top band,
// skipping markers already present in the list.
func addSectionMarkers(list []ops.Operation, cfg Config) []ops.Operation {
	present := make(map[string]bool)
	for _, op := range list {
		if !op.Op.IsLabel() {
			continue
		}
		for _, m := range sectionMarkers {
			if strings.HasPrefix(strings.TrimSpace(op.Text()), m) {
				present[m] = true
			}
		}
	}

	out := list
	slot := 0
	for _, m := range sectionMarkers {
		if len(out) >= cfg.MinOperations {
			break
		}
		if present[m] {
			slot++
			continue
		}
		x := 0.05 + float64(slot)*0.15
		out = append(out, ops.New(ops.KindLabel,
			ops.FieldText, m,
			ops.FieldX, grid.Snap(clampUnit(x), cfg.GridUnit),
			ops.FieldY, grid.Snap(0.1, cfg.GridUnit),
			ops.FieldGenerated, true,
		))
		slot++
	}
	return out
}

func isVisual(op ops.Operation) bool {
	return !op.Op.IsLabel() && !op.Op.IsDelay()
}

func hasAdjacentLabel(list []ops.Operation, i int) bool {
	if i > 0 && list[i-1].Op.IsLabel() {
		return true
	}
	return i+1 < len(list) && list[i+1].Op.IsLabel()
}

// describe picks annotation text: an explicit label or type field, else the
// kind name without its "draw" prefix, split into words.
func describe(op ops.Operation) string {
	for _, key := range []string{"label", "name", "type"} {
		if s := strings.TrimSpace(op.StringField(key)); s != "" {
			return s
		}
	}
	name := strings.TrimPrefix(string(op.Op), "draw")
	var sb strings.Builder
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	if sb.Len() == 0 {
		return "Element"
	}
	return sb.String()
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
