// Package validate scores a composition against layout heuristics and
// reports issues and suggestions. It never modifies its input.
package validate

import (
	"math"
	"regexp"

	"github.com/dusk-indust/compose/internal/grid"
	"github.com/dusk-indust/compose/internal/ops"
)

// Weights are the contributions of each sub-score to the overall score.
type Weights struct {
	Grid       float64 `yaml:"grid" json:"grid"`
	Sectioning float64 `yaml:"sectioning" json:"sectioning"`
	Spacing    float64 `yaml:"spacing" json:"spacing"`
	Density    float64 `yaml:"density" json:"density"`
}

// DefaultWeights favour sectioning, then grid and spacing equally.
var DefaultWeights = Weights{Grid: 0.25, Sectioning: 0.35, Spacing: 0.25, Density: 0.15}

// DefaultPassThreshold is the minimum overall score that passes.
const DefaultPassThreshold = 70

const (
	gridScaleTolerance = 0.01
	gridIssueBelow     = 70

	bucketsPerAxis   = 10
	crowdedBucketMax = 8
	minBucketsUsed   = 8
	crowdedPenalty   = 15
	sparsePenalty    = 20

	minVisualShare  = 0.5
	maxVisualShare  = 0.85
	minLabelShare   = 0.12
	textHeavyCost   = 30
	tooFewLabelCost = 20
	lowLabelCost    = 20
)

// sectionMarkerRe matches circled numbers ①-⑥ or list prefixes like "1."
// and "A." at the start of a label. A list prefix must be followed by
// whitespace or end the label, so values such as "1.5 V" do not count.
var sectionMarkerRe = regexp.MustCompile(`^\s*(?:[①②③④⑤⑥]|(?:\d+|[A-Z])\.(?:\s|$))`)

// Validator scores compositions. The zero value uses the defaults.
type Validator struct {
	GridUnit      float64
	PassThreshold int
	Weights       Weights
}

// Validate scores list with the default validator.
func Validate(list []ops.Operation, topic string) Report {
	return Validator{}.Validate(list, topic)
}

// Validate runs the grid, sectioning, spacing and density checks and
// combines them into a report. Issues and suggestions appear in that order.
// The topic is accepted for parity with the other stages; no check uses it.
func (v Validator) Validate(list []ops.Operation, _ string) Report {
	unit := v.GridUnit
	if unit <= 0 {
		unit = grid.DefaultUnit
	}
	threshold := v.PassThreshold
	if threshold <= 0 {
		threshold = DefaultPassThreshold
	}
	w := v.Weights
	if w == (Weights{}) {
		w = DefaultWeights
	}

	checks := []finding{
		checkGrid(list, unit),
		checkSectioning(list),
		checkSpacing(list),
		checkDensity(list),
	}

	report := Report{
		Issues:      []string{},
		Suggestions: []string{},
		Metrics: Metrics{
			GridAlignmentScore: checks[0].score,
			SectioningScore:    checks[1].score,
			SpacingScore:       checks[2].score,
			DensityScore:       checks[3].score,
		},
	}
	for _, c := range checks {
		report.Issues = append(report.Issues, c.issues...)
		report.Suggestions = append(report.Suggestions, c.suggestions...)
	}

	overall := w.Grid*checks[0].score +
		w.Sectioning*checks[1].score +
		w.Spacing*checks[2].score +
		w.Density*checks[3].score
	report.Score = int(clamp(math.Round(overall), 0, 100))
	report.Passed = report.Score >= threshold
	return report
}

// checkGrid measures the share of x/y values on the grid. Alignment is
// tested on the scaled value v/unit, so the tolerance is in grid steps.
func checkGrid(list []ops.Operation, unit float64) finding {
	var total, aligned int
	for _, op := range list {
		for _, key := range []string{ops.FieldX, ops.FieldY} {
			val, ok := op.Float(key)
			if !ok {
				continue
			}
			total++
			scaled := val / unit
			if math.Abs(scaled-math.Round(scaled)) < gridScaleTolerance {
				aligned++
			}
		}
	}

	f := finding{score: 100}
	if total == 0 {
		return f
	}
	f.score = float64(aligned) / float64(total) * 100
	if f.score < gridIssueBelow {
		f.issue("Only %.0f%% of positions are grid-aligned (%d of %d)", f.score, aligned, total)
		f.suggest("Place elements on %.2f increments (e.g. 0.10, 0.15, 0.20) for a clean layout", unit)
	}
	return f
}

// checkSectioning combines numbered section markers with horizontal spread.
func checkSectioning(list []ops.Operation) finding {
	var f finding

	markers := 0
	for _, op := range list {
		if op.Op.IsLabel() && sectionMarkerRe.MatchString(op.Text()) {
			markers++
		}
	}
	switch {
	case markers >= 4:
		f.score += 50
	case markers == 3:
		f.score += 35
		f.suggest("Add a fourth numbered section to complete the explanation")
	case markers == 2:
		f.score += 20
		f.suggest("Break the explanation into 4 or more numbered sections")
	default:
		f.issue("Missing section markers: found %d numbered labels, expected at least 2", markers)
		f.suggest("Start section labels with ①-⑥ or a list prefix such as \"1.\" or \"A.\"")
	}

	minX, maxX, seen := 0.0, 0.0, false
	for _, op := range list {
		x, ok := op.Float(ops.FieldX)
		if !ok {
			continue
		}
		if !seen {
			minX, maxX, seen = x, x, true
			continue
		}
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
	}
	spread := maxX - minX
	switch {
	case spread > 0.6:
		f.score += 50
	case spread > 0.4:
		f.score += 30
		f.suggest("Use more of the canvas width; horizontal spread is %.2f", spread)
	default:
		f.score += 10
		f.issue("Layout is too narrow: horizontal spread is %.2f of the canvas width", spread)
		f.suggest("Distribute sections across the full width (x from 0.05 to 0.95)")
	}

	f.score = math.Min(f.score, 100)
	return f
}

// checkSpacing buckets positioned operations into a coarse grid and
// penalises crowded cells and an underused canvas.
func checkSpacing(list []ops.Operation) finding {
	var counts [bucketsPerAxis * bucketsPerAxis]int
	positioned := 0
	for _, op := range list {
		x, y, ok := op.Position()
		if !ok {
			continue
		}
		positioned++
		counts[bucketIndex(y)*bucketsPerAxis+bucketIndex(x)]++
	}

	var f finding
	if positioned == 0 {
		f.issue("No positioned operations: the canvas is empty")
		f.suggest("Give visual elements x/y positions across the canvas")
		return f
	}

	f.score = 100
	used := 0
	for i, n := range counts {
		if n == 0 {
			continue
		}
		used++
		if n > crowdedBucketMax {
			f.score -= crowdedPenalty
			cx := (float64(i%bucketsPerAxis) + 0.5) / bucketsPerAxis
			cy := (float64(i/bucketsPerAxis) + 0.5) / bucketsPerAxis
			f.issue("Overcrowded region near (%.2f, %.2f): %d operations in one cell", cx, cy, n)
			f.suggest("Spread the elements around (%.2f, %.2f) into neighbouring regions", cx, cy)
		}
	}
	if used < minBucketsUsed {
		f.score -= sparsePenalty
		f.issue("Canvas underutilized: only %d regions contain elements", used)
		f.suggest("Spread elements over at least %d distinct regions of the canvas", minBucketsUsed)
	}

	f.score = math.Max(f.score, 0)
	return f
}

func bucketIndex(v float64) int {
	i := int(math.Floor(v * bucketsPerAxis))
	return int(clamp(float64(i), 0, bucketsPerAxis-1))
}

// checkDensity balances visual elements against explanatory labels.
func checkDensity(list []ops.Operation) finding {
	var f finding
	if len(list) == 0 {
		f.issue("Composition is empty: no operations to evaluate")
		return f
	}

	var labels, delays, visuals int
	for _, op := range list {
		switch {
		case op.Op.IsLabel():
			labels++
		case op.Op.IsDelay():
			delays++
		default:
			visuals++
		}
	}
	total := float64(len(list))
	visualShare := float64(visuals) / total
	labelShare := float64(labels) / total

	f.score = 100
	if visualShare < minVisualShare {
		f.score -= textHeavyCost
		f.issue("Too text-heavy: only %.0f%% of operations are visual", visualShare*100)
		f.suggest("Replace some labels with diagrams, arrows or domain elements")
	}
	if visualShare > maxVisualShare {
		f.score -= tooFewLabelCost
		f.issue("Too few explanatory labels: %.0f%% of operations are visual", visualShare*100)
		f.suggest("Annotate key elements with short labels")
	}
	if labelShare < minLabelShare {
		f.score -= lowLabelCost
		f.issue("Label share is %.0f%%, below the 12%% minimum", labelShare*100)
		f.suggest("Add labels so at least one in eight operations explains the visuals")
	}

	f.score = math.Max(f.score, 0)
	return f
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
