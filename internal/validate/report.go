package validate

import (
	"fmt"
	"strings"
)

// Metrics holds the four sub-scores, each 0-100.
type Metrics struct {
	GridAlignmentScore float64 `json:"gridAlignmentScore"`
	SectioningScore    float64 `json:"sectioningScore"`
	SpacingScore       float64 `json:"spacingScore"`
	DensityScore       float64 `json:"densityScore"`
}

// Report is the read-only outcome of validating a composition.
type Report struct {
	Passed      bool     `json:"passed"`
	Score       int      `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
	Metrics     Metrics  `json:"metrics"`
}

// Summary renders the report as one log-friendly line.
func (r Report) Summary() string {
	verdict := "FAIL"
	if r.Passed {
		verdict = "PASS"
	}
	return fmt.Sprintf("%s score=%d grid=%.0f sectioning=%.0f spacing=%.0f density=%.0f issues=%d",
		verdict, r.Score,
		r.Metrics.GridAlignmentScore, r.Metrics.SectioningScore,
		r.Metrics.SpacingScore, r.Metrics.DensityScore,
		len(r.Issues))
}

// String lists issues and suggestions under the summary line.
func (r Report) String() string {
	var sb strings.Builder
	sb.WriteString(r.Summary())
	for _, issue := range r.Issues {
		sb.WriteString("\n  issue: ")
		sb.WriteString(issue)
	}
	for _, s := range r.Suggestions {
		sb.WriteString("\n  suggestion: ")
		sb.WriteString(s)
	}
	return sb.String()
}

// finding accumulates a sub-check's score and messages.
type finding struct {
	score       float64
	issues      []string
	suggestions []string
}

func (f *finding) issue(format string, args ...any) {
	f.issues = append(f.issues, fmt.Sprintf(format, args...))
}

func (f *finding) suggest(format string, args ...any) {
	f.suggestions = append(f.suggestions, fmt.Sprintf(format, args...))
}
