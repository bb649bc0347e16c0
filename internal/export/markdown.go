package export

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/compose/internal/pipeline"
)

// RenderMarkdown produces a quality report for a composed scene: verdict,
// sub-score table, then issues and suggestions.
func RenderMarkdown(res pipeline.Result) string {
	var sb strings.Builder

	title := res.Topic
	if title == "" {
		title = "untitled"
	}
	verdict := "FAIL"
	if res.Report.Passed {
		verdict = "PASS"
	}

	sb.WriteString(fmt.Sprintf("# Composition report: %s\n\n", title))
	sb.WriteString(fmt.Sprintf("**%s** with score **%d/100**\n\n", verdict, res.Report.Score))

	domains := make([]string, 0, len(res.Domains))
	for _, d := range res.Domains {
		domains = append(domains, string(d))
	}
	sb.WriteString(fmt.Sprintf("- Domains: %s\n", strings.Join(domains, ", ")))
	sb.WriteString(fmt.Sprintf("- Operations: %d", len(res.Operations)))
	if res.Expanded {
		sb.WriteString(fmt.Sprintf(" (%d inserted)", res.Inserted))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("- Domain-specific: %.1f%% -> %.1f%%\n\n", res.V2Before, res.V2After))

	m := res.Report.Metrics
	sb.WriteString("| Check | Score |\n")
	sb.WriteString("|-------|------:|\n")
	sb.WriteString(fmt.Sprintf("| Grid alignment | %.0f |\n", m.GridAlignmentScore))
	sb.WriteString(fmt.Sprintf("| Sectioning | %.0f |\n", m.SectioningScore))
	sb.WriteString(fmt.Sprintf("| Spacing | %.0f |\n", m.SpacingScore))
	sb.WriteString(fmt.Sprintf("| Density | %.0f |\n", m.DensityScore))

	writeList(&sb, "Issues", res.Report.Issues)
	writeList(&sb, "Suggestions", res.Report.Suggestions)

	return sb.String()
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n## %s\n\n", heading))
	for _, item := range items {
		sb.WriteString("- " + item + "\n")
	}
}
