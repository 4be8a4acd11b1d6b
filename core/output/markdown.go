package output

import (
	"fmt"
	"io"
	"strings"

	"infra-estimator/internal/errors"
)

// MarkdownFormatter renders results as a markdown report
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render writes the result to w
func (f *MarkdownFormatter) Render(w io.Writer, result *EstimationResult) error {
	var sb strings.Builder
	cur := result.Currency
	cfg := result.Configuration
	b := result.Breakdown

	fmt.Fprintf(&sb, "# %s\n\n", summaryTitle(cfg))
	fmt.Fprintf(&sb, "**Monthly total:** %s  \n", Money(cur, b.Total))
	fmt.Fprintf(&sb, "**Users:** %d  \n", cfg.UserCount)
	fmt.Fprintf(&sb, "**Region:** %s\n\n", result.Metadata.Region)

	for _, adj := range b.Adjustments {
		fmt.Fprintf(&sb, "> %s\n", adj)
	}
	if len(b.Adjustments) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString("## Line Items\n\n")
	sb.WriteString("| Service | Detail | Monthly | Formula |\n")
	sb.WriteString("|---|---|---:|---|\n")
	for _, item := range b.Items {
		detail := item.Detail
		if !item.Enabled {
			detail = "_disabled_"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", item.Label, mdEscape(detail), Money(cur, item.Amount), mdEscape(item.Formula))
	}
	fmt.Fprintf(&sb, "| **Total** | | **%s** | |\n\n", Money(cur, b.Total))

	if t := result.Team; t != nil {
		fmt.Fprintf(&sb, "## Team (%s, %d months)\n\n", t.Quality, t.TimelineMonths)
		fmt.Fprintf(&sb, "Adjusted effort: %s person-months\n\n", t.Effort.Adjusted.StringFixed(2))
		sb.WriteString("| Role | Headcount | Salary | Monthly |\n")
		sb.WriteString("|---|---:|---:|---:|\n")
		for _, r := range t.Roles {
			fmt.Fprintf(&sb, "| %s | %d | %s | %s |\n", r.Role.Label(), r.Headcount, Money(cur, r.MonthlySalary), Money(cur, r.MonthlyCost))
		}
		fmt.Fprintf(&sb, "| **Total** | **%d** | | **%s** |\n\n", t.Total, Money(cur, t.MonthlySalaryCost))
		fmt.Fprintf(&sb, "Project payroll: %s  \n", Money(cur, t.ProjectSalaryCost))
		fmt.Fprintf(&sb, "Project total incl. infrastructure: %s\n\n", Money(cur, ProjectTotal(result)))
	}

	if m := result.Matrix; m != nil {
		sb.WriteString("## Scenarios\n\n| Service |")
		for _, n := range m.UserCounts {
			fmt.Fprintf(&sb, " %d users |", n)
		}
		sb.WriteString("\n|---|" + strings.Repeat("---:|", len(m.UserCounts)) + "\n")
		for _, row := range m.Rows {
			fmt.Fprintf(&sb, "| %s |", row.Label)
			for _, a := range row.Amounts {
				fmt.Fprintf(&sb, " %s |", Money(cur, a))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("| **Total** |")
		for _, t := range m.Totals {
			fmt.Fprintf(&sb, " **%s** |", Money(cur, t))
		}
		sb.WriteString("\n\n")
	}

	if c := result.Comparison; c != nil {
		fmt.Fprintf(&sb, "## Monorepo vs Microservices (%d users)\n\n", c.UserCount)
		fmt.Fprintf(&sb, "- Monorepo: %s\n", Money(cur, c.Monorepo))
		fmt.Fprintf(&sb, "- Microservices: %s\n", Money(cur, c.Microservices))
		fmt.Fprintf(&sb, "- Cheaper: **%s**, saving %s (%s%%)\n\n", c.Cheaper, Money(cur, c.Savings), c.SavingsPercent.StringFixed(2))
		if lines := c.Diff.Narrative(cur); len(lines) > 0 {
			sb.WriteString("Moving to microservices:\n\n")
			for _, l := range lines {
				fmt.Fprintf(&sb, "- %s\n", mdEscape(l))
			}
			sb.WriteString("\n")
		}
	}

	if len(result.Notes) > 0 {
		sb.WriteString("## Notes\n\n")
		for _, n := range result.Notes {
			fmt.Fprintf(&sb, "- **%s:** %s\n", n.Title, n.Text)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "---\n_Estimate %s, input hash `%s`_\n", result.Metadata.EstimateID, result.Metadata.InputHash)

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.Export("write markdown", err)
	}
	return nil
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
