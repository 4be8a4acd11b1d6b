package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"infra-estimator/core/diff"
	"infra-estimator/core/types"
	"infra-estimator/core/ui"
)

// CLIOptions configures terminal rendering
type CLIOptions struct {
	NoColor      bool
	ShowFormulas bool
	ShowNotes    bool
}

// CLIFormatter renders results as styled terminal tables
type CLIFormatter struct {
	opts CLIOptions
}

// NewCLIFormatter creates a CLI formatter
func NewCLIFormatter(opts CLIOptions) *CLIFormatter {
	return &CLIFormatter{opts: opts}
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes the result to w
func (f *CLIFormatter) Render(w io.Writer, result *EstimationResult) error {
	out := ui.NewWriter(w, f.opts.NoColor)
	cur := result.Currency
	cfg := result.Configuration
	b := result.Breakdown

	summary := out.NewCostSummary(summaryTitle(cfg))
	summary.TotalMonthly = Money(cur, b.Total)
	summary.TotalHourly = Money(cur, b.HourlyTotal())
	summary.TotalYearly = Money(cur, b.Total.Mul(decimal.NewFromInt(12)))
	summary.Lines = append(summary.Lines, fmt.Sprintf("Users: %d", cfg.UserCount))
	if result.Team != nil {
		summary.Lines = append(summary.Lines,
			fmt.Sprintf("Team: %d people, %s/month payroll", result.Team.Total, Money(cur, result.Team.MonthlySalaryCost)))
	}
	summary.Render()

	for _, adj := range b.Adjustments {
		out.Warning("%s", adj)
	}

	f.renderItems(out, result)

	if result.Team != nil {
		f.renderTeam(out, result)
	}
	if result.Matrix != nil {
		f.renderMatrix(out, result)
	}
	if result.Comparison != nil {
		f.renderComparison(out, result)
	}
	if f.opts.ShowNotes && len(result.Notes) > 0 {
		out.SubHeader("Notes")
		for _, n := range result.Notes {
			out.Println("  %s: %s", n.Title, out.Muted(n.Text))
		}
		out.Println("")
	}

	out.Println("%s", out.Muted(fmt.Sprintf("Estimate %s  input %s  %s",
		result.Metadata.EstimateID, shortHash(result.Metadata.InputHash), result.Metadata.Region)))
	return nil
}

func (f *CLIFormatter) renderItems(out *ui.Writer, result *EstimationResult) {
	cur := result.Currency
	headers := []string{"Service", "Detail", "Monthly"}
	if f.opts.ShowFormulas {
		headers = append(headers, "Formula")
	}

	tbl := out.NewTable(headers...).AlignRight(2)
	for _, item := range result.Breakdown.Items {
		amount := Money(cur, item.Amount)
		detail := item.Detail
		if !item.Enabled {
			amount = out.Muted(amount)
			detail = out.Muted("disabled")
		}
		row := []string{item.Label, detail, amount}
		if f.opts.ShowFormulas {
			row = append(row, item.Formula)
		}
		tbl.AddRow(row...)
	}
	tbl.SetFooter("Total", "", Money(cur, result.Breakdown.Total))
	tbl.Render()
}

func (f *CLIFormatter) renderTeam(out *ui.Writer, result *EstimationResult) {
	cur := result.Currency
	t := result.Team

	out.SubHeader(fmt.Sprintf("Team (%s, %d months)", t.Quality, t.TimelineMonths))
	out.Println("  Effort: %s person-months (%s development + %s testing) × %s = %s",
		t.Effort.Total.StringFixed(1), t.Effort.Development.StringFixed(1), t.Effort.Testing.StringFixed(1),
		t.Effort.Multiplier.String(), t.Effort.Adjusted.StringFixed(2))

	tbl := out.NewTable("Role", "Headcount", "Salary", "Monthly").AlignRight(1, 2, 3)
	for _, r := range t.Roles {
		tbl.AddRow(r.Role.Label(), strconv.Itoa(r.Headcount), Money(cur, r.MonthlySalary), Money(cur, r.MonthlyCost))
	}
	tbl.SetFooter("Total", strconv.Itoa(t.Total), "", Money(cur, t.MonthlySalaryCost))
	tbl.Render()

	out.Info("Project payroll over %d months: %s", t.TimelineMonths, Money(cur, t.ProjectSalaryCost))
	out.Info("Project total incl. infrastructure: %s", Money(cur, ProjectTotal(result)))
	out.Println("")
}

func (f *CLIFormatter) renderMatrix(out *ui.Writer, result *EstimationResult) {
	cur := result.Currency
	m := result.Matrix

	out.SubHeader(fmt.Sprintf("Scenarios (%s)", m.Architecture))
	headers := []string{"Service"}
	right := make([]int, 0, len(m.UserCounts))
	for i, n := range m.UserCounts {
		headers = append(headers, fmt.Sprintf("%d users", n))
		right = append(right, i+1)
	}

	tbl := out.NewTable(headers...).AlignRight(right...)
	for _, row := range m.Rows {
		cells := []string{row.Label}
		for _, a := range row.Amounts {
			cells = append(cells, Money(cur, a))
		}
		tbl.AddRow(cells...)
	}
	footer := []string{"Total"}
	for _, t := range m.Totals {
		footer = append(footer, Money(cur, t))
	}
	tbl.SetFooter(footer...)
	tbl.Render()
}

func (f *CLIFormatter) renderComparison(out *ui.Writer, result *EstimationResult) {
	cur := result.Currency
	c := result.Comparison

	view := out.NewDiffView(fmt.Sprintf("Monorepo vs Microservices (%d users)", c.UserCount))
	for _, item := range c.Diff.Changed() {
		di := ui.DiffItem{
			Name:       item.Label,
			OldCost:    Money(cur, item.Before),
			NewCost:    Money(cur, item.After),
			Change:     Money(cur, item.Delta.Abs()),
			IsIncrease: item.Delta.IsPositive(),
		}
		switch item.ChangeType {
		case diff.ChangeAdded:
			view.Added = append(view.Added, di)
		case diff.ChangeRemoved:
			view.Removed = append(view.Removed, di)
		default:
			view.Changed = append(view.Changed, di)
		}
	}
	view.TotalChange = Money(cur, c.Diff.TotalDelta.Abs())
	view.IsIncrease = c.Diff.TotalDelta.IsPositive()
	view.Render()

	out.Success("%s is cheaper by %s (%s%%)", c.Cheaper, Money(cur, c.Savings), c.SavingsPercent.StringFixed(2))
	for _, l := range c.Diff.Narrative(cur) {
		out.Println("  %s", out.Muted(l))
	}
	out.Println("")
}

// ProjectTotal is payroll over the timeline plus infrastructure for
// the same number of months
func ProjectTotal(result *EstimationResult) decimal.Decimal {
	if result.Team == nil {
		return result.Breakdown.Total
	}
	months := decimal.NewFromInt(int64(result.Team.TimelineMonths))
	return result.Team.ProjectSalaryCost.Add(result.Breakdown.Total.Mul(months))
}

func summaryTitle(cfg types.Configuration) string {
	if cfg.Preset == types.PresetProject {
		return "Project Estimate"
	}
	if cfg.Architecture == types.ArchitectureMicroservices {
		return "Infrastructure Estimate (Microservices)"
	}
	return "Infrastructure Estimate (Monorepo)"
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
