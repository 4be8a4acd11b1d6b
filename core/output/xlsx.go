package output

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"infra-estimator/core/types"
	"infra-estimator/internal/errors"
)

// Workbook sheet names
const (
	SheetEstimate  = "Estimate"
	SheetTeam      = "Team"
	SheetScenarios = "Scenarios"
	SheetNotes     = "Notes"
)

// XLSXFormatter renders results as an Excel workbook. Amounts are
// written as numbers in the display currency.
type XLSXFormatter struct{}

// NewXLSXFormatter creates an xlsx formatter
func NewXLSXFormatter() *XLSXFormatter {
	return &XLSXFormatter{}
}

// Format returns FormatXLSX
func (f *XLSXFormatter) Format() Format {
	return FormatXLSX
}

// Render writes the workbook to w
func (f *XLSXFormatter) Render(w io.Writer, result *EstimationResult) error {
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName("Sheet1", SheetEstimate); err != nil {
		return errors.Export("create workbook", err)
	}

	sw := &sheetWriter{book: book, cur: result.Currency}
	if err := sw.estimate(result); err != nil {
		return err
	}
	if result.Team != nil {
		if err := sw.team(result); err != nil {
			return err
		}
	}
	if result.Matrix != nil {
		if err := sw.scenarios(result); err != nil {
			return err
		}
	}
	if len(result.Notes) > 0 {
		if err := sw.notes(result); err != nil {
			return err
		}
	}

	book.SetActiveSheet(0)
	if _, err := book.WriteTo(w); err != nil {
		return errors.Export("write workbook", err)
	}
	return nil
}

// sheetWriter writes rows into one sheet at a time and keeps the first error
type sheetWriter struct {
	book  *excelize.File
	cur   types.Currency
	sheet string
	row   int
	err   error
}

func (s *sheetWriter) open(name string) {
	if s.err != nil {
		return
	}
	if name != SheetEstimate {
		if _, err := s.book.NewSheet(name); err != nil {
			s.err = errors.Export("create sheet "+name, err)
			return
		}
	}
	s.sheet = name
	s.row = 0
}

func (s *sheetWriter) money(usd decimal.Decimal) float64 {
	return s.cur.Convert(usd).Round(2).InexactFloat64()
}

func (s *sheetWriter) line(values ...interface{}) {
	if s.err != nil {
		return
	}
	s.row++
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, s.row)
		if err == nil {
			err = s.book.SetCellValue(s.sheet, cell, v)
		}
		if err != nil {
			s.err = errors.Export(fmt.Sprintf("write %s row %d", s.sheet, s.row), err)
			return
		}
	}
}

func (s *sheetWriter) width(col string, w float64) {
	if s.err != nil {
		return
	}
	if err := s.book.SetColWidth(s.sheet, col, col, w); err != nil {
		s.err = errors.Export("set column width", err)
	}
}

func (s *sheetWriter) amountHeader(label string) string {
	return fmt.Sprintf("%s (%s)", label, s.cur)
}

func (s *sheetWriter) estimate(result *EstimationResult) error {
	cfg := result.Configuration
	b := result.Breakdown

	s.open(SheetEstimate)
	s.width("A", 28)
	s.width("B", 24)
	s.width("E", 60)

	s.line("Preset", string(cfg.Preset))
	s.line("Users", cfg.UserCount)
	s.line("Architecture", string(cfg.Architecture))
	s.line("Region", result.Metadata.Region)
	s.line("Estimate ID", result.Metadata.EstimateID)
	s.line()
	s.line("Service", "Detail", s.amountHeader("Monthly"), "Enabled", "Formula")
	for _, item := range b.Items {
		s.line(item.Label, item.Detail, s.money(item.Amount), item.Enabled, item.Formula)
	}
	s.line("Total", "", s.money(b.Total))
	s.line("Yearly", "", s.money(b.Total.Mul(decimal.NewFromInt(12))))
	return s.err
}

func (s *sheetWriter) team(result *EstimationResult) error {
	t := result.Team

	s.open(SheetTeam)
	s.width("A", 24)
	s.line("Quality", string(t.Quality))
	s.line("Timeline (months)", t.TimelineMonths)
	s.line("Adjusted effort (person-months)", t.Effort.Adjusted.InexactFloat64())
	s.line()
	s.line("Role", "Headcount", s.amountHeader("Salary"), s.amountHeader("Monthly"))
	for _, r := range t.Roles {
		s.line(r.Role.Label(), r.Headcount, s.money(r.MonthlySalary), s.money(r.MonthlyCost))
	}
	s.line("Total", t.Total, "", s.money(t.MonthlySalaryCost))
	s.line("Project payroll", "", "", s.money(t.ProjectSalaryCost))
	s.line("Project total", "", "", s.money(ProjectTotal(result)))
	return s.err
}

func (s *sheetWriter) scenarios(result *EstimationResult) error {
	m := result.Matrix

	s.open(SheetScenarios)
	s.width("A", 28)
	header := []interface{}{s.amountHeader("Service")}
	for _, n := range m.UserCounts {
		header = append(header, fmt.Sprintf("%d users", n))
	}
	s.line(header...)
	for _, row := range m.Rows {
		values := []interface{}{row.Label}
		for _, a := range row.Amounts {
			values = append(values, s.money(a))
		}
		s.line(values...)
	}
	totals := []interface{}{"Total"}
	for _, t := range m.Totals {
		totals = append(totals, s.money(t))
	}
	s.line(totals...)
	return s.err
}

func (s *sheetWriter) notes(result *EstimationResult) error {
	s.open(SheetNotes)
	s.width("A", 18)
	s.width("B", 100)
	for _, n := range result.Notes {
		s.line(n.Title, n.Text)
	}
	return s.err
}
