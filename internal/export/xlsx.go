package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	weeklySheet = "Weekly"
	dailySheet  = "Daily"
)

var weeklyHeaders = []any{
	"Subject", "Allocated Hours", "Weekly Hours", "Daily Hours",
	"Goal", "Progress", "Remaining", "Progress %", "Severity", "Overridden",
}

type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

func (XLSXExporter) Format() Format    { return FormatXLSX }
func (XLSXExporter) Extension() string { return "xlsx" }
func (XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export writes a workbook with a "Weekly" sheet (one row per subject,
// shaded by severity) and a "Daily" subject-by-day grid.
func (XLSXExporter) Export(ctx context.Context, w io.Writer, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   doc.title(),
		Creator: "studyplan",
	}); err != nil {
		return fmt.Errorf("setting workbook properties: %w", err)
	}
	if err := f.SetSheetName("Sheet1", weeklySheet); err != nil {
		return fmt.Errorf("naming weekly sheet: %w", err)
	}
	if err := writeWeeklySheet(f, doc); err != nil {
		return err
	}
	if _, err := f.NewSheet(dailySheet); err != nil {
		return fmt.Errorf("creating daily sheet: %w", err)
	}
	if err := writeDailySheet(f, doc); err != nil {
		return err
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeWeeklySheet(f *excelize.File, doc Document) error {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetSheetRow(weeklySheet, "A1", &weeklyHeaders); err != nil {
		return fmt.Errorf("writing weekly header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(weeklyHeaders), 1)
	if err := f.SetCellStyle(weeklySheet, "A1", last, header); err != nil {
		return fmt.Errorf("styling weekly header: %w", err)
	}

	fills := make(map[string]int, len(severityFill))
	for i, r := range doc.Rows {
		row := i + 2
		values := []any{
			r.Subject, r.AllocatedHours, r.WeeklyHours, r.DailyHours,
			nullable(r.Goal), r.Progress, nullable(r.Remaining), r.ProgressPct,
			string(r.Severity), r.Overridden,
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(weeklySheet, start, &values); err != nil {
			return fmt.Errorf("writing row for %q: %w", r.Subject, err)
		}

		color := fillFor(r.Severity)
		style, ok := fills[color]
		if !ok {
			style, err = f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
			})
			if err != nil {
				return fmt.Errorf("creating severity style: %w", err)
			}
			fills[color] = style
		}
		end, _ := excelize.CoordinatesToCellName(len(weeklyHeaders), row)
		if err := f.SetCellStyle(weeklySheet, start, end, style); err != nil {
			return fmt.Errorf("styling row for %q: %w", r.Subject, err)
		}
	}

	if err := f.SetColWidth(weeklySheet, "A", "A", 24); err != nil {
		return err
	}
	return f.SetPanes(weeklySheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeDailySheet(f *excelize.File, doc Document) error {
	header := make([]any, 0, len(doc.Days)+1)
	header = append(header, "Subject")
	for _, d := range doc.Days {
		header = append(header, d)
	}
	if err := f.SetSheetRow(dailySheet, "A1", &header); err != nil {
		return fmt.Errorf("writing daily header: %w", err)
	}

	for i, r := range doc.Rows {
		values := make([]any, 0, len(doc.Days)+1)
		values = append(values, r.Subject)
		for range doc.Days {
			values = append(values, r.DailyHours)
		}
		start, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(dailySheet, start, &values); err != nil {
			return fmt.Errorf("writing daily row for %q: %w", r.Subject, err)
		}
	}
	return f.SetColWidth(dailySheet, "A", "A", 24)
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
