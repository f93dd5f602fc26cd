package export

import (
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 72.0
	pdfLineHeight = 18.0
)

type PDFExporter struct{}

func NewPDFExporter() *PDFExporter { return &PDFExporter{} }

func (PDFExporter) Format() Format      { return FormatPDF }
func (PDFExporter) Extension() string   { return "pdf" }
func (PDFExporter) ContentType() string { return "application/pdf" }

// Export writes a letter-size PDF: weekly hours per subject, the daily
// distribution grouped by day, then warnings.
func (PDFExporter) Export(ctx context.Context, w io.Writer, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(doc.title(), true)
	pdf.SetCreator("studyplan", true)
	if !doc.GeneratedAt.IsZero() {
		pdf.SetCreationDate(doc.GeneratedAt)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 28, tr(doc.title()), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(120, 120, 120)
	meta := fmt.Sprintf("Budget %s h/week over %d days", hours(doc.BudgetHours, 1), len(doc.Days))
	if !doc.GeneratedAt.IsZero() {
		meta += " - generated " + doc.GeneratedAt.Format("Jan 2, 2006 15:04")
	}
	pdf.CellFormat(0, 14, tr(meta), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(10)

	writeWeeklyTable(pdf, tr, doc)

	pdf.Ln(24)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 22, "Daily Hours Distribution", "", 1, "L", false, 0, "")
	for _, day := range doc.Days {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 16, tr(day+":"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		for _, r := range doc.Rows {
			pdf.CellFormat(18, 15, "", "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 15, tr(fmt.Sprintf("%s: %s hrs", r.Subject, hours(r.DailyHours, 2))), "", 1, "L", false, 0, "")
		}
	}

	if len(doc.Warnings) > 0 {
		pdf.Ln(18)
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 22, "Warnings", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, msg := range doc.Warnings {
			pdf.MultiCell(0, 15, tr("- "+msg), "", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}

func writeWeeklyTable(pdf *fpdf.Fpdf, tr func(string) string, doc Document) {
	headers := []string{"Subject", "Hrs/Week", "Hrs/Day", "Goal", "Progress", "Remaining"}
	widths := []float64{168, 68, 64, 56, 56, 56}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(235, 219, 178)
	for i, h := range headers {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], pdfLineHeight, h, "B", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, r := range doc.Rows {
		red, green, blue := hexRGB(fillFor(r.Severity))
		pdf.SetFillColor(red, green, blue)
		weekly := hours(r.WeeklyHours, 1)
		if r.Overridden {
			weekly += "*"
		}
		cells := []string{
			r.Subject,
			weekly,
			hours(r.DailyHours, 2),
			optionalHours(r.Goal, 1),
			hours(r.Progress, 1),
			optionalHours(r.Remaining, 1),
		}
		for i, c := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], pdfLineHeight, tr(c), "", 0, align, true, 0, "")
		}
		pdf.Ln(-1)
	}

	if hasOverride(doc.Rows) {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 14, "* weekly hours recomputed from a manual daily figure", "", 1, "L", false, 0, "")
	}
}

func hasOverride(rows []Row) bool {
	for _, r := range rows {
		if r.Overridden {
			return true
		}
	}
	return false
}
