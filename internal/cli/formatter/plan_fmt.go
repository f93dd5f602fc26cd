package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/charmbracelet/lipgloss"
)

const (
	progressBarWidth = 10
	chartBarWidth    = 30
)

// FormatPlan renders the full terminal view of a plan: summary box, weekly
// table, daily distribution, bar chart and warnings.
func FormatPlan(p *contract.PlanResponse) string {
	if p == nil {
		return Dim("No plan.") + "\n"
	}
	sections := []string{
		FormatPlanSummary(p),
		Header("Weekly hours") + "\n" + FormatWeeklyTable(p),
		Header("Daily distribution") + "\n" + FormatDailyTable(p),
		Header("Weekly chart") + "\n" + FormatWeeklyChart(p),
		Header("Warnings") + "\n" + FormatWarnings(p),
	}
	return strings.Join(sections, "\n") + "\n"
}

// FormatPlanSummary renders the boxed headline figures.
func FormatPlanSummary(p *contract.PlanResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s %d  %s %s\n",
		Dim("Budget"), Bold(FormatHours(p.BudgetHours, 1)+"/week"),
		Dim("Days"), len(p.Days),
		Dim("Variant"), Bold(string(p.Variant)))
	fmt.Fprintf(&b, "%s %s  %s %s",
		Dim("Planned"), FormatHours(p.TotalWeeklyHours, 1),
		Dim("Unallocated"), FormatHours(p.UnallocatedHours, 1))
	if p.UnallocatedHours > 0 {
		b.WriteString(Dim("  (goal caps reached)"))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s  %s", Dim("Plan"), TruncID(p.PlanID), Dim(HumanTimestamp(p.GeneratedAt)))
	return RenderBox("Study plan", b.String())
}

// FormatWeeklyTable renders one row per subject. Overridden weekly figures
// are starred.
func FormatWeeklyTable(p *contract.PlanResponse) string {
	headers := []string{"SUBJECT", "WEIGHT", "WEEKLY", "DAILY", "GOAL", "PROGRESS", "REMAINING", "SEVERITY"}
	align := []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignLeft, AlignRight, AlignLeft}

	rows := make([][]string, 0, len(p.Subjects))
	overridden := false
	for _, s := range p.Subjects {
		weekly := FormatHours(s.WeeklyHours, 1)
		if s.Overridden {
			weekly += StylePurple.Render("*")
			overridden = true
		}
		progress := Dim("--")
		if s.Goal != nil {
			progress = RenderProgress(s.ProgressPct/100, progressBarWidth)
		}
		rows = append(rows, []string{
			SeverityColor(s.Severity).Render(s.Name),
			fmt.Sprintf("%g", s.Weight),
			weekly,
			FormatHours(s.DailyHours, 2),
			FormatOptionalHours(s.Goal, 1),
			progress,
			FormatOptionalHours(s.RemainingHours, 1),
			SeverityPill(s.Severity),
		})
	}

	out := RenderTableAligned(headers, rows, align)
	if overridden {
		out += StylePurple.Render("*") + Dim(" weekly hours follow a manual daily figure") + "\n"
	}
	return out
}

// FormatDailyTable renders the subject-by-day grid. Every selected day gets
// the same per-subject figure.
func FormatDailyTable(p *contract.PlanResponse) string {
	headers := make([]string, 0, len(p.Days)+1)
	headers = append(headers, "SUBJECT")
	align := []Align{AlignLeft}
	for _, d := range p.Days {
		headers = append(headers, strings.ToUpper(shortDay(d)))
		align = append(align, AlignRight)
	}

	rows := make([][]string, 0, len(p.Subjects)+1)
	for _, s := range p.Subjects {
		row := make([]string, 0, len(headers))
		row = append(row, s.Name)
		for range p.Days {
			row = append(row, FormatHours(s.DailyHours, 2))
		}
		rows = append(rows, row)
	}

	total := make([]string, 0, len(headers))
	total = append(total, Bold("Total"))
	for range p.Days {
		total = append(total, Bold(FormatHours(p.TotalDailyHours, 2)))
	}
	rows = append(rows, total)

	return RenderTableAligned(headers, rows, align)
}

// FormatWeeklyChart renders a horizontal bar per subject scaled to the
// largest weekly figure.
func FormatWeeklyChart(p *contract.PlanResponse) string {
	if len(p.Subjects) == 0 {
		return Dim("Nothing to chart.") + "\n"
	}
	nameWidth := 0
	maxWeekly := 0.0
	for _, s := range p.Subjects {
		if w := lipgloss.Width(s.Name); w > nameWidth {
			nameWidth = w
		}
		if s.WeeklyHours > maxWeekly {
			maxWeekly = s.WeeklyHours
		}
	}

	var b strings.Builder
	for _, s := range p.Subjects {
		pad := strings.Repeat(" ", nameWidth-lipgloss.Width(s.Name))
		bar := RenderBar(s.WeeklyHours, maxWeekly, chartBarWidth, SeverityColor(s.Severity))
		fmt.Fprintf(&b, "%s%s  %s %s\n", s.Name, pad, bar, Dim(FormatHours(s.WeeklyHours, 1)))
	}
	return b.String()
}

// FormatWarnings lists break and overload warnings in plan order.
func FormatWarnings(p *contract.PlanResponse) string {
	if len(p.Warnings) == 0 {
		return StyleGreen.Render("✔ No warnings.") + "\n"
	}
	var b strings.Builder
	for _, w := range p.Warnings {
		fmt.Fprintf(&b, "%s %s\n", WarningIcon(w.Kind), w.Message)
	}
	return b.String()
}

// FormatExported confirms a written export file.
func FormatExported(path, format string) string {
	return fmt.Sprintf("%s %s %s\n", StyleGreen.Render("✔"), Dim("Exported "+strings.ToUpper(format)+" to"), path)
}

func shortDay(name string) string {
	if len(name) > 3 {
		return name[:3]
	}
	return name
}
