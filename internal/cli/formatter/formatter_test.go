package formatter

import (
	"bytes"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func samplePlan() *contract.PlanResponse {
	goal := 12.0
	remaining := 9.0
	return &contract.PlanResponse{
		PlanID:      "0123456789abcdef",
		GeneratedAt: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		Variant:     domain.VariantAdvanced,
		BudgetHours: 20,
		Days:        []string{"Monday", "Wednesday"},
		Subjects: []contract.SubjectView{
			{Name: "Calculus", Weight: 5, Goal: &goal, Progress: 3, AllocatedHours: 12, WeeklyHours: 12, DailyHours: 6, RemainingHours: &remaining, ProgressPct: 25, Severity: domain.SeverityHigh},
			{Name: "Art", Weight: 1, AllocatedHours: 2.4, WeeklyHours: 4, DailyHours: 2, Overridden: true, Severity: domain.SeverityLow},
		},
		Warnings: []contract.WarningView{
			{Kind: domain.WarningBreak, Subject: "Calculus", Message: "Calculus: 6.00 h/day exceeds 2.00 h; schedule a break."},
			{Kind: domain.WarningOverload, Message: "Daily load of 8.00 h exceeds the overload threshold of 12.00 h"},
		},
		TotalWeeklyHours: 16,
		TotalDailyHours:  8,
		UnallocatedHours: 5.6,
	}
}

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name  string
		pct   float64
		width int
		want  string
	}{
		{"empty", 0, 4, "[░░░░]   0%"},
		{"half", 0.5, 4, "[██░░]  50%"},
		{"full", 1, 4, "[████] 100%"},
		{"over clamps", 1.7, 4, "[████] 100%"},
		{"negative clamps", -1, 4, "[░░░░]   0%"},
		{"tiny width clamps to 2", 0.5, 1, "[█░]  50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(RenderProgress(tt.pct, tt.width)))
		})
	}
}

func TestRenderBar(t *testing.T) {
	assert.Equal(t, "", RenderBar(0, 10, 10, StyleFg))
	assert.Equal(t, "", RenderBar(5, 0, 10, StyleFg))
	assert.Equal(t, "█████", stripANSI(RenderBar(5, 10, 10, StyleFg)))
	assert.Equal(t, "█", stripANSI(RenderBar(0.01, 10, 10, StyleFg)), "non-zero value shows a block")
	assert.Equal(t, "██████████", stripANSI(RenderBar(20, 10, 10, StyleFg)))
}

func TestRenderTableAligned(t *testing.T) {
	out := stripANSI(RenderTableAligned(
		[]string{"NAME", "HOURS"},
		[][]string{{"Math", "6.7h"}, {"Physics", "12.0h"}},
		[]Align{AlignLeft, AlignRight},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, []string{
		"NAME     HOURS",
		"───────  ─────",
		"Math      6.7h",
		"Physics  12.0h",
	}, lines)
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, [][]string{{"x"}}))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "6.67h", FormatHours(6.6666, 2))
	assert.Equal(t, "0.0h", FormatHours(-2, 1))
	assert.Equal(t, "--", stripANSI(FormatOptionalHours(nil, 1)))
}

func TestSeverityPill(t *testing.T) {
	assert.Equal(t, "● HIGH", stripANSI(SeverityPill(domain.SeverityHigh)))
	assert.Equal(t, "● LOW", stripANSI(SeverityPill(domain.SeverityLow)))
	assert.Equal(t, "● --", stripANSI(SeverityPill("")))
}

func TestFormatPlan_Sections(t *testing.T) {
	out := stripANSI(FormatPlan(samplePlan()))

	for _, want := range []string{
		"STUDY PLAN",
		"20.0h/week",
		"advanced",
		"01234567",
		"WEEKLY HOURS",
		"DAILY DISTRIBUTION",
		"WEEKLY CHART",
		"WARNINGS",
		"MON",
		"WED",
		"● HIGH",
		"[██░░░░░░░░]  25%",
		"4.0h*",
		"weekly hours follow a manual daily figure",
		"(goal caps reached)",
		"schedule a break",
	} {
		assert.Contains(t, out, want)
	}
}

func TestFormatDailyTable_TotalsRow(t *testing.T) {
	out := stripANSI(FormatDailyTable(samplePlan()))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, []string{"Total", "8.00h", "8.00h"}, strings.Fields(lines[4]))
	assert.Equal(t, []string{"Art", "2.00h", "2.00h"}, strings.Fields(lines[3]))
}

func TestFormatWeeklyChart_Scaled(t *testing.T) {
	out := stripANSI(FormatWeeklyChart(samplePlan()))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, chartBarWidth, strings.Count(lines[0], filledBlock))
	assert.Equal(t, 10, strings.Count(lines[1], filledBlock))
}

func TestFormatWarnings_Empty(t *testing.T) {
	p := samplePlan()
	p.Warnings = nil
	assert.Equal(t, "✔ No warnings.\n", stripANSI(FormatWarnings(p)))
}

func TestFormatPlan_Nil(t *testing.T) {
	assert.Equal(t, "No plan.\n", stripANSI(FormatPlan(nil)))
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_StopClearsLine(t *testing.T) {
	var out syncBuffer
	stop := StartSpinner(&out, "Exporting")
	time.Sleep(200 * time.Millisecond)
	stop()
	stop()

	got := stripANSI(out.String())
	assert.Contains(t, got, "Exporting")
	assert.True(t, strings.HasSuffix(out.String(), "\r\033[K"))
}
