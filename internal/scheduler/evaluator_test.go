package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planWith(days int, subs ...domain.Subject) domain.StudyPlan {
	return domain.StudyPlan{
		Variant:     domain.VariantSimple,
		Subjects:    subs,
		Days:        domain.NewDaySet(domain.WeekOrder[:days]...),
		BudgetHours: 20,
	}
}

func TestEvaluate_BreakWarningOnlyAboveTwoHours(t *testing.T) {
	plan := planWith(5,
		domain.Subject{Name: "Math", DailyHours: 3},
		domain.Subject{Name: "Physics", DailyHours: 2},
		domain.Subject{Name: "Chemistry", DailyHours: 1.5},
	)

	report := Evaluate(plan, DefaultThresholds())

	breaks := report.BreakWarnings()
	require.Len(t, breaks, 1)
	assert.Equal(t, "Math", breaks[0].Subject)
	assert.Equal(t, 3.0, breaks[0].Value)
	assert.Contains(t, breaks[0].Message, "Math")
	assert.Nil(t, report.Overload())
}

func TestEvaluate_OverloadComparesSummedDailyHours(t *testing.T) {
	// 1 day: threshold is 6h.
	under := planWith(1,
		domain.Subject{Name: "Math", DailyHours: 3},
		domain.Subject{Name: "Physics", DailyHours: 3},
	)
	assert.Nil(t, Evaluate(under, DefaultThresholds()).Overload(), "exactly at threshold is not overload")

	over := planWith(1,
		domain.Subject{Name: "Math", DailyHours: 3},
		domain.Subject{Name: "Physics", DailyHours: 3.01},
	)
	w := Evaluate(over, DefaultThresholds()).Overload()
	require.NotNil(t, w)
	assert.InDelta(t, 6.01, w.Value, 1e-9)
	assert.Equal(t, 6.0, w.Limit)
	assert.Contains(t, w.Message, "6.01")
	assert.Contains(t, w.Message, "6.00")
}

func TestEvaluate_OverloadThresholdScalesWithDays(t *testing.T) {
	plan := planWith(2,
		domain.Subject{Name: "Math", DailyHours: 7},
		domain.Subject{Name: "Physics", DailyHours: 4},
	)
	assert.Nil(t, Evaluate(plan, DefaultThresholds()).Overload(), "11h < 6h x 2 days")
}

func TestEvaluate_RemainingAndProgress(t *testing.T) {
	plan := planWith(5,
		domain.Subject{Name: "Math", Goal: domain.Float64Ptr(10), Progress: 4},
		domain.Subject{Name: "Physics", Goal: domain.Float64Ptr(5), Progress: 8},
		domain.Subject{Name: "Art", Progress: 3},
		domain.Subject{Name: "Music", Goal: domain.Float64Ptr(0), Progress: 1},
	)

	report := Evaluate(plan, DefaultThresholds())

	assert.Equal(t, map[string]float64{"Math": 6, "Physics": 0, "Music": 0}, report.Remaining)
	_, hasArt := report.Remaining["Art"]
	assert.False(t, hasArt, "no goal means no remaining entry")

	assert.Equal(t, 40.0, report.ProgressPercent["Math"])
	assert.Equal(t, 100.0, report.ProgressPercent["Physics"], "clamped when progress exceeds goal")
	assert.Equal(t, 0.0, report.ProgressPercent["Art"])
	assert.Equal(t, 0.0, report.ProgressPercent["Music"], "zero goal must not divide by zero")
}

func TestEvaluate_TotalsAndUnallocated(t *testing.T) {
	subs, err := AllocatePlan([]domain.Subject{
		{Name: "Math", Weight: 5, Goal: domain.Float64Ptr(5)},
		{Name: "Physics", Weight: 5},
	}, 15, 5)
	require.NoError(t, err)

	plan := planWith(5, subs...)
	plan.BudgetHours = 15
	report := Evaluate(plan, DefaultThresholds())

	assert.InDelta(t, 12.5, report.TotalAllocatedHours, 1e-9)
	assert.InDelta(t, 12.5, report.TotalWeeklyHours, 1e-9)
	assert.InDelta(t, 2.5, report.UnallocatedHours, 1e-9)
	assert.InDelta(t, 2.5, report.TotalDailyHours, 1e-9)
}

func TestEvaluate_Deterministic(t *testing.T) {
	plan := planWith(3,
		domain.Subject{Name: "Math", Weight: 4, DailyHours: 5, AllocatedHours: 15},
		domain.Subject{Name: "Physics", Weight: 2, DailyHours: 4, AllocatedHours: 12},
		domain.Subject{Name: "Art", Weight: 3, DailyHours: 10, AllocatedHours: 30},
	)
	plan.GeneratedAt = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	first := Evaluate(plan, DefaultThresholds())
	second := Evaluate(plan, DefaultThresholds())
	assert.Equal(t, first, second)

	kinds := make([]domain.WarningKind, len(first.Warnings))
	for i, w := range first.Warnings {
		kinds[i] = w.Kind
	}
	assert.Equal(t, []domain.WarningKind{
		domain.WarningBreak, domain.WarningBreak, domain.WarningBreak, domain.WarningOverload,
	}, kinds)
}

func TestEvaluate_CustomThresholds(t *testing.T) {
	plan := planWith(1, domain.Subject{Name: "Math", DailyHours: 1.5})
	report := Evaluate(plan, Thresholds{BreakAfterDailyHours: 1, MaxDailyHoursPerDay: 1})
	assert.Len(t, report.BreakWarnings(), 1)
	assert.NotNil(t, report.Overload())
}

func TestSeverityOf(t *testing.T) {
	tests := []struct {
		name    string
		subject domain.Subject
		variant domain.Variant
		want    domain.Severity
	}{
		{"simple high", domain.Subject{AllocatedHours: 10}, domain.VariantSimple, domain.SeverityHigh},
		{"simple medium", domain.Subject{AllocatedHours: 5}, domain.VariantSimple, domain.SeverityMedium},
		{"simple low", domain.Subject{AllocatedHours: 4.99}, domain.VariantSimple, domain.SeverityLow},
		{"advanced 5", domain.Subject{Weight: 5, AllocatedHours: 1}, domain.VariantAdvanced, domain.SeverityHigh},
		{"advanced 4", domain.Subject{Weight: 4}, domain.VariantAdvanced, domain.SeverityHigh},
		{"advanced 3", domain.Subject{Weight: 3, AllocatedHours: 20}, domain.VariantAdvanced, domain.SeverityMedium},
		{"advanced 2", domain.Subject{Weight: 2}, domain.VariantAdvanced, domain.SeverityLow},
		{"advanced 1", domain.Subject{Weight: 1}, domain.VariantAdvanced, domain.SeverityLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SeverityOf(tt.subject, tt.variant))
		})
	}
}
