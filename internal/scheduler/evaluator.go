package scheduler

import (
	"fmt"
	"math"

	"github.com/alexanderramin/studyplan/internal/domain"
)

type Thresholds struct {
	// BreakAfterDailyHours: a subject studied longer than this per day gets a
	// break reminder.
	BreakAfterDailyHours float64
	// MaxDailyHoursPerDay is multiplied by the day count to form the overload
	// threshold for the summed daily hours.
	MaxDailyHoursPerDay float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		BreakAfterDailyHours: 2,
		MaxDailyHoursPerDay:  6,
	}
}

type Warning struct {
	Kind    domain.WarningKind
	Subject string // empty for plan-wide warnings
	Value   float64
	Limit   float64
	Message string
}

type PlanReport struct {
	Warnings []Warning
	// Remaining holds max(goal - progress, 0) for subjects with a goal only.
	Remaining       map[string]float64
	ProgressPercent map[string]float64
	Severity        map[string]domain.Severity

	TotalWeeklyHours    float64
	TotalAllocatedHours float64
	TotalDailyHours     float64
	// UnallocatedHours is budget freed by goal caps and left unassigned.
	UnallocatedHours float64
}

// BreakWarnings returns the per-subject break reminders in plan order.
func (r PlanReport) BreakWarnings() []Warning {
	var out []Warning
	for _, w := range r.Warnings {
		if w.Kind == domain.WarningBreak {
			out = append(out, w)
		}
	}
	return out
}

// Overload returns the plan-wide overload warning, if any.
func (r PlanReport) Overload() *Warning {
	for i := range r.Warnings {
		if r.Warnings[i].Kind == domain.WarningOverload {
			return &r.Warnings[i]
		}
	}
	return nil
}

// Evaluate derives warnings, remaining hours, progress and severity from an
// allocated plan. It does not modify the plan.
func Evaluate(plan domain.StudyPlan, th Thresholds) PlanReport {
	report := PlanReport{
		Remaining:       make(map[string]float64),
		ProgressPercent: make(map[string]float64, len(plan.Subjects)),
		Severity:        make(map[string]domain.Severity, len(plan.Subjects)),
	}

	for _, s := range plan.Subjects {
		if s.HasGoal() {
			report.Remaining[s.Name] = RemainingHours(s)
		}
		report.ProgressPercent[s.Name] = ProgressPercent(s)
		report.Severity[s.Name] = SeverityOf(s, plan.Variant)

		report.TotalWeeklyHours += s.WeeklyHours
		report.TotalAllocatedHours += s.AllocatedHours
		report.TotalDailyHours += s.DailyHours

		if s.DailyHours > th.BreakAfterDailyHours {
			report.Warnings = append(report.Warnings, Warning{
				Kind:    domain.WarningBreak,
				Subject: s.Name,
				Value:   s.DailyHours,
				Limit:   th.BreakAfterDailyHours,
				Message: fmt.Sprintf("%s: %.2f h/day is more than %g h in one go, plan short breaks",
					s.Name, s.DailyHours, th.BreakAfterDailyHours),
			})
		}
	}

	report.UnallocatedHours = math.Max(plan.BudgetHours-report.TotalAllocatedHours, 0)

	days := plan.DayCount()
	limit := th.MaxDailyHoursPerDay * float64(days)
	if report.TotalDailyHours > limit {
		report.Warnings = append(report.Warnings, Warning{
			Kind:  domain.WarningOverload,
			Value: report.TotalDailyHours,
			Limit: limit,
			Message: fmt.Sprintf("Daily load of %.2f h exceeds the overload threshold of %.2f h (%g h x %d days)",
				report.TotalDailyHours, limit, th.MaxDailyHoursPerDay, days),
		})
	}

	return report
}

// RemainingHours is max(goal - progress, 0); zero when no goal is set.
func RemainingHours(s domain.Subject) float64 {
	if !s.HasGoal() {
		return 0
	}
	return math.Max(*s.Goal-s.Progress, 0)
}

// ProgressPercent is progress/goal as a percentage clamped to [0, 100]. A
// missing or zero goal yields 0.
func ProgressPercent(s domain.Subject) float64 {
	goal := s.GoalOr(0)
	if goal <= 0 {
		return 0
	}
	return clamp(s.Progress/goal*100, 0, 100)
}
