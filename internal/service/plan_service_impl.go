package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/app"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/scheduler"
	"github.com/google/uuid"
)

type planService struct {
	thresholds scheduler.Thresholds
	observer   UseCaseObserver
	newID      func() string
}

func NewPlanService(thresholds scheduler.Thresholds, observers ...UseCaseObserver) PlanService {
	return &planService{
		thresholds: thresholds,
		observer:   useCaseObserverOrNoop(observers),
		newID:      func() string { return uuid.New().String() },
	}
}

func (s *planService) Generate(ctx context.Context, req app.GenerateRequest) (resp *app.PlanResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"subjects":     len(req.Subjects),
		"budget_hours": req.BudgetHours,
		"days":         len(req.Days),
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generate-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var plan *domain.StudyPlan
	var overrides map[string]float64
	plan, overrides, err = buildStudyPlan(req)
	if err != nil {
		return nil, err
	}
	plan.ID = s.newID()
	plan.GeneratedAt = startedAt
	if req.Now != nil {
		plan.GeneratedAt = *req.Now
	}

	var subjects []domain.Subject
	subjects, err = scheduler.AllocatePlan(plan.Subjects, plan.BudgetHours, plan.DayCount())
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		subjects, err = scheduler.ApplyOverrides(subjects, overrides, plan.DayCount())
		if err != nil {
			return nil, err
		}
		fields["overrides"] = len(overrides)
	}
	plan.Subjects = subjects

	resp = buildPlanResponse(plan, s.thresholds)
	fields["plan_id"] = plan.ID
	fields["warnings"] = len(resp.Warnings)
	return resp, nil
}

func (s *planService) Override(ctx context.Context, current *app.PlanResponse, daily map[string]float64) (resp *app.PlanResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"overrides": len(daily)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "override-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if current == nil || current.Plan == nil {
		return nil, domain.NewInvalidInput("plan", "no generated plan to override")
	}
	fields["plan_id"] = current.Plan.ID

	plan := *current.Plan
	var subjects []domain.Subject
	subjects, err = scheduler.ApplyOverrides(plan.Subjects, daily, plan.DayCount())
	if err != nil {
		return nil, err
	}
	plan.Subjects = subjects

	return buildPlanResponse(&plan, s.thresholds), nil
}

// buildStudyPlan validates req and converts it into an unallocated plan plus
// the merged daily overrides.
func buildStudyPlan(req app.GenerateRequest) (*domain.StudyPlan, map[string]float64, error) {
	var errs []error

	variant, err := domain.ParseVariant(req.Variant)
	if err != nil {
		errs = append(errs, err)
		variant = domain.VariantSimple
	}

	var days domain.DaySet
	if len(req.Days) > 0 {
		days, err = domain.ParseDaySet(req.Days)
		if err != nil {
			errs = append(errs, err)
			// Already reported; stops Validate from repeating it.
			days = domain.DefaultDays()
		}
	}

	plan := &domain.StudyPlan{
		Variant:     variant,
		Subjects:    make([]domain.Subject, 0, len(req.Subjects)),
		Days:        days,
		BudgetHours: req.BudgetHours,
	}

	merged := newOverrideSet()
	for _, in := range req.Subjects {
		plan.Subjects = append(plan.Subjects, domain.Subject{
			Name:     strings.TrimSpace(in.Name),
			Weight:   domain.Float64FromPtrWithDefault(domain.DefaultWeight, in.Weight),
			Goal:     in.Goal,
			Progress: in.Progress,
		})
		if in.DailyHours != nil {
			merged.set(in.Name, *in.DailyHours)
		}
	}
	mapNames := make([]string, 0, len(req.Overrides))
	for name := range req.Overrides {
		mapNames = append(mapNames, name)
	}
	sort.Strings(mapNames)
	for _, name := range mapNames {
		merged.set(name, req.Overrides[name])
	}
	overrides := merged.byName()

	if err := plan.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := domain.JoinInvalidInput(errs); err != nil {
		return nil, nil, err
	}
	return plan, overrides, nil
}

func buildPlanResponse(plan *domain.StudyPlan, th scheduler.Thresholds) *app.PlanResponse {
	report := scheduler.Evaluate(*plan, th)

	resp := &app.PlanResponse{
		PlanID:           plan.ID,
		GeneratedAt:      plan.GeneratedAt,
		Variant:          plan.Variant,
		BudgetHours:      plan.BudgetHours,
		Days:             plan.Days.Names(),
		Subjects:         make([]app.SubjectView, 0, len(plan.Subjects)),
		Warnings:         make([]app.WarningView, 0, len(report.Warnings)),
		TotalWeeklyHours: report.TotalWeeklyHours,
		TotalDailyHours:  report.TotalDailyHours,
		UnallocatedHours: report.UnallocatedHours,
		Plan:             plan,
	}

	for _, s := range plan.Subjects {
		view := app.SubjectView{
			Name:           s.Name,
			Weight:         s.Weight,
			Goal:           s.Goal,
			Progress:       s.Progress,
			AllocatedHours: s.AllocatedHours,
			WeeklyHours:    s.WeeklyHours,
			DailyHours:     s.DailyHours,
			Overridden:     s.Overridden,
			ProgressPct:    report.ProgressPercent[s.Name],
			Severity:       report.Severity[s.Name],
		}
		if remaining, ok := report.Remaining[s.Name]; ok {
			view.RemainingHours = domain.Float64Ptr(remaining)
		}
		resp.Subjects = append(resp.Subjects, view)
	}

	for _, w := range report.Warnings {
		resp.Warnings = append(resp.Warnings, app.WarningView{
			Kind:    w.Kind,
			Subject: w.Subject,
			Message: w.Message,
		})
	}

	return resp
}

// overrideSet merges daily overrides by subject key. A later entry replaces
// an earlier one and keeps its own spelling of the name.
type overrideSet struct {
	names map[string]string
	hours map[string]float64
}

func newOverrideSet() *overrideSet {
	return &overrideSet{names: make(map[string]string), hours: make(map[string]float64)}
}

func (o *overrideSet) set(name string, hours float64) {
	key := domain.SubjectKey(name)
	o.names[key] = strings.TrimSpace(name)
	o.hours[key] = hours
}

func (o *overrideSet) byName() map[string]float64 {
	if len(o.hours) == 0 {
		return nil
	}
	out := make(map[string]float64, len(o.hours))
	for key, hours := range o.hours {
		out[o.names[key]] = hours
	}
	return out
}
