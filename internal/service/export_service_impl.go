package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/studyplan/internal/app"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/export"
)

type exportService struct {
	registry *export.Registry
	title    string
	observer UseCaseObserver
}

// NewExportService renders plans through the exporters in registry. An
// empty title uses export.DefaultTitle.
func NewExportService(registry *export.Registry, title string, observers ...UseCaseObserver) ExportService {
	return &exportService{
		registry: registry,
		title:    title,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *exportService) Formats() []string {
	return s.registry.Formats()
}

// Describe resolves a format name, accepting the same aliases as Export.
func (s *exportService) Describe(format string) (app.FormatInfo, error) {
	e, err := s.registry.Lookup(format)
	if err != nil {
		return app.FormatInfo{}, err
	}
	return app.FormatInfo{
		Name:        string(e.Format()),
		Extension:   e.Extension(),
		ContentType: e.ContentType(),
	}, nil
}

func (s *exportService) Export(ctx context.Context, w io.Writer, plan *app.PlanResponse, format string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"format": format}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "export-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if plan == nil {
		return domain.NewInvalidInput("plan", "no generated plan to export")
	}
	fields["plan_id"] = plan.PlanID

	var exporter export.Exporter
	exporter, err = s.registry.Lookup(format)
	if err != nil {
		return err
	}
	return exporter.Export(ctx, w, documentFromPlan(plan, s.title))
}

func documentFromPlan(plan *app.PlanResponse, title string) export.Document {
	doc := export.Document{
		Title:            title,
		PlanID:           plan.PlanID,
		GeneratedAt:      plan.GeneratedAt,
		BudgetHours:      plan.BudgetHours,
		TotalWeeklyHours: plan.TotalWeeklyHours,
		Days:             append([]string(nil), plan.Days...),
		Rows:             make([]export.Row, 0, len(plan.Subjects)),
		Warnings:         make([]string, 0, len(plan.Warnings)),
	}
	for _, s := range plan.Subjects {
		doc.Rows = append(doc.Rows, export.Row{
			Subject:        s.Name,
			AllocatedHours: s.AllocatedHours,
			WeeklyHours:    s.WeeklyHours,
			DailyHours:     s.DailyHours,
			Goal:           s.Goal,
			Progress:       s.Progress,
			Remaining:      s.RemainingHours,
			ProgressPct:    s.ProgressPct,
			Severity:       s.Severity,
			Overridden:     s.Overridden,
		})
	}
	for _, w := range plan.Warnings {
		doc.Warnings = append(doc.Warnings, w.Message)
	}
	return doc
}
