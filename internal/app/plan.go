package app

import (
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// SubjectInput is one subject as supplied by a caller. Nil Weight means the
// default difficulty.
type SubjectInput struct {
	Name       string   `json:"name" yaml:"name"`
	Weight     *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Goal       *float64 `json:"goal,omitempty" yaml:"goal,omitempty"`
	Progress   float64  `json:"progress,omitempty" yaml:"progress,omitempty"`
	DailyHours *float64 `json:"daily_hours,omitempty" yaml:"daily_hours,omitempty"`
}

type GenerateRequest struct {
	Now         *time.Time     `json:"-"`
	Variant     string         `json:"variant,omitempty"`
	Subjects    []SubjectInput `json:"subjects"`
	BudgetHours float64        `json:"budget_hours"`
	Days        []string       `json:"days"`
	// Overrides maps subject name to a manual daily figure. Per-subject
	// DailyHours entries are merged in; this map wins on conflict.
	Overrides map[string]float64 `json:"daily_overrides,omitempty"`
}

// NewGenerateRequest builds a simple-variant request for the given names,
// studied Monday to Friday.
func NewGenerateRequest(names []string, budget float64) GenerateRequest {
	subjects := make([]SubjectInput, len(names))
	for i, n := range names {
		subjects[i] = SubjectInput{Name: n}
	}
	return GenerateRequest{
		Variant:     string(domain.VariantSimple),
		Subjects:    subjects,
		BudgetHours: budget,
		Days:        domain.DefaultDays().Names(),
	}
}

type SubjectView struct {
	Name           string          `json:"name"`
	Weight         float64         `json:"weight"`
	Goal           *float64        `json:"goal,omitempty"`
	Progress       float64         `json:"progress"`
	AllocatedHours float64         `json:"allocated_hours"`
	WeeklyHours    float64         `json:"weekly_hours"`
	DailyHours     float64         `json:"daily_hours"`
	Overridden     bool            `json:"overridden"`
	RemainingHours *float64        `json:"remaining_hours,omitempty"`
	ProgressPct    float64         `json:"progress_percent"`
	Severity       domain.Severity `json:"severity"`
}

type WarningView struct {
	Kind    domain.WarningKind `json:"kind"`
	Subject string             `json:"subject,omitempty"`
	Message string             `json:"message"`
}

type PlanResponse struct {
	PlanID      string         `json:"plan_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Variant     domain.Variant `json:"variant"`
	BudgetHours float64        `json:"budget_hours"`
	Days        []string       `json:"days"`
	Subjects    []SubjectView  `json:"subjects"`
	Warnings    []WarningView  `json:"warnings"`

	TotalWeeklyHours float64 `json:"total_weekly_hours"`
	TotalDailyHours  float64 `json:"total_daily_hours"`
	UnallocatedHours float64 `json:"unallocated_hours"`

	// Plan is the allocated plan the views were derived from. Overrides are
	// applied against it.
	Plan *domain.StudyPlan `json:"-"`
}

// Subject returns the view for name, matched case-insensitively.
func (r *PlanResponse) Subject(name string) (SubjectView, bool) {
	key := domain.SubjectKey(name)
	for _, s := range r.Subjects {
		if domain.SubjectKey(s.Name) == key {
			return s, true
		}
	}
	return SubjectView{}, false
}

// FormatInfo describes one export format.
type FormatInfo struct {
	Name        string `json:"name"`
	Extension   string `json:"extension"`
	ContentType string `json:"content_type"`
}
