package importer

import (
	"strings"

	"github.com/alexanderramin/studyplan/internal/app"
	"github.com/alexanderramin/studyplan/internal/domain"
)

// Defaults fill in whatever a plan file leaves out.
type Defaults struct {
	BudgetHours float64
	Days        []string
	Variant     domain.Variant
}

// Convert turns a validated plan file into a generate request.
func Convert(f *PlanFile, d Defaults) app.GenerateRequest {
	req := app.GenerateRequest{
		Variant:     domain.CoalesceStr(strings.TrimSpace(f.Variant), string(d.Variant)),
		BudgetHours: domain.Float64FromPtrWithDefault(d.BudgetHours, f.Hours),
		Days:        f.Days,
		Subjects:    make([]app.SubjectInput, 0, len(f.Subjects)),
	}
	if len(req.Days) == 0 {
		req.Days = append([]string(nil), d.Days...)
	}
	for _, s := range f.Subjects {
		req.Subjects = append(req.Subjects, app.SubjectInput{
			Name:       strings.TrimSpace(s.Name),
			Weight:     s.Weight,
			Goal:       s.Goal,
			Progress:   domain.Float64FromPtrWithDefault(0, s.Progress),
			DailyHours: s.DailyHours,
		})
	}
	return req
}

// Load reads, validates and converts a plan file in one step. Validation
// problems come back together as one invalid-input error.
func Load(path string, d Defaults) (app.GenerateRequest, error) {
	f, err := LoadPlanFile(path)
	if err != nil {
		return app.GenerateRequest{}, err
	}
	if errs := ValidatePlanFile(f); len(errs) > 0 {
		return app.GenerateRequest{}, domain.JoinInvalidInput(errs)
	}
	return Convert(f, d), nil
}
