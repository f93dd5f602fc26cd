package domain

import (
	"fmt"
	"math"
	"time"
)

// StudyPlan is built fresh for every generation request and discarded once
// rendered or exported.
type StudyPlan struct {
	ID          string
	Variant     Variant
	Subjects    []Subject
	Days        DaySet
	BudgetHours float64
	GeneratedAt time.Time
}

func (p *StudyPlan) DayCount() int {
	return len(p.Days)
}

// Validate checks the plan's inputs and reports every problem at once.
func (p *StudyPlan) Validate() error {
	var errs []error

	if len(p.Subjects) == 0 {
		errs = append(errs, NewInvalidInput("subjects", "enter at least one subject"))
	}
	seen := make(map[string]bool, len(p.Subjects))
	for _, s := range p.Subjects {
		errs = append(errs, s.Validate(p.Variant)...)
		key := SubjectKey(s.Name)
		if key == "" {
			continue
		}
		if seen[key] {
			errs = append(errs, NewInvalidInput("subjects", fmt.Sprintf("duplicate subject %q", s.Name)))
		}
		seen[key] = true
	}
	if p.BudgetHours <= 0 || math.IsNaN(p.BudgetHours) || math.IsInf(p.BudgetHours, 0) {
		errs = append(errs, NewInvalidInput("hours", "weekly budget must be a positive number"))
	}
	if len(p.Days) == 0 {
		errs = append(errs, NewInvalidInput("days", "select at least one study day"))
	}

	return JoinInvalidInput(errs)
}
