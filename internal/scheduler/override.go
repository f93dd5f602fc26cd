package scheduler

import (
	"fmt"
	"math"
	"sort"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// ApplyOverrides replaces the daily figure of each named subject and
// recomputes its weekly hours as daily × dayCount. AllocatedHours keeps the
// solver's value. Names match case-insensitively; an unknown name rejects
// the whole batch, as do two names that differ only in case.
func ApplyOverrides(subjects []domain.Subject, overrides map[string]float64, dayCount int) ([]domain.Subject, error) {
	if dayCount < 1 {
		return nil, domain.NewInvalidInput("days", "select at least one study day")
	}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	byKey := make(map[string]float64, len(overrides))
	firstName := make(map[string]string, len(overrides))
	var errs []error
	for _, name := range names {
		hours := overrides[name]
		if math.IsNaN(hours) {
			errs = append(errs, domain.NewInvalidInput("daily["+name+"]", "must be a number"))
			continue
		}
		key := domain.SubjectKey(name)
		if prev, dup := firstName[key]; dup {
			errs = append(errs, domain.NewInvalidInput("daily",
				fmt.Sprintf("%q and %q name the same subject", prev, name)))
			continue
		}
		firstName[key] = name
		byKey[key] = hours
	}
	if err := domain.JoinInvalidInput(errs); err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(subjects))
	for _, s := range subjects {
		known[domain.SubjectKey(s.Name)] = true
	}
	var unknown []string
	for _, name := range names {
		if !known[domain.SubjectKey(name)] {
			unknown = append(unknown, name)
		}
	}
	for _, name := range unknown {
		errs = append(errs, domain.NewInvalidInput("daily", fmt.Sprintf("no subject named %q", name)))
	}
	if err := domain.JoinInvalidInput(errs); err != nil {
		return nil, err
	}

	out := make([]domain.Subject, len(subjects))
	for i, s := range subjects {
		if hours, ok := byKey[domain.SubjectKey(s.Name)]; ok {
			s.DailyHours = clamp(hours, 0, MaxDailyOverride)
			s.WeeklyHours = s.DailyHours * float64(dayCount)
			s.Overridden = true
		}
		out[i] = s
	}
	return out, nil
}
