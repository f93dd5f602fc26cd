package importer

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// ValidatePlanFile checks a plan file before conversion.
// Returns a slice of all validation errors found.
func ValidatePlanFile(f *PlanFile) []error {
	var errs []error

	variant := domain.VariantSimple
	if f.Variant != "" {
		v, err := domain.ParseVariant(f.Variant)
		if err != nil {
			errs = append(errs, fmt.Errorf("variant: unknown value %q (expected simple or advanced)", f.Variant))
		} else {
			variant = v
		}
	}

	if f.Hours != nil && !(*f.Hours > 0) {
		errs = append(errs, fmt.Errorf("hours must be positive, got %g", *f.Hours))
	}

	for _, d := range f.Days {
		if _, err := domain.ParseWeekday(d); err != nil {
			errs = append(errs, fmt.Errorf("days: unknown day %q", d))
		}
	}

	errs = append(errs, validateSubjects(f.Subjects, variant)...)
	return errs
}

func validateSubjects(subjects []SubjectImport, variant domain.Variant) []error {
	if len(subjects) == 0 {
		return []error{fmt.Errorf("subjects: at least one subject is required")}
	}

	var errs []error
	seen := make(map[string]int, len(subjects))
	for i, s := range subjects {
		prefix := fmt.Sprintf("subjects[%d]", i)
		name := strings.TrimSpace(s.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else {
			key := domain.SubjectKey(name)
			if first, dup := seen[key]; dup {
				errs = append(errs, fmt.Errorf("%s.name %q duplicates subjects[%d]", prefix, name, first))
			} else {
				seen[key] = i
			}
		}

		if s.Weight != nil {
			w := *s.Weight
			switch {
			case w < 0 || math.IsNaN(w) || math.IsInf(w, 0):
				errs = append(errs, fmt.Errorf("%s.weight must be a non-negative number, got %g", prefix, w))
			case variant == domain.VariantAdvanced && (w != math.Trunc(w) || w < domain.MinDifficulty || w > domain.MaxDifficulty):
				errs = append(errs, fmt.Errorf("%s.weight must be a whole number from %d to %d, got %g",
					prefix, domain.MinDifficulty, domain.MaxDifficulty, w))
			}
		}
		if s.Goal != nil {
			if g := *s.Goal; g < 0 || math.IsNaN(g) {
				errs = append(errs, fmt.Errorf("%s.goal must not be negative, got %g", prefix, g))
			} else if math.IsInf(g, 1) {
				errs = append(errs, fmt.Errorf("%s.goal must be finite, leave it out for no cap", prefix))
			}
		}
		if s.Progress != nil {
			if p := *s.Progress; p < 0 || math.IsNaN(p) {
				errs = append(errs, fmt.Errorf("%s.progress must not be negative, got %g", prefix, p))
			} else if math.IsInf(p, 1) {
				errs = append(errs, fmt.Errorf("%s.progress must be finite", prefix))
			}
		}
	}
	return errs
}
