package domain

import (
	"fmt"
	"math"
	"strings"
)

type Subject struct {
	Name     string
	Weight   float64
	Goal     *float64 // nil means no weekly cap
	Progress float64

	// AllocatedHours is the solver's weekly figure and is never touched by
	// overrides. WeeklyHours is what downstream display uses.
	AllocatedHours float64
	DailyHours     float64
	WeeklyHours    float64
	Overridden     bool
}

func (s Subject) HasGoal() bool {
	return s.Goal != nil
}

// GoalOr returns the goal, or fallback when none is set.
func (s Subject) GoalOr(fallback float64) float64 {
	return Float64FromPtrWithDefault(fallback, s.Goal)
}

// Cap returns the goal or +Inf.
func (s Subject) Cap() float64 {
	return s.GoalOr(math.Inf(1))
}

// Validate returns every problem with the subject's user-supplied fields.
func (s Subject) Validate(variant Variant) []error {
	var errs []error
	field := "subjects[" + s.Name + "]"
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, NewInvalidInput("subjects", "subject name is required"))
		field = "subjects[?]"
	}
	if s.Weight < 0 || math.IsNaN(s.Weight) || math.IsInf(s.Weight, 0) {
		errs = append(errs, NewInvalidInput(field+".weight", "must be a non-negative number"))
	} else if variant == VariantAdvanced {
		if s.Weight != math.Trunc(s.Weight) || s.Weight < MinDifficulty || s.Weight > MaxDifficulty {
			errs = append(errs, NewInvalidInput(field+".weight",
				fmt.Sprintf("difficulty must be a whole number between %d and %d", MinDifficulty, MaxDifficulty)))
		}
	}
	if s.Goal != nil && !finiteNonNegative(*s.Goal) {
		errs = append(errs, NewInvalidInput(field+".goal", "must be a finite, non-negative number"))
	}
	if !finiteNonNegative(s.Progress) {
		errs = append(errs, NewInvalidInput(field+".progress", "must be a finite, non-negative number"))
	}
	return errs
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// ParseSubjectNames splits a comma-separated list, trimming blanks.
func ParseSubjectNames(input string) []string {
	var names []string
	for _, part := range strings.Split(input, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// SubjectKey normalizes a subject name for lookups.
func SubjectKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
