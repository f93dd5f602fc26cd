package scheduler

import (
	"math"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// MaxDailyOverride is the upper clamp for a manually entered daily figure.
const MaxDailyOverride = 24.0

// Allocate splits budget across subjects in proportion to weight, capping each
// share at the subject's goal. Hours freed by a cap are not handed to other
// subjects. The input slice is not modified.
func Allocate(subjects []domain.Subject, budget float64) ([]domain.Subject, error) {
	if len(subjects) == 0 {
		return nil, domain.NewInvalidInput("subjects", "enter at least one subject")
	}
	if budget <= 0 || math.IsNaN(budget) || math.IsInf(budget, 0) {
		return nil, domain.NewInvalidInput("hours", "weekly budget must be a positive number")
	}

	total := 0.0
	for _, s := range subjects {
		if s.Weight < 0 || math.IsNaN(s.Weight) || math.IsInf(s.Weight, 0) {
			return nil, domain.NewInvalidInput("subjects["+s.Name+"].weight", "must be a non-negative number")
		}
		total += s.Weight
	}
	// All-zero weights would divide by zero; every share becomes 0 instead.
	if total == 0 {
		total = 1
	}

	out := make([]domain.Subject, len(subjects))
	for i, s := range subjects {
		raw := s.Weight / total * budget
		s.AllocatedHours = math.Min(raw, s.Cap())
		s.WeeklyHours = s.AllocatedHours
		s.DailyHours = 0
		s.Overridden = false
		out[i] = s
	}
	return out, nil
}

// SplitDaily spreads each subject's allocated hours evenly over dayCount days,
// rounded to two decimals.
func SplitDaily(subjects []domain.Subject, dayCount int) ([]domain.Subject, error) {
	if dayCount < 1 {
		return nil, domain.NewInvalidInput("days", "select at least one study day")
	}
	out := make([]domain.Subject, len(subjects))
	for i, s := range subjects {
		s.DailyHours = Round2(s.AllocatedHours / float64(dayCount))
		s.WeeklyHours = s.AllocatedHours
		s.Overridden = false
		out[i] = s
	}
	return out, nil
}

// AllocatePlan runs Allocate followed by SplitDaily.
func AllocatePlan(subjects []domain.Subject, budget float64, dayCount int) ([]domain.Subject, error) {
	if dayCount < 1 {
		return nil, domain.NewInvalidInput("days", "select at least one study day")
	}
	allocated, err := Allocate(subjects, budget)
	if err != nil {
		return nil, err
	}
	return SplitDaily(allocated, dayCount)
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
