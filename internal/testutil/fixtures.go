package testutil

import (
	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/domain"
)

// RequestOption tweaks a request built by NewRequest.
type RequestOption func(*contract.GenerateRequest)

func WithBudget(hours float64) RequestOption {
	return func(r *contract.GenerateRequest) {
		r.BudgetHours = hours
	}
}

func WithDays(days ...string) RequestOption {
	return func(r *contract.GenerateRequest) {
		r.Days = days
	}
}

func WithVariant(v domain.Variant) RequestOption {
	return func(r *contract.GenerateRequest) {
		r.Variant = string(v)
	}
}

// WithSubject appends a subject. Zero weight or goal means unset.
func WithSubject(name string, weight, goal, progress float64) RequestOption {
	return func(r *contract.GenerateRequest) {
		s := contract.SubjectInput{Name: name, Progress: progress}
		if weight != 0 {
			s.Weight = domain.Float64Ptr(weight)
		}
		if goal != 0 {
			s.Goal = domain.Float64Ptr(goal)
		}
		r.Subjects = append(r.Subjects, s)
	}
}

func WithOverride(name string, daily float64) RequestOption {
	return func(r *contract.GenerateRequest) {
		if r.Overrides == nil {
			r.Overrides = make(map[string]float64)
		}
		r.Overrides[name] = daily
	}
}

// NewRequest returns a simple-variant request over Monday to Friday with a
// 20 hour budget and no subjects, then applies opts.
func NewRequest(opts ...RequestOption) contract.GenerateRequest {
	r := contract.NewGenerateRequest(nil, 20)
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
