package cli

import (
	"testing"

	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidators(t *testing.T) {
	assert.NoError(t, validateSubjectList("Math, Physics"))
	assert.Error(t, validateSubjectList(" , "))
	assert.ErrorContains(t, validateSubjectList("Math, math"), "listed twice")

	assert.NoError(t, validateWeeklyHours("20"))
	assert.NoError(t, validateWeeklyHours("168"))
	assert.Error(t, validateWeeklyHours("0.5"))
	assert.Error(t, validateWeeklyHours("169"))
	assert.Error(t, validateWeeklyHours("lots"))

	assert.NoError(t, validateNonNegativeHours(""))
	assert.NoError(t, validateNonNegativeHours("2.5"))
	assert.Error(t, validateNonNegativeHours("-1"))

	assert.NoError(t, validateDailyHours("30"))
	assert.Error(t, validateDailyHours(""))
	assert.Error(t, validateDailyHours("x"))
}

func TestPlanAnswers_DefaultsFromRequest(t *testing.T) {
	req := contract.NewGenerateRequest(nil, 0)
	a := newPlanAnswers(&req)
	assert.Equal(t, defaultSubjects, a.Subjects)
	assert.Equal(t, "", a.Hours)
	assert.Len(t, a.Days, 5)
	assert.Equal(t, "simple", a.Variant)
}

func TestPlanAnswers_AdvancedApply(t *testing.T) {
	req := contract.NewGenerateRequest([]string{"Calculus"}, 20)
	a := newPlanAnswers(&req)
	a.Subjects = "Calculus, History"
	a.Variant = string(domain.VariantAdvanced)
	a.prepareDetails()
	require.Len(t, a.Details, 2)
	assert.Equal(t, "3", a.Details[1].Difficulty)

	a.Details[0].Difficulty = "5"
	a.Details[0].Goal = "10"
	a.Details[0].Progress = "2.5"
	a.apply(&req)

	require.Len(t, req.Subjects, 2)
	assert.Equal(t, "advanced", req.Variant)
	assert.Equal(t, 5.0, *req.Subjects[0].Weight)
	assert.Equal(t, 10.0, *req.Subjects[0].Goal)
	assert.Equal(t, 2.5, req.Subjects[0].Progress)
	assert.Equal(t, 3.0, *req.Subjects[1].Weight)
	assert.Nil(t, req.Subjects[1].Goal)
}

func TestPlanAnswers_PrepareDetailsKeepsEarlierAnswers(t *testing.T) {
	a := &planAnswers{Subjects: "Math, Art"}
	a.prepareDetails()
	a.Details[1].Goal = "4"

	a.Subjects = "art, Music"
	a.prepareDetails()
	require.Len(t, a.Details, 2)
	assert.Equal(t, "art", a.Details[0].Name)
	assert.Equal(t, "4", a.Details[0].Goal)
	assert.Equal(t, "", a.Details[1].Goal)
}

func TestPlanAnswers_SimpleIgnoresDetails(t *testing.T) {
	req := contract.NewGenerateRequest(nil, 20)
	a := newPlanAnswers(&req)
	a.Details = []subjectAnswers{{Name: "Math", Difficulty: "5"}}
	a.apply(&req)
	for _, s := range req.Subjects {
		assert.Nil(t, s.Weight)
	}
}

func TestWizardForms_Build(t *testing.T) {
	req := contract.NewGenerateRequest([]string{"Math"}, 20)
	a := newPlanAnswers(&req)
	assert.NotNil(t, wizardPlanBasics(a))
	a.prepareDetails()
	assert.NotNil(t, wizardSubjectDetails(a))
}
