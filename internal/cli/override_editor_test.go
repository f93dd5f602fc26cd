package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/scheduler"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/alexanderramin/studyplan/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditorDriver(t *testing.T) (*teatest.Driver, *contract.PlanResponse) {
	t.Helper()
	plans := service.NewPlanService(scheduler.DefaultThresholds())
	plan, err := plans.Generate(context.Background(), contract.NewGenerateRequest([]string{"Math", "Physics"}, 10))
	require.NoError(t, err)
	return teatest.New(t, newOverrideEditor(context.Background(), plans, plan)), plan
}

func editor(d *teatest.Driver) overrideEditor {
	return d.Model.(overrideEditor)
}

func TestOverrideEditor_AppliesDailyFigure(t *testing.T) {
	d, _ := newEditorDriver(t)
	assert.Contains(t, d.View(), "Physics")

	d.Keys("down", "enter")
	require.True(t, editor(d).editing)
	assert.Equal(t, "1.00", editor(d).input.Value())

	d.Keys("backspace", "backspace", "backspace", "backspace", "3", "enter")

	m := editor(d)
	assert.False(t, m.editing)
	phys, ok := m.plan.Subject("Physics")
	require.True(t, ok)
	assert.Equal(t, 3.0, phys.DailyHours)
	assert.Equal(t, 15.0, phys.WeeklyHours)
	assert.True(t, phys.Overridden)
	assert.Contains(t, d.View(), "Physics set to 3.00h/day")
	assert.Contains(t, d.View(), "plan short breaks")

	d.Keys("q")
	assert.True(t, d.Quit)
	assert.Equal(t, 3.0, editor(d).Result().Subjects[1].DailyHours)
}

func TestOverrideEditor_RejectsNonNumber(t *testing.T) {
	d, _ := newEditorDriver(t)
	d.Keys("enter", "backspace", "backspace", "backspace", "backspace", "x", "enter")

	m := editor(d)
	assert.True(t, m.editing)
	assert.Equal(t, "enter a number", m.errMsg)
	assert.False(t, m.plan.Subjects[0].Overridden)
}

func TestOverrideEditor_EscCancelsEdit(t *testing.T) {
	d, _ := newEditorDriver(t)
	d.Keys("enter", "9", "esc")

	m := editor(d)
	assert.False(t, m.editing)
	assert.False(t, d.Quit)
	assert.Equal(t, 1.0, m.plan.Subjects[0].DailyHours)
}

func TestOverrideEditor_CtrlCDiscards(t *testing.T) {
	d, original := newEditorDriver(t)
	d.Keys("enter", "backspace", "backspace", "backspace", "backspace", "5", "enter", "ctrl+c")

	m := editor(d)
	assert.True(t, d.Quit)
	assert.True(t, m.cancelled)
	assert.Same(t, original, m.Result())
	assert.Equal(t, "", d.View())
}

func TestOverrideEditor_ClampsLargeFigure(t *testing.T) {
	d, _ := newEditorDriver(t)
	d.Keys("enter", "backspace", "backspace", "backspace", "backspace", "30", "enter")

	math, _ := editor(d).plan.Subject("Math")
	assert.Equal(t, 24.0, math.DailyHours)
	assert.Equal(t, 120.0, math.WeeklyHours)
	assert.Contains(t, d.View(), "Math set to 30.00h/day")
}
