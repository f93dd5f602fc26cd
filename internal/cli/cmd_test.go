package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/studyplan/internal/config"
	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/export"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires real services with a non-interactive terminal.
func testApp(t *testing.T) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	return &App{
		Plans:   service.NewPlanService(cfg.Thresholds),
		Exports: service.NewExportService(export.DefaultRegistry(cfg.ChartWidth, cfg.ChartHeight), cfg.ExportTitle),
		Config:  cfg,
	}
}

// executeCmd runs a cobra command and captures stdout and stderr separately.
func executeCmd(t *testing.T, app *App, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd(app)
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func decodePlan(t *testing.T, out string) contract.PlanResponse {
	t.Helper()
	var plan contract.PlanResponse
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	return plan
}

func TestGenerate_DefaultSubjectsWhenNotInteractive(t *testing.T) {
	out, _, err := executeCmd(t, testApp(t), "generate", "--json")
	require.NoError(t, err)

	plan := decodePlan(t, out)
	require.Len(t, plan.Subjects, 3)
	assert.Equal(t, []string{"Math", "Physics", "Chemistry"}, []string{plan.Subjects[0].Name, plan.Subjects[1].Name, plan.Subjects[2].Name})
	assert.Equal(t, 1.33, plan.Subjects[0].DailyHours)
	assert.Equal(t, 20.0, plan.BudgetHours)
}

func TestGenerate_StyledOutput(t *testing.T) {
	out, _, err := executeCmd(t, testApp(t), "generate", "--subjects", "Math, Physics", "--hours", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "WEEKLY HOURS")
	assert.Contains(t, out, "DAILY DISTRIBUTION")
	assert.Contains(t, out, "Physics")
	assert.Contains(t, out, "No warnings.")
}

func TestGenerate_AdvancedFlags(t *testing.T) {
	out, _, err := executeCmd(t, testApp(t), "generate", "--json",
		"--variant", "advanced",
		"--subjects", "Calculus,History",
		"--hours", "12",
		"--days", "Mon,Wed,Fri",
		"--weight", "Calculus=5", "--weight", "history=1",
		"--goal", "Calculus=4", "--progress", "Calculus=1",
	)
	require.NoError(t, err)

	plan := decodePlan(t, out)
	assert.Equal(t, domain.VariantAdvanced, plan.Variant)
	assert.Equal(t, []string{"Monday", "Wednesday", "Friday"}, plan.Days)

	calc := plan.Subjects[0]
	assert.Equal(t, 4.0, calc.AllocatedHours, "capped at goal")
	require.NotNil(t, calc.RemainingHours)
	assert.Equal(t, 3.0, *calc.RemainingHours)
	assert.Equal(t, domain.SeverityHigh, calc.Severity)
	assert.Equal(t, domain.SeverityLow, plan.Subjects[1].Severity)
	assert.InDelta(t, 2.0, plan.Subjects[1].AllocatedHours, 1e-9)
	assert.InDelta(t, 6.0, plan.UnallocatedHours, 1e-9)
}

func TestGenerate_DailyOverrideFlag(t *testing.T) {
	out, _, err := executeCmd(t, testApp(t), "generate", "--json", "--subjects", "Math,Art", "--hours", "10", "--daily", "math=3")
	require.NoError(t, err)

	plan := decodePlan(t, out)
	math, ok := plan.Subject("Math")
	require.True(t, ok)
	assert.True(t, math.Overridden)
	assert.Equal(t, 15.0, math.WeeklyHours)
	assert.Equal(t, 5.0, math.AllocatedHours)
	require.Len(t, plan.Warnings, 1)
	assert.Equal(t, domain.WarningBreak, plan.Warnings[0].Kind)
}

func TestGenerate_RepeatedDailyFlagLastWinsAcrossCase(t *testing.T) {
	for i := 0; i < 10; i++ {
		out, _, err := executeCmd(t, testApp(t), "generate", "--json", "--subjects", "Math,Art", "--hours", "10",
			"--daily", "math=1", "--daily", "Math=3")
		require.NoError(t, err)

		plan := decodePlan(t, out)
		math, ok := plan.Subject("Math")
		require.True(t, ok)
		require.Equal(t, 3.0, math.DailyHours, "run %d", i)
	}
}

func TestGenerate_InputErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown day", []string{"--days", "Mon,Someday"}, `unknown day "Someday"`},
		{"bad hours", []string{"--hours", "0"}, "budget"},
		{"unknown subject in flag", []string{"--subjects", "Math", "--goal", "Art=2"}, `unknown subject "Art"`},
		{"malformed pair", []string{"--weight", "Math"}, "expected NAME=NUMBER"},
		{"bad variant", []string{"--variant", "expert"}, "unknown variant"},
		{"advanced weight range", []string{"--variant", "advanced", "--subjects", "Math", "--weight", "Math=9"}, "weight"},
		{"edit without terminal", []string{"--edit"}, "interactive terminal"},
		{"export extension", []string{"--export", "plan.docx"}, "unknown extension"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCmd(t, testApp(t), append([]string{"generate"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGenerate_FromFileWithFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "week.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
variant: advanced
hours: 9
days: [Sat, Sun]
subjects:
  - name: Calculus
    weight: 5
  - name: History
    weight: 4
`), 0o600))

	out, _, err := executeCmd(t, testApp(t), "generate", "--json", "--file", path, "--hours", "18", "--weight", "History=1")
	require.NoError(t, err)

	plan := decodePlan(t, out)
	assert.Equal(t, 18.0, plan.BudgetHours)
	assert.Equal(t, []string{"Saturday", "Sunday"}, plan.Days)
	assert.InDelta(t, 15.0, plan.Subjects[0].AllocatedHours, 1e-9)
	assert.InDelta(t, 3.0, plan.Subjects[1].AllocatedHours, 1e-9)
}

func TestGenerate_ExportsFiles(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "out", "week.pdf")
	jsonPath := filepath.Join(dir, "week.json")

	out, stderr, err := executeCmd(t, testApp(t), "generate", "--json", "--export", pdfPath, "-o", jsonPath)
	require.NoError(t, err)
	decodePlan(t, out)
	assert.Contains(t, stderr, "Exported PDF to")
	assert.Contains(t, stderr, "Exported JSON to")

	pdf, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var doc export.Document
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Len(t, doc.Rows, 3)
}

func TestGenerate_WizardFillsRequest(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	called := false
	app.Wizard = func(_ context.Context, req *contract.GenerateRequest) error {
		called = true
		a := newPlanAnswers(req)
		a.Subjects = "Biology, Art"
		a.Hours = "8"
		a.Days = []string{"Monday", "Tuesday"}
		a.apply(req)
		return nil
	}

	out, _, err := executeCmd(t, app, "generate", "--json")
	require.NoError(t, err)
	assert.True(t, called)

	plan := decodePlan(t, out)
	require.Len(t, plan.Subjects, 2)
	assert.Equal(t, "Biology", plan.Subjects[0].Name)
	assert.Equal(t, 2.0, plan.Subjects[0].DailyHours)
}

func TestGenerate_WizardSkippedWhenSubjectsGiven(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	app.Wizard = func(context.Context, *contract.GenerateRequest) error {
		t.Fatal("wizard must not run")
		return nil
	}
	_, _, err := executeCmd(t, app, "generate", "--json", "--subjects", "Math")
	require.NoError(t, err)
}

func TestGenerate_EditorResultIsPrinted(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	app.Editor = func(ctx context.Context, plan *contract.PlanResponse) (*contract.PlanResponse, error) {
		return app.Plans.Override(ctx, plan, map[string]float64{"Math": 0.5})
	}

	out, _, err := executeCmd(t, app, "generate", "--json", "--subjects", "Math,Art", "--edit")
	require.NoError(t, err)

	plan := decodePlan(t, out)
	math, _ := plan.Subject("Math")
	assert.Equal(t, 0.5, math.DailyHours)
	assert.True(t, math.Overridden)
}

func TestFormatsCmd(t *testing.T) {
	out, _, err := executeCmd(t, testApp(t), "formats")
	require.NoError(t, err)
	for _, want := range []string{"pdf", "xlsx", "png", "json", "sqlite", ".db", "application/pdf"} {
		assert.Contains(t, out, want)
	}
}

func TestServeCmd_AddrDefaultFromConfig(t *testing.T) {
	app := testApp(t)
	app.Config.HTTPAddr = "127.0.0.1:9999"
	cmd := newServeCmd(app)
	assert.Equal(t, "127.0.0.1:9999", cmd.Flags().Lookup("addr").DefValue)
}
