package importer

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrFloat(f float64) *float64 { return &f }

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

var defaults = Defaults{
	BudgetHours: 20,
	Days:        []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
	Variant:     domain.VariantSimple,
}

const advancedYAML = `
variant: advanced
hours: 18
days: [Mon, Wed, Fri]
subjects:
  - name: Calculus
    weight: 5
    goal: 12
    progress: 3
  - name: History
    weight: 3
    daily_hours: 1.5
  - name: Music
`

func TestLoad_YAML(t *testing.T) {
	req, err := Load(writeFile(t, "week.yaml", advancedYAML), defaults)
	require.NoError(t, err)

	assert.Equal(t, "advanced", req.Variant)
	assert.Equal(t, 18.0, req.BudgetHours)
	assert.Equal(t, []string{"Mon", "Wed", "Fri"}, req.Days)
	require.Len(t, req.Subjects, 3)
	assert.Equal(t, "Calculus", req.Subjects[0].Name)
	assert.Equal(t, 5.0, *req.Subjects[0].Weight)
	assert.Equal(t, 3.0, req.Subjects[0].Progress)
	assert.Equal(t, 1.5, *req.Subjects[1].DailyHours)
	assert.Nil(t, req.Subjects[2].Weight)
}

func TestLoad_JSONUsesDefaults(t *testing.T) {
	req, err := Load(writeFile(t, "week.json", `{"subjects":[{"name":" Math "},{"name":"Physics","goal":4}]}`), defaults)
	require.NoError(t, err)

	assert.Equal(t, "simple", req.Variant)
	assert.Equal(t, 20.0, req.BudgetHours)
	assert.Equal(t, defaults.Days, req.Days)
	assert.Equal(t, "Math", req.Subjects[0].Name)
	assert.Equal(t, 4.0, *req.Subjects[1].Goal)
}

func TestLoad_UnknownExtension(t *testing.T) {
	_, err := Load(writeFile(t, "week.toml", "subjects = []"), defaults)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported plan file")
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	_, err := Load(writeFile(t, "week.yaml", "subjects:\n  - name: Math\n    wieght: 2\n"), defaults)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing plan file")

	_, err = Load(writeFile(t, "week.json", `{"subjects":[{"name":"Math"}],"hourz":3}`), defaults)
	require.Error(t, err)
}

func TestValidatePlanFile_Valid(t *testing.T) {
	f, err := ParseYAML([]byte(advancedYAML))
	require.NoError(t, err)
	assert.Empty(t, ValidatePlanFile(f))
}

func TestValidatePlanFile_CollectsEveryProblem(t *testing.T) {
	f := &PlanFile{
		Variant: "advanced",
		Hours:   ptrFloat(0),
		Days:    []string{"Mon", "Someday"},
		Subjects: []SubjectImport{
			{Name: "Math", Weight: ptrFloat(7)},
			{Name: "math", Weight: ptrFloat(2.5)},
			{Name: "", Goal: ptrFloat(-1), Progress: ptrFloat(-2)},
		},
	}

	errs := ValidatePlanFile(f)
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	joined := strings.Join(msgs, "\n")

	assert.Len(t, errs, 8)
	assert.Contains(t, joined, "hours must be positive")
	assert.Contains(t, joined, `unknown day "Someday"`)
	assert.Contains(t, joined, "subjects[0].weight must be a whole number from 1 to 5, got 7")
	assert.Contains(t, joined, `subjects[1].name "math" duplicates subjects[0]`)
	assert.Contains(t, joined, "subjects[1].weight must be a whole number")
	assert.Contains(t, joined, "subjects[2].name is required")
	assert.Contains(t, joined, "subjects[2].goal must not be negative")
	assert.Contains(t, joined, "subjects[2].progress must not be negative")
}

func TestValidatePlanFile_RejectsInfiniteHours(t *testing.T) {
	inf := math.Inf(1)
	f := &PlanFile{Subjects: []SubjectImport{{Name: "Math", Goal: &inf, Progress: &inf}}}

	errs := ValidatePlanFile(f)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "subjects[0].goal must be finite")
	assert.Contains(t, errs[1].Error(), "subjects[0].progress must be finite")
}

func TestParseYAML_InfiniteGoalFailsValidation(t *testing.T) {
	f, err := ParseYAML([]byte("subjects:\n  - name: Math\n    goal: .inf\n"))
	require.NoError(t, err)
	require.Len(t, ValidatePlanFile(f), 1)
}

func TestValidatePlanFile_SimpleAllowsFractionalWeight(t *testing.T) {
	f := &PlanFile{Subjects: []SubjectImport{{Name: "Math", Weight: ptrFloat(2.5)}, {Name: "Art", Weight: ptrFloat(9)}}}
	assert.Empty(t, ValidatePlanFile(f))
}

func TestValidatePlanFile_NoSubjects(t *testing.T) {
	errs := ValidatePlanFile(&PlanFile{Variant: "expert"})
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), `unknown value "expert"`)
	assert.Contains(t, errs[1].Error(), "at least one subject")
}

func TestLoad_ValidationJoinedAsInvalidInput(t *testing.T) {
	_, err := Load(writeFile(t, "week.yaml", "hours: -1\nsubjects: []\n"), defaults)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "hours must be positive")
	assert.Contains(t, err.Error(), "at least one subject")
}
