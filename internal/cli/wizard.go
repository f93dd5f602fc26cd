package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const maxWeeklyHours = 168

// studyplanHuhTheme returns a huh theme using the Gruvbox palette.
func studyplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[x] ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// planAnswers holds the raw wizard inputs before they are folded into a
// request.
type planAnswers struct {
	Subjects string
	Hours    string
	Days     []string
	Variant  string
	Details  []subjectAnswers
}

type subjectAnswers struct {
	Name       string
	Difficulty string
	Goal       string
	Progress   string
}

func newPlanAnswers(req *contract.GenerateRequest) *planAnswers {
	names := make([]string, len(req.Subjects))
	for i, s := range req.Subjects {
		names[i] = s.Name
	}
	a := &planAnswers{
		Subjects: strings.Join(names, ", "),
		Hours:    strconv.FormatFloat(req.BudgetHours, 'f', -1, 64),
		Days:     append([]string(nil), req.Days...),
		Variant:  domain.CoalesceStr(req.Variant, string(domain.VariantSimple)),
	}
	if a.Subjects == "" {
		a.Subjects = defaultSubjects
	}
	if a.Hours == "0" {
		a.Hours = ""
	}
	return a
}

// prepareDetails sizes Details to the chosen subjects, keeping answers for
// names already seen.
func (a *planAnswers) prepareDetails() {
	prev := make(map[string]subjectAnswers, len(a.Details))
	for _, d := range a.Details {
		prev[domain.SubjectKey(d.Name)] = d
	}
	names := domain.ParseSubjectNames(a.Subjects)
	a.Details = make([]subjectAnswers, len(names))
	for i, n := range names {
		d, ok := prev[domain.SubjectKey(n)]
		if !ok {
			d = subjectAnswers{Difficulty: strconv.Itoa(domain.DefaultWeight)}
		}
		d.Name = n
		a.Details[i] = d
	}
}

// apply writes the answers into req. Inputs were validated by the form, so
// parse failures leave the field at its zero value for the service to
// reject.
func (a *planAnswers) apply(req *contract.GenerateRequest) {
	req.Subjects = mergeSubjectNames(req.Subjects, domain.ParseSubjectNames(a.Subjects))
	if h, err := strconv.ParseFloat(strings.TrimSpace(a.Hours), 64); err == nil {
		req.BudgetHours = h
	}
	req.Days = append([]string(nil), a.Days...)
	req.Variant = a.Variant

	if a.Variant != string(domain.VariantAdvanced) {
		return
	}
	for i := range req.Subjects {
		if i >= len(a.Details) {
			break
		}
		d := a.Details[i]
		if w, err := strconv.ParseFloat(d.Difficulty, 64); err == nil {
			req.Subjects[i].Weight = domain.Float64Ptr(w)
		}
		if g, ok := parseOptionalHours(d.Goal); ok {
			req.Subjects[i].Goal = domain.Float64Ptr(g)
		}
		if p, ok := parseOptionalHours(d.Progress); ok {
			req.Subjects[i].Progress = p
		}
	}
}

func parseOptionalHours(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// runPlanWizard asks for plan inputs on the terminal and fills req.
func runPlanWizard(ctx context.Context, req *contract.GenerateRequest) error {
	answers := newPlanAnswers(req)

	if err := wizardPlanBasics(answers).RunWithContext(ctx); err != nil {
		return wizardErr(err)
	}
	if answers.Variant == string(domain.VariantAdvanced) {
		answers.prepareDetails()
		if err := wizardSubjectDetails(answers).RunWithContext(ctx); err != nil {
			return wizardErr(err)
		}
	}
	answers.apply(req)
	return nil
}

func wizardErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return fmt.Errorf("cancelled")
	}
	return err
}

// wizardPlanBasics creates the first wizard page: subjects, budget, days
// and variant.
func wizardPlanBasics(a *planAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			subjectsInput(&a.Subjects),
			hoursInput(&a.Hours),
			daysSelect(&a.Days),
			variantSelect(&a.Variant),
		),
	).WithTheme(studyplanHuhTheme()).WithShowHelp(false)
}

// wizardSubjectDetails creates one group per subject for difficulty, goal
// and progress in the advanced variant.
func wizardSubjectDetails(a *planAnswers) *huh.Form {
	groups := make([]*huh.Group, 0, len(a.Details))
	for i := range a.Details {
		d := &a.Details[i]
		groups = append(groups, huh.NewGroup(
			difficultySelect(d.Name, &d.Difficulty),
			optionalHoursInput("Goal hours for "+d.Name, "blank for none", &d.Goal),
			optionalHoursInput("Hours already studied", "0", &d.Progress),
		))
	}
	return huh.NewForm(groups...).WithTheme(studyplanHuhTheme()).WithShowHelp(false)
}
