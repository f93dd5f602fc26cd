package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/charmbracelet/huh"
)

// subjectsInput returns a huh.Input for the comma-separated subject list.
func subjectsInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Subjects").
		Description("Comma-separated, e.g. Math, Physics, Chemistry").
		Placeholder(defaultSubjects).
		Value(value).
		Validate(validateSubjectList)
}

// hoursInput returns a huh.Input for the weekly budget.
func hoursInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Study hours per week").
		Placeholder("20").
		Value(value).
		Validate(validateWeeklyHours)
}

// daysSelect returns a multi-select over the days of the week.
func daysSelect(value *[]string) *huh.MultiSelect[string] {
	opts := make([]huh.Option[string], 0, len(domain.WeekOrder))
	for _, d := range domain.WeekOrder {
		opts = append(opts, huh.NewOption(d.String(), d.String()))
	}
	return huh.NewMultiSelect[string]().
		Title("Study days").
		Options(opts...).
		Value(value).
		Validate(func(days []string) error {
			if len(days) == 0 {
				return fmt.Errorf("select at least one day")
			}
			return nil
		})
}

func variantSelect(value *string) *huh.Select[string] {
	return huh.NewSelect[string]().
		Title("Allocation").
		Options(
			huh.NewOption("Simple: every subject weighs the same", string(domain.VariantSimple)),
			huh.NewOption("Advanced: weigh by difficulty, cap by goal", string(domain.VariantAdvanced)),
		).
		Value(value)
}

// difficultySelect returns a 1-5 difficulty picker for one subject.
func difficultySelect(subject string, value *string) *huh.Select[string] {
	opts := make([]huh.Option[string], 0, domain.MaxDifficulty)
	for d := domain.MinDifficulty; d <= domain.MaxDifficulty; d++ {
		opts = append(opts, huh.NewOption(strconv.Itoa(d), strconv.Itoa(d)))
	}
	return huh.NewSelect[string]().
		Title("Difficulty of " + subject).
		Description("1 = easy, 5 = hardest").
		Options(opts...).
		Value(value)
}

// optionalHoursInput returns a huh.Input for a non-negative hour figure that
// may be left blank.
func optionalHoursInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateNonNegativeHours)
}

// validateSubjectList requires at least one name and no duplicates.
func validateSubjectList(s string) error {
	names := domain.ParseSubjectNames(s)
	if len(names) == 0 {
		return fmt.Errorf("enter at least one subject")
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		key := domain.SubjectKey(n)
		if seen[key] {
			return fmt.Errorf("%q is listed twice", n)
		}
		seen[key] = true
	}
	return nil
}

// validateWeeklyHours accepts a number of hours between 1 and a full week.
func validateWeeklyHours(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 1 || v > maxWeeklyHours {
		return fmt.Errorf("enter a number from 1 to %d", maxWeeklyHours)
	}
	return nil
}

// validateNonNegativeHours accepts empty or a non-negative number.
func validateNonNegativeHours(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

// validateDailyHours requires a number. Out-of-range figures are clamped to
// [0, 24] when the override is applied.
func validateDailyHours(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("enter hours per day")
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}
