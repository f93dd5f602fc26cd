package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/spf13/pflag"
)

// daysValue is a pflag.Value for a comma-separated day list. Parsing happens
// at Set time so bad names fail before any plan work.
type daysValue struct {
	days domain.DaySet
	set  bool
}

var _ pflag.Value = (*daysValue)(nil)

func newDaysValue(defaults []string) *daysValue {
	v := &daysValue{}
	if ds, err := domain.ParseDaySet(defaults); err == nil {
		v.days = ds
	}
	return v
}

func (v *daysValue) String() string {
	return v.days.String()
}

func (v *daysValue) Set(s string) error {
	ds, err := domain.ParseDaySet(strings.Split(s, ","))
	if err != nil {
		return err
	}
	v.days = ds
	v.set = true
	return nil
}

func (v *daysValue) Type() string { return "days" }

// parseAssignments turns NAME=HOURS pairs into a map. Names are trimmed and
// compared case-insensitively; a later pair replaces an earlier one and keeps
// its own spelling.
func parseAssignments(flag string, pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(pairs))
	spelled := make(map[string]string, len(pairs))
	var errs []error
	for _, p := range pairs {
		name, raw, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			errs = append(errs, domain.NewInvalidInput("--"+flag, fmt.Sprintf("expected NAME=NUMBER, got %q", p)))
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			errs = append(errs, domain.NewInvalidInput("--"+flag, fmt.Sprintf("%q is not a number for %s", raw, name)))
			continue
		}
		key := domain.SubjectKey(name)
		if prev, ok := spelled[key]; ok {
			delete(out, prev)
		}
		spelled[key] = name
		out[name] = v
	}
	if err := domain.JoinInvalidInput(errs); err != nil {
		return nil, err
	}
	return out, nil
}
