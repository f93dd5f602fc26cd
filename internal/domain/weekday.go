package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// WeekOrder lists weekdays in the order plans display them.
var WeekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

var weekdayIndex = func() map[time.Weekday]int {
	m := make(map[time.Weekday]int, len(WeekOrder))
	for i, d := range WeekOrder {
		m[d] = i
	}
	return m
}()

// ParseWeekday accepts a full English weekday name or its three-letter
// abbreviation, in any case.
func ParseWeekday(s string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, d := range WeekOrder {
		name := strings.ToLower(d.String())
		if key == name || (len(key) == 3 && strings.HasPrefix(name, key)) {
			return d, nil
		}
	}
	return 0, NewInvalidInput("days", fmt.Sprintf("unknown day %q", s))
}

// DaySet is an ordered, duplicate-free selection of study days.
type DaySet []time.Weekday

// NewDaySet sorts days into week order and drops duplicates.
func NewDaySet(days ...time.Weekday) DaySet {
	seen := make(map[time.Weekday]bool, len(days))
	out := make(DaySet, 0, len(days))
	for _, d := range days {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return weekdayIndex[out[i]] < weekdayIndex[out[j]] })
	return out
}

// ParseDaySet parses day names. An empty list is an error; callers that want
// a default should use DefaultDays.
func ParseDaySet(names []string) (DaySet, error) {
	var days []time.Weekday
	var errs []error
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		d, err := ParseWeekday(n)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		days = append(days, d)
	}
	if len(errs) > 0 {
		return nil, JoinInvalidInput(errs)
	}
	if len(days) == 0 {
		return nil, NewInvalidInput("days", "select at least one study day")
	}
	return NewDaySet(days...), nil
}

// DefaultDays is Monday through Friday.
func DefaultDays() DaySet {
	return NewDaySet(WeekOrder[:5]...)
}

func (s DaySet) Names() []string {
	names := make([]string, len(s))
	for i, d := range s {
		names[i] = d.String()
	}
	return names
}

func (s DaySet) String() string {
	return strings.Join(s.Names(), ",")
}
