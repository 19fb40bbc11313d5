package calendar

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/evebuzz/evebuzz/internal/utils"
	"github.com/evebuzz/evebuzz/pkg/event"
)

// RangeMode selects how a date is tested against an event's start and end.
type RangeMode string

const (
	// RangeChronological compares whole calendar days.
	RangeChronological RangeMode = "chronological"
	// RangeLegacy compares day, month and year independently. Events spanning a month or
	// year boundary only match on their start day.
	RangeLegacy RangeMode = "legacy"
)

func ParseRangeMode(value string) (RangeMode, error) {
	switch RangeMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", RangeChronological:
		return RangeChronological, nil
	case RangeLegacy:
		return RangeLegacy, nil
	default:
		return "", fmt.Errorf("unknown calendar range mode %q", value)
	}
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func ParseWeekday(value string) (time.Weekday, error) {
	if value == "" {
		return time.Sunday, nil
	}
	day, ok := weekdays[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return time.Sunday, fmt.Errorf("unknown weekday %q", value)
	}
	return day, nil
}

type Day struct {
	Date    time.Time
	InMonth bool
	Events  []event.Event
}

// Matcher answers date-membership questions over a fixed list of events. Dates are
// interpreted in the matcher's location.
type Matcher struct {
	events []event.Event
	loc    *time.Location
	mode   RangeMode
}

func NewMatcher(events []event.Event, loc *time.Location, mode RangeMode) *Matcher {
	if loc == nil {
		loc = time.UTC
	}
	if mode == "" {
		mode = RangeChronological
	}
	return &Matcher{events: events, loc: loc, mode: mode}
}

func (m *Matcher) occupies(e event.Event, date time.Time) bool {
	if utils.SameDay(e.StartDate, date, m.loc) {
		return true
	}
	if m.mode == RangeLegacy {
		year, month, day := date.In(m.loc).Date()
		startYear, startMonth, startDay := e.StartDate.In(m.loc).Date()
		endYear, endMonth, endDay := e.EndDate.In(m.loc).Date()
		return day >= startDay && day <= endDay &&
			month >= startMonth && month <= endMonth &&
			year >= startYear && year <= endYear
	}
	day := utils.DayOf(date, m.loc)
	return !day.Before(utils.DayOf(e.StartDate, m.loc)) && !day.After(utils.DayOf(e.EndDate, m.loc))
}

func (m *Matcher) HasEvents(date time.Time) bool {
	for _, e := range m.events {
		if m.occupies(e, date) {
			return true
		}
	}
	return false
}

// EventsOnDate returns the events occupying date, earliest start first.
func (m *Matcher) EventsOnDate(date time.Time) []event.Event {
	result := make([]event.Event, 0)
	for _, e := range m.events {
		if m.occupies(e, date) {
			result = append(result, e)
		}
	}
	sortByStart(result)
	return result
}

// EventsBetween returns every event occupying at least one day in [from, to].
func (m *Matcher) EventsBetween(from, to time.Time) []event.Event {
	result := make([]event.Event, 0)
	first := utils.DayOf(from, m.loc)
	last := utils.DayOf(to, m.loc)
	if last.Before(first) {
		return result
	}
	for _, e := range m.events {
		for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
			if m.occupies(e, day) {
				result = append(result, e)
				break
			}
		}
	}
	sortByStart(result)
	return result
}

// MonthGrid returns whole weeks covering the month, starting on weekStart. Days outside
// the month are included with InMonth unset.
func (m *Matcher) MonthGrid(year int, month time.Month, weekStart time.Weekday) [][]Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, m.loc)
	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7
	day := first.AddDate(0, 0, -offset)
	next := first.AddDate(0, 1, 0)

	weeks := make([][]Day, 0, 6)
	for day.Before(next) {
		week := make([]Day, 0, 7)
		for i := 0; i < 7; i++ {
			week = append(week, Day{
				Date:    day,
				InMonth: day.Month() == month,
				Events:  m.EventsOnDate(day),
			})
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

func sortByStart(events []event.Event) {
	slices.SortStableFunc(events, func(a, b event.Event) int {
		return a.StartDate.Compare(b.StartDate)
	})
}
