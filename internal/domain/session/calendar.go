package session

import (
	"fmt"
	"strings"
	"time"

	"session-booking/internal/pkg/errs"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidTimeOfDay = errs.NewKind(errs.ErrValidation, "time of day must be HH:MM between 00:00 and 23:59")
	ErrInvalidDate      = errs.NewKind(errs.ErrValidation, "date must be YYYY-MM-DD")
	ErrInvalidWeekday   = errs.NewKind(errs.ErrValidation, "weekday must be one of sun, mon, tue, wed, thu, fri, sat")
	ErrEmptyWeekdays    = errs.NewKind(errs.ErrValidation, "at least one weekday is required")
)

// TimeOfDay is a wall-clock time in minutes after local midnight.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(hour*60 + minute), nil
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	return NewTimeOfDay(t.Hour(), t.Minute())
}

func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// On resolves t on the calendar date of date in loc.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(t)/60, int(t)%60, 0, 0, loc)
}

// DateOf truncates t to its calendar date, represented at UTC midnight.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// WeekdaySet is a bitmask indexed by time.Weekday.
type WeekdaySet uint8

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

func ParseWeekdays(names []string) (WeekdaySet, error) {
	var s WeekdaySet
	for _, n := range names {
		d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, ErrInvalidWeekday
		}
		s |= 1 << uint(d)
	}
	if s == 0 {
		return 0, ErrEmptyWeekdays
	}
	return s, nil
}

func WeekdaySetFromMask(mask int16) WeekdaySet {
	return WeekdaySet(mask & 0x7f)
}

func (s WeekdaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

func (s WeekdaySet) Mask() int16 { return int16(s) }

func (s WeekdaySet) Names() []string {
	names := make([]string, 0, 7)
	for _, n := range []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"} {
		if s.Has(weekdayNames[n]) {
			names = append(names, n)
		}
	}
	return names
}
