package session

import (
	"time"

	"session-booking/internal/pkg/errs"
)

const DefaultMaxGenerateDays = 92

var (
	ErrInvalidRange = errs.NewKind(errs.ErrValidation, "from_date must not be after to_date")
	ErrRangeTooLong = errs.NewKind(errs.ErrValidation, "date range exceeds the generation limit")
)

// Planned is an instance to insert together with its seeded buckets.
type Planned struct {
	Instance *Instance
	Buckets  []*Bucket
}

// ValidateRange checks an inclusive [from, to] date range of at most maxDays days.
func ValidateRange(from, to time.Time, maxDays int) error {
	from, to = DateOf(from), DateOf(to)
	if to.Before(from) {
		return ErrInvalidRange
	}
	if maxDays > 0 && DaysBetween(from, to)+1 > maxDays {
		return errs.Wrapf(ErrRangeTooLong, "max %d days", maxDays)
	}
	return nil
}

// DaysBetween counts calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}

// Plan expands templates over [from, to] and skips slots already taken.
// existing is updated in place so one template never shadows another on the same slot twice.
func Plan(templates []*Template, from, to time.Time, existing map[SlotKey]struct{}, now time.Time) []Planned {
	var out []Planned
	for d := DateOf(from); !d.After(DateOf(to)); d = d.AddDate(0, 0, 1) {
		for _, t := range templates {
			if !t.Schedulable() || !t.RunsOn(d) {
				continue
			}
			key := NewSlotKey(d, t.Start())
			if _, taken := existing[key]; taken {
				continue
			}
			existing[key] = struct{}{}

			inst := NewInstanceFromTemplate(t, d, now)
			out = append(out, Planned{
				Instance: inst,
				Buckets:  BucketsFromInventory(inst.ID(), t.Inventory()),
			})
		}
	}
	return out
}
