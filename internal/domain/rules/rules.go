package rules

import (
	"encoding/json"
	"time"

	"session-booking/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type ChildPricing string

const (
	ChildFreeUnder12 ChildPricing = "free_under_12"
	ChildHalfPrice   ChildPricing = "half_price"
	ChildFullPrice   ChildPricing = "full_price"
)

func (c ChildPricing) IsValid() bool {
	switch c {
	case ChildFreeUnder12, ChildHalfPrice, ChildFullPrice:
		return true
	default:
		return false
	}
}

const (
	DefaultCutoffMinutes               = 120
	DefaultCancellationDeadlineMinutes = 240
	DefaultChildPricing                = ChildFullPrice
	maxWindowMinutes                   = 60 * 24 * 30
)

var (
	ErrInvalidCutoff       = errs.NewKind(errs.ErrValidation, "cutoff_minutes must be between 0 and 43200")
	ErrInvalidCancellation = errs.NewKind(errs.ErrValidation, "cancellation_deadline_minutes must be between 0 and 43200")
	ErrInvalidDailyLimit   = errs.NewKind(errs.ErrValidation, "max_per_guest_per_day must be at least 1")
	ErrInvalidChildPricing = errs.NewKind(errs.ErrValidation, "child_pricing must be free_under_12, half_price or full_price")
	ErrMalformedRules      = errs.NewKind(errs.ErrValidation, "rules must be a JSON object")

	ErrCutoffPassed         = errs.NewKind(errs.ErrCutoffPassed, "booking cutoff for this session has passed")
	ErrLimitExceeded        = errs.NewKind(errs.ErrLimitExceeded, "guest reached the daily reservation limit")
	ErrCancellationDeadline = errs.NewKind(errs.ErrCancellationDeadline, "cancellation deadline for this session has passed")
)

// Rules is the admission policy of one restaurant. A nil MaxPerGuestPerDay means unlimited.
// MixTableAllowed is stored for operator tooling; parties are never split across buckets.
type Rules struct {
	CutoffMinutes               int
	CancellationDeadlineMinutes int
	MaxPerGuestPerDay           *int
	ChildPricing                ChildPricing
	MixTableAllowed             bool
}

func Default() Rules {
	return Rules{
		CutoffMinutes:               DefaultCutoffMinutes,
		CancellationDeadlineMinutes: DefaultCancellationDeadlineMinutes,
		ChildPricing:                DefaultChildPricing,
	}
}

func (r Rules) Validate() error {
	if r.CutoffMinutes < 0 || r.CutoffMinutes > maxWindowMinutes {
		return ErrInvalidCutoff
	}
	if r.CancellationDeadlineMinutes < 0 || r.CancellationDeadlineMinutes > maxWindowMinutes {
		return ErrInvalidCancellation
	}
	if r.MaxPerGuestPerDay != nil && *r.MaxPerGuestPerDay < 1 {
		return ErrInvalidDailyLimit
	}
	if !r.ChildPricing.IsValid() {
		return ErrInvalidChildPricing
	}
	return nil
}

// CutoffDeadline is the last instant a booking for a session starting at start is accepted.
func (r Rules) CutoffDeadline(start time.Time) time.Time {
	return start.Add(-time.Duration(r.CutoffMinutes) * time.Minute)
}

func (r Rules) CutoffPassed(now, start time.Time) bool {
	return now.After(r.CutoffDeadline(start))
}

func (r Rules) CancellationDeadline(start time.Time) time.Time {
	return start.Add(-time.Duration(r.CancellationDeadlineMinutes) * time.Minute)
}

// WithinDailyLimit reports whether one more booking fits given the guest's confirmed count for the day.
func (r Rules) WithinDailyLimit(existing int) bool {
	if r.MaxPerGuestPerDay == nil {
		return true
	}
	return existing < *r.MaxPerGuestPerDay
}

func (r Rules) CheckCutoff(now, start time.Time) error {
	if r.CutoffPassed(now, start) {
		return ErrCutoffPassed
	}
	return nil
}

func (r Rules) CheckDailyLimit(existing int) error {
	if !r.WithinDailyLimit(existing) {
		return ErrLimitExceeded
	}
	return nil
}

func (r Rules) CheckCancellation(now, start time.Time) error {
	if now.After(r.CancellationDeadline(start)) {
		return ErrCancellationDeadline
	}
	return nil
}

var half = decimal.NewFromFloat(0.5)

// ChildUnitPrice derives the per-child price, rounded to cents half away from zero.
func (r Rules) ChildUnitPrice(adult decimal.Decimal) decimal.Decimal {
	switch r.ChildPricing {
	case ChildFreeUnder12:
		return decimal.Zero
	case ChildHalfPrice:
		return adult.Mul(half).Round(2)
	default:
		return adult
	}
}

type document struct {
	CutoffMinutes               *int    `json:"cutoff_minutes,omitempty"`
	CancellationDeadlineMinutes *int    `json:"cancellation_deadline_minutes,omitempty"`
	MaxPerGuestPerDay           *int    `json:"max_per_guest_per_day,omitempty"`
	ChildPricing                *string `json:"child_pricing,omitempty"`
	MixTableAllowed             *bool   `json:"mix_table_allowed,omitempty"`
}

// Decode reads the stored JSON form. Missing fields take their defaults.
func Decode(raw []byte) (Rules, error) {
	return Default().Apply(raw)
}

// Apply overlays a partial JSON document on r. A max_per_guest_per_day of 0 removes the limit.
func (r Rules) Apply(raw []byte) (Rules, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return r, r.Validate()
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Rules{}, errs.Wrapf(ErrMalformedRules, "decode rules: %v", err)
	}

	out := r
	if doc.CutoffMinutes != nil {
		out.CutoffMinutes = *doc.CutoffMinutes
	}
	if doc.CancellationDeadlineMinutes != nil {
		out.CancellationDeadlineMinutes = *doc.CancellationDeadlineMinutes
	}
	if doc.MaxPerGuestPerDay != nil {
		if *doc.MaxPerGuestPerDay == 0 {
			out.MaxPerGuestPerDay = nil
		} else {
			v := *doc.MaxPerGuestPerDay
			out.MaxPerGuestPerDay = &v
		}
	}
	if doc.ChildPricing != nil {
		out.ChildPricing = ChildPricing(*doc.ChildPricing)
	}
	if doc.MixTableAllowed != nil {
		out.MixTableAllowed = *doc.MixTableAllowed
	}

	if err := out.Validate(); err != nil {
		return Rules{}, err
	}
	return out, nil
}

// Encode writes every field explicitly so stored documents never depend on defaults.
func (r Rules) Encode() ([]byte, error) {
	pricing := string(r.ChildPricing)
	mix := r.MixTableAllowed
	doc := document{
		CutoffMinutes:               &r.CutoffMinutes,
		CancellationDeadlineMinutes: &r.CancellationDeadlineMinutes,
		MaxPerGuestPerDay:           r.MaxPerGuestPerDay,
		ChildPricing:                &pricing,
		MixTableAllowed:             &mix,
	}
	return json.Marshal(doc)
}
