package reservation

import (
	"strings"
	"unicode/utf8"

	"session-booking/internal/domain/money"
	"session-booking/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	MaxSpecialRequestsLength = 1000
	MaxGuestRefLength        = 128
)

var (
	ErrInvalidParty           = errs.NewKind(errs.ErrValidation, "party needs at least one guest and no negative counts")
	ErrSpecialRequestsTooLong = errs.NewKind(errs.ErrValidation, "special requests exceed maximum length")
	ErrEmptyGuestRef          = errs.NewKind(errs.ErrValidation, "guest reference is required")
	ErrGuestRefTooLong        = errs.NewKind(errs.ErrValidation, "guest reference is too long")
	ErrInvalidStatus          = errs.NewKind(errs.ErrValidation, "invalid reservation status")
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// GuestRef is the opaque guest identity (room or stay reference) supplied by the identity provider.
type GuestRef string

func NewGuestRef(s string) (GuestRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyGuestRef
	}
	if len(s) > MaxGuestRefLength {
		return "", ErrGuestRefTooLong
	}
	return GuestRef(s), nil
}

func (g GuestRef) String() string { return string(g) }

type Party struct {
	adults   int
	children int
}

func NewParty(adults, children int) (Party, error) {
	if adults < 0 || children < 0 || adults+children <= 0 {
		return Party{}, ErrInvalidParty
	}
	return Party{adults: adults, children: children}, nil
}

func (p Party) Adults() int   { return p.adults }
func (p Party) Children() int { return p.children }
func (p Party) Size() int     { return p.adults + p.children }

type SpecialRequests struct {
	value string
}

func NewSpecialRequests(value string) (SpecialRequests, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) > MaxSpecialRequestsLength {
		return SpecialRequests{}, ErrSpecialRequestsTooLong
	}
	return SpecialRequests{value: value}, nil
}

func (s SpecialRequests) String() string { return s.value }
func (s SpecialRequests) IsEmpty() bool  { return s.value == "" }

// PriceSnapshot freezes pricing at booking time.
type PriceSnapshot struct {
	perPerson money.Money
	total     money.Money
}

func NewPriceSnapshot(perPerson, total money.Money) PriceSnapshot {
	return PriceSnapshot{perPerson: perPerson, total: total}
}

func (p PriceSnapshot) PerPerson() money.Money      { return p.perPerson }
func (p PriceSnapshot) Total() money.Money          { return p.total }
func (p PriceSnapshot) Currency() money.Currency    { return p.perPerson.Currency() }
func (p PriceSnapshot) TotalAmount() decimal.Decimal { return p.total.Amount() }
