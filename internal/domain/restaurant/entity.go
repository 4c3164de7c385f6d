package restaurant

import (
	"strings"
	"time"

	"session-booking/internal/domain/money"
	"session-booking/internal/domain/rules"
	"session-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	MaxNameLength   = 255
	DefaultTimezone = "Asia/Tokyo"
)

var (
	ErrEmptyName       = errs.NewKind(errs.ErrValidation, "restaurant name cannot be empty")
	ErrNameTooLong     = errs.NewKind(errs.ErrValidation, "restaurant name is too long (max 255 characters)")
	ErrInvalidTimezone = errs.NewKind(errs.ErrValidation, "timezone must be an IANA zone name")
	ErrNotFound        = errs.NewKind(errs.ErrNotFound, "restaurant not found")
)

// Restaurant is the bookable resource. Service dates and session times are local to its timezone.
type Restaurant struct {
	id        uuid.UUID
	name      string
	active    bool
	price     money.Money
	location  *time.Location
	rules     rules.Rules
	createdAt time.Time
	updatedAt time.Time
}

func New(name string, price money.Money, timezone string, r rules.Rules, now time.Time) (*Restaurant, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	loc, err := LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	return &Restaurant{
		id:        uuid.New(),
		name:      name,
		active:    true,
		price:     price,
		location:  loc,
		rules:     r,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	name string,
	active bool,
	price money.Money,
	location *time.Location,
	r rules.Rules,
	createdAt, updatedAt time.Time,
) *Restaurant {
	return &Restaurant{
		id:        id,
		name:      name,
		active:    active,
		price:     price,
		location:  location,
		rules:     r,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// LoadLocation resolves an IANA zone name. An empty name falls back to DefaultTimezone.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errs.Wrapf(ErrInvalidTimezone, "load %q", name)
	}
	return loc, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

func (r *Restaurant) ID() uuid.UUID            { return r.id }
func (r *Restaurant) Name() string             { return r.name }
func (r *Restaurant) IsActive() bool           { return r.active }
func (r *Restaurant) Price() money.Money       { return r.price }
func (r *Restaurant) Location() *time.Location { return r.location }
func (r *Restaurant) Rules() rules.Rules       { return r.rules }
func (r *Restaurant) CreatedAt() time.Time     { return r.createdAt }
func (r *Restaurant) UpdatedAt() time.Time     { return r.updatedAt }

// ChangePrice only affects future bookings; confirmed reservations keep their snapshot.
func (r *Restaurant) ChangePrice(price money.Money, now time.Time) {
	r.price = price
	r.updatedAt = now
}

func (r *Restaurant) ChangeRules(next rules.Rules, now time.Time) error {
	if err := next.Validate(); err != nil {
		return err
	}
	r.rules = next
	r.updatedAt = now
	return nil
}

func (r *Restaurant) Rename(name string, now time.Time) error {
	name, err := validateName(name)
	if err != nil {
		return err
	}
	r.name = name
	r.updatedAt = now
	return nil
}

func (r *Restaurant) SetActive(active bool, now time.Time) {
	r.active = active
	r.updatedAt = now
}

// EnsureBookable hides inactive restaurants from guests.
func (r *Restaurant) EnsureBookable() error {
	if !r.active {
		return ErrNotFound
	}
	return nil
}
