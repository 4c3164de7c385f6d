package session

import (
	"strings"
	"time"

	"session-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const MaxTemplateNameLength = 100

var (
	ErrInvalidTimeRange    = errs.NewKind(errs.ErrValidation, "session end time must be after start time")
	ErrEmptyTemplateName   = errs.NewKind(errs.ErrValidation, "template name is required")
	ErrTemplateNameTooLong = errs.NewKind(errs.ErrValidation, "template name exceeds maximum length")
	ErrEmptyInventory      = errs.NewKind(errs.ErrValidation, "inventory needs at least one bucket")
	ErrInvalidCapacity     = errs.NewKind(errs.ErrValidation, "bucket capacity must be positive")
	ErrInvalidUnits        = errs.NewKind(errs.ErrValidation, "bucket units must not be negative")
	ErrTemplateNotFound    = errs.NewKind(errs.ErrNotFound, "session template not found")
	ErrUnknownLifecycle    = errs.NewKind(errs.ErrValidation, "unknown lifecycle")
)

type Lifecycle string

const (
	LifecycleActive   Lifecycle = "active"
	LifecycleArchived Lifecycle = "archived"
)

func ParseLifecycle(s string) (Lifecycle, error) {
	switch Lifecycle(s) {
	case LifecycleActive, LifecycleArchived:
		return Lifecycle(s), nil
	default:
		return "", ErrUnknownLifecycle
	}
}

// InventoryLine seeds Units buckets-worth of tables that seat up to Capacity guests.
type InventoryLine struct {
	Capacity int `json:"capacity" yaml:"capacity"`
	Units    int `json:"units" yaml:"units"`
}

type Inventory []InventoryLine

func NewInventory(lines []InventoryLine) (Inventory, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyInventory
	}
	inv := make(Inventory, len(lines))
	for i, l := range lines {
		if l.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		if l.Units < 0 {
			return nil, ErrInvalidUnits
		}
		inv[i] = l
	}
	return inv, nil
}

type Template struct {
	id           uuid.UUID
	restaurantID uuid.UUID
	name         string
	start        TimeOfDay
	end          TimeOfDay
	weekdays     WeekdaySet
	inventory    Inventory
	active       bool
	lifecycle    Lifecycle
	createdAt    time.Time
	updatedAt    time.Time
}

func NewTemplate(restaurantID uuid.UUID, name string, start, end TimeOfDay, weekdays WeekdaySet, lines []InventoryLine, now time.Time) (*Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTemplateName
	}
	if len(name) > MaxTemplateNameLength {
		return nil, ErrTemplateNameTooLong
	}
	if end <= start {
		return nil, ErrInvalidTimeRange
	}
	if weekdays == 0 {
		return nil, ErrEmptyWeekdays
	}
	inv, err := NewInventory(lines)
	if err != nil {
		return nil, err
	}

	return &Template{
		id:           uuid.New(),
		restaurantID: restaurantID,
		name:         name,
		start:        start,
		end:          end,
		weekdays:     weekdays,
		inventory:    inv,
		active:       true,
		lifecycle:    LifecycleActive,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructTemplate restores a stored template without re-running creation rules.
func ReconstructTemplate(
	id, restaurantID uuid.UUID,
	name string,
	start, end TimeOfDay,
	weekdays WeekdaySet,
	inventory Inventory,
	active bool,
	lifecycle Lifecycle,
	createdAt, updatedAt time.Time,
) *Template {
	return &Template{
		id:           id,
		restaurantID: restaurantID,
		name:         name,
		start:        start,
		end:          end,
		weekdays:     weekdays,
		inventory:    inventory,
		active:       active,
		lifecycle:    lifecycle,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (t *Template) ID() uuid.UUID           { return t.id }
func (t *Template) RestaurantID() uuid.UUID { return t.restaurantID }
func (t *Template) Name() string            { return t.name }
func (t *Template) Start() TimeOfDay        { return t.start }
func (t *Template) End() TimeOfDay          { return t.end }
func (t *Template) Weekdays() WeekdaySet    { return t.weekdays }
func (t *Template) Inventory() Inventory    { return t.inventory }
func (t *Template) IsActive() bool          { return t.active }
func (t *Template) Lifecycle() Lifecycle    { return t.lifecycle }
func (t *Template) CreatedAt() time.Time    { return t.createdAt }
func (t *Template) UpdatedAt() time.Time    { return t.updatedAt }

// Schedulable templates produce instances during generation.
func (t *Template) Schedulable() bool {
	return t.active && t.lifecycle == LifecycleActive
}

func (t *Template) RunsOn(date time.Time) bool {
	return t.weekdays.Has(date.Weekday())
}

// Archive soft-deletes the template. Existing instances are unaffected.
func (t *Template) Archive(now time.Time) {
	if t.lifecycle == LifecycleArchived {
		return
	}
	t.lifecycle = LifecycleArchived
	t.updatedAt = now
}
