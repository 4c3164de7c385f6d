package commands

import (
	"context"
	"log/slog"
	"time"

	"session-booking/internal/domain/session"
	"session-booking/internal/pkg/clock"
	"session-booking/internal/pkg/config"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateTemplateInput struct {
	RestaurantID uuid.UUID
	Name         string
	StartTime    string
	EndTime      string
	Weekdays     []string
	Inventory    []session.InventoryLine
}

type GenerateInput struct {
	RestaurantID uuid.UUID
	From         time.Time
	To           time.Time
	// TemplateIDs restricts generation to a subset. Empty means every schedulable template.
	TemplateIDs []uuid.UUID
}

type GenerateResult struct {
	GeneratedCount int
	Instances      []session.Planned
}

type ScheduleCommands interface {
	CreateTemplate(ctx context.Context, in CreateTemplateInput) (*session.Template, error)
	ArchiveTemplate(ctx context.Context, templateID uuid.UUID) error
	Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error)
	GenerateHorizon(ctx context.Context, days int) (int, error)
	SetInstanceStatus(ctx context.Context, instanceID uuid.UUID, status string) (*session.Instance, error)
	ResizeBucket(ctx context.Context, bucketID uuid.UUID, total int) (*session.Bucket, error)
}

type scheduleUseCaseImpl struct {
	uow             shared.UnitOfWork
	cache           shared.AvailabilitySnapshotCache
	clock           clock.Clock
	maxGenerateDays int
}

func NewScheduleUseCase(uow shared.UnitOfWork, cache shared.AvailabilitySnapshotCache, clk clock.Clock, cfg config.Config) ScheduleCommands {
	maxDays := cfg.Booking.MaxGenerateDays
	if maxDays <= 0 {
		maxDays = session.DefaultMaxGenerateDays
	}
	return &scheduleUseCaseImpl{
		uow:             uow,
		cache:           cache,
		clock:           clk,
		maxGenerateDays: maxDays,
	}
}

func (uc *scheduleUseCaseImpl) CreateTemplate(ctx context.Context, in CreateTemplateInput) (*session.Template, error) {
	start, err := session.ParseTimeOfDay(in.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := session.ParseTimeOfDay(in.EndTime)
	if err != nil {
		return nil, err
	}
	weekdays, err := session.ParseWeekdays(in.Weekdays)
	if err != nil {
		return nil, err
	}
	tmpl, err := session.NewTemplate(in.RestaurantID, in.Name, start, end, weekdays, in.Inventory, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Restaurants().Get(ctx, tx.DB(), in.RestaurantID); err != nil {
			return err
		}
		return tx.Templates().Create(ctx, tx.DB(), tmpl)
	})
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}

// ArchiveTemplate stops future generation. Instances already generated stay bookable.
func (uc *scheduleUseCaseImpl) ArchiveTemplate(ctx context.Context, templateID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		tmpl, err := tx.Templates().Get(ctx, tx.DB(), templateID)
		if err != nil {
			return err
		}
		tmpl.Archive(uc.clock.Now())
		return tx.Templates().UpdateLifecycle(ctx, tx.DB(), tmpl)
	})
}

// Generate materializes instances for [From, To]. Running it again for the same range creates nothing.
func (uc *scheduleUseCaseImpl) Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	if err := session.ValidateRange(in.From, in.To, uc.maxGenerateDays); err != nil {
		return nil, err
	}

	var result *GenerateResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = &GenerateResult{Instances: []session.Planned{}}

		if _, err := tx.Restaurants().Get(ctx, tx.DB(), in.RestaurantID); err != nil {
			return err
		}
		templates, err := tx.Templates().ListSchedulable(ctx, tx.DB(), in.RestaurantID)
		if err != nil {
			return err
		}
		templates, err = selectTemplates(templates, in.TemplateIDs)
		if err != nil {
			return err
		}

		existing, err := tx.Sessions().ExistingSlots(ctx, tx.DB(), in.RestaurantID, in.From, in.To)
		if err != nil {
			return err
		}

		for _, p := range session.Plan(templates, in.From, in.To, existing, uc.clock.Now()) {
			inserted, err := tx.Sessions().Insert(ctx, tx.DB(), p.Instance)
			if err != nil {
				return err
			}
			if !inserted {
				// a concurrent generator took the slot
				continue
			}
			for _, b := range p.Buckets {
				if err := tx.Buckets().Insert(ctx, tx.DB(), b); err != nil {
					return err
				}
			}
			result.Instances = append(result.Instances, p)
		}
		result.GeneratedCount = len(result.Instances)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.GeneratedCount > 0 {
		invalidateAvailability(ctx, uc.cache, in.RestaurantID)
	}
	return result, nil
}

func selectTemplates(templates []*session.Template, ids []uuid.UUID) ([]*session.Template, error) {
	if len(ids) == 0 {
		return templates, nil
	}
	byID := make(map[uuid.UUID]*session.Template, len(templates))
	for _, t := range templates {
		byID[t.ID()] = t
	}
	out := make([]*session.Template, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			return nil, errs.Wrapf(session.ErrTemplateNotFound, "template %s is not schedulable for this restaurant", id)
		}
		out = append(out, t)
	}
	return out, nil
}

// GenerateHorizon keeps every active restaurant generated for the next days days, counted
// from today in the restaurant's own time zone. Failures are logged per restaurant.
func (uc *scheduleUseCaseImpl) GenerateHorizon(ctx context.Context, days int) (int, error) {
	if days <= 0 {
		return 0, nil
	}
	if days > uc.maxGenerateDays {
		days = uc.maxGenerateDays
	}

	type target struct {
		id  uuid.UUID
		loc *time.Location
	}
	var targets []target
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		targets = targets[:0]
		ids, err := tx.Restaurants().ListActiveIDs(ctx, tx.DB())
		if err != nil {
			return err
		}
		for _, id := range ids {
			rest, err := tx.Restaurants().Get(ctx, tx.DB(), id)
			if err != nil {
				return err
			}
			targets = append(targets, target{id: id, loc: rest.Location()})
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	total := 0
	var firstErr error
	for _, t := range targets {
		from := session.DateOf(uc.clock.Now().In(t.loc))
		res, err := uc.Generate(ctx, GenerateInput{
			RestaurantID: t.id,
			From:         from,
			To:           from.AddDate(0, 0, days-1),
		})
		if err != nil {
			slog.ErrorContext(ctx, "Horizon generation failed", "restaurant_id", t.id, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		total += res.GeneratedCount
	}
	return total, firstErr
}

func (uc *scheduleUseCaseImpl) SetInstanceStatus(ctx context.Context, instanceID uuid.UUID, status string) (*session.Instance, error) {
	next, err := session.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var inst *session.Instance
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locked, err := tx.Sessions().Lock(ctx, tx.DB(), instanceID)
		if err != nil {
			return err
		}
		if !locked.IsActive() {
			return session.ErrInstanceNotFound
		}
		inst = locked
		if !inst.SetStatus(next, uc.clock.Now()) {
			return nil
		}
		return tx.Sessions().UpdateStatus(ctx, tx.DB(), inst)
	})
	if err != nil {
		return nil, err
	}

	invalidateAvailability(ctx, uc.cache, inst.RestaurantID())
	return inst, nil
}

// ResizeBucket changes the number of tables. It locks the instance first to keep the global lock order.
func (uc *scheduleUseCaseImpl) ResizeBucket(ctx context.Context, bucketID uuid.UUID, total int) (*session.Bucket, error) {
	var (
		bucket       *session.Bucket
		restaurantID uuid.UUID
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Buckets().Get(ctx, tx.DB(), bucketID)
		if err != nil {
			return err
		}
		inst, err := tx.Sessions().Lock(ctx, tx.DB(), current.InstanceID())
		if err != nil {
			return err
		}
		locked, err := tx.Buckets().Lock(ctx, tx.DB(), bucketID)
		if err != nil {
			return err
		}
		if err := locked.Resize(total); err != nil {
			return err
		}
		if err := tx.Buckets().UpdateTotal(ctx, tx.DB(), locked); err != nil {
			return err
		}
		bucket = locked
		restaurantID = inst.RestaurantID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateAvailability(ctx, uc.cache, restaurantID)
	return bucket, nil
}
