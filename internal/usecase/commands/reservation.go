package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"session-booking/internal/domain/reservation"
	"session-booking/internal/domain/restaurant"
	"session-booking/internal/domain/session"
	"session-booking/internal/pkg/clock"
	"session-booking/internal/pkg/config"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/usecase/queries"
	"session-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	CreateReservationEndpoint = "POST /api/reservations"
	MaxIdempotencyKeyLength   = 255
)

var (
	ErrIdempotencyKeyReused     = errs.NewKind(errs.ErrIdempotencyReused, "idempotency key was used with a different request")
	ErrIdempotencyInProgress    = errs.NewKind(errs.ErrConflict, "request with this idempotency key is still in progress")
	ErrIdempotencyKeyTooLong    = errs.NewKind(errs.ErrValidation, "idempotency key is too long")
	ErrIdempotencyMissingResult = errs.New("completed idempotency key has no reservation")
)

type CreateReservationInput struct {
	RestaurantID    uuid.UUID
	InstanceID      uuid.UUID
	Adults          int
	Children        int
	SpecialRequests string
	GuestRef        string
	IdempotencyKey  string
}

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

type CancelReservationResult struct {
	ID          uuid.UUID
	Status      string
	CancelledAt time.Time
}

type ReservationCommands interface {
	Create(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error)
	Cancel(ctx context.Context, reservationID uuid.UUID, guestRef string) (*CancelReservationResult, error)
}

type reservationUseCaseImpl struct {
	uow            shared.UnitOfWork
	factory        *reservation.Factory
	cache          shared.AvailabilitySnapshotCache
	clock          clock.Clock
	idempotencyTTL time.Duration
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	factory *reservation.Factory,
	cache shared.AvailabilitySnapshotCache,
	clk clock.Clock,
	cfg config.Config,
) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:            uow,
		factory:        factory,
		cache:          cache,
		clock:          clk,
		idempotencyTTL: cfg.Worker.IdempotencyKeysTTL,
	}
}

// Create books one table for the party. The whole flow runs in a single transaction
// and takes locks in the order instance, guest day, buckets.
func (uc *reservationUseCaseImpl) Create(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error) {
	req, err := reservation.NewRequest(in.RestaurantID, in.InstanceID, in.GuestRef, in.Adults, in.Children, in.SpecialRequests)
	if err != nil {
		return nil, err
	}
	key := strings.TrimSpace(in.IdempotencyKey)
	if len(key) > MaxIdempotencyKeyLength {
		return nil, ErrIdempotencyKeyTooLong
	}

	var result *CreateReservationResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = nil

		if key != "" {
			replayed, err := uc.claimIdempotencyKey(ctx, tx, key, req)
			if err != nil {
				return err
			}
			if replayed != nil {
				result = &CreateReservationResult{Reservation: replayed, IsReplayed: true}
				return nil
			}
		}

		view, err := uc.book(ctx, tx, req)
		if err != nil {
			return err
		}

		if key != "" {
			if err := tx.Idempotency().Complete(ctx, tx.DB(), key, req.Guest.String(), view.ID); err != nil {
				return err
			}
		}
		result = &CreateReservationResult{Reservation: view}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.IsReplayed {
		invalidateAvailability(ctx, uc.cache, req.RestaurantID)
		slog.InfoContext(ctx, "Reservation confirmed",
			"reservation_id", result.Reservation.ID,
			"session_instance_id", result.Reservation.InstanceID,
			"pax", req.Party.Size(),
			"table_capacity", result.Reservation.TableCapacity,
		)
	}
	return result, nil
}

func (uc *reservationUseCaseImpl) book(ctx context.Context, tx shared.Tx, req reservation.Request) (*queries.ReservationView, error) {
	now := uc.clock.Now()

	inst, err := tx.Sessions().Lock(ctx, tx.DB(), req.InstanceID)
	if err != nil {
		return nil, err
	}
	if inst.RestaurantID() != req.RestaurantID || !inst.IsActive() {
		return nil, session.ErrInstanceNotFound
	}
	if err := inst.EnsureOpen(); err != nil {
		return nil, err
	}

	rest, err := tx.Restaurants().Get(ctx, tx.DB(), req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if err := rest.EnsureBookable(); err != nil {
		return nil, err
	}
	rl := rest.Rules()
	if err := rl.CheckCutoff(now, inst.StartsAt(rest.Location())); err != nil {
		return nil, err
	}

	if err := tx.Reservations().LockGuestDay(ctx, tx.DB(), req.Guest, rest.ID(), inst.ServiceDate()); err != nil {
		return nil, err
	}
	existing, err := tx.Reservations().CountConfirmedForDay(ctx, tx.DB(), req.Guest, rest.ID(), inst.ServiceDate())
	if err != nil {
		return nil, err
	}
	if err := rl.CheckDailyLimit(existing); err != nil {
		return nil, err
	}

	buckets, err := tx.Buckets().LockForInstance(ctx, tx.DB(), inst.ID())
	if err != nil {
		return nil, err
	}
	bucket, err := session.SelectBestFit(buckets, req.Party.Size())
	if err != nil {
		return nil, err
	}

	res, err := uc.factory.CreateReservation(rest, inst, bucket, req)
	if err != nil {
		return nil, err
	}
	if err := tx.Reservations().Create(ctx, tx.DB(), res); err != nil {
		return nil, err
	}
	if err := tx.Buckets().Increment(ctx, tx.DB(), bucket.ID()); err != nil {
		return nil, err
	}
	if err := enqueueReservationEvent(ctx, tx, TopicReservationConfirmed, res, now); err != nil {
		return nil, err
	}

	return reservationView(res, rest, inst), nil
}

// claimIdempotencyKey returns the stored reservation when the request is a replay.
func (uc *reservationUseCaseImpl) claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key string,
	req reservation.Request,
) (*queries.ReservationView, error) {
	now := uc.clock.Now()
	claim := shared.IdempotencyClaim{
		Key:         key,
		GuestRef:    req.Guest.String(),
		Endpoint:    CreateReservationEndpoint,
		RequestHash: calculateRequestHash(req),
		ExpiresAt:   now.Add(uc.idempotencyTTL),
	}

	inserted, err := tx.Idempotency().TryInsert(ctx, tx.DB(), claim)
	if err != nil {
		return nil, err
	}
	if inserted {
		return nil, nil
	}

	existing, err := tx.Idempotency().Lock(ctx, tx.DB(), key, claim.GuestRef)
	if err != nil {
		return nil, err
	}

	if existing.Expired(now) {
		if _, err := tx.Idempotency().ReclaimExpired(ctx, tx.DB(), claim, now); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if existing.RequestHash != claim.RequestHash || existing.Endpoint != claim.Endpoint {
		return nil, ErrIdempotencyKeyReused
	}

	switch existing.Status {
	case shared.IdempotencyCompleted:
		if existing.ResultReservationID == nil {
			return nil, ErrIdempotencyMissingResult
		}
		return uc.loadReservationView(ctx, tx, *existing.ResultReservationID)
	default:
		return nil, ErrIdempotencyInProgress
	}
}

func (uc *reservationUseCaseImpl) loadReservationView(ctx context.Context, tx shared.Tx, id uuid.UUID) (*queries.ReservationView, error) {
	res, err := tx.Reservations().Lock(ctx, tx.DB(), id)
	if err != nil {
		return nil, err
	}
	inst, err := tx.Sessions().Get(ctx, tx.DB(), res.InstanceID())
	if err != nil {
		return nil, err
	}
	rest, err := tx.Restaurants().Get(ctx, tx.DB(), res.RestaurantID())
	if err != nil {
		return nil, err
	}
	return reservationView(res, rest, inst), nil
}

// Cancel releases the reservation's table back to its bucket.
func (uc *reservationUseCaseImpl) Cancel(ctx context.Context, reservationID uuid.UUID, guestRef string) (*CancelReservationResult, error) {
	guest, err := reservation.NewGuestRef(guestRef)
	if err != nil {
		return nil, err
	}

	var (
		result       *CancelReservationResult
		restaurantID uuid.UUID
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		res, err := tx.Reservations().Lock(ctx, tx.DB(), reservationID)
		if err != nil {
			return err
		}
		if !res.OwnedBy(guest) {
			return reservation.ErrNotFound
		}
		if !res.IsConfirmed() {
			return reservation.ErrAlreadyCancelled
		}

		inst, err := tx.Sessions().Lock(ctx, tx.DB(), res.InstanceID())
		if err != nil {
			return err
		}
		rest, err := tx.Restaurants().Get(ctx, tx.DB(), res.RestaurantID())
		if err != nil {
			return err
		}
		if err := rest.Rules().CheckCancellation(now, inst.StartsAt(rest.Location())); err != nil {
			return err
		}

		bucket, err := tx.Buckets().Lock(ctx, tx.DB(), res.Assignment().BucketID())
		if err != nil {
			return err
		}
		released, err := tx.Buckets().Decrement(ctx, tx.DB(), bucket.ID())
		if err != nil {
			return err
		}
		if !released {
			slog.WarnContext(ctx, "Capacity bucket drift: cancel found no assigned unit",
				"bucket_id", bucket.ID(),
				"reservation_id", res.ID(),
			)
		}

		if err := res.Cancel(now); err != nil {
			return err
		}
		if err := tx.Reservations().MarkCancelled(ctx, tx.DB(), res); err != nil {
			return err
		}
		if err := enqueueReservationEvent(ctx, tx, TopicReservationCancelled, res, now); err != nil {
			return err
		}

		restaurantID = res.RestaurantID()
		result = &CancelReservationResult{
			ID:          res.ID(),
			Status:      res.Status().String(),
			CancelledAt: *res.CancelledAt(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateAvailability(ctx, uc.cache, restaurantID)
	return result, nil
}

type requestFingerprint struct {
	RestaurantID    uuid.UUID `json:"restaurant_id"`
	InstanceID      uuid.UUID `json:"session_instance_id"`
	Adults          int       `json:"adults"`
	Children        int       `json:"children"`
	SpecialRequests string    `json:"special_requests"`
}

func calculateRequestHash(req reservation.Request) string {
	data, _ := json.Marshal(requestFingerprint{
		RestaurantID:    req.RestaurantID,
		InstanceID:      req.InstanceID,
		Adults:          req.Party.Adults(),
		Children:        req.Party.Children(),
		SpecialRequests: req.SpecialRequests.String(),
	})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func reservationView(res *reservation.Reservation, rest *restaurant.Restaurant, inst *session.Instance) *queries.ReservationView {
	var notes *string
	if !res.SpecialRequests().IsEmpty() {
		s := res.SpecialRequests().String()
		notes = &s
	}

	return &queries.ReservationView{
		ID:              res.ID(),
		RestaurantID:    res.RestaurantID(),
		RestaurantName:  rest.Name(),
		InstanceID:      res.InstanceID(),
		GuestRef:        res.GuestRef().String(),
		ServiceDate:     res.ServiceDate(),
		Start:           inst.Start(),
		End:             inst.End(),
		Adults:          res.Party().Adults(),
		Children:        res.Party().Children(),
		PricePerPerson:  res.Price().PerPerson().Amount(),
		TotalPrice:      res.Price().TotalAmount(),
		Currency:        res.Price().Currency().String(),
		Status:          res.Status().String(),
		SpecialRequests: notes,
		TableCapacity:   res.Assignment().Capacity(),
		CreatedAt:       res.CreatedAt(),
		CancelledAt:     res.CancelledAt(),
	}
}
