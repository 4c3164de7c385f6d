//go:build unit || e2e

package builder

import (
	"time"

	"session-booking/internal/domain/session"
	reqdto "session-booking/internal/handler/dto/request"
	sqlc "session-booking/internal/infra/sqlc/generated"
	"session-booking/internal/pkg/pgconv"
	"session-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReservationBuilder struct {
	ID              uuid.UUID
	RestaurantID    uuid.UUID
	RestaurantName  string
	InstanceID      uuid.UUID
	GuestRef        string
	ServiceDate     time.Time
	StartMinutes    int
	EndMinutes      int
	Adults          int
	Children        int
	PricePerPerson  decimal.Decimal
	Currency        string
	Status          string
	SpecialRequests *string
	TableCapacity   int
	CreatedAt       time.Time
	CancelledAt     *time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:             uuid.New(),
		RestaurantID:   uuid.New(),
		RestaurantName: "Sakura Dining",
		InstanceID:     uuid.New(),
		GuestRef:       "guest-123",
		ServiceDate:    time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		StartMinutes:   18 * 60,
		EndMinutes:     21 * 60,
		Adults:         2,
		Children:       0,
		PricePerPerson: decimal.RequireFromString("5000.00"),
		Currency:       "JPY",
		Status:         "confirmed",
		TableCapacity:  2,
		CreatedAt:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) total() decimal.Decimal {
	return b.PricePerPerson.Mul(decimal.NewFromInt(int64(b.Adults + b.Children)))
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:              b.ID,
		RestaurantID:    b.RestaurantID,
		RestaurantName:  b.RestaurantName,
		InstanceID:      b.InstanceID,
		GuestRef:        b.GuestRef,
		ServiceDate:     b.ServiceDate,
		Start:           session.TimeOfDay(b.StartMinutes),
		End:             session.TimeOfDay(b.EndMinutes),
		Adults:          b.Adults,
		Children:        b.Children,
		PricePerPerson:  b.PricePerPerson,
		TotalPrice:      b.total(),
		Currency:        b.Currency,
		Status:          b.Status,
		SpecialRequests: b.SpecialRequests,
		TableCapacity:   b.TableCapacity,
		CreatedAt:       b.CreatedAt,
		CancelledAt:     b.CancelledAt,
	}
}

func (b *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:             b.ID,
		RestaurantID:   b.RestaurantID,
		RestaurantName: b.RestaurantName,
		InstanceID:     b.InstanceID,
		ServiceDate:    b.ServiceDate,
		Start:          session.TimeOfDay(b.StartMinutes),
		Adults:         b.Adults,
		Children:       b.Children,
		TotalPrice:     b.total(),
		Currency:       b.Currency,
		Status:         b.Status,
		CreatedAt:      b.CreatedAt,
	}
}

func (b *ReservationBuilder) BuildInfraView() sqlc.GetReservationViewRow {
	return sqlc.GetReservationViewRow{
		ID:                b.ID,
		RestaurantID:      b.RestaurantID,
		RestaurantName:    b.RestaurantName,
		SessionInstanceID: b.InstanceID,
		GuestRef:          b.GuestRef,
		ServiceDate:       pgconv.DateToPgtype(b.ServiceDate),
		StartTime:         pgconv.MinutesToPgtime(b.StartMinutes),
		EndTime:           pgconv.MinutesToPgtime(b.EndMinutes),
		PaxAdult:          int32(b.Adults),
		PaxChild:          int32(b.Children),
		PricePerPerson:    pgconv.DecimalToNumeric(b.PricePerPerson),
		TotalPrice:        pgconv.DecimalToNumeric(b.total()),
		Currency:          b.Currency,
		Status:            b.Status,
		SpecialRequests:   pgconv.StringPtrToPgtype(b.SpecialRequests),
		CapacitySnapshot:  int32(b.TableCapacity),
		CreatedAt:         pgconv.TimeToPgtype(b.CreatedAt),
		CancelledAt:       pgconv.TimePtrToPgtype(b.CancelledAt),
	}
}

func (b *ReservationBuilder) BuildInfraListRow() sqlc.ListGuestReservationsKeysetRow {
	return sqlc.ListGuestReservationsKeysetRow{
		ID:                b.ID,
		RestaurantID:      b.RestaurantID,
		RestaurantName:    b.RestaurantName,
		SessionInstanceID: b.InstanceID,
		ServiceDate:       pgconv.DateToPgtype(b.ServiceDate),
		StartTime:         pgconv.MinutesToPgtime(b.StartMinutes),
		PaxAdult:          int32(b.Adults),
		PaxChild:          int32(b.Children),
		TotalPrice:        pgconv.DecimalToNumeric(b.total()),
		Currency:          b.Currency,
		Status:            b.Status,
		CreatedAt:         pgconv.TimeToPgtype(b.CreatedAt),
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		ResourceID:        b.RestaurantID,
		SessionInstanceID: b.InstanceID,
		PaxAdult:          b.Adults,
		PaxChild:          b.Children,
		SpecialRequests:   b.SpecialRequests,
	}
}
