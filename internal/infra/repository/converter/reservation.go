package converter

import (
	"session-booking/internal/domain/money"
	"session-booking/internal/domain/reservation"
	sqlc "session-booking/internal/infra/sqlc/generated"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func ReservationToInfra(res *reservation.Reservation) sqlc.CreateReservationParams {
	params := sqlc.CreateReservationParams{
		ID:                res.ID(),
		RestaurantID:      res.RestaurantID(),
		SessionInstanceID: res.InstanceID(),
		GuestRef:          res.GuestRef().String(),
		ServiceDate:       pgconv.DateToPgtype(res.ServiceDate()),
		PaxAdult:          int32(res.Party().Adults()),   // #nosec G115 -- bounded by party validation
		PaxChild:          int32(res.Party().Children()), // #nosec G115 -- bounded by party validation
		PricePerPerson:    pgconv.DecimalToNumeric(res.Price().PerPerson().Amount()),
		TotalPrice:        pgconv.DecimalToNumeric(res.Price().TotalAmount()),
		Currency:          res.Price().Currency().String(),
		Status:            res.Status().String(),
		CreatedAt:         pgconv.TimeToPgtype(res.CreatedAt()),
	}

	if sr := res.SpecialRequests(); !sr.IsEmpty() {
		params.SpecialRequests = pgtype.Text{String: sr.String(), Valid: true}
	} else {
		params.SpecialRequests = pgtype.Text{Valid: false}
	}

	return params
}

func AssignmentToInfra(res *reservation.Reservation) sqlc.CreateReservationAssignmentParams {
	a := res.Assignment()
	return sqlc.CreateReservationAssignmentParams{
		ReservationID:    res.ID(),
		CapacityBucketID: a.BucketID(),
		CapacitySnapshot: int32(a.Capacity()), // #nosec G115 -- bucket capacity is an int32 column
	}
}

func ReservationFromLockRow(row sqlc.LockReservationRow) (*reservation.Reservation, error) {
	currency, err := money.NewCurrency(row.Currency)
	if err != nil {
		return nil, err
	}
	perPerson, err := moneyFromNumeric(row.PricePerPerson, currency)
	if err != nil {
		return nil, errs.Wrap(err, "price_per_person")
	}
	total, err := moneyFromNumeric(row.TotalPrice, currency)
	if err != nil {
		return nil, errs.Wrap(err, "total_price")
	}
	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}
	party, err := reservation.NewParty(int(row.PaxAdult), int(row.PaxChild))
	if err != nil {
		return nil, err
	}

	var notes reservation.SpecialRequests
	if row.SpecialRequests.Valid {
		notes, err = reservation.NewSpecialRequests(row.SpecialRequests.String)
		if err != nil {
			return nil, err
		}
	}

	return reservation.ReconstructReservation(
		row.ID,
		row.RestaurantID,
		row.SessionInstanceID,
		reservation.GuestRef(row.GuestRef),
		pgconv.DateFromPgtype(row.ServiceDate),
		party,
		reservation.NewPriceSnapshot(perPerson, total),
		status,
		notes,
		reservation.NewAssignment(row.CapacityBucketID, int(row.CapacitySnapshot)),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimePtrFromPgtype(row.CancelledAt),
	), nil
}

func moneyFromNumeric(n pgtype.Numeric, currency money.Currency) (money.Money, error) {
	amount, err := pgconv.DecimalFromNumeric(n)
	if err != nil {
		return money.Money{}, err
	}
	return money.New(amount, currency)
}
