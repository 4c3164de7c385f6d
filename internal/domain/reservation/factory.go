package reservation

import (
	"session-booking/internal/domain/restaurant"
	"session-booking/internal/domain/session"
	"session-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

// Request is a validated booking request, built before any lock is taken.
type Request struct {
	RestaurantID    uuid.UUID
	InstanceID      uuid.UUID
	Guest           GuestRef
	Party           Party
	SpecialRequests SpecialRequests
}

func NewRequest(restaurantID, instanceID uuid.UUID, guest string, adults, children int, notes string) (Request, error) {
	if restaurantID == uuid.Nil || instanceID == uuid.Nil {
		return Request{}, ErrMissingTarget
	}
	g, err := NewGuestRef(guest)
	if err != nil {
		return Request{}, err
	}
	party, err := NewParty(adults, children)
	if err != nil {
		return Request{}, err
	}
	sr, err := NewSpecialRequests(notes)
	if err != nil {
		return Request{}, err
	}
	return Request{
		RestaurantID:    restaurantID,
		InstanceID:      instanceID,
		Guest:           g,
		Party:           party,
		SpecialRequests: sr,
	}, nil
}

// CreateReservation confirms req against a locked bucket. The caller persists the bucket change.
func (f *Factory) CreateReservation(
	rest *restaurant.Restaurant,
	inst *session.Instance,
	bucket *session.Bucket,
	req Request,
) (*Reservation, error) {
	price, err := f.PriceCalculator.Quote(rest.Price(), req.Party, rest.Rules())
	if err != nil {
		return nil, err
	}
	if err := bucket.Assign(); err != nil {
		return nil, err
	}

	return &Reservation{
		id:              uuid.New(),
		restaurantID:    rest.ID(),
		instanceID:      inst.ID(),
		guestRef:        req.Guest,
		serviceDate:     inst.ServiceDate(),
		party:           req.Party,
		price:           price,
		status:          StatusConfirmed,
		specialRequests: req.SpecialRequests,
		assignment:      NewAssignment(bucket.ID(), bucket.Capacity()),
		createdAt:       f.Clock.Now(),
	}, nil
}
