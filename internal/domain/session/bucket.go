package session

import (
	"cmp"
	"slices"

	"session-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBucketNotFound      = errs.NewKind(errs.ErrNotFound, "capacity bucket not found")
	ErrBucketFull          = errs.NewKind(errs.ErrSoldOut, "capacity bucket has no free units")
	ErrNoFittingBucket     = errs.NewKind(errs.ErrSoldOut, "no table can seat the whole party")
	ErrInvalidPartySize    = errs.NewKind(errs.ErrValidation, "party size must be positive")
	ErrShrinkBelowAssigned = errs.NewKind(errs.ErrValidation, "total units cannot drop below units already assigned")
	ErrBucketInvariant     = errs.New("capacity bucket violates 0 <= assigned <= total")
)

// Bucket tracks a pool of identical tables within one session instance.
// Invariant: 0 <= assigned <= total.
type Bucket struct {
	id         uuid.UUID
	instanceID uuid.UUID
	capacity   int
	total      int
	assigned   int
	seq        int64
}

func NewBucket(instanceID uuid.UUID, capacity, total int) (*Bucket, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if total < 0 {
		return nil, ErrInvalidUnits
	}
	return &Bucket{
		id:         uuid.New(),
		instanceID: instanceID,
		capacity:   capacity,
		total:      total,
	}, nil
}

func ReconstructBucket(id, instanceID uuid.UUID, capacity, total, assigned int, seq int64) (*Bucket, error) {
	if capacity <= 0 || assigned < 0 || assigned > total {
		return nil, ErrBucketInvariant
	}
	return &Bucket{
		id:         id,
		instanceID: instanceID,
		capacity:   capacity,
		total:      total,
		assigned:   assigned,
		seq:        seq,
	}, nil
}

// BucketsFromInventory seeds fresh buckets for an instance in inventory order.
func BucketsFromInventory(instanceID uuid.UUID, inv Inventory) []*Bucket {
	out := make([]*Bucket, 0, len(inv))
	for _, line := range inv {
		out = append(out, &Bucket{
			id:         uuid.New(),
			instanceID: instanceID,
			capacity:   line.Capacity,
			total:      line.Units,
		})
	}
	return out
}

func (b *Bucket) ID() uuid.UUID         { return b.id }
func (b *Bucket) InstanceID() uuid.UUID { return b.instanceID }
func (b *Bucket) Capacity() int         { return b.capacity }
func (b *Bucket) Total() int            { return b.total }
func (b *Bucket) Assigned() int         { return b.assigned }
func (b *Bucket) Seq() int64            { return b.seq }

func (b *Bucket) Available() int {
	return b.total - b.assigned
}

// Fits reports whether one free unit of this bucket can seat pax guests.
func (b *Bucket) Fits(pax int) bool {
	return b.capacity >= pax && b.assigned < b.total
}

func (b *Bucket) Assign() error {
	if b.assigned >= b.total {
		return ErrBucketFull
	}
	b.assigned++
	return nil
}

// Release returns one unit. It reports false when nothing was assigned.
func (b *Bucket) Release() bool {
	if b.assigned == 0 {
		return false
	}
	b.assigned--
	return true
}

// Resize changes the number of tables. Shrinking below the assigned count is refused.
func (b *Bucket) Resize(total int) error {
	if total < 0 {
		return ErrInvalidUnits
	}
	if total < b.assigned {
		return ErrShrinkBelowAssigned
	}
	b.total = total
	return nil
}

// SortForAllocation orders buckets by capacity, then insertion sequence.
// This is also the lock acquisition order.
func SortForAllocation(buckets []*Bucket) {
	slices.SortStableFunc(buckets, func(a, b *Bucket) int {
		if c := cmp.Compare(a.capacity, b.capacity); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
}

// SelectBestFit picks the smallest bucket that seats the whole party and still has a free unit.
func SelectBestFit(buckets []*Bucket, pax int) (*Bucket, error) {
	if pax <= 0 {
		return nil, ErrInvalidPartySize
	}
	ordered := slices.Clone(buckets)
	SortForAllocation(ordered)
	for _, b := range ordered {
		if b.Fits(pax) {
			return b, nil
		}
	}
	return nil, ErrNoFittingBucket
}
