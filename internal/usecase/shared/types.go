package shared

import (
	"time"

	"github.com/google/uuid"
)

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

type IdempotencyClaim struct {
	Key         string
	GuestRef    string
	Endpoint    string
	RequestHash string
	ExpiresAt   time.Time
}

type IdempotencyRecord struct {
	Key                 string
	GuestRef            string
	Endpoint            string
	Status              string
	RequestHash         string
	ResultReservationID *uuid.UUID
	ExpiresAt           time.Time
}

func (r *IdempotencyRecord) Expired(now time.Time) bool {
	return r.ExpiresAt.Before(now)
}

type OutboxStatus string

const (
	OutboxQueued OutboxStatus = "queued"
	OutboxSent   OutboxStatus = "sent"
	OutboxFailed OutboxStatus = "failed"
)

type OutboxMessage struct {
	ID          uuid.UUID
	Topic       string
	AggregateID uuid.UUID
	Payload     []byte
	RunAt       time.Time
}

type OutboxEvent struct {
	ID          uuid.UUID
	Topic       string
	AggregateID uuid.UUID
	Payload     []byte
	Attempts    int
}

// BucketDrift is a bucket whose counter disagrees with its confirmed assignments.
type BucketDrift struct {
	BucketID   uuid.UUID
	InstanceID uuid.UUID
	Assigned   int
	Confirmed  int
}
