//go:build unit

package events

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	closed     bool
	publishErr []error // consumed one per publish; nil entries succeed
	declared   []string
	published  []amqp.Publishing
	closeCalls int
}

func (s *fakeSession) Declare(name string) error {
	s.declared = append(s.declared, name)
	return nil
}

func (s *fakeSession) Publish(_ context.Context, _ string, msg amqp.Publishing) error {
	if len(s.publishErr) > 0 {
		err := s.publishErr[0]
		s.publishErr = s.publishErr[1:]
		if err != nil {
			return err
		}
	}
	s.published = append(s.published, msg)
	return nil
}

func (s *fakeSession) IsClosed() bool { return s.closed }

func (s *fakeSession) Close() error {
	s.closeCalls++
	s.closed = true
	return nil
}

// fakeDialer hands out the prepared sessions in order.
type fakeDialer struct {
	sessions []*fakeSession
	errs     []error
	calls    int
}

func (d *fakeDialer) dial(string) (amqpSession, error) {
	i := d.calls
	d.calls++
	if i < len(d.errs) && d.errs[i] != nil {
		return nil, d.errs[i]
	}
	return d.sessions[i], nil
}

func TestAMQPPublisher_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("declares the qualified queue once and publishes persistent messages", func(t *testing.T) {
		sess := &fakeSession{}
		d := &fakeDialer{sessions: []*fakeSession{sess}}
		p, err := newAMQPPublisher("amqp://test", "booking", d.dial)
		require.NoError(t, err)

		require.NoError(t, p.Publish(ctx, "reservation.confirmed", "res-1", []byte(`{}`)))
		require.NoError(t, p.Publish(ctx, "reservation.confirmed", "res-2", []byte(`{}`)))

		assert.Equal(t, []string{"booking.reservation.confirmed"}, sess.declared)
		require.Len(t, sess.published, 2)
		assert.Equal(t, amqp.Persistent, sess.published[0].DeliveryMode)
		assert.Equal(t, "res-1", sess.published[0].CorrelationId)
		assert.Equal(t, 1, d.calls)
	})

	t.Run("unconfirmed message is an error so the relay keeps it", func(t *testing.T) {
		sess := &fakeSession{publishErr: []error{ErrPublishNacked}}
		d := &fakeDialer{sessions: []*fakeSession{sess}}
		p, err := newAMQPPublisher("amqp://test", "", d.dial)
		require.NoError(t, err)

		err = p.Publish(ctx, "reservation.confirmed", "res-1", []byte(`{}`))

		assert.ErrorIs(t, err, ErrPublishNacked)
		assert.Equal(t, 1, d.calls, "a nack is not a connection failure")
	})

	t.Run("closed channel is redialed and the message retried once", func(t *testing.T) {
		first := &fakeSession{publishErr: []error{amqp.ErrClosed}}
		second := &fakeSession{}
		d := &fakeDialer{sessions: []*fakeSession{first, second}}
		p, err := newAMQPPublisher("amqp://test", "", d.dial)
		require.NoError(t, err)

		require.NoError(t, p.Publish(ctx, "reservation.cancelled", "res-1", []byte(`{}`)))

		assert.Equal(t, 2, d.calls)
		assert.Equal(t, 1, first.closeCalls)
		assert.Equal(t, []string{"reservation.cancelled"}, second.declared, "queues are declared again on the new channel")
		assert.Len(t, second.published, 1)
	})

	t.Run("session closed between publishes is replaced before publishing", func(t *testing.T) {
		first := &fakeSession{}
		second := &fakeSession{}
		d := &fakeDialer{sessions: []*fakeSession{first, second}}
		p, err := newAMQPPublisher("amqp://test", "", d.dial)
		require.NoError(t, err)

		first.closed = true
		require.NoError(t, p.Publish(ctx, "reservation.confirmed", "res-1", []byte(`{}`)))

		assert.Empty(t, first.published)
		assert.Len(t, second.published, 1)
	})

	t.Run("failed redial surfaces and the next publish dials again", func(t *testing.T) {
		first := &fakeSession{publishErr: []error{amqp.ErrClosed}}
		third := &fakeSession{}
		dialErr := errors.New("connection refused")
		d := &fakeDialer{
			sessions: []*fakeSession{first, nil, third},
			errs:     []error{nil, dialErr, nil},
		}
		p, err := newAMQPPublisher("amqp://test", "", d.dial)
		require.NoError(t, err)

		err = p.Publish(ctx, "reservation.confirmed", "res-1", []byte(`{}`))
		assert.ErrorIs(t, err, dialErr)

		require.NoError(t, p.Publish(ctx, "reservation.confirmed", "res-1", []byte(`{}`)))
		assert.Equal(t, 3, d.calls)
		assert.Len(t, third.published, 1)
	})
}

func TestAMQPPublisher_InitialDialFailure(t *testing.T) {
	dialErr := errors.New("connection refused")
	d := &fakeDialer{errs: []error{dialErr}}

	p, err := newAMQPPublisher("amqp://test", "", d.dial)

	assert.Nil(t, p)
	assert.ErrorIs(t, err, dialErr)
}

func TestAMQPPublisher_Close(t *testing.T) {
	sess := &fakeSession{}
	d := &fakeDialer{sessions: []*fakeSession{sess}}
	p, err := newAMQPPublisher("amqp://test", "", d.dial)
	require.NoError(t, err)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.Equal(t, 1, sess.closeCalls)
}
