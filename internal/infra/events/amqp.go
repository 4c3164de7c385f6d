package events

import (
	"context"
	"sync"
	"time"

	"session-booking/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPublishNacked = errs.New("amqp broker did not confirm the message")

// amqpSession is one connection with a channel in confirm mode.
type amqpSession interface {
	Declare(name string) error
	// Publish returns once the broker has confirmed the message.
	Publish(ctx context.Context, queue string, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

type dialFunc func(url string) (amqpSession, error)

// AMQPPublisher publishes persistent messages to durable queues named after the topic.
// A closed connection or channel is dialed again on the next publish.
type AMQPPublisher struct {
	mu       sync.Mutex
	url      string
	prefix   string
	dial     dialFunc
	sess     amqpSession
	declared map[string]struct{}
}

func NewAMQPPublisher(url, prefix string) (*AMQPPublisher, error) {
	return newAMQPPublisher(url, prefix, dialAMQP)
}

func newAMQPPublisher(url, prefix string, dial dialFunc) (*AMQPPublisher, error) {
	p := &AMQPPublisher{
		url:      url,
		prefix:   prefix,
		dial:     dial,
		declared: make(map[string]struct{}),
	}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	name := qualify(p.prefix, topic)
	msg := amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		CorrelationId: key,
		Timestamp:     time.Now().UTC(),
		Body:          payload,
	}

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sess == nil || p.sess.IsClosed() {
		if err := p.connect(); err != nil {
			return err
		}
	}

	err := p.publish(ctx, name, msg)
	if errs.Is(err, amqp.ErrClosed) {
		// one retry on a fresh connection; the relay retries anything beyond that
		if err := p.connect(); err != nil {
			return err
		}
		err = p.publish(ctx, name, msg)
	}
	return err
}

func (p *AMQPPublisher) publish(ctx context.Context, name string, msg amqp.Publishing) error {
	if _, ok := p.declared[name]; !ok {
		if err := p.sess.Declare(name); err != nil {
			return errs.Wrapf(err, "amqp declare %s", name)
		}
		p.declared[name] = struct{}{}
	}
	if err := p.sess.Publish(ctx, name, msg); err != nil {
		return errs.Wrapf(err, "amqp publish %s", name)
	}
	return nil
}

// connect replaces the session. Queues are declared again on the new channel.
func (p *AMQPPublisher) connect() error {
	if p.sess != nil {
		_ = p.sess.Close()
		p.sess = nil
	}
	sess, err := p.dial(p.url)
	if err != nil {
		return err
	}
	p.sess = sess
	p.declared = make(map[string]struct{})
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sess == nil {
		return nil
	}
	err := p.sess.Close()
	p.sess = nil
	return err
}

type confirmSession struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func dialAMQP(url string) (amqpSession, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errs.Wrap(err, "amqp dial")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "amqp open channel")
	}
	if err := ch.Confirm(false); err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "amqp enable confirms")
	}
	return &confirmSession{conn: conn, ch: ch}, nil
}

func (s *confirmSession) Declare(name string) error {
	_, err := s.ch.QueueDeclare(name, true, false, false, false, nil)
	return err
}

func (s *confirmSession) Publish(ctx context.Context, queue string, msg amqp.Publishing) error {
	confirm, err := s.ch.PublishWithDeferredConfirmWithContext(ctx, "", queue, false, false, msg)
	if err != nil {
		return err
	}
	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return ErrPublishNacked
	}
	return nil
}

func (s *confirmSession) IsClosed() bool {
	return s.conn.IsClosed() || s.ch.IsClosed()
}

func (s *confirmSession) Close() error {
	chErr := s.ch.Close()
	connErr := s.conn.Close()
	if chErr != nil && !errs.Is(chErr, amqp.ErrClosed) {
		return errs.Wrap(chErr, "amqp close channel")
	}
	if connErr != nil && !errs.Is(connErr, amqp.ErrClosed) {
		return errs.Wrap(connErr, "amqp close connection")
	}
	return nil
}
