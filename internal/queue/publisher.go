package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Shivanand-hulikatti/ticket-booking/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrPublisherClosed is returned by publishes that start after Close.
var ErrPublisherClosed = errors.New("publisher closed")

const (
	maxDialTimeout = 5 * time.Second
	heartbeat      = 10 * time.Second
)

// Publisher sends BookingCreatedEvent messages to a durable queue on the
// default exchange. The connection is opened lazily and re-dialled after
// a failure, so a broker outage never blocks service start-up.
type Publisher struct {
	url    string
	queue  string
	logger *slog.Logger

	// sem is a one-slot lock over conn and ch that callers can abandon
	// when their context ends.
	sem  chan struct{}
	conn *amqp.Connection
	ch   *amqp.Channel

	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

// NewPublisher constructs a Publisher for the broker at url.
func NewPublisher(url, queue string, logger *slog.Logger) *Publisher {
	return &Publisher{
		url:    url,
		queue:  queue,
		logger: logger,
		sem:    make(chan struct{}, 1),
	}
}

// PublishBookingCreated publishes a persistent booking.created message.
// The request id, when present, travels as the correlation id. It gives up
// when ctx ends, including while dialling the broker.
func (p *Publisher) PublishBookingCreated(ctx context.Context, b *model.Booking) error {
	if !p.begin() {
		return ErrPublisherClosed
	}
	defer p.inflight.Done()

	msg, err := newMessage(ctx, NewBookingCreatedEvent(b))
	if err != nil {
		return err
	}

	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("publish %s: %w", p.queue, ctx.Err())
	}
	defer func() { <-p.sem }()

	ch, err := p.channel(ctx)
	if err != nil {
		return err
	}
	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		msg,
	); err != nil {
		p.reset()
		return fmt.Errorf("publish %s: %w", p.queue, err)
	}
	p.logger.DebugContext(ctx, "booking notification published",
		"booking_id", b.ID,
		"message_id", msg.MessageId,
	)
	return nil
}

// begin registers an in-flight publish unless the publisher is closed.
func (p *Publisher) begin() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	p.inflight.Add(1)
	return true
}

func (p *Publisher) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func newMessage(ctx context.Context, event BookingCreatedEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal booking event: %w", err)
	}
	return amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     uuid.NewString(),
		CorrelationId: middleware.GetReqID(ctx),
		Timestamp:     time.Now().UTC(),
		Type:          "booking.created",
		Body:          body,
	}, nil
}

// dialTimeout bounds the TCP connect and AMQP handshake by ctx's deadline.
func dialTimeout(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	timeout := maxDialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		left := time.Until(deadline)
		if left <= 0 {
			return 0, context.DeadlineExceeded
		}
		timeout = min(timeout, left)
	}
	return timeout, nil
}

// channel returns an open channel, dialling and declaring the queue when needed.
// Callers must hold p.sem.
func (p *Publisher) channel(ctx context.Context) (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	if p.isClosed() {
		return nil, ErrPublisherClosed
	}
	timeout, err := dialTimeout(ctx)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: heartbeat,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	p.conn, p.ch = conn, ch
	p.logger.Info("connected to message broker", "queue", p.queue)
	return ch, nil
}

// reset drops the current connection. Callers must hold p.sem.
func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

// Close rejects new publishes, waits for in-flight ones to finish and
// releases the broker connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.inflight.Wait()

	p.sem <- struct{}{}
	defer func() { <-p.sem }()
	p.reset()
	return nil
}
