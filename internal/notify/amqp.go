package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-event-organizer/internal/config"
	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/models"
	"github.com/streadway/amqp"
)

// publisher is the part of *amqp.Channel used to publish notifications.
type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// dialFunc opens a fresh publisher. It is called again whenever the broker
// connection has been lost.
type dialFunc func() (publisher, error)

// session owns a broker connection together with its publishing channel.
type session struct {
	*amqp.Channel
	conn *amqp.Connection
}

func (s *session) Close() error {
	if err := s.Channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		s.conn.Close()
		return err
	}
	return s.conn.Close()
}

// AMQPNotifier publishes notifications as persistent JSON messages to a
// topic exchange.
//
// When the broker drops the connection the session is discarded and the
// next Notify dials again and redeclares the exchange, so a broker restart
// does not require restarting the server. A notification published while
// the broker is unreachable fails with ErrDeliveryFailed.
type AMQPNotifier struct {
	mu         sync.Mutex
	channel    publisher
	dial       dialFunc
	closed     bool
	exchange   string
	routingKey string
	logger     *logger.Logger
}

// NewAMQPNotifier connects to the broker and declares the exchange.
func NewAMQPNotifier(cfg config.Notifier, logger *logger.Logger) (*AMQPNotifier, error) {
	n := newAMQPNotifier(nil, cfg.Exchange, cfg.RoutingKey, logger)
	n.dial = func() (publisher, error) {
		return n.connect(cfg)
	}

	channel, err := n.dial()
	if err != nil {
		return nil, err
	}
	n.channel = channel

	logger.Info().Str("exchange", cfg.Exchange).Msg("connected to broker")
	return n, nil
}

func newAMQPNotifier(channel publisher, exchange, routingKey string, logger *logger.Logger) *AMQPNotifier {
	return &AMQPNotifier{
		channel:    channel,
		exchange:   exchange,
		routingKey: routingKey,
		logger:     logger,
	}
}

// connect dials the broker, opens a channel and declares the exchange. The
// returned session is dropped as soon as the connection reports closing.
func (n *AMQPNotifier) connect(cfg config.Notifier) (publisher, error) {
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		n.logger.Err(err).Str("func", "*AMQPNotifier.connect").Msg("failed to connect to broker")
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		n.logger.Err(err).Str("func", "*AMQPNotifier.connect").Msg("failed to open channel")
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err = channel.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		n.logger.Err(err).Str("func", "*AMQPNotifier.connect").Str("exchange", cfg.Exchange).Msg("failed to declare exchange")
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	s := &session{Channel: channel, conn: conn}
	closing := conn.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		// the channel is closed without a value on a graceful Close
		if err, ok := <-closing; ok {
			n.logger.Warn().Err(err).Msg("broker connection lost")
			n.drop(s)
		}
	}()

	return s, nil
}

// drop forgets p if it is still the active publisher.
func (n *AMQPNotifier) drop(p publisher) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.channel == p {
		n.channel = nil
	}
}

func (n *AMQPNotifier) Notify(ctx context.Context, notification models.Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}

	// amqp.Channel is not safe for concurrent publishing.
	n.mu.Lock()
	defer n.mu.Unlock()

	err = n.publishLocked(msg)
	if errors.Is(err, amqp.ErrClosed) && n.dial != nil {
		// the close notification may not have arrived yet
		n.discardLocked()
		err = n.publishLocked(msg)
	}
	if err != nil {
		n.logger.Err(err).Str("func", "*AMQPNotifier.Notify").Int64("user_id", notification.UserID).Msg("failed to publish notification")
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	n.logger.Debug().
		Int64("user_id", notification.UserID).
		Int64("event_id", notification.EventID).
		Msg("published sale notification")

	return nil
}

// publishLocked publishes msg, dialing first when there is no live session.
// n.mu must be held.
func (n *AMQPNotifier) publishLocked(msg amqp.Publishing) error {
	if n.closed {
		return errors.New("notifier is closed")
	}

	if n.channel == nil {
		if n.dial == nil {
			return errors.New("channel is closed")
		}
		channel, err := n.dial()
		if err != nil {
			return err
		}
		n.logger.Info().Str("exchange", n.exchange).Msg("reconnected to broker")
		n.channel = channel
	}

	return n.channel.Publish(n.exchange, n.routingKey, false, false, msg)
}

func (n *AMQPNotifier) discardLocked() {
	if n.channel == nil {
		return
	}
	if err := n.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		n.logger.Warn().Err(err).Msg("failed to close broker session")
	}
	n.channel = nil
}

// Close closes the channel and the broker connection. The notifier does not
// reconnect afterwards.
func (n *AMQPNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.closed = true
	n.discardLocked()

	return nil
}
