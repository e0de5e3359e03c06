package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-event-organizer/internal/config"
	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/models"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNotification() models.Notification {
	return models.Notification{
		UserID:  1,
		EventID: 2,
		Email:   "ann@example.com",
		Subject: "Event on Sale for Ann",
		Body:    "The event 'Gala' is now on sale! New price: 80.00",
	}
}

func TestSaleNotification(t *testing.T) {
	user := models.User{ID: 5, Name: "Ann", Email: "ann@example.com"}
	event := models.Event{ID: 9, Name: "Gala", BasePrice: 10000, OnSale: 20}

	n := SaleNotification(user, event)

	assert.Equal(t, int64(5), n.UserID)
	assert.Equal(t, int64(9), n.EventID)
	assert.Equal(t, "ann@example.com", n.Email)
	assert.Equal(t, "Event on Sale for Ann", n.Subject)
	assert.Equal(t, "The event 'Gala' is now on sale! New price: 80.00", n.Body)
}

func TestNew(t *testing.T) {
	n, err := New(config.Notifier{Driver: config.NotifierDriverLog}, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &logNotifier{}, n)

	n, err = New(config.Notifier{Driver: config.NotifierDriverHTTP, MailURL: "http://localhost"}, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &mailNotifier{}, n)

	_, err = New(config.Notifier{Driver: "pigeon"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestLogNotifier(t *testing.T) {
	n := NewLogNotifier(logger.Nop())
	assert.NoError(t, n.Notify(context.Background(), testNotification()))
}

func TestMailNotifier_Success(t *testing.T) {
	var got mailMessage
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	n := NewMailNotifier(config.Notifier{
		MailURL:    srv.URL,
		MailAPIKey: "key",
		MailFrom:   "no-reply@example.com",
		Timeout:    time.Second,
	}, logger.Nop())

	require.NoError(t, n.Notify(context.Background(), testNotification()))

	assert.Equal(t, "Bearer key", auth)
	assert.Equal(t, mailMessage{
		From:    "no-reply@example.com",
		To:      "ann@example.com",
		Subject: "Event on Sale for Ann",
		Text:    "The event 'Gala' is now on sale! New price: 80.00",
	}, got)
}

func TestMailNotifier_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	n := NewMailNotifier(config.Notifier{MailURL: srv.URL, Timeout: time.Second}, logger.Nop())

	assert.ErrorIs(t, n.Notify(context.Background(), testNotification()), ErrDeliveryFailed)
}

type fakePublisher struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (p *fakePublisher) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	p.exchange, p.key, p.msg = exchange, key, msg
	return p.err
}

func (p *fakePublisher) Close() error {
	p.closed = true
	return nil
}

func TestAMQPNotifier_Publishes(t *testing.T) {
	pub := &fakePublisher{}
	n := newAMQPNotifier(pub, "events", "event.sale", logger.Nop())

	require.NoError(t, n.Notify(context.Background(), testNotification()))

	assert.Equal(t, "events", pub.exchange)
	assert.Equal(t, "event.sale", pub.key)
	assert.Equal(t, "application/json", pub.msg.ContentType)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)

	var decoded models.Notification
	require.NoError(t, json.Unmarshal(pub.msg.Body, &decoded))
	assert.Equal(t, testNotification(), decoded)
}

func TestAMQPNotifier_PublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("channel closed")}
	n := newAMQPNotifier(pub, "events", "event.sale", logger.Nop())

	assert.ErrorIs(t, n.Notify(context.Background(), testNotification()), ErrDeliveryFailed)
}

func TestAMQPNotifier_Close(t *testing.T) {
	pub := &fakePublisher{}
	n := newAMQPNotifier(pub, "events", "event.sale", logger.Nop())

	require.NoError(t, n.Close())
	assert.True(t, pub.closed)
	assert.ErrorIs(t, n.Notify(context.Background(), testNotification()), ErrDeliveryFailed)
}

func TestAMQPNotifier_RedialsAfterClosedChannel(t *testing.T) {
	stale := &fakePublisher{err: amqp.ErrClosed}
	fresh := &fakePublisher{}
	n := newAMQPNotifier(stale, "events", "event.sale", logger.Nop())
	dials := 0
	n.dial = func() (publisher, error) {
		dials++
		return fresh, nil
	}

	require.NoError(t, n.Notify(context.Background(), testNotification()))

	assert.Equal(t, 1, dials)
	assert.True(t, stale.closed)
	assert.Equal(t, "events", fresh.exchange)

	require.NoError(t, n.Notify(context.Background(), testNotification()))
	assert.Equal(t, 1, dials, "live session is reused")
}

func TestAMQPNotifier_RedialsAfterConnectionLoss(t *testing.T) {
	lost := &fakePublisher{}
	fresh := &fakePublisher{}
	n := newAMQPNotifier(lost, "events", "event.sale", logger.Nop())
	n.dial = func() (publisher, error) { return fresh, nil }

	n.drop(lost)
	require.NoError(t, n.Notify(context.Background(), testNotification()))

	assert.Empty(t, lost.key)
	assert.Equal(t, "event.sale", fresh.key)
}

func TestAMQPNotifier_DropIgnoresReplacedSession(t *testing.T) {
	old := &fakePublisher{}
	current := &fakePublisher{}
	n := newAMQPNotifier(current, "events", "event.sale", logger.Nop())

	n.drop(old)
	require.NoError(t, n.Notify(context.Background(), testNotification()))

	assert.Equal(t, "events", current.exchange)
}

func TestAMQPNotifier_BrokerStillDown(t *testing.T) {
	n := newAMQPNotifier(nil, "events", "event.sale", logger.Nop())
	dials := 0
	n.dial = func() (publisher, error) {
		dials++
		return nil, errors.New("connection refused")
	}

	assert.ErrorIs(t, n.Notify(context.Background(), testNotification()), ErrDeliveryFailed)
	assert.ErrorIs(t, n.Notify(context.Background(), testNotification()), ErrDeliveryFailed)
	assert.Equal(t, 2, dials, "every notification retries the broker")
}

func TestAMQPNotifier_NoRedialAfterClose(t *testing.T) {
	n := newAMQPNotifier(&fakePublisher{}, "events", "event.sale", logger.Nop())
	n.dial = func() (publisher, error) {
		t.Fatal("dialed after Close")
		return nil, nil
	}

	require.NoError(t, n.Close())
	assert.ErrorIs(t, n.Notify(context.Background(), testNotification()), ErrDeliveryFailed)
}
