package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-event-organizer/internal/config"
	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/internal/metrics"
	"github.com/MKhiriev/go-event-organizer/internal/notify"
	"github.com/MKhiriev/go-event-organizer/models"
)

var ErrQueueFull = errors.New("notification queue is full")

// NotificationDispatcher queues notifications and delivers them through the
// wrapped notifier from a fixed pool of goroutines, so that a slow mail
// gateway never holds up the request that triggered the notification.
//
// It implements [notify.Notifier]. Notify never blocks: when the queue is
// full the notification is dropped and ErrQueueFull is returned.
type NotificationDispatcher struct {
	notifier notify.Notifier
	queue    chan models.Notification
	workers  int
	timeout  time.Duration
	logger   *logger.Logger
}

func NewNotificationDispatcher(notifier notify.Notifier, cfg config.Workers, timeout time.Duration, logger *logger.Logger) *NotificationDispatcher {
	workers := cfg.NotificationWorkers
	if workers < 1 {
		workers = 1
	}

	return &NotificationDispatcher{
		notifier: notifier,
		queue:    make(chan models.Notification, max(cfg.QueueSize, 1)),
		workers:  workers,
		timeout:  timeout,
		logger:   logger,
	}
}

func (d *NotificationDispatcher) Notify(ctx context.Context, notification models.Notification) error {
	select {
	case d.queue <- notification:
		metrics.Notifications.WithLabelValues(metrics.NotificationQueued).Inc()
		return nil
	default:
		metrics.Notifications.WithLabelValues(metrics.NotificationDropped).Inc()
		logger.FromContext(ctx).Warn().
			Str("func", "*NotificationDispatcher.Notify").
			Int64("user_id", notification.UserID).
			Int64("event_id", notification.EventID).
			Msg("notification queue is full, dropping notification")
		return ErrQueueFull
	}
}

// Run delivers queued notifications until ctx is cancelled, then delivers
// whatever is still queued and returns.
func (d *NotificationDispatcher) Run(ctx context.Context) {
	d.logger.Info().Int("workers", d.workers).Msg("notification dispatcher started")

	var wg sync.WaitGroup
	for i := 0; i < d.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.work(ctx)
		}()
	}
	wg.Wait()

	d.logger.Info().Msg("notification dispatcher stopped")
}

func (d *NotificationDispatcher) work(ctx context.Context) {
	for {
		select {
		case notification := <-d.queue:
			d.deliver(notification)
		case <-ctx.Done():
			d.drain()
			return
		}
	}
}

func (d *NotificationDispatcher) drain() {
	for {
		select {
		case notification := <-d.queue:
			d.deliver(notification)
		default:
			return
		}
	}
}

// deliver runs detached from the request context, which is usually gone by
// the time the notification is picked up.
func (d *NotificationDispatcher) deliver(notification models.Notification) {
	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if err := d.notifier.Notify(ctx, notification); err != nil {
		metrics.Notifications.WithLabelValues(metrics.NotificationFailed).Inc()
		d.logger.Err(err).
			Str("func", "*NotificationDispatcher.deliver").
			Int64("user_id", notification.UserID).
			Int64("event_id", notification.EventID).
			Msg("failed to deliver notification")
		return
	}

	metrics.Notifications.WithLabelValues(metrics.NotificationSent).Inc()
}
