// Package notify delivers sale notifications to users.
//
// Three drivers are available: "log" writes the message to the application
// log, "http" posts it to a mail gateway and "amqp" publishes it to a
// message broker for a separate mailer to pick up.
package notify

//go:generate mockgen -source=notifier.go -destination=../mock/notifier_mock.go -package=mock

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-event-organizer/internal/config"
	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/models"
)

var (
	ErrUnknownDriver  = errors.New("unknown notifier driver")
	ErrDeliveryFailed = errors.New("notification delivery failed")
)

// Notifier delivers a single notification.
type Notifier interface {
	Notify(ctx context.Context, notification models.Notification) error
}

// New builds the notifier selected by cfg.Driver.
func New(cfg config.Notifier, logger *logger.Logger) (Notifier, error) {
	switch cfg.Driver {
	case config.NotifierDriverLog, "":
		return NewLogNotifier(logger), nil
	case config.NotifierDriverHTTP:
		return NewMailNotifier(cfg, logger), nil
	case config.NotifierDriverAMQP:
		n, err := NewAMQPNotifier(cfg, logger)
		if err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
