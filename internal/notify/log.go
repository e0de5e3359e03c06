package notify

import (
	"context"

	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/models"
)

// logNotifier writes notifications to the log instead of sending them.
type logNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(logger *logger.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Notify(ctx context.Context, notification models.Notification) error {
	n.logger.Info().
		Int64("user_id", notification.UserID).
		Int64("event_id", notification.EventID).
		Str("to", notification.Email).
		Str("subject", notification.Subject).
		Str("text", notification.Body).
		Msg("sale notification")

	return nil
}
