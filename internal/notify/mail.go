package notify

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-event-organizer/internal/config"
	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/internal/utils"
	"github.com/MKhiriev/go-event-organizer/models"
)

// mailMessage is the body accepted by the mail gateway.
type mailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// mailNotifier posts notifications to an HTTP mail gateway.
type mailNotifier struct {
	client *utils.HTTPClient
	url    string
	apiKey string
	from   string
	logger *logger.Logger
}

func NewMailNotifier(cfg config.Notifier, logger *logger.Logger) Notifier {
	return &mailNotifier{
		client: utils.NewHTTPClient(cfg.Timeout),
		url:    cfg.MailURL,
		apiKey: cfg.MailAPIKey,
		from:   cfg.MailFrom,
		logger: logger,
	}
}

func (n *mailNotifier) Notify(ctx context.Context, notification models.Notification) error {
	req := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(mailMessage{
			From:    n.from,
			To:      notification.Email,
			Subject: notification.Subject,
			Text:    notification.Body,
		})
	if n.apiKey != "" {
		req.SetAuthToken(n.apiKey)
	}

	resp, err := req.Post(n.url)
	if err != nil {
		n.logger.Err(err).Str("func", "*mailNotifier.Notify").Str("to", notification.Email).Msg("error sending mail")
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	if resp.IsError() {
		n.logger.Error().
			Str("func", "*mailNotifier.Notify").
			Str("to", notification.Email).
			Int("status", resp.StatusCode()).
			Msg("mail gateway rejected message")
		return fmt.Errorf("%w: mail gateway responded with %s", ErrDeliveryFailed, resp.Status())
	}

	return nil
}
