package notify

import (
	"fmt"

	"github.com/MKhiriev/go-event-organizer/models"
)

// SaleNotification builds the email sent to a wishlist user when the event
// goes on sale. The price quoted is the discounted one.
func SaleNotification(user models.User, event models.Event) models.Notification {
	return models.Notification{
		UserID:  user.ID,
		EventID: event.ID,
		Email:   user.Email,
		Subject: fmt.Sprintf("Event on Sale for %s", user.Name),
		Body:    fmt.Sprintf("The event '%s' is now on sale! New price: %s", event.Name, event.Price()),
	}
}
