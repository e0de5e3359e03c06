package validators

import (
	"fmt"

	"github.com/MKhiriev/go-event-organizer/models"
)

func (v *RequestValidator) validateTicketRequest(req models.TicketRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldEventID}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if req.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldEventID:
			if req.EventID <= 0 {
				return ErrInvalidEventID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// MaxTicketsPerPurchase bounds a single purchase, which is inserted as one
// multi-row statement.
const MaxTicketsPerPurchase = 100

// ValidateQuantity accepts purchases of 1 to MaxTicketsPerPurchase tickets.
func ValidateQuantity(quantity int) error {
	if quantity <= 0 || quantity > MaxTicketsPerPurchase {
		return fmt.Errorf("%w: got %d", ErrInvalidTicketAmount, quantity)
	}
	return nil
}
