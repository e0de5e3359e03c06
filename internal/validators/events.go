package validators

import (
	"time"

	"github.com/MKhiriev/go-event-organizer/models"
)

// validateEventRequest checks an event body. The organizer is not part of the
// default field set: organizers creating events are always the owner.
func (v *RequestValidator) validateEventRequest(req models.EventRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEventType, FieldEventDate, FieldEventTime, FieldLocation, FieldPrice, FieldOnSale}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if blank(req.Name) {
				return ErrEmptyName
			}
		case FieldEventType:
			if blank(req.EventType) {
				return ErrEmptyEventType
			}
		case FieldEventDate:
			if _, err := time.Parse(models.EventDateLayout, req.EventDate); err != nil {
				return ErrInvalidEventDate
			}
		case FieldEventTime:
			if req.EventTime == "" {
				continue
			}
			if _, err := time.Parse(models.EventTimeLayout, req.EventTime); err != nil {
				return ErrInvalidEventTime
			}
		case FieldLocation:
			if req.Location <= 0 {
				return ErrInvalidLocationID
			}
		case FieldPrice:
			if req.Price < 0 || req.BasePrice() < 0 {
				return ErrInvalidPrice
			}
		case FieldOrganizer:
			if req.Organizer <= 0 {
				return ErrInvalidOrganizerID
			}
		case FieldOnSale:
			if err := ValidateSalePercent(req.OnSale); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// ValidateSalePercent accepts discounts from 0 to 100 percent inclusive.
func ValidateSalePercent(percent int) error {
	if percent < 0 || percent > 100 {
		return ErrInvalidSalePercent
	}
	return nil
}
