package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-event-organizer/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldOldPassword = "old_password"
	FieldNewPassword = "new_password"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldUserType    = "user_type"

	FieldAddress  = "address"
	FieldCapacity = "capacity"

	FieldEventType = "event_type"
	FieldEventDate = "event_date"
	FieldEventTime = "event_time"
	FieldLocation  = "location"
	FieldPrice     = "price"
	FieldOrganizer = "organizer"
	FieldOnSale    = "on_sale"

	FieldUserID  = "user_id"
	FieldEventID = "event_id"
)

// RequestValidator implements [Validator] for the request bodies accepted by
// the HTTP API: sign up/in, user and credential updates, locations, events
// and tickets.
type RequestValidator struct{}

func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate dispatches to the type-specific check. Both value and pointer
// forms are accepted. Without fields every field of the request is checked.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignUpRequest:
		return v.validateSignUp(value, fields...)
	case *models.SignUpRequest:
		return v.validateSignUp(*value, fields...)

	case models.SignInRequest:
		return v.validateSignIn(value, fields...)
	case *models.SignInRequest:
		return v.validateSignIn(*value, fields...)

	case models.UpdateCredentialsRequest:
		return v.validateUpdateCredentials(value, fields...)
	case *models.UpdateCredentialsRequest:
		return v.validateUpdateCredentials(*value, fields...)

	case models.UserRequest:
		return v.validateUserRequest(value, fields...)
	case *models.UserRequest:
		return v.validateUserRequest(*value, fields...)

	case models.LocationRequest:
		return v.validateLocationRequest(value, fields...)
	case *models.LocationRequest:
		return v.validateLocationRequest(*value, fields...)

	case models.EventRequest:
		return v.validateEventRequest(value, fields...)
	case *models.EventRequest:
		return v.validateEventRequest(*value, fields...)

	case models.TicketRequest:
		return v.validateTicketRequest(value, fields...)
	case *models.TicketRequest:
		return v.validateTicketRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
