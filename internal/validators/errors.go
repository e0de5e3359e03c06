package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrEmptyName     = errors.New("name is required")
	ErrInvalidEmail  = errors.New("invalid email")
	ErrInvalidRole   = errors.New("invalid user type")

	ErrEmptyAddress    = errors.New("address is required")
	ErrInvalidCapacity = errors.New("capacity must be positive")

	ErrEmptyEventType      = errors.New("event type is required")
	ErrInvalidEventDate    = errors.New("event date must be YYYY-MM-DD")
	ErrInvalidEventTime    = errors.New("event time must be HH:MM")
	ErrInvalidLocationID   = errors.New("invalid location ID")
	ErrInvalidOrganizerID  = errors.New("invalid organizer ID")
	ErrInvalidPrice        = errors.New("price must not be negative")
	ErrInvalidSalePercent  = errors.New("sale percent must be between 0 and 100")
	ErrInvalidUserID       = errors.New("invalid user ID")
	ErrInvalidEventID      = errors.New("invalid event ID")
	ErrInvalidTicketAmount = errors.New("quantity must be between 1 and 100")
)
