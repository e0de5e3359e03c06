package service

import (
	"context"

	"github.com/MKhiriev/go-event-organizer/models"
)

type AuthService interface {
	Register(ctx context.Context, req models.SignUpRequest) (models.User, error)
	Login(ctx context.Context, req models.SignInRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type UserService interface {
	// UpdateCredentials lets a user change their own username, name, email
	// and password. The old password must match the stored one.
	UpdateCredentials(ctx context.Context, userID int64, req models.UpdateCredentialsRequest) (models.User, error)

	GetAll(ctx context.Context) ([]models.User, error)
	GetByRole(ctx context.Context, role models.Role) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)

	Add(ctx context.Context, req models.UserRequest) (models.User, error)
	// Update replaces an account. An empty password keeps the stored one.
	Update(ctx context.Context, id int64, req models.UserRequest) (models.User, error)
	Delete(ctx context.Context, id int64) error

	AddToWishlist(ctx context.Context, userID, eventID int64) error
	RemoveFromWishlist(ctx context.Context, userID, eventID int64) error
	GetWishlist(ctx context.Context, userID int64) ([]models.Event, error)
}

type LocationService interface {
	GetAll(ctx context.Context) ([]models.Location, error)
	GetByID(ctx context.Context, id int64) (models.Location, error)
	Create(ctx context.Context, req models.LocationRequest) (models.Location, error)
	Update(ctx context.Context, id int64, req models.LocationRequest) (models.Location, error)
	Delete(ctx context.Context, id int64) error
}

// EventService manages events. Mutations take the caller so that organizers
// can only change the events they own.
type EventService interface {
	GetAll(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, id int64) (models.Event, error)
	GetByOrganizer(ctx context.Context, organizerID int64) ([]models.Event, error)

	Create(ctx context.Context, caller models.Caller, req models.EventRequest) (models.Event, error)
	Update(ctx context.Context, caller models.Caller, id int64, req models.EventRequest) (models.Event, error)
	Delete(ctx context.Context, caller models.Caller, id int64) error

	// SetOnSale sets the discount of an event. Users who wishlisted the event
	// are notified when the discount grows.
	SetOnSale(ctx context.Context, caller models.Caller, id int64, percent int) (models.Event, error)
}

type TicketService interface {
	// Purchase buys quantity tickets at the current event price.
	Purchase(ctx context.Context, req models.TicketRequest, quantity int) ([]models.Ticket, error)
	// Update moves a ticket to another event and reprices it.
	Update(ctx context.Context, caller models.Caller, id int64, req models.TicketRequest) (models.Ticket, error)
	Delete(ctx context.Context, caller models.Caller, id int64) error

	GetByID(ctx context.Context, caller models.Caller, id int64) (models.Ticket, error)
	GetAll(ctx context.Context) ([]models.Ticket, error)
	GetByUser(ctx context.Context, userID int64) ([]models.Ticket, error)
	GetByEvent(ctx context.Context, eventID int64) ([]models.Ticket, error)

	Export(ctx context.Context, caller models.Caller, id int64, format models.ExportFormat) (models.TicketFile, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
