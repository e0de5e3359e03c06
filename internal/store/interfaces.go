package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-event-organizer/models"
)

// ErrorClassificator decides whether a failed database operation may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// Transactor runs a function inside a database transaction. Repository calls
// made with the context passed to fn take part in that transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	// FindByIDForUpdate locks the user row until the surrounding
	// transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByName(ctx context.Context, name string) (models.User, error)
	FindByRole(ctx context.Context, role models.Role) ([]models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user models.User) (models.User, error)
	Delete(ctx context.Context, id int64) error
}

type WishlistRepository interface {
	Add(ctx context.Context, userID, eventID int64) error
	Remove(ctx context.Context, userID, eventID int64) error
	ListEvents(ctx context.Context, userID int64) ([]models.Event, error)
	ListUsers(ctx context.Context, eventID int64) ([]models.User, error)
}

type LocationRepository interface {
	Create(ctx context.Context, location models.Location) (models.Location, error)
	FindByID(ctx context.Context, id int64) (models.Location, error)
	FindAll(ctx context.Context) ([]models.Location, error)
	Update(ctx context.Context, location models.Location) (models.Location, error)
	Delete(ctx context.Context, id int64) error
}

type EventRepository interface {
	Create(ctx context.Context, event models.Event) (models.Event, error)
	FindByID(ctx context.Context, id int64) (models.Event, error)
	// FindByIDForUpdate locks the event row until the surrounding
	// transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (models.Event, error)
	FindAll(ctx context.Context) ([]models.Event, error)
	FindByOrganizer(ctx context.Context, organizerID int64) ([]models.Event, error)
	Update(ctx context.Context, event models.Event) (models.Event, error)
	// AdjustTicketsAvailable adds delta (possibly negative) to the number of
	// tickets left for sale.
	AdjustTicketsAvailable(ctx context.Context, id int64, delta int) error
	Delete(ctx context.Context, id int64) error
}

type TicketRepository interface {
	Create(ctx context.Context, tickets ...models.Ticket) ([]models.Ticket, error)
	FindByID(ctx context.Context, id int64) (models.Ticket, error)
	// FindByIDForUpdate locks the ticket row until the surrounding
	// transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (models.Ticket, error)
	FindDetails(ctx context.Context, id int64) (models.TicketDetails, error)
	FindAll(ctx context.Context) ([]models.Ticket, error)
	FindByUser(ctx context.Context, userID int64) ([]models.Ticket, error)
	FindByEvent(ctx context.Context, eventID int64) ([]models.Ticket, error)
	CountByEvent(ctx context.Context, eventID int64) (int, error)
	// CountByUser maps event ids to the number of tickets the user holds.
	CountByUser(ctx context.Context, userID int64) (map[int64]int, error)
	Update(ctx context.Context, ticket models.Ticket) (models.Ticket, error)
	Delete(ctx context.Context, id int64) error
}
