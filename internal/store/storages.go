package store

import "github.com/MKhiriev/go-event-organizer/internal/logger"

// Storages groups every repository together with the transactor that lets
// services run several repository calls atomically.
type Storages struct {
	Transactor Transactor
	Users      UserRepository
	Wishlists  WishlistRepository
	Locations  LocationRepository
	Events     EventRepository
	Tickets    TicketRepository
}

func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		Transactor: db,
		Users:      NewUserRepository(db, logger),
		Wishlists:  NewWishlistRepository(db, logger),
		Locations:  NewLocationRepository(db, logger),
		Events:     NewEventRepository(db, logger),
		Tickets:    NewTicketRepository(db, logger),
	}
}
