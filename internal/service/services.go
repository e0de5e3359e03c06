package service

import (
	"github.com/MKhiriev/go-event-organizer/internal/config"
	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/internal/notify"
	"github.com/MKhiriev/go-event-organizer/internal/store"
	"github.com/MKhiriev/go-event-organizer/internal/validators"
	"github.com/MKhiriev/go-event-organizer/models"
)

type Services struct {
	AuthService     AuthService
	UserService     UserService
	LocationService LocationService
	EventService    EventService
	TicketService   TicketService
	AppInfoService  AppInfoService
}

func NewServices(storages *store.Storages, notifier notify.Notifier, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	validator := validators.NewRequestValidator()

	return &Services{
		AuthService:     NewAuthService(storages.Users, validator, cfg.App, logger),
		UserService:     NewUserService(storages.Transactor, storages.Users, storages.Tickets, storages.Events, storages.Wishlists, validator, cfg.App, logger),
		LocationService: NewLocationService(storages.Locations, validator, logger),
		EventService:    NewEventService(storages.Transactor, storages.Events, storages.Locations, storages.Users, storages.Tickets, storages.Wishlists, notifier, validator, logger),
		TicketService:   NewTicketService(storages.Transactor, storages.Tickets, storages.Events, storages.Users, validator, logger),
		AppInfoService:  appInfoService,
	}, nil
}
