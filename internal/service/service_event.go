package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/internal/mapper"
	"github.com/MKhiriev/go-event-organizer/internal/notify"
	"github.com/MKhiriev/go-event-organizer/internal/store"
	"github.com/MKhiriev/go-event-organizer/internal/validators"
	"github.com/MKhiriev/go-event-organizer/models"
)

// eventService keeps ticket availability in step with location capacity and
// sends sale notifications to users who wishlisted an event.
type eventService struct {
	transactor         store.Transactor
	eventRepository    store.EventRepository
	locationRepository store.LocationRepository
	userRepository     store.UserRepository
	ticketRepository   store.TicketRepository
	wishlistRepository store.WishlistRepository

	notifier  notify.Notifier
	validator validators.Validator

	logger *logger.Logger
}

func NewEventService(
	transactor store.Transactor,
	eventRepository store.EventRepository,
	locationRepository store.LocationRepository,
	userRepository store.UserRepository,
	ticketRepository store.TicketRepository,
	wishlistRepository store.WishlistRepository,
	notifier notify.Notifier,
	validator validators.Validator,
	logger *logger.Logger,
) EventService {
	return &eventService{
		transactor:         transactor,
		eventRepository:    eventRepository,
		locationRepository: locationRepository,
		userRepository:     userRepository,
		ticketRepository:   ticketRepository,
		wishlistRepository: wishlistRepository,
		notifier:           notifier,
		validator:          validator,
		logger:             logger,
	}
}

func (s *eventService) GetAll(ctx context.Context) ([]models.Event, error) {
	events, err := s.eventRepository.FindAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*eventService.GetAll").Msg("event listing failed")
		return nil, fmt.Errorf("event listing failed: %w", err)
	}
	return events, nil
}

func (s *eventService) GetByID(ctx context.Context, id int64) (models.Event, error) {
	event, err := s.eventRepository.FindByID(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*eventService.GetByID").Int64("id", id).Msg("event search by id failed")
		return models.Event{}, fmt.Errorf("event search by id failed: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByOrganizer(ctx context.Context, organizerID int64) ([]models.Event, error) {
	log := logger.FromContext(ctx).With().Str("func", "*eventService.GetByOrganizer").Int64("organizer_id", organizerID).Logger()

	if _, err := s.userRepository.FindByID(ctx, organizerID); err != nil {
		log.Err(err).Msg("organizer search by id failed")
		return nil, fmt.Errorf("organizer search by id failed: %w", err)
	}

	events, err := s.eventRepository.FindByOrganizer(ctx, organizerID)
	if err != nil {
		log.Err(err).Msg("event search by organizer failed")
		return nil, fmt.Errorf("event search by organizer failed: %w", err)
	}

	return events, nil
}

// Create stores a new event with as many tickets as its location holds.
// Organizers always own the events they create; administrators name the
// organizer in the request.
func (s *eventService) Create(ctx context.Context, caller models.Caller, req models.EventRequest) (models.Event, error) {
	log := logger.FromContext(ctx).With().Str("func", "*eventService.Create").Int64("caller_id", caller.UserID).Logger()

	event, err := s.eventFromRequest(ctx, caller, req)
	if err != nil {
		log.Err(err).Msg("invalid event data provided")
		return models.Event{}, err
	}

	if caller.Is(models.RoleOrganizer) {
		event.OrganizerID = caller.UserID
	} else if err = s.ensureOrganizer(ctx, event.OrganizerID); err != nil {
		log.Err(err).Int64("organizer_id", event.OrganizerID).Msg("organizer check failed")
		return models.Event{}, err
	}

	location, err := s.locationRepository.FindByID(ctx, event.LocationID)
	if err != nil {
		log.Err(err).Int64("location_id", event.LocationID).Msg("location search by id failed")
		return models.Event{}, fmt.Errorf("location search by id failed: %w", err)
	}
	event.TicketsAvailable = location.Capacity

	created, err := s.eventRepository.Create(ctx, event)
	if err != nil {
		log.Err(err).Msg("event creation ended with error")
		return models.Event{}, fmt.Errorf("event creation ended with error: %w", err)
	}

	return created, nil
}

// Update replaces an event and recomputes the tickets left from the capacity
// of its (possibly new) location. The new base price is resolved by
// updatedBasePrice.
func (s *eventService) Update(ctx context.Context, caller models.Caller, id int64, req models.EventRequest) (models.Event, error) {
	log := logger.FromContext(ctx).With().Str("func", "*eventService.Update").Int64("id", id).Int64("caller_id", caller.UserID).Logger()

	event, err := s.eventFromRequest(ctx, caller, req)
	if err != nil {
		log.Err(err).Msg("invalid event data provided")
		return models.Event{}, err
	}

	var updated models.Event
	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.eventRepository.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("event search by id failed: %w", err)
		}
		if !canManage(caller, current) {
			return ErrForbidden
		}

		next := event
		next.ID = current.ID
		next.OrganizerID = current.OrganizerID
		if caller.Is(models.RoleAdministrator) && req.Organizer != 0 && req.Organizer != current.OrganizerID {
			if err = s.ensureOrganizer(ctx, req.Organizer); err != nil {
				return err
			}
			next.OrganizerID = req.Organizer
		}

		next.BasePrice = updatedBasePrice(current, req)

		location, err := s.locationRepository.FindByID(ctx, next.LocationID)
		if err != nil {
			return fmt.Errorf("location search by id failed: %w", err)
		}
		sold, err := s.ticketRepository.CountByEvent(ctx, id)
		if err != nil {
			return fmt.Errorf("counting sold tickets failed: %w", err)
		}
		next.TicketsAvailable = location.Capacity - sold
		if next.TicketsAvailable < 0 {
			return ErrCapacityTooSmall
		}

		updated, err = s.eventRepository.Update(ctx, next)
		if err != nil {
			return fmt.Errorf("event update ended with error: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Msg("event update failed")
		return models.Event{}, err
	}

	return updated, nil
}

// updatedBasePrice picks the base price for an update of current.
//
// An explicit original_price wins. Otherwise price is read as the discounted
// price, the same field EventResponse reports: sending back the current
// price or changing only the discount keeps the stored base, and a new price
// under an unchanged discount is converted back to a base price.
func updatedBasePrice(current models.Event, req models.EventRequest) models.Money {
	if req.OriginalPrice != nil {
		return *req.OriginalPrice
	}
	if req.Price == current.Price() || req.OnSale != current.OnSale {
		return current.BasePrice
	}
	if base, ok := req.Price.Undiscount(req.OnSale); ok {
		return base
	}
	return current.BasePrice
}

func (s *eventService) Delete(ctx context.Context, caller models.Caller, id int64) error {
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		event, err := s.eventRepository.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("event search by id failed: %w", err)
		}
		if !canManage(caller, event) {
			return ErrForbidden
		}
		if err = s.eventRepository.Delete(ctx, id); err != nil {
			return fmt.Errorf("event deletion failed: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*eventService.Delete").Int64("id", id).Msg("event deletion failed")
		return err
	}
	return nil
}

// SetOnSale changes the discount of an event. Wishlist users are notified
// after the change is committed and only when the discount grew.
func (s *eventService) SetOnSale(ctx context.Context, caller models.Caller, id int64, percent int) (models.Event, error) {
	log := logger.FromContext(ctx).With().Str("func", "*eventService.SetOnSale").Int64("id", id).Int("percent", percent).Logger()

	if err := validators.ValidateSalePercent(percent); err != nil {
		log.Err(err).Msg("invalid sale percent")
		return models.Event{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	var (
		updated  models.Event
		previous int
	)
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		event, err := s.eventRepository.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("event search by id failed: %w", err)
		}
		if !canManage(caller, event) {
			return ErrForbidden
		}

		previous = event.OnSale
		event.OnSale = percent
		updated, err = s.eventRepository.Update(ctx, event)
		if err != nil {
			return fmt.Errorf("event update ended with error: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Msg("setting event on sale failed")
		return models.Event{}, err
	}

	if percent > previous {
		s.notifyWishlist(ctx, updated)
	}

	return updated, nil
}

// notifyWishlist hands one sale notification per wishlist user to the
// notifier. Failures are logged and do not undo the sale.
func (s *eventService) notifyWishlist(ctx context.Context, event models.Event) {
	log := logger.FromContext(ctx).With().Str("func", "*eventService.notifyWishlist").Int64("event_id", event.ID).Logger()

	users, err := s.wishlistRepository.ListUsers(ctx, event.ID)
	if err != nil {
		log.Err(err).Msg("wishlist users search failed")
		return
	}

	for _, user := range users {
		if err = s.notifier.Notify(ctx, notify.SaleNotification(user, event)); err != nil {
			log.Err(err).Int64("user_id", user.ID).Msg("sale notification was not accepted")
		}
	}
	log.Info().Int("recipients", len(users)).Msg("sale notifications handed over")
}

func (s *eventService) eventFromRequest(ctx context.Context, caller models.Caller, req models.EventRequest) (models.Event, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Event{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if caller.Is(models.RoleAdministrator) && req.Organizer <= 0 {
		return models.Event{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidOrganizerID)
	}

	event, err := mapper.EventFromRequest(req)
	if err != nil {
		return models.Event{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return event, nil
}

// ensureOrganizer checks that id names an existing user with the organizer
// role.
func (s *eventService) ensureOrganizer(ctx context.Context, id int64) error {
	organizer, err := s.userRepository.FindByID(ctx, id)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return ErrInvalidOrganizer
	}
	if err != nil {
		return fmt.Errorf("organizer search by id failed: %w", err)
	}
	if organizer.Role != models.RoleOrganizer {
		return ErrInvalidOrganizer
	}
	return nil
}

// canManage reports whether caller may change event.
func canManage(caller models.Caller, event models.Event) bool {
	if caller.Is(models.RoleAdministrator) {
		return true
	}
	return caller.Is(models.RoleOrganizer) && event.OrganizerID == caller.UserID
}
