package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/MKhiriev/go-event-organizer/internal/export"
	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/internal/metrics"
	"github.com/MKhiriev/go-event-organizer/internal/store"
	"github.com/MKhiriev/go-event-organizer/internal/validators"
	"github.com/MKhiriev/go-event-organizer/models"
)

// ticketService sells, exchanges and refunds tickets. Every change to the
// tickets of an event runs in one transaction with the event row locked, so
// that tickets_available matches the tickets sold.
type ticketService struct {
	transactor       store.Transactor
	ticketRepository store.TicketRepository
	eventRepository  store.EventRepository
	userRepository   store.UserRepository

	validator validators.Validator

	logger *logger.Logger
}

func NewTicketService(
	transactor store.Transactor,
	ticketRepository store.TicketRepository,
	eventRepository store.EventRepository,
	userRepository store.UserRepository,
	validator validators.Validator,
	logger *logger.Logger,
) TicketService {
	return &ticketService{
		transactor:       transactor,
		ticketRepository: ticketRepository,
		eventRepository:  eventRepository,
		userRepository:   userRepository,
		validator:        validator,
		logger:           logger,
	}
}

func (s *ticketService) Purchase(ctx context.Context, req models.TicketRequest, quantity int) ([]models.Ticket, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*ticketService.Purchase").
		Int64("user_id", req.UserID).
		Int64("event_id", req.EventID).
		Int("quantity", quantity).
		Logger()

	if err := s.validator.Validate(ctx, req); err != nil {
		log.Err(err).Msg("invalid ticket data provided")
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if err := validators.ValidateQuantity(quantity); err != nil {
		log.Err(err).Msg("invalid ticket quantity provided")
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if _, err := s.userRepository.FindByID(ctx, req.UserID); err != nil {
		log.Err(err).Msg("user search by id failed")
		return nil, fmt.Errorf("user search by id failed: %w", err)
	}

	var purchased []models.Ticket
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		event, err := s.eventRepository.FindByIDForUpdate(ctx, req.EventID)
		if err != nil {
			return fmt.Errorf("event search by id failed: %w", err)
		}
		if event.TicketsAvailable < quantity {
			return store.ErrNotEnoughTickets
		}

		if err = s.eventRepository.AdjustTicketsAvailable(ctx, event.ID, -quantity); err != nil {
			return fmt.Errorf("reserving tickets failed: %w", err)
		}

		tickets := make([]models.Ticket, quantity)
		for i := range tickets {
			tickets[i] = models.Ticket{
				UserID:        req.UserID,
				EventID:       event.ID,
				PurchasePrice: event.Price(),
			}
		}

		purchased, err = s.ticketRepository.Create(ctx, tickets...)
		if err != nil {
			return fmt.Errorf("ticket creation ended with error: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Msg("ticket purchase failed")
		return nil, err
	}

	metrics.TicketsSold.Add(float64(len(purchased)))
	log.Info().Int("tickets", len(purchased)).Msg("tickets purchased")

	return purchased, nil
}

// Update moves the ticket to req.EventID. The seat is released on the old
// event, taken on the new one, and the ticket is repriced at the new event's
// current price. Moving a ticket to its own event changes nothing. The
// ticket row stays locked until commit, so concurrent moves of one ticket
// release its old seat only once.
func (s *ticketService) Update(ctx context.Context, caller models.Caller, id int64, req models.TicketRequest) (models.Ticket, error) {
	log := logger.FromContext(ctx).With().Str("func", "*ticketService.Update").Int64("id", id).Int64("event_id", req.EventID).Logger()

	if err := s.validator.Validate(ctx, req); err != nil {
		log.Err(err).Msg("invalid ticket data provided")
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	var updated models.Ticket
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		ticket, err := s.ticketRepository.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("ticket search by id failed: %w", err)
		}
		if !owns(caller, ticket) || ticket.UserID != req.UserID {
			return ErrForbidden
		}
		if ticket.EventID == req.EventID {
			updated = ticket
			return nil
		}

		event, err := s.eventRepository.FindByIDForUpdate(ctx, req.EventID)
		if err != nil {
			return fmt.Errorf("event search by id failed: %w", err)
		}
		if event.TicketsAvailable < 1 {
			return store.ErrNotEnoughTickets
		}
		if err = s.eventRepository.AdjustTicketsAvailable(ctx, event.ID, -1); err != nil {
			return fmt.Errorf("reserving ticket failed: %w", err)
		}
		if err = s.eventRepository.AdjustTicketsAvailable(ctx, ticket.EventID, 1); err != nil {
			return fmt.Errorf("releasing ticket failed: %w", err)
		}

		ticket.EventID = event.ID
		ticket.PurchasePrice = event.Price()
		updated, err = s.ticketRepository.Update(ctx, ticket)
		if err != nil {
			return fmt.Errorf("ticket update ended with error: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Msg("ticket update failed")
		return models.Ticket{}, err
	}

	return updated, nil
}

// Delete refunds a ticket and returns its seat to the event.
func (s *ticketService) Delete(ctx context.Context, caller models.Caller, id int64) error {
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		ticket, err := s.ticketRepository.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("ticket search by id failed: %w", err)
		}
		if !owns(caller, ticket) {
			return ErrForbidden
		}

		if _, err = s.eventRepository.FindByIDForUpdate(ctx, ticket.EventID); err != nil {
			return fmt.Errorf("event search by id failed: %w", err)
		}
		if err = s.ticketRepository.Delete(ctx, id); err != nil {
			return fmt.Errorf("ticket deletion failed: %w", err)
		}
		if err = s.eventRepository.AdjustTicketsAvailable(ctx, ticket.EventID, 1); err != nil {
			return fmt.Errorf("releasing ticket failed: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*ticketService.Delete").Int64("id", id).Msg("ticket deletion failed")
		return err
	}
	return nil
}

// GetByID returns any ticket to administrators and organizers, and only
// their own tickets to clients.
func (s *ticketService) GetByID(ctx context.Context, caller models.Caller, id int64) (models.Ticket, error) {
	ticket, err := s.ticketRepository.FindByID(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*ticketService.GetByID").Int64("id", id).Msg("ticket search by id failed")
		return models.Ticket{}, fmt.Errorf("ticket search by id failed: %w", err)
	}
	if !caller.Is(models.RoleAdministrator, models.RoleOrganizer) && !owns(caller, ticket) {
		return models.Ticket{}, ErrForbidden
	}
	return ticket, nil
}

func (s *ticketService) GetAll(ctx context.Context) ([]models.Ticket, error) {
	tickets, err := s.ticketRepository.FindAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*ticketService.GetAll").Msg("ticket listing failed")
		return nil, fmt.Errorf("ticket listing failed: %w", err)
	}
	return tickets, nil
}

func (s *ticketService) GetByUser(ctx context.Context, userID int64) ([]models.Ticket, error) {
	log := logger.FromContext(ctx).With().Str("func", "*ticketService.GetByUser").Int64("user_id", userID).Logger()

	if _, err := s.userRepository.FindByID(ctx, userID); err != nil {
		log.Err(err).Msg("user search by id failed")
		return nil, fmt.Errorf("user search by id failed: %w", err)
	}

	tickets, err := s.ticketRepository.FindByUser(ctx, userID)
	if err != nil {
		log.Err(err).Msg("ticket search by user failed")
		return nil, fmt.Errorf("ticket search by user failed: %w", err)
	}
	return tickets, nil
}

func (s *ticketService) GetByEvent(ctx context.Context, eventID int64) ([]models.Ticket, error) {
	log := logger.FromContext(ctx).With().Str("func", "*ticketService.GetByEvent").Int64("event_id", eventID).Logger()

	if _, err := s.eventRepository.FindByID(ctx, eventID); err != nil {
		log.Err(err).Msg("event search by id failed")
		return nil, fmt.Errorf("event search by id failed: %w", err)
	}

	tickets, err := s.ticketRepository.FindByEvent(ctx, eventID)
	if err != nil {
		log.Err(err).Msg("ticket search by event failed")
		return nil, fmt.Errorf("ticket search by event failed: %w", err)
	}
	return tickets, nil
}

// Export renders a ticket the caller owns as a downloadable file.
func (s *ticketService) Export(ctx context.Context, caller models.Caller, id int64, format models.ExportFormat) (models.TicketFile, error) {
	log := logger.FromContext(ctx).With().Str("func", "*ticketService.Export").Int64("id", id).Str("format", string(format)).Logger()

	exporter, err := export.ForFormat(format)
	if err != nil {
		log.Err(err).Msg("unsupported export format")
		return models.TicketFile{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	details, err := s.ticketRepository.FindDetails(ctx, id)
	if err != nil {
		log.Err(err).Msg("ticket details search failed")
		return models.TicketFile{}, fmt.Errorf("ticket details search failed: %w", err)
	}
	if !owns(caller, details.Ticket) {
		return models.TicketFile{}, ErrForbidden
	}

	var buf bytes.Buffer
	if err = exporter.Export(&buf, details); err != nil {
		log.Err(err).Msg("ticket export failed")
		return models.TicketFile{}, fmt.Errorf("ticket export failed: %w", err)
	}

	return models.TicketFile{
		Name:        export.Filename(exporter),
		ContentType: exporter.ContentType(),
		Content:     buf.Bytes(),
	}, nil
}

func owns(caller models.Caller, ticket models.Ticket) bool {
	return ticket.UserID == caller.UserID
}
