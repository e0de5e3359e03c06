package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
)

type ticketRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewTicketRepository(db *DB, logger *logger.Logger) TicketRepository {
	logger.Debug().Msg("creating ticket repository")
	return &ticketRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts all tickets with a single multi-row INSERT and returns them
// with their ids and purchase timestamps.
func (r *ticketRepository) Create(ctx context.Context, tickets ...models.Ticket) ([]models.Ticket, error) {
	log := logger.FromContext(ctx)

	if len(tickets) == 0 {
		return []models.Ticket{}, nil
	}

	query, args, err := buildInsertTicketsQuery(tickets)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.Create").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.Create").Int("count", len(tickets)).Msg("error inserting tickets")
		return nil, ticketWriteError(err)
	}

	created, err := collectRows(rows, scanTicket)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.Create").Msg("error scanning inserted tickets")
		return nil, ticketWriteError(err)
	}

	return created, nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id int64) (models.Ticket, error) {
	return r.findOne(ctx, "*ticketRepository.FindByID", id, selectTickets(sq.Eq{"id": id}))
}

// FindByIDForUpdate locks the ticket row until the surrounding transaction
// ends, so concurrent moves and refunds of one ticket run one after another.
func (r *ticketRepository) FindByIDForUpdate(ctx context.Context, id int64) (models.Ticket, error) {
	return r.findOne(ctx, "*ticketRepository.FindByIDForUpdate", id, selectTicketForUpdate(id))
}

func (r *ticketRepository) findOne(ctx context.Context, funcName string, id int64, builder sq.Sqlizer) (models.Ticket, error) {
	log := logger.FromContext(ctx)

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ticket, err := scanTicket(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ticket{}, ErrTicketNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Int64("ticket_id", id).Msg("error selecting ticket")
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return ticket, nil
}

// FindDetails returns the ticket joined with the event and location fields
// printed on exported tickets.
func (r *ticketRepository) FindDetails(ctx context.Context, id int64) (models.TicketDetails, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTicketDetailsQuery(id)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.FindDetails").Msg("error building query")
		return models.TicketDetails{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	details, err := scanTicketDetails(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.TicketDetails{}, ErrTicketNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.FindDetails").Int64("ticket_id", id).Msg("error selecting ticket details")
		return models.TicketDetails{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return details, nil
}

func (r *ticketRepository) FindAll(ctx context.Context) ([]models.Ticket, error) {
	return r.findMany(ctx, "*ticketRepository.FindAll", nil)
}

func (r *ticketRepository) FindByUser(ctx context.Context, userID int64) ([]models.Ticket, error) {
	return r.findMany(ctx, "*ticketRepository.FindByUser", sq.Eq{"user_id": userID})
}

func (r *ticketRepository) FindByEvent(ctx context.Context, eventID int64) ([]models.Ticket, error) {
	return r.findMany(ctx, "*ticketRepository.FindByEvent", sq.Eq{"event_id": eventID})
}

func (r *ticketRepository) CountByEvent(ctx context.Context, eventID int64) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountTicketsByEventQuery(eventID)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.CountByEvent").Msg("error building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*ticketRepository.CountByEvent").Int64("event_id", eventID).Msg("error counting tickets")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// CountByUser returns the number of tickets the user holds per event id.
func (r *ticketRepository) CountByUser(ctx context.Context, userID int64) (map[int64]int, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountTicketsByUserQuery(userID)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.CountByUser").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.CountByUser").Int64("user_id", userID).Msg("error counting tickets")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var (
			eventID int64
			count   int
		)
		if err = rows.Scan(&eventID, &count); err != nil {
			log.Err(err).Str("func", "*ticketRepository.CountByUser").Msg("error scanning ticket count")
			return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		counts[eventID] = count
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*ticketRepository.CountByUser").Msg("error iterating ticket counts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return counts, nil
}

// Update moves the ticket to ticket.EventID at ticket.PurchasePrice.
func (r *ticketRepository) Update(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateTicketQuery(ticket)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.Update").Msg("error building query")
		return models.Ticket{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanTicket(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ticket{}, ErrTicketNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.Update").Int64("ticket_id", ticket.ID).Msg("error updating ticket")
		return models.Ticket{}, ticketWriteError(err)
	}

	return updated, nil
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteByIDQuery(ticketsTable, id)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.Delete").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.Delete").Int64("ticket_id", id).Msg("error deleting ticket")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrTicketNotFound
	}

	return nil
}

func (r *ticketRepository) findMany(ctx context.Context, funcName string, where sq.Sqlizer) ([]models.Ticket, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTicketsQuery(where)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error selecting tickets")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	tickets, err := collectRows(rows, scanTicket)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error scanning tickets")
		return nil, err
	}

	return tickets, nil
}

func ticketWriteError(err error) error {
	switch postgresError(err) {
	case pgerrcode.ForeignKeyViolation:
		return ErrReferencedRowNotFound
	case pgerrcode.CheckViolation:
		return ErrInvalidData
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}
