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

// eventRepository is the PostgreSQL-backed implementation of [EventRepository].
//
// Events are always read joined with their location so that callers get the
// location name without a second query.
type eventRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewEventRepository(db *DB, logger *logger.Logger) EventRepository {
	logger.Debug().Msg("creating event repository")
	return &eventRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts the event and reads it back with its location name.
func (r *eventRepository) Create(ctx context.Context, event models.Event) (models.Event, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertEventQuery(event)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.Create").Msg("error building query")
		return models.Event{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err = r.db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		log.Err(err).Str("func", "*eventRepository.Create").Msg("error inserting event")
		return models.Event{}, eventWriteError(err)
	}

	return r.FindByID(ctx, id)
}

func (r *eventRepository) FindByID(ctx context.Context, id int64) (models.Event, error) {
	query, args, err := buildSelectEventsQuery(sq.Eq{"e.id": id})
	return r.findOne(ctx, "*eventRepository.FindByID", query, args, err)
}

func (r *eventRepository) FindByIDForUpdate(ctx context.Context, id int64) (models.Event, error) {
	query, args, err := buildSelectEventForUpdateQuery(id)
	return r.findOne(ctx, "*eventRepository.FindByIDForUpdate", query, args, err)
}

func (r *eventRepository) FindAll(ctx context.Context) ([]models.Event, error) {
	query, args, err := buildSelectEventsQuery(nil)
	return r.findMany(ctx, "*eventRepository.FindAll", query, args, err)
}

func (r *eventRepository) FindByOrganizer(ctx context.Context, organizerID int64) ([]models.Event, error) {
	query, args, err := buildSelectEventsQuery(sq.Eq{"e.organizer_id": organizerID})
	return r.findMany(ctx, "*eventRepository.FindByOrganizer", query, args, err)
}

// Update replaces every mutable column of the event identified by event.ID
// and returns the stored row.
func (r *eventRepository) Update(ctx context.Context, event models.Event) (models.Event, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateEventQuery(event)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.Update").Msg("error building query")
		return models.Event{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.Update").Int64("event_id", event.ID).Msg("error updating event")
		return models.Event{}, eventWriteError(err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return models.Event{}, ErrEventNotFound
	}

	return r.FindByID(ctx, event.ID)
}

func (r *eventRepository) AdjustTicketsAvailable(ctx context.Context, id int64, delta int) error {
	log := logger.FromContext(ctx)

	query, args, err := buildAdjustTicketsAvailableQuery(id, delta)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.AdjustTicketsAvailable").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*eventRepository.AdjustTicketsAvailable").
			Int64("event_id", id).
			Int("delta", delta).
			Msg("error adjusting tickets available")

		if postgresError(err) == pgerrcode.CheckViolation {
			return ErrNotEnoughTickets
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// Delete removes the event together with its tickets and wishlist entries.
func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteByIDQuery(eventsTable, id)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.Delete").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.Delete").Int64("event_id", id).Msg("error deleting event")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (r *eventRepository) findOne(ctx context.Context, funcName, query string, args []any, buildErr error) (models.Event, error) {
	log := logger.FromContext(ctx)

	if buildErr != nil {
		log.Err(buildErr).Str("func", funcName).Msg("error building query")
		return models.Event{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
	}

	event, err := scanEvent(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, ErrEventNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error selecting event")
		return models.Event{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return event, nil
}

func (r *eventRepository) findMany(ctx context.Context, funcName, query string, args []any, buildErr error) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	if buildErr != nil {
		log.Err(buildErr).Str("func", funcName).Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error selecting events")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	events, err := collectRows(rows, scanEvent)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error scanning events")
		return nil, err
	}

	return events, nil
}

func eventWriteError(err error) error {
	switch postgresError(err) {
	case pgerrcode.ForeignKeyViolation:
		return ErrReferencedRowNotFound
	case pgerrcode.CheckViolation:
		return ErrInvalidData
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}
