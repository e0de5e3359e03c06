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

type locationRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewLocationRepository(db *DB, logger *logger.Logger) LocationRepository {
	logger.Debug().Msg("creating location repository")
	return &locationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *locationRepository) Create(ctx context.Context, location models.Location) (models.Location, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertLocationQuery(location)
	if err != nil {
		log.Err(err).Str("func", "*locationRepository.Create").Msg("error building query")
		return models.Location{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanLocation(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*locationRepository.Create").Msg("error inserting location")
		return models.Location{}, locationWriteError(err)
	}

	return created, nil
}

func (r *locationRepository) FindByID(ctx context.Context, id int64) (models.Location, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectLocationsQuery(sq.Eq{"id": id})
	if err != nil {
		log.Err(err).Str("func", "*locationRepository.FindByID").Msg("error building query")
		return models.Location{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	location, err := scanLocation(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Location{}, ErrLocationNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*locationRepository.FindByID").Int64("location_id", id).Msg("error selecting location")
		return models.Location{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return location, nil
}

func (r *locationRepository) FindAll(ctx context.Context) ([]models.Location, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectLocationsQuery(nil)
	if err != nil {
		log.Err(err).Str("func", "*locationRepository.FindAll").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*locationRepository.FindAll").Msg("error selecting locations")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return collectRows(rows, scanLocation)
}

func (r *locationRepository) Update(ctx context.Context, location models.Location) (models.Location, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateLocationQuery(location)
	if err != nil {
		log.Err(err).Str("func", "*locationRepository.Update").Msg("error building query")
		return models.Location{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanLocation(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Location{}, ErrLocationNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*locationRepository.Update").Int64("location_id", location.ID).Msg("error updating location")
		return models.Location{}, locationWriteError(err)
	}

	return updated, nil
}

// Delete removes the location. Locations events take place at cannot be
// deleted.
func (r *locationRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteByIDQuery(locationsTable, id)
	if err != nil {
		log.Err(err).Str("func", "*locationRepository.Delete").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*locationRepository.Delete").Int64("location_id", id).Msg("error deleting location")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation, pgerrcode.RestrictViolation:
			return ErrLocationInUse
		default:
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrLocationNotFound
	}

	return nil
}

func locationWriteError(err error) error {
	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return ErrLocationNameAlreadyExists
	case pgerrcode.CheckViolation:
		return ErrInvalidData
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}
