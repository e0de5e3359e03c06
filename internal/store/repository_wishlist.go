package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/models"
	"github.com/jackc/pgerrcode"
)

// wishlistRepository stores the users<->events wishlist relation.
type wishlistRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewWishlistRepository(db *DB, logger *logger.Logger) WishlistRepository {
	logger.Debug().Msg("creating wishlist repository")
	return &wishlistRepository{
		db:     db,
		logger: logger,
	}
}

// Add puts the event on the user's wishlist. Adding it twice is a no-op.
func (r *wishlistRepository) Add(ctx context.Context, userID, eventID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertWishlistQuery(userID, eventID)
	if err != nil {
		log.Err(err).Str("func", "*wishlistRepository.Add").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "*wishlistRepository.Add").
			Int64("user_id", userID).
			Int64("event_id", eventID).
			Msg("error adding event to wishlist")

		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return ErrReferencedRowNotFound
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, eventID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteWishlistQuery(userID, eventID)
	if err != nil {
		log.Err(err).Str("func", "*wishlistRepository.Remove").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*wishlistRepository.Remove").Msg("error removing event from wishlist")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrWishlistEntryNotFound
	}

	return nil
}

// ListEvents returns the events on the user's wishlist.
func (r *wishlistRepository) ListEvents(ctx context.Context, userID int64) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectWishlistEventsQuery(userID)
	if err != nil {
		log.Err(err).Str("func", "*wishlistRepository.ListEvents").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*wishlistRepository.ListEvents").Int64("user_id", userID).Msg("error selecting wishlist")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return collectRows(rows, scanEvent)
}

// ListUsers returns the users who have the event on their wishlist.
func (r *wishlistRepository) ListUsers(ctx context.Context, eventID int64) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectWishlistUsersQuery(eventID)
	if err != nil {
		log.Err(err).Str("func", "*wishlistRepository.ListUsers").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*wishlistRepository.ListUsers").Int64("event_id", eventID).Msg("error selecting wishlist users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return collectRows(rows, scanUser)
}
