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

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account persistence against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new user record and returns it with server-assigned
// fields (ID, CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUsernameAlreadyExists].
//   - PostgreSQL check_violation (23514) → [ErrInvalidData].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Msg("error inserting user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUsernameAlreadyExists
		case pgerrcode.CheckViolation:
			return models.User{}, ErrInvalidData
		default:
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return created, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByID", selectUsers(sq.Eq{"id": id}))
}

// FindByIDForUpdate locks the user row until the surrounding transaction
// ends.
func (r *userRepository) FindByIDForUpdate(ctx context.Context, id int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByIDForUpdate", selectUserForUpdate(id))
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByUsername", selectUsers(sq.Eq{"username": username}))
}

func (r *userRepository) FindByName(ctx context.Context, name string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByName", selectUsers(sq.Eq{"name": name}))
}

func (r *userRepository) FindByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return r.findMany(ctx, "*userRepository.FindByRole", sq.Eq{"user_type": string(role)})
}

func (r *userRepository) FindAll(ctx context.Context) ([]models.User, error) {
	return r.findMany(ctx, "*userRepository.FindAll", nil)
}

// Update replaces every mutable column of the user identified by user.ID.
func (r *userRepository) Update(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanUser(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Int64("user_id", user.ID).Msg("error updating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUsernameAlreadyExists
		case pgerrcode.CheckViolation:
			return models.User{}, ErrInvalidData
		default:
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return updated, nil
}

// Delete removes the user. Tickets and wishlist entries go with it; a user
// still referenced as an event organizer cannot be deleted.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteByIDQuery(usersTable, id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Delete").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Delete").Int64("user_id", id).Msg("error deleting user")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation, pgerrcode.RestrictViolation:
			return ErrUserHasEvents
		default:
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

func (r *userRepository) findOne(ctx context.Context, funcName string, builder sq.Sqlizer) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error selecting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

func (r *userRepository) findMany(ctx context.Context, funcName string, where sq.Sqlizer) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUsersQuery(where)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error selecting users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	users, err := collectRows(rows, scanUser)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error scanning users")
		return nil, err
	}

	return users, nil
}
