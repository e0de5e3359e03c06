package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return NewUserRepository(db, logger.Nop()), mock
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows(userColumns)
}

func TestUserRepository_Create(t *testing.T) {
	now := time.Now()
	user := models.User{Username: "john", PasswordHash: "hash", Name: "John", Email: "j@x.io", Role: models.RoleClient}

	t.Run("success", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs("john", "hash", "John", "j@x.io", "client").
			WillReturnRows(userRows().AddRow(1, "john", "hash", "John", "j@x.io", "client", now))

		created, err := repo.Create(context.Background(), user)
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, models.RoleClient, created.Role)
		assert.Equal(t, now, created.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(pgError(pgerrcode.UniqueViolation))

		_, err := repo.Create(context.Background(), user)
		assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
	})

	t.Run("check violation", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(pgError(pgerrcode.CheckViolation))

		_, err := repo.Create(context.Background(), user)
		assert.ErrorIs(t, err, ErrInvalidData)
	})

	t.Run("other error", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(sql.ErrConnDone)

		_, err := repo.Create(context.Background(), user)
		assert.ErrorIs(t, err, ErrExecutingQuery)
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestUserRepository_FindByUsername(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
			WithArgs("john").
			WillReturnRows(userRows().AddRow(3, "john", "hash", "John", "j@x.io", "organizer", time.Now()))

		user, err := repo.FindByUsername(context.Background(), "john")
		require.NoError(t, err)
		assert.Equal(t, int64(3), user.ID)
		assert.Equal(t, models.RoleOrganizer, user.Role)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
			WithArgs("ghost").
			WillReturnRows(userRows())

		_, err := repo.FindByUsername(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrNoUserWasFound)
	})
}

func TestUserRepository_FindByIDForUpdate(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1 ORDER BY id FOR UPDATE")).
		WithArgs(int64(3)).
		WillReturnRows(userRows().AddRow(3, "john", "hash", "John", "j@x.io", "client", time.Now()))

	user, err := repo.FindByIDForUpdate(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "john", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByRole(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE user_type = $1")).
		WithArgs("organizer").
		WillReturnRows(userRows().
			AddRow(1, "a", "h", "A", "a@x.io", "organizer", now).
			AddRow(2, "b", "h", "B", "b@x.io", "organizer", now))

	users, err := repo.FindByRole(context.Background(), models.RoleOrganizer)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserRepository_FindAll_Empty(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users ORDER BY id")).WillReturnRows(userRows())

	users, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserRepository_Update(t *testing.T) {
	user := models.User{ID: 4, Username: "new", PasswordHash: "h", Name: "N", Email: "n@x.io", Role: models.RoleClient}

	t.Run("success", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET")).
			WithArgs("new", "h", "N", "n@x.io", "client", int64(4)).
			WillReturnRows(userRows().AddRow(4, "new", "h", "N", "n@x.io", "client", time.Now()))

		updated, err := repo.Update(context.Background(), user)
		require.NoError(t, err)
		assert.Equal(t, "new", updated.Username)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET")).WillReturnRows(userRows())

		_, err := repo.Update(context.Background(), user)
		assert.ErrorIs(t, err, ErrNoUserWasFound)
	})

	t.Run("username taken", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET")).WillReturnError(pgError(pgerrcode.UniqueViolation))

		_, err := repo.Update(context.Background(), user)
		assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
	})
}

func TestUserRepository_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
			WithArgs(int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), 2))
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 2), ErrNoUserWasFound)
	})

	t.Run("organizer of events", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

		assert.ErrorIs(t, repo.Delete(context.Background(), 2), ErrUserHasEvents)
	})
}
